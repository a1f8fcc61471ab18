package commands

import (
	"github.com/spf13/pflag"

	"github.com/diogo/readingchat/internal/config"
)

// globalFlags are the persistent flags shared by every command. They take
// precedence over the environment and the config file.
type globalFlags struct {
	configPath string
	endpoint   string
	course     string
	tenant     string
	timeout    int
	logLevel   string
	logFile    string
	logConsole bool
}

func (g *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "Config file (default ~/.readingchat/config.yaml)")
	fs.StringVar(&g.endpoint, "endpoint", "", "Backend base URL")
	fs.StringVar(&g.course, "course", "", "Course id sent with every message")
	fs.StringVar(&g.tenant, "tenant", "", "Tenant id sent with every message")
	fs.IntVar(&g.timeout, "timeout", 0, "Request timeout in seconds (0 keeps the transport default)")
	fs.StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&g.logFile, "log-file", "", "Log file (default ~/.readingchat/readingchat.log)")
	fs.BoolVar(&g.logConsole, "log-console", false, "Write human-readable logs to stderr instead of the log file")
}

// apply copies the flags the user actually set onto cfg
func (g *globalFlags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("endpoint") {
		cfg.Endpoint = g.endpoint
	}
	if fs.Changed("course") {
		cfg.CourseID = g.course
	}
	if fs.Changed("tenant") {
		cfg.TenantID = g.tenant
	}
	if fs.Changed("timeout") {
		cfg.TimeoutSeconds = g.timeout
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if fs.Changed("log-file") {
		cfg.LogFile = g.logFile
	}
}
