// Package commands provides the CLI commands for readingchat.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/readingchat/internal/config"
	"github.com/diogo/readingchat/internal/logging"
	"github.com/diogo/readingchat/internal/render"
	"github.com/diogo/readingchat/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// app carries the state shared by the command tree: injected dependencies,
// persistent flags, and the effective configuration once loaded.
type app struct {
	deps  *Dependencies
	flags globalFlags

	cfg       config.Config
	cfgPath   string
	logger    zerolog.Logger
	logCloser io.Closer
}

func newApp(deps *Dependencies) *app {
	return &app{
		deps:   deps,
		cfg:    config.DefaultConfig(),
		logger: zerolog.Nop(),
	}
}

// rootCommand builds the command tree
func (a *app) rootCommand() *cobra.Command {
	var (
		fileFlag   string
		outputFlag string
		rawFlag    bool
	)

	cmd := &cobra.Command{
		Use:   "readingchat [message]",
		Short: "Chat with your course reading assistant",
		Long: `readingchat sends questions to a reading-assistant backend and shows
the answers together with the passages they cite.

Examples:
  readingchat chat                        Start interactive chat
  readingchat "What is chapter 2 about?"  Ask a single question
  readingchat -f question.md              Read the question from a file
  cat question.md | readingchat           Read the question from stdin
  readingchat ask "Q1" "Q2" -o qa.md      Ask several questions at once
  readingchat health                      Check the backend is up`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, true)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(a.deps.Stdout, "readingchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			message, provided, err := a.readMessage(args, fileFlag)
			if err != nil {
				return err
			}
			if !provided {
				return cmd.Help()
			}

			return a.runQuery(cmd.Context(), message, queryOptions{
				raw:    rawFlag,
				output: outputFlag,
			})
		},
	}

	a.flags.register(cmd.PersistentFlags())
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the message from a file")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save the transcript to a file (.json for JSON, otherwise Markdown)")
	cmd.Flags().BoolVar(&rawFlag, "raw", false, "Print only the answer, without decoration")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.SetIn(a.deps.Stdin)
	cmd.SetOut(a.deps.Stdout)
	cmd.SetErr(a.deps.Stderr)

	cmd.AddCommand(
		a.newChatCmd(),
		a.newAskCmd(),
		a.newHealthCmd(),
		a.newConfigCmd(),
	)

	return cmd
}

// setup loads the effective configuration (defaults < file < environment
// < flags) and starts logging. When strict is false a broken config file
// falls back to the defaults so it can still be inspected or replaced.
func (a *app) setup(cmd *cobra.Command, strict bool) error {
	path := a.flags.configPath
	if path == "" {
		p, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, loadErr := config.LoadConfigFrom(path)
	if loadErr != nil && strict {
		return loadErr
	}
	config.ApplyEnv(&cfg)
	a.flags.apply(cmd.Flags(), &cfg)

	if strict {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	logOpts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if a.flags.logConsole {
		logOpts.Console, logOpts.Writer = true, a.deps.Stderr
	}
	logger, closer, err := logging.Init(logOpts)
	if err != nil {
		if strict {
			return err
		}
		// lenient commands fall back to warnings on stderr
		logger, closer, _ = logging.Init(logging.Options{
			Level:   "warn",
			Console: true,
			Writer:  a.deps.Stderr,
		})
		logger.Warn().Err(err).Msg("file logging disabled")
	}

	a.cfg, a.cfgPath = cfg, path
	a.logger, a.logCloser = logger, closer

	if loadErr != nil {
		logger.Warn().Err(loadErr).Str("config", path).Msg("using default configuration")
	}
	if cfg.TUITheme != "" {
		if render.SetPalette(cfg.TUITheme) {
			tui.UpdateTheme()
		} else {
			logger.Warn().Str("theme", cfg.TUITheme).Msg("unknown TUI theme")
		}
	}

	logger.Debug().
		Str("config", path).
		Str("endpoint", cfg.Endpoint).
		Str("course", cfg.CourseID).
		Str("tenant", cfg.TenantID).
		Str("command", cmd.CommandPath()).
		Msg("configuration loaded")
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		a.logCloser.Close()
		a.logCloser = nil
	}
}

// readMessage picks the message from --file, piped stdin or the argument,
// in that order. provided is false when no source was given at all.
func (a *app) readMessage(args []string, file string) (string, bool, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if !a.deps.StdinIsTerminal() {
		data, err := io.ReadAll(a.deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if len(data) > 0 || len(args) == 0 {
			return string(data), len(data) > 0, nil
		}
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	return "", false, nil
}

// run executes the command tree with args and returns the exit code
func run(ctx context.Context, deps *Dependencies, args []string) int {
	a := newApp(deps)
	defer a.close()

	cmd := a.rootCommand()
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	// A failed reply is already on screen as a transcript line
	if err != errReplyFailed {
		msg := tui.FormatError(err)
		if strings.HasPrefix(err.Error(), "unknown command") || strings.HasPrefix(err.Error(), "unknown flag") {
			msg += "\n" + cmd.UsageString()
		}
		fmt.Fprintln(deps.Stderr, msg)
	}
	return 1
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, NewDependencies(), os.Args[1:])
	stop()
	if code != 0 {
		os.Exit(code)
	}
}
