package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/readingchat/internal/config"
	"github.com/diogo/readingchat/internal/models"
)

func TestHealth(t *testing.T) {
	h := newHarness(t)
	h.client.health = &models.HealthStatus{OK: true}

	require.Equal(t, 0, h.run("health"))
	assert.Contains(t, h.stdout.String(), "Backend at "+testEndpoint+" is healthy")
}

func TestHealth_Failures(t *testing.T) {
	h := newHarness(t)
	h.client.healthErr = errors.New("connection refused")
	assert.Equal(t, 1, h.run("health"))
	assert.Contains(t, h.stderr.String(), "health check failed: connection refused")

	h2 := newHarness(t)
	h2.client.health = &models.HealthStatus{OK: false}
	assert.Equal(t, 1, h2.run("health"))
	assert.Contains(t, h2.stderr.String(), "is not healthy")
}

func TestChat(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("chat", "--course", "c1", "--tenant", "t1"))

	require.NotNil(t, h.chatOpts)
	assert.Equal(t, testEndpoint, h.chatOpts.Endpoint)
	assert.Equal(t, "c1 / t1", h.chatOpts.Scope)
	assert.NotNil(t, h.chatOpts.Clipboard)
	require.NotNil(t, h.chatD)
	assert.Equal(t, 0, h.chatD.Transcript().Len())

	h2 := newHarness(t)
	assert.Equal(t, 1, h2.run("chat", "extra"))
}

func TestConfigPath(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("config", "path"))
	assert.Equal(t, h.configPath()+"\n", h.stdout.String())

	h2 := newHarness(t)
	custom := filepath.Join(t.TempDir(), "c.yaml")
	require.Equal(t, 0, h2.run("--config", custom, "config", "path"))
	assert.Equal(t, custom+"\n", h2.stdout.String())
}

func TestConfigInit(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, h.run("config", "init"))
	assert.Contains(t, h.stdout.String(), "Wrote default config to "+h.configPath())

	cfg, err := config.LoadConfigFrom(h.configPath())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	assert.Equal(t, 1, h.run("config", "init"))
	assert.Contains(t, h.stderr.String(), "already exists")

	assert.Equal(t, 0, h.run("config", "init", "--force"))
}

func TestConfigInit_ReplacesBrokenFile(t *testing.T) {
	h := newHarness(t)
	h.writeConfig("endpoint: [unclosed\n")

	require.Equal(t, 0, h.run("config", "path"))
	require.Equal(t, 0, h.run("config", "init", "--force"))

	_, err := config.LoadConfigFrom(h.configPath())
	assert.NoError(t, err)
}

func TestConfig_ToleratesBadLogSettings(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	for name, body := range map[string]string{
		"unknown level":     "log_level: verbose\n",
		"unusable log file": "log_file: " + filepath.Join(blocker, "app.log") + "\n",
	} {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			h.writeConfig(body)

			assert.Equal(t, 0, h.run("config", "show"))
			assert.Equal(t, 0, h.run("config", "path"))
			assert.Equal(t, 0, h.run("config"))
			assert.NotNil(t, h.settings)
			assert.Contains(t, h.stderr.String(), "file logging disabled")

			require.Equal(t, 0, h.run("config", "init", "--force"))
			cfg, err := config.LoadConfigFrom(h.configPath())
			require.NoError(t, err)
			assert.Equal(t, config.DefaultConfig(), cfg)
		})
	}
}

func TestConfig_BadLogLevelStillFailsQueries(t *testing.T) {
	h := newHarness(t)
	h.writeConfig("log_level: verbose\n")

	assert.Equal(t, 1, h.run("q"))
	assert.Contains(t, h.stderr.String(), "invalid log level")
	assert.Empty(t, h.client.sent())
}

func TestConfigShow(t *testing.T) {
	h := newHarness(t)
	h.writeConfig("course_id: from-file\n")
	t.Setenv(config.EnvTenantID, "from-env")

	require.Equal(t, 0, h.run("config", "show", "--endpoint", "http://flag:9"))

	out := h.stdout.String()
	assert.Contains(t, out, "endpoint: http://flag:9")
	assert.Contains(t, out, "course_id: from-file")
	assert.Contains(t, out, "tenant_id: from-env")
}

func TestConfigMenu(t *testing.T) {
	h := newHarness(t)
	h.writeConfig("tui_theme: nord\n")

	require.Equal(t, 0, h.run("config"))
	require.NotNil(t, h.settings)
	assert.Equal(t, "nord", h.settings.TUITheme)
	assert.Equal(t, h.configPath(), h.setPath)
}

func TestConfigInit_WritesDirectory(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	require.Equal(t, 0, h.run("--config", path, "config", "init"))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
