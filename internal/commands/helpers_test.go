package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/diogo/readingchat/internal/api"
	"github.com/diogo/readingchat/internal/config"
	"github.com/diogo/readingchat/internal/dispatch"
	"github.com/diogo/readingchat/internal/models"
	"github.com/diogo/readingchat/internal/tui"
)

const testEndpoint = "http://127.0.0.1:8000"

// fakeClient is a ChatClient answering from canned values
type fakeClient struct {
	mu       sync.Mutex
	messages []string

	respond   func(message string) (*models.ChatResponse, error)
	health    *models.HealthStatus
	healthErr error
}

func (f *fakeClient) Chat(_ context.Context, message string) (*models.ChatResponse, error) {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	respond := f.respond
	f.mu.Unlock()

	if respond == nil {
		return &models.ChatResponse{}, nil
	}
	return respond(message)
}

func (f *fakeClient) Health(context.Context) (*models.HealthStatus, error) {
	return f.health, f.healthErr
}

func (f *fakeClient) Endpoint() string {
	return testEndpoint
}

func (f *fakeClient) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

func answer(text string, citations ...models.Citation) func(string) (*models.ChatResponse, error) {
	return func(string) (*models.ChatResponse, error) {
		return &models.ChatResponse{Answer: text, HasAnswer: true, Citations: citations}, nil
	}
}

// harness wires fake dependencies and captures output
type harness struct {
	t      *testing.T
	home   string
	client *fakeClient
	deps   *Dependencies
	stdout *bytes.Buffer
	stderr *bytes.Buffer

	cfg       config.Config // config passed to NewClient
	copied    []string
	chatOpts  *tui.Options
	chatD     *dispatch.Dispatcher
	settings  *config.Config
	setPath   string
	clientErr error
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvEndpoint, "")
	t.Setenv(config.EnvCourseID, "")
	t.Setenv(config.EnvTenantID, "")
	t.Setenv("GLAMOUR_STYLE", "")

	h := &harness{
		t:      t,
		home:   home,
		client: &fakeClient{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}

	h.deps = &Dependencies{
		NewClient: func(cfg config.Config, _ zerolog.Logger) (api.ChatClient, error) {
			h.cfg = cfg
			if h.clientErr != nil {
				return nil, h.clientErr
			}
			return h.client, nil
		},
		RunChat: func(_ context.Context, d *dispatch.Dispatcher, opts tui.Options) error {
			h.chatD = d
			h.chatOpts = &opts
			return nil
		},
		RunSettings: func(cfg config.Config, path string) error {
			h.settings = &cfg
			h.setPath = path
			return nil
		},
		Clipboard: func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		},
		Stdin:            strings.NewReader(""),
		Stdout:           h.stdout,
		Stderr:           h.stderr,
		StdinIsTerminal:  func() bool { return true },
		StdoutIsTerminal: func() bool { return false },
	}
	return h
}

func (h *harness) run(args ...string) int {
	h.t.Helper()
	return run(context.Background(), h.deps, args)
}

func (h *harness) configPath() string {
	return filepath.Join(h.home, ".readingchat", "config.yaml")
}

func (h *harness) writeConfig(body string) {
	h.t.Helper()
	require.NoError(h.t, os.MkdirAll(filepath.Dir(h.configPath()), 0o700))
	require.NoError(h.t, os.WriteFile(h.configPath(), []byte(body), 0o600))
}

func (h *harness) pipeStdin(s string) {
	h.deps.StdinIsTerminal = func() bool { return false }
	h.deps.Stdin = strings.NewReader(s)
}

// safeBuffer is a bytes.Buffer safe for the spinner goroutine
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
