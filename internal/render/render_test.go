package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/diogo/readingchat/internal/config"
)

func TestDefaultOptions(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != "dark" {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
	if !opts.EnableEmoji || !opts.PreserveNewLines || !opts.TableWrap {
		t.Errorf("unexpected boolean defaults: %+v", opts)
	}
	if opts.InlineTableLinks {
		t.Error("expected InlineTableLinks=false")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	opts := OptionsFromConfig(config.MarkdownConfig{Style: "light", TableWrap: false})
	if opts.Style != "light" {
		t.Errorf("expected Style='light', got %s", opts.Style)
	}
	if opts.TableWrap {
		t.Error("expected TableWrap=false")
	}

	empty := OptionsFromConfig(config.MarkdownConfig{})
	if empty.Style != StyleDark {
		t.Errorf("expected empty style to fall back to dark, got %s", empty.Style)
	}
}

func TestOptionsFromConfig_EnvOverride(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "notty")

	opts := OptionsFromConfig(config.MarkdownConfig{Style: "light"})
	if opts.Style != "notty" {
		t.Errorf("expected GLAMOUR_STYLE to win, got %s", opts.Style)
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := DefaultOptions().WithWidth(100).WithStyle("light")
	if opts.Width != 100 || opts.Style != "light" {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestMarkdown(t *testing.T) {
	ClearCache()
	opts := DefaultOptions().WithStyle(StyleNoTTY)

	out, err := Markdown("# Heading\n\nSome **bold** text.", opts)
	if err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "bold") {
		t.Errorf("rendered output lost content: %q", out)
	}
	if CacheSize() != 1 {
		t.Errorf("expected 1 cached option set, got %d", CacheSize())
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	out, err := MarkdownWithWidth("plain text", 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth() error: %v", err)
	}
	if !strings.Contains(out, "plain text") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestAnswer(t *testing.T) {
	out := Answer("The answer is **42** [C1].", DefaultOptions().WithStyle(StyleNoTTY))
	if strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newlines to be trimmed")
	}
	if !strings.Contains(out, "42") || !strings.Contains(out, "[C1]") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestAnswer_FallsBackOnBadStyle(t *testing.T) {
	text := "raw answer"
	out := Answer(text, DefaultOptions().WithStyle("/does/not/exist.json"))
	if out != text {
		t.Errorf("expected fallback to raw text, got %q", out)
	}
}

func TestMarkdownConcurrent(t *testing.T) {
	opts := DefaultOptions().WithStyle(StyleASCII)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("- item", opts); err != nil {
				t.Errorf("Markdown() error: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestStyles(t *testing.T) {
	if !IsBuiltinStyle(StyleDark) || !IsBuiltinStyle(StyleNoTTY) {
		t.Error("expected built-in styles to be recognized")
	}
	if IsBuiltinStyle("/home/me/theme.json") {
		t.Error("paths are not built-in styles")
	}
	for _, s := range AvailableStyles() {
		if s.Description == "" {
			t.Errorf("style %s has empty description", s.Name)
		}
	}
}
