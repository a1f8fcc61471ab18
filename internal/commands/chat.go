package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/readingchat/internal/dispatch"
	"github.com/diogo/readingchat/internal/render"
	"github.com/diogo/readingchat/internal/transcript"
	"github.com/diogo/readingchat/internal/tui"
)

func (a *app) newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat with the reading assistant.

Enter or Ctrl+S sends, Alt+Enter inserts a newline. Type /copy to copy the
last answer, /export <path> to save the transcript, and /quit or Esc to
leave. The transcript is not kept after the session ends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.deps.NewClient(a.cfg, a.logger)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			d := dispatch.New(client, transcript.New(), dispatch.WithLogger(a.logger))

			a.logger.Info().Str("endpoint", client.Endpoint()).Msg("starting chat")
			return a.deps.RunChat(cmd.Context(), d, tui.Options{
				Endpoint:  client.Endpoint(),
				Scope:     a.cfg.CourseID + " / " + a.cfg.TenantID,
				Markdown:  render.OptionsFromConfig(a.cfg.Markdown),
				Clipboard: a.deps.Clipboard,
			})
		},
	}
}
