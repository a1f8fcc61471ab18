package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/diogo/readingchat/internal/dispatch"
	"github.com/diogo/readingchat/internal/models"
	"github.com/diogo/readingchat/internal/transcript"
)

type askOptions struct {
	raw      bool
	output   string
	parallel int
}

func (a *app) newAskCmd() *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask <question>...",
		Short: "Ask several questions concurrently",
		Long: `Ask several questions at once. Each question is its own request; answers
are printed as they arrive, so their order may differ from the arguments.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print only the answers, without decoration")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Save the transcript to a file (.json for JSON, otherwise Markdown)")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", 4, "Maximum requests in flight")

	return cmd
}

func (a *app) runAsk(ctx context.Context, questions []string, opts askOptions) error {
	if opts.parallel < 1 {
		return fmt.Errorf("--parallel must be at least 1")
	}

	client, err := a.deps.NewClient(a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	tr := transcript.New()
	d := dispatch.New(client, tr, dispatch.WithLogger(a.logger))
	p := a.newPrinter(opts.raw)

	// Questions are echoed in argument order before anything is sent
	tr.OnAppend(func(e models.Entry) {
		if e.Role.IsUser() {
			p.print(e)
		}
	})

	var texts []string
	for _, q := range questions {
		if text, ok := d.Begin(dispatch.NewTextInput(q)); ok {
			texts = append(texts, text)
		}
	}
	if len(texts) == 0 {
		return nil
	}

	a.logger.Debug().Int("questions", len(texts)).Int("parallel", opts.parallel).Msg("asking")

	var (
		mu     sync.Mutex
		failed int
	)

	// Replies never fail the group; each one is rendered, errors included.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.parallel)
	for _, text := range texts {
		g.Go(func() error {
			reply := d.Exchange(gctx, text)

			mu.Lock()
			defer mu.Unlock()
			p.printReply(text, d.Complete(reply))
			if reply.Err != nil {
				failed++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.output != "" {
		if err := a.saveTranscript(tr, opts.output, opts.raw); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d questions failed", failed, len(texts))
	}
	return nil
}
