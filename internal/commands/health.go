package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.deps.NewClient(a.cfg, a.logger)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			status, err := client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			if !status.OK {
				return fmt.Errorf("backend at %s is not healthy", client.Endpoint())
			}

			fmt.Fprintln(a.deps.Stdout, successLine(fmt.Sprintf("Backend at %s is healthy", client.Endpoint())))
			return nil
		},
	}
}
