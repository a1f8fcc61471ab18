package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/readingchat/internal/config"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Open configuration menu",
		Long: `Interactive menu to configure readingchat settings.

The subcommands print the effective configuration, the config file path,
or write a default config file.`,
		Args: cobra.NoArgs,
		// Config commands must work with a broken or missing file
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, false)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.deps.RunSettings(a.cfg, a.cfgPath)
		},
	}

	cmd.AddCommand(a.newConfigShowCmd(), a.newConfigPathCmd(), a.newConfigInitCmd())
	return cmd
}

func (a *app) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after applying the config file, environment and flags.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(a.cfg)
			if err != nil {
				return err
			}
			_, err = a.deps.Stdout.Write(data)
			return err
		},
	}
}

func (a *app) newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.deps.Stdout, a.cfgPath)
			return nil
		},
	}
}

func (a *app) newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.cfgPath); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", a.cfgPath)
			}

			if err := config.SaveConfigTo(a.cfgPath, config.DefaultConfig()); err != nil {
				return err
			}

			a.logger.Info().Str("config", a.cfgPath).Msg("wrote default config")
			fmt.Fprintln(a.deps.Stdout, successLine(fmt.Sprintf("Wrote default config to %s", a.cfgPath)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
