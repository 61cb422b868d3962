package main

import (
	"github.com/spf13/cobra"

	"github.com/sefyapp/sefy/internal/tui"
)

type rootFlags struct {
	configPath string
	apiURL     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "sefy",
		Short:         "SEFY gestiona obras, asignaciones y asistencias desde la terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation launches the interactive application.
			app, err := newInteractiveContext(flags)
			if err != nil {
				return err
			}
			defer app.Log.Close()
			return tui.Run(app)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file path (default ~/.sefy/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Backend base URL override")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	cmd.AddCommand(newLoginCmd(flags))
	cmd.AddCommand(newLogoutCmd(flags))
	cmd.AddCommand(newWhoamiCmd(flags))
	cmd.AddCommand(newObrasCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
