package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx, err := newHeadlessContext(rootFlags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			appCtx.Session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada.")
			return nil
		},
	}
}
