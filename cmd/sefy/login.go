package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sefyapp/sefy/internal/api"
)

type loginOptions struct {
	dni    string
	nombre string
}

func newLoginCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the SEFY backend and store the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dni, "dni", "", "Document number")
	cmd.Flags().StringVar(&opts.nombre, "nombre", "", "First name, as registered")
	cmd.MarkFlagRequired("dni")
	cmd.MarkFlagRequired("nombre")

	return cmd
}

func runLogin(cmd *cobra.Command, rootFlags *rootFlags, opts *loginOptions) error {
	appCtx, err := newHeadlessContext(rootFlags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	token, err := appCtx.API.Login(ctx, opts.dni, opts.nombre)
	if err != nil {
		return fmt.Errorf("login failed: %s", api.Classify(err).UserMessage())
	}

	appCtx.Session.Login(ctx, token)

	snap := appCtx.Session.Snapshot()
	if snap.User != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Sesión iniciada como %s.\n", snap.User.FullName())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Sesión iniciada. No se pudo cargar el perfil; se reintentará al abrir la aplicación.")
	}
	return nil
}
