package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sefyapp/sefy/internal/api"
	"github.com/sefyapp/sefy/internal/store"
)

type whoamiOptions struct {
	jsonOutput bool
}

func newWhoamiCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &whoamiOptions{}

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the logged-in usuario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runWhoami(cmd *cobra.Command, rootFlags *rootFlags, opts *whoamiOptions) error {
	appCtx, err := newHeadlessContext(rootFlags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if _, err := appCtx.Store.Get(store.KeyToken); err != nil {
		return fmt.Errorf("no hay sesión activa; ejecutá 'sefy login' primero")
	}

	usuario, err := appCtx.API.Me(cmd.Context())
	if err != nil {
		return fmt.Errorf("no se pudo cargar el perfil: %s", api.Classify(err).UserMessage())
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(usuario)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (DNI %s)\n", usuario.FullName(), usuario.DNI)
	if usuario.Email != "" {
		fmt.Fprintf(out, "email: %s\n", usuario.Email)
	}
	if usuario.Telefono != "" {
		fmt.Fprintf(out, "teléfono: %s\n", usuario.Telefono)
	}
	if usuario.EsAdmin {
		fmt.Fprintln(out, "rol: administrador")
	} else {
		fmt.Fprintln(out, "rol: usuario")
	}
	return nil
}
