package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sefyapp/sefy/internal/api"
	"github.com/sefyapp/sefy/internal/model"
	"github.com/sefyapp/sefy/internal/store"
)

type obrasOptions struct {
	jsonOutput bool
	all        bool
}

func newObrasCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &obrasOptions{}

	cmd := &cobra.Command{
		Use:   "obras",
		Short: "List the obras assigned to the logged-in usuario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObras(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&opts.all, "all", false, "List every obra (administrators only)")

	return cmd
}

func runObras(cmd *cobra.Command, rootFlags *rootFlags, opts *obrasOptions) error {
	appCtx, err := newHeadlessContext(rootFlags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if _, err := appCtx.Store.Get(store.KeyToken); err != nil {
		return fmt.Errorf("no hay sesión activa; ejecutá 'sefy login' primero")
	}

	var obras []model.Obra
	if opts.all {
		obras, err = appCtx.API.ListObras(cmd.Context())
	} else {
		obras, err = appCtx.API.MyObras(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("no se pudieron cargar las obras: %s", api.Classify(err).UserMessage())
	}

	sort.Slice(obras, func(i, j int) bool { return obras[i].ID < obras[j].ID })

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(obras)
	}

	if len(obras) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No hay obras asignadas.")
		return nil
	}

	return renderObrasTable(cmd, obras)
}

func renderObrasTable(cmd *cobra.Command, obras []model.Obra) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNOMBRE\tDIRECCIÓN\tESTADO\tINICIO\tFIN")

	useUnicode := supportsUnicode(cmd.OutOrStdout())
	for _, o := range obras {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%s\n",
			o.ID,
			o.Nombre,
			o.Direccion,
			formatEstado(o.Estado, useUnicode),
			valueOrFallback(o.FechaInicio, "-"),
			valueOrFallback(o.FechaFin, "-"),
		)
	}

	return writer.Flush()
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func formatEstado(estado model.ObraEstado, useUnicode bool) string {
	if useUnicode {
		return fmt.Sprintf("%s %s", estado.Icon(), estado)
	}
	return string(estado)
}

func valueOrFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
