package main

import (
	"github.com/spf13/cobra"

	"accessor-generator/internal/driver"
	"accessor-generator/internal/plan"
)

func (a *app) planCommand() *cobra.Command {
	var sel selection

	cmd := &cobra.Command{
		Use:   "plan [packages...]",
		Short: "Print the functions that would be generated, as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.settings(cmd.Context(), &sel)
			if err != nil {
				return err
			}

			res, err := driver.Run(cmd.Context(), driver.Options{Patterns: args, Dir: a.dir, Config: cfg})
			if err != nil {
				return err
			}

			logDiagnostics(cmd.Context(), res.Diagnostics())

			out, err := plan.ExportYAML(res.Plans()...)
			if err != nil {
				return err
			}

			a.printf("%s", out)

			return nil
		},
	}

	sel.register(cmd)

	return cmd
}
