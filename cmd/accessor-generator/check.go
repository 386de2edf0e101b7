package main

import (
	"github.com/spf13/cobra"

	"accessor-generator/internal/driver"
	"accessor-generator/internal/logger"
)

func (a *app) checkCommand() *cobra.Command {
	var sel selection

	cmd := &cobra.Command{
		Use:   "check [packages...]",
		Short: "Fail if any generated file is missing or out of date",
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

			stale, err := res.Check()
			if err != nil {
				return err
			}

			for _, r := range stale {
				logger.FromContext(cmd.Context()).Warn("generated file needs regeneration", "path", r.Path, "status", r.Status.String())
				a.printf("%s: %s\n%s", r.Path, r.Status, r.Diff)
			}

			if len(stale) > 0 {
				return errStale
			}

			return nil
		},
	}

	sel.register(cmd)

	return cmd
}
