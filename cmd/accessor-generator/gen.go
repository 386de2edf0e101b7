package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"accessor-generator/internal/driver"
	"accessor-generator/internal/logger"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (a *app) genCommand() *cobra.Command {
	var (
		sel    selection
		dryRun bool
		dump   bool
	)

	cmd := &cobra.Command{
		Use:   "gen [packages...]",
		Short: "Write accessors_gen.go for every package with annotated structs",
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

			if dump {
				dumpConfig.Fdump(a.stderr, res.Plans())
			}

			if dryRun {
				for _, f := range res.Files() {
					a.printf("// %s\n%s", f.Path(), f.Content)
				}

				return nil
			}

			report, err := res.Write()
			if err != nil {
				return err
			}

			for _, path := range report.Written {
				a.printf("Generated: %s\n", path)
			}

			for _, path := range report.Removed {
				a.printf("Removed: %s\n", path)
			}

			logger.FromContext(cmd.Context()).Debug("generation finished",
				"packages", len(res.Packages), "written", len(report.Written), "removed", len(report.Removed))

			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the generated files instead of writing them")
	cmd.Flags().BoolVar(&dump, "dump", false, "print a dump of the plan to stderr")

	return cmd
}
