package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"accessor-generator/internal/config"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/logger"
)

// errStale is returned by check after the stale files were reported.
var errStale = errors.New("generated files are out of date")

// app holds the global flags and the writers commands print to. log is the
// root logger, kept for errors returned before or after a command runs;
// commands log through the one carried by their context.
type app struct {
	stdout io.Writer
	stderr io.Writer
	log    logger.Logger

	configPath string
	logLevel   string
	logJSON    bool
	dir        string
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		log:    logger.NewLogger(&logger.Config{Level: logger.InfoLevel, Output: stderr}),
	}
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "accessor-generator",
		Short:         "Generate accessor and mutator functions for annotated Go structs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logger.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}

			a.log = logger.NewLogger(&logger.Config{Level: level, Output: a.stderr, JSON: a.logJSON})
			cmd.SetContext(logger.ContextWithLogger(cmd.Context(), a.log.With("cmd", cmd.Name())))

			return nil
		},
	}

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "settings file (default "+config.DefaultPath+" if present)")
	flags.StringVar(&a.logLevel, "log-level", string(logger.InfoLevel), "log level: debug, info, warn or error")
	flags.BoolVar(&a.logJSON, "log-json", false, "log as JSON")
	flags.StringVarP(&a.dir, "dir", "C", "", "run as if started in this directory")

	cmd.AddCommand(a.genCommand())
	cmd.AddCommand(a.checkCommand())
	cmd.AddCommand(a.planCommand())

	return cmd
}

// selection holds the flags shared by all commands that run the pipeline.
type selection struct {
	types  []string
	output string
	tags   []string
}

func (s *selection) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&s.types, "type", "t", nil, "also select the named types (repeatable)")
	cmd.Flags().StringVarP(&s.output, "output", "o", "", "name of the generated file (default accessors_gen.go)")
	cmd.Flags().StringSliceVar(&s.tags, "tags", nil, "extra build tags used while loading")
}

// settings loads the settings file and layers the command line on top.
func (a *app) settings(ctx context.Context, s *selection) (*config.Config, error) {
	path := a.configPath
	if path == "" && a.dir != "" {
		path = filepath.Join(a.dir, config.DefaultPath)
	}

	cfg, err := config.Find(path, a.configPath != "")
	if err != nil {
		return nil, err
	}

	err = cfg.Merge(&config.Config{
		Output: s.output,
		Types:  s.types,
		Tags:   s.tags,
	})
	if err != nil {
		return nil, err
	}

	if cfg.Path() != "" {
		logger.FromContext(ctx).Debug("settings loaded", "path", cfg.Path())
	}

	return cfg, nil
}

// logDiagnostics reports the non-fatal notes of a run.
func logDiagnostics(ctx context.Context, d diagnostic.Diagnostics) {
	log := logger.FromContext(ctx)

	for _, w := range d.Warnings {
		log.Warn(w.String())
	}

	for _, i := range d.Infos {
		log.Debug(i.String())
	}
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.stdout, format, args...)
}
