package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"outline-cli/internal/config"
	"outline-cli/internal/format"
	"outline-cli/internal/logging"
	"outline-cli/internal/model"
	"outline-cli/internal/nav"
	"outline-cli/internal/source"
	"outline-cli/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	ConfigPath string
	Kind       string
	PrettyJSON bool
	Format     string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "outline [file]",
		Short:        "Structure outline for viewer, editor and form documents",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Browse a document outline (shortcut for: outline view <file>)
  outline passport.yaml

  # Scriptable commands
  outline build passport.yaml --pretty
  outline filter passport.yaml co2
  outline rows passport.yaml --selected field:carbon/co2#0

  # Persisted pane state
  outline pane get passport.yaml
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// A bare file argument opens the TUI.
			if len(args) == 1 {
				return runView(cmd, app, args[0], viewFlags{showDetail: true, watch: true})
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(app.ConfigPath)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config file (default: $OUTLINE_CONFIG or ~/.outline/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Kind, "kind", envOr("OUTLINE_KIND", ""), "Source kind (viewer|editor|selfeditor; default: from the document)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("OUTLINE_FORMAT", "json"), "Output format (json|edn|yaml)")

	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newBuildCmd(app))
	cmd.AddCommand(newFilterCmd(app))
	cmd.AddCommand(newTreeCmd(app))
	cmd.AddCommand(newRowsCmd(app))
	cmd.AddCommand(newPaneCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) settings() *config.Config {
	if app.cfg == nil {
		app.cfg = config.NewDefaultConfig()
	}
	return app.cfg
}

func (app *App) navOptions() nav.Options {
	c := app.settings().Outline
	return nav.Options{
		VirtualizeThreshold: c.VirtualizeThreshold,
		Overscan:            c.Overscan,
		DefaultExpandDepth:  c.DefaultExpandDepth,
	}
}

// logger writes to the configured log file, else to fallback (stderr when empty).
func (app *App) logger(fallback string) (*zap.Logger, error) {
	c := app.settings().Log
	file := c.File
	if file == "" {
		file = fallback
	}
	return logging.New(c.Level, file)
}

func loadSnapshot(app *App, path string) (source.Snapshot, error) {
	kind, err := source.ParseKind(app.Kind)
	if err != nil {
		return source.Snapshot{}, err
	}
	return source.Load(path, kind)
}

func loadNodes(app *App, path string) ([]model.Node, source.Snapshot, error) {
	snap, err := loadSnapshot(app, path)
	if err != nil {
		return nil, snap, err
	}
	return snap.Nodes(), snap, nil
}

// openStore opens the configured pane store. The returned close func is never nil.
func openStore(ctx context.Context, app *App) (store.PaneStore, func() error, error) {
	path := strings.TrimSpace(app.settings().Store.Path)
	if path == "" || path == config.StoreMemory {
		return store.NewMemoryPaneStore(), func() error { return nil }, nil
	}
	s, err := store.OpenSQLite(ctx, path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return s, s.Close, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
