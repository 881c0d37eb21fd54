package cli

import (
	"os"
	"path/filepath"
	"strings"

	"outline-cli/internal/config"
	"outline-cli/internal/model"
	"outline-cli/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type viewFlags struct {
	contextID       string
	selectedID      string
	showDetail      bool
	watch           bool
	printActivation bool
}

func newViewCmd(app *App) *cobra.Command {
	var f viewFlags
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Browse a document outline in the terminal",
		Long: strings.TrimSpace(`
Opens the interactive outline for a viewer, editor or form document.

The source file is watched; saving it rebuilds the outline and keeps the expand state.
Pane width, collapse state and the last position are remembered per context
(default: the absolute file path).
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, app, args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.contextID, "context", "", "Context id for persisted pane state (default: absolute file path)")
	cmd.Flags().StringVar(&f.selectedID, "selected", "", "Node id to reveal and focus on start")
	cmd.Flags().BoolVar(&f.showDetail, "detail", true, "Show the detail pane")
	cmd.Flags().BoolVar(&f.watch, "watch", true, "Rebuild when the source file changes")
	cmd.Flags().BoolVar(&f.printActivation, "print-activation", false, "Print the last activated node on exit")
	return cmd
}

func runView(cmd *cobra.Command, app *App, path string, f viewFlags) error {
	// Load once up front so a bad file fails before the alternate screen opens.
	if _, _, err := loadNodes(app, path); err != nil {
		return writeErr(cmd, err)
	}

	logger, err := app.logger(filepath.Join(config.Dir(), "outline.log"))
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	st, closeStore, err := openStore(ctx, app)
	if err != nil {
		// Persistence is optional; the session runs on an in-memory store.
		logger.Warn("open pane store", zap.Error(err))
		st, closeStore, _ = openStore(ctx, &App{cfg: memoryConfig(app)})
	}
	defer func() { _ = closeStore() }()

	contextID := f.contextID
	if contextID == "" {
		contextID = contextFor(path)
	}
	watchPath := ""
	if f.watch {
		watchPath = path
	}

	cfg := app.settings()
	res, err := tui.Run(ctx, tui.Options{
		Title:     path,
		ContextID: contextID,
		Load: func() ([]model.Node, error) {
			nodes, _, err := loadNodes(app, path)
			return nodes, err
		},
		WatchPath:  watchPath,
		Nav:        app.navOptions(),
		Glyphs:     cfg.UI.Glyphs,
		PaneWidth:  cfg.UI.PaneWidth,
		SelectedID: f.selectedID,
		ShowDetail: f.showDetail,
		Store:      st,
		Logger:     logger,
	})
	if err != nil {
		return writeErr(cmd, err)
	}
	if !f.printActivation || res.Activated == nil {
		return nil
	}
	return writeOut(cmd, app, map[string]any{
		"data": activationOut(*res.Activated),
		"meta": map[string]any{"activeId": res.ActiveID},
	})
}

func activationOut(n model.Node) map[string]any {
	out := map[string]any{
		"id":    n.ID,
		"kind":  n.Kind,
		"label": n.Label,
		"path":  n.Path,
	}
	if n.Target != nil {
		out["target"] = n.Target
	}
	return out
}

func memoryConfig(app *App) *config.Config {
	c := *app.settings()
	c.Store.Path = config.StoreMemory
	return &c
}

// contextFor maps a file argument to its persisted-state context id. Arguments that are
// not existing files are used verbatim.
func contextFor(arg string) string {
	if _, err := os.Stat(arg); err != nil {
		return arg
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return arg
	}
	return abs
}
