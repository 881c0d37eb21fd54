package cli

import (
	"context"
	"errors"
	"sort"
	"strings"

	"outline-cli/internal/store"

	"github.com/spf13/cobra"
)

func newPaneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pane",
		Short: "Inspect and edit persisted pane state",
		Long: strings.TrimSpace(`
Pane state is stored per context id in the configured store (store.path).
A context argument that names an existing file is resolved to its absolute path,
which is the id the TUI uses by default.
`),
	}
	cmd.AddCommand(newPaneGetCmd(app))
	cmd.AddCommand(newPaneSetCmd(app))
	cmd.AddCommand(newPaneListCmd(app))
	return cmd
}

func newPaneGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <context>",
		Short: "Show pane and view state for a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, closeStore, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = closeStore() }()

			contextID := contextFor(args[0])
			out, err := paneOut(ctx, st, contextID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newPaneSetCmd(app *App) *cobra.Command {
	var (
		width     int
		collapsed bool
	)
	cmd := &cobra.Command{
		Use:   "set <context>",
		Short: "Set pane width and/or collapsed state for a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			widthSet := cmd.Flags().Changed("width")
			collapsedSet := cmd.Flags().Changed("collapsed")
			if !widthSet && !collapsedSet {
				return writeErr(cmd, errors.New("nothing to set (use --width and/or --collapsed)"))
			}
			if widthSet && (width < 20 || width > 200) {
				return writeErr(cmd, errInvalidFlag("width", cmd.Flags().Lookup("width").Value.String(), "20-200"))
			}

			ctx := cmd.Context()
			st, closeStore, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = closeStore() }()

			contextID := contextFor(args[0])
			cur, err := store.LoadPaneState(ctx, st, contextID)
			if err != nil {
				return writeErr(cmd, err)
			}
			if widthSet {
				cur.Width = width
			}
			if collapsedSet {
				cur.Collapsed = collapsed
			}
			if err := store.SavePaneState(ctx, st, contextID, cur); err != nil {
				return writeErr(cmd, err)
			}
			out, err := paneOut(ctx, st, contextID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "Outline pane width in columns (20-200)")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "Hide the outline pane")
	return cmd
}

type keyLister interface {
	Keys(ctx context.Context) ([]string, error)
}

func newPaneListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List context ids with persisted state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, closeStore, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = closeStore() }()

			kl, ok := st.(keyLister)
			if !ok {
				return writeOut(cmd, app, map[string]any{"data": []string{}})
			}
			keys, err := kl.Keys(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": contextIDs(keys)})
		},
	}
}

func paneOut(ctx context.Context, st store.PaneStore, contextID string) (map[string]any, error) {
	pane, err := store.LoadPaneState(ctx, st, contextID)
	if err != nil {
		return nil, err
	}
	view, err := store.LoadViewState(ctx, st, contextID)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"context": contextID,
		"pane":    pane,
		"view":    view,
	}, nil
}

// contextIDs extracts the distinct context ids from store keys.
func contextIDs(keys []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, k := range keys {
		var id string
		switch {
		case strings.HasPrefix(k, "pane:"):
			id = strings.TrimPrefix(k, "pane:")
			if i := strings.LastIndex(id, ":"); i >= 0 {
				id = id[:i]
			}
		case strings.HasPrefix(k, "view:"):
			id = strings.TrimPrefix(k, "view:")
		default:
			continue
		}
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
