package cli

import (
	"strings"

	"outline-cli/internal/filter"
	"outline-cli/internal/model"
	"outline-cli/internal/nav"

	"github.com/spf13/cobra"
)

type rowOut struct {
	ID          string           `json:"id"`
	Kind        model.Kind       `json:"kind"`
	Label       string           `json:"label"`
	Depth       int              `json:"depth"`
	ParentID    string           `json:"parentId,omitempty"`
	HasChildren bool             `json:"hasChildren"`
	Expanded    bool             `json:"expanded"`
	Completion  model.Completion `json:"completion,omitempty"`
	Done        int              `json:"done,omitempty"`
	Total       int              `json:"total,omitempty"`
	Active      bool             `json:"active,omitempty"`
}

func newRowsCmd(app *App) *cobra.Command {
	var (
		selected string
		query    string
		all      bool
		offset   int
		height   int
	)
	cmd := &cobra.Command{
		Use:   "rows <file>",
		Short: "List the visible rows of the flattened outline",
		Long: strings.TrimSpace(`
Lists the rows a host would show: depth-first, children only under expanded nodes, with
default expansion applied. --selected reveals a node by expanding its ancestors.

--height limits the output to the materialized window around a viewport of that many
rows, scrolled to the active row or to --offset when given.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, snap, err := loadNodes(app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			opts := app.navOptions()
			if strings.TrimSpace(query) != "" {
				nodes = filter.Apply(nodes, query)
			}

			n := nav.New(opts)
			if height > 0 {
				n.SetViewport(height)
			}
			n.SetNodes(nodes)
			if all || strings.TrimSpace(query) != "" {
				n.ExpandAll()
			}
			if selected != "" {
				if !n.Index().Has(selected) {
					return writeErr(cmd, errNotFound("node", selected))
				}
				n.SetSelected(selected)
			}
			if offset > 0 {
				n.ScrollTo(offset)
			}

			win := nav.Window{Start: 0, End: n.Len()}
			if height > 0 {
				win = n.Window()
			}
			rows := n.Rows()
			out := make([]rowOut, 0, win.Len())
			for _, r := range rows[win.Start:win.End] {
				out = append(out, rowOut{
					ID:          r.ID(),
					Kind:        r.Node.Kind,
					Label:       r.Node.Label,
					Depth:       r.Depth,
					ParentID:    r.ParentID,
					HasChildren: r.HasChildren,
					Expanded:    r.Expanded,
					Completion:  r.Node.Completion(),
					Done:        r.DoneChildren,
					Total:       r.TotalChildren,
					Active:      r.ID() == n.ActiveID(),
				})
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{
					"kind":        snap.Kind,
					"activeId":    n.ActiveID(),
					"rows":        n.Len(),
					"start":       win.Start,
					"end":         win.End,
					"offset":      n.Offset(),
					"virtualized": n.Virtualized(),
				},
			})
		},
	}
	cmd.Flags().StringVar(&selected, "selected", "", "Node id to reveal and make active")
	cmd.Flags().StringVar(&query, "query", "", "Keep only matching nodes and their ancestors (fully expanded)")
	cmd.Flags().BoolVar(&all, "all", false, "Expand every node")
	cmd.Flags().IntVar(&height, "height", 0, "Viewport height; limits output to the materialized window")
	cmd.Flags().IntVar(&offset, "offset", 0, "Scroll offset applied before windowing (requires --height)")
	return cmd
}
