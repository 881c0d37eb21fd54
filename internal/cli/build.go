package cli

import (
	"outline-cli/internal/filter"
	"outline-cli/internal/model"

	"github.com/spf13/cobra"
)

func newBuildCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <file>",
		Short: "Build the outline tree of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, snap, err := loadNodes(app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if nodes == nil {
				nodes = []model.Node{}
			}
			return writeOut(cmd, app, map[string]any{
				"data": nodes,
				"meta": map[string]any{
					"kind":  snap.Kind,
					"roots": len(nodes),
					"nodes": filter.Count(nodes),
				},
			})
		},
	}
	return cmd
}

func newFilterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter <file> <query>",
		Short: "Build the outline and keep matching nodes with their ancestors",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, snap, err := loadNodes(app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			kept := filter.Apply(nodes, args[1])
			if kept == nil {
				kept = []model.Node{}
			}

			var hints []string
			if len(kept) == 0 {
				hints = append(hints, "no matches; the query is matched case-insensitively against label, path, idShort, semanticId and searchable text")
			}
			return writeOut(cmd, app, map[string]any{
				"data": kept,
				"meta": map[string]any{
					"kind":    snap.Kind,
					"query":   args[1],
					"matches": filter.Count(kept),
					"total":   filter.Count(nodes),
				},
				"_hints": hints,
			})
		},
	}
	return cmd
}
