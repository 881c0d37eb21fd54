package cli

import (
	"fmt"
	"io"
	"strings"

	"outline-cli/internal/config"
	"outline-cli/internal/filter"
	"outline-cli/internal/model"
	"outline-cli/internal/nav"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	treeCompleteColor = color.New(color.FgGreen)
	treePartialColor  = color.New(color.FgYellow)
	treeEmptyColor    = color.New(color.Faint)
	treeErrorColor    = color.New(color.FgRed, color.Bold)
	treeWarningColor  = color.New(color.FgYellow, color.Bold)
	treeMutedColor    = color.New(color.Faint)
)

func newTreeCmd(app *App) *cobra.Command {
	var (
		all   bool
		depth int
		query string
	)
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the outline as an indented, colored tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, _, err := loadNodes(app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			opts := app.navOptions()
			if cmd.Flags().Changed("depth") {
				opts.DefaultExpandDepth = depth
			}
			if strings.TrimSpace(query) != "" {
				nodes = filter.Apply(nodes, query)
				all = true
			}
			n := nav.New(opts)
			n.SetNodes(nodes)
			if all {
				n.ExpandAll()
			}
			ascii := app.settings().UI.Glyphs == config.GlyphsASCII
			return writeTree(cmd.OutOrStdout(), n.Rows(), ascii)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Expand every node")
	cmd.Flags().IntVar(&depth, "depth", 0, "Open subtrees up to this depth (default: outline.defaultExpandDepth)")
	cmd.Flags().StringVar(&query, "query", "", "Keep only matching nodes and their ancestors")
	return cmd
}

func writeTree(w io.Writer, rows []nav.Row, ascii bool) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, treeLine(r, ascii)); err != nil {
			return err
		}
	}
	return nil
}

func treeLine(r nav.Row, ascii bool) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", r.Depth))
	b.WriteString(treeTwisty(r, ascii))
	b.WriteString(" ")
	b.WriteString(treeLabel(r.Node))
	if r.TotalChildren > 0 {
		b.WriteString(treeMutedColor.Sprintf(" %d/%d", r.DoneChildren, r.TotalChildren))
	}
	if st := r.Node.Status; st != nil {
		if st.Errors > 0 {
			b.WriteString(treeErrorColor.Sprintf(" !%d", st.Errors))
		}
		if st.Warnings > 0 {
			b.WriteString(treeWarningColor.Sprintf(" ?%d", st.Warnings))
		}
		if st.Risk != "" && st.Risk != model.RiskLow {
			b.WriteString(treeMutedColor.Sprintf(" [%s]", st.Risk))
		}
	}
	return b.String()
}

func treeTwisty(r nav.Row, ascii bool) string {
	switch {
	case !r.HasChildren && ascii:
		return "-"
	case !r.HasChildren:
		return "·"
	case r.Expanded && ascii:
		return "v"
	case r.Expanded:
		return "▾"
	case ascii:
		return ">"
	default:
		return "▸"
	}
}

func treeLabel(n model.Node) string {
	switch n.Completion() {
	case model.CompletionComplete:
		return treeCompleteColor.Sprint(n.Label)
	case model.CompletionPartial:
		return treePartialColor.Sprint(n.Label)
	case model.CompletionEmpty:
		return treeEmptyColor.Sprint(n.Label)
	default:
		return n.Label
	}
}
