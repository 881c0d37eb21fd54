// Package filter prunes an outline to nodes matching a query while keeping the path
// from every match to its root.
package filter

import (
	"strings"

	"outline-cli/internal/model"

	"golang.org/x/text/cases"
)

// Haystack is the text a node is matched against: label, path, idShort, semanticId,
// searchableText, meta template key and meta category label, space-joined.
func Haystack(n model.Node) string {
	parts := []string{
		n.Label,
		n.Path,
		n.IDShort,
		n.SemanticID,
		n.SearchableText,
		n.Meta.String(model.MetaTemplateKey),
		n.Meta.String(model.MetaCategoryLabel),
	}
	return strings.Join(parts, " ")
}

// Matches reports whether the node itself (ignoring descendants) contains the query.
func Matches(n model.Node, query string) bool {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(fold(Haystack(n)), q)
}

// Apply returns the nodes that match query or have a matching descendant. Kept interior
// nodes carry only their kept children. A blank query returns nodes as-is.
//
// The input is never mutated.
func Apply(nodes []model.Node, query string) []model.Node {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return nodes
	}
	return apply(nodes, q)
}

func apply(nodes []model.Node, q string) []model.Node {
	var out []model.Node
	for _, n := range nodes {
		kids := apply(n.Children, q)
		if len(kids) == 0 && !strings.Contains(fold(Haystack(n)), q) {
			continue
		}
		cp := n
		cp.Children = kids
		out = append(out, cp)
	}
	return out
}

// Count returns the total number of nodes in the tree.
func Count(nodes []model.Node) int {
	n := 0
	model.Walk(nodes, func(model.Node, int, string) bool {
		n++
		return true
	})
	return n
}

func fold(s string) string {
	return cases.Fold().String(s)
}
