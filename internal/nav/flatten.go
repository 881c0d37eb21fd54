package nav

import (
	"outline-cli/internal/model"
	"outline-cli/internal/statusutil"
)

// Row is one visible line of the flattened outline.
type Row struct {
	Node        model.Node
	Depth       int
	HasChildren bool
	Expanded    bool
	ParentID    string

	// Progress over direct children that carry a completion.
	DoneChildren  int
	TotalChildren int
}

func (r Row) ID() string { return r.Node.ID }

// Flatten walks nodes depth-first pre-order. Children are emitted only under expanded ids.
func Flatten(nodes []model.Node, expanded ExpandSet) []Row {
	var out []Row
	var walk func(n model.Node, depth int, parentID string)
	walk = func(n model.Node, depth int, parentID string) {
		open := n.HasChildren() && expanded.Has(n.ID)
		done, total := statusutil.ChildProgress(n.Children)
		out = append(out, Row{
			Node:          n,
			Depth:         depth,
			HasChildren:   n.HasChildren(),
			Expanded:      open,
			ParentID:      parentID,
			DoneChildren:  done,
			TotalChildren: total,
		})
		if !open {
			return
		}
		for _, ch := range n.Children {
			walk(ch, depth+1, n.ID)
		}
	}
	for _, n := range nodes {
		walk(n, 0, "")
	}
	return out
}

// Index is the reverse lookup data derived from one tree snapshot.
type Index struct {
	parentOf   map[string]string
	depth      map[string]int
	expandable ExpandSet
}

func BuildIndex(nodes []model.Node) Index {
	idx := Index{
		parentOf: map[string]string{},
		depth:    map[string]int{},
	}
	var expandable []string
	model.Walk(nodes, func(n model.Node, depth int, parentID string) bool {
		idx.parentOf[n.ID] = parentID
		idx.depth[n.ID] = depth
		if n.HasChildren() {
			expandable = append(expandable, n.ID)
		}
		return true
	})
	idx.expandable = NewExpandSet(expandable...)
	return idx
}

// Parent returns the parent id ("" for roots) and whether id is known.
func (idx Index) Parent(id string) (string, bool) {
	p, ok := idx.parentOf[id]
	return p, ok
}

func (idx Index) Depth(id string) (int, bool) {
	d, ok := idx.depth[id]
	return d, ok
}

func (idx Index) Has(id string) bool {
	_, ok := idx.parentOf[id]
	return ok
}

// Expandable is the set of ids with at least one child.
func (idx Index) Expandable() ExpandSet { return idx.expandable }

// Ancestors returns id's ancestors nearest first.
func (idx Index) Ancestors(id string) []string {
	var out []string
	seen := map[string]bool{id: true}
	cur, ok := idx.parentOf[id]
	for ok && cur != "" && !seen[cur] {
		seen[cur] = true
		out = append(out, cur)
		cur, ok = idx.parentOf[cur]
	}
	return out
}
