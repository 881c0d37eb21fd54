// Package nav turns an outline tree into a flattened, keyboard-navigable row list and
// keeps expand/active state keyed by node id across full tree rebuilds.
//
// The navigator is single-owner state: it is mutated only by SetNodes, SetSelected,
// Toggle, HandleKey and viewport calls, all on the caller's goroutine.
package nav

import "outline-cli/internal/model"

const (
	DefaultVirtualizeThreshold = 200
	DefaultOverscan            = 6
	DefaultExpandDepth         = 1
)

type Options struct {
	// VirtualizeThreshold is the row count above which only a window of rows is
	// materialized. Zero means DefaultVirtualizeThreshold.
	VirtualizeThreshold int
	// Overscan rows are materialized above and below the viewport. Negative means zero.
	Overscan int
	// DefaultExpandDepth is the maximum depth at which newly appearing subtrees open.
	// Negative disables default expansion.
	DefaultExpandDepth int
}

// DefaultOptions returns the options used when the caller has no configuration.
func DefaultOptions() Options {
	return Options{
		VirtualizeThreshold: DefaultVirtualizeThreshold,
		Overscan:            DefaultOverscan,
		DefaultExpandDepth:  DefaultExpandDepth,
	}
}

func (o Options) normalized() Options {
	if o.VirtualizeThreshold <= 0 {
		o.VirtualizeThreshold = DefaultVirtualizeThreshold
	}
	if o.Overscan < 0 {
		o.Overscan = 0
	}
	return o
}

type Navigator struct {
	opts Options

	nodes []model.Node
	idx   Index

	expanded ExpandSet
	known    ExpandSet

	selectedID string
	activeID   string

	rows     []Row
	rowIndex map[string]int

	offset int
	height int
}

func New(opts Options) *Navigator {
	return &Navigator{opts: opts.normalized(), height: 1}
}

func (n *Navigator) Options() Options { return n.opts }

// SetNodes installs a freshly built tree and reconciles expand and active state.
func (n *Navigator) SetNodes(nodes []model.Node) {
	n.nodes = nodes
	n.idx = BuildIndex(nodes)
	n.expanded, n.known = Reconcile(n.expanded, n.known, n.idx, n.opts.DefaultExpandDepth)
	if n.selectedID != "" {
		n.expanded = RevealAncestors(n.expanded, n.idx, n.selectedID)
	}
	n.reflow()
	n.activeID = ResolveActive(n.rows, n.selectedID, n.activeID)
	n.scrollIntoView()
}

// SetSelected applies an externally chosen node: its ancestors are expanded and it
// becomes active when present. Unknown ids fall back silently to the usual active rules.
func (n *Navigator) SetSelected(id string) {
	n.selectedID = id
	if id != "" {
		n.expanded = RevealAncestors(n.expanded, n.idx, id)
	}
	n.reflow()
	n.activeID = ResolveActive(n.rows, n.selectedID, n.activeID)
	n.scrollIntoView()
}

func (n *Navigator) SelectedID() string { return n.selectedID }

// Reveal expands the ancestors of id and makes it active when present. Unlike
// SetSelected it leaves no lasting selection behind, so later rebuilds keep the user's
// position.
func (n *Navigator) Reveal(id string) bool {
	if !n.idx.Has(id) {
		return false
	}
	n.setExpanded(RevealAncestors(n.expanded, n.idx, id))
	return n.SetActive(id)
}

// Restore seeds state saved from an earlier session. Call it before the first SetNodes;
// the next rebuild reconciles it like any other previous snapshot.
func (n *Navigator) Restore(expanded, known ExpandSet, activeID string) {
	n.expanded = expanded
	n.known = known
	n.activeID = activeID
}

func (n *Navigator) Nodes() []model.Node { return n.nodes }
func (n *Navigator) Index() Index        { return n.idx }
func (n *Navigator) Rows() []Row         { return n.rows }
func (n *Navigator) Len() int            { return len(n.rows) }
func (n *Navigator) Empty() bool         { return len(n.rows) == 0 }

// Expanded returns the current expand set. The set is immutable; callers may keep it.
func (n *Navigator) Expanded() ExpandSet { return n.expanded }

// Known returns the expandable ids of the latest snapshot.
func (n *Navigator) Known() ExpandSet { return n.known }

func (n *Navigator) IsExpanded(id string) bool { return n.expanded.Has(id) }

func (n *Navigator) ActiveID() string { return n.activeID }

// ActiveIndex returns the active row index, or -1 when there are no rows.
func (n *Navigator) ActiveIndex() int {
	if i, ok := n.rowIndex[n.activeID]; ok {
		return i
	}
	return -1
}

func (n *Navigator) Active() (Row, bool) {
	i := n.ActiveIndex()
	if i < 0 {
		return Row{}, false
	}
	return n.rows[i], true
}

// RowIndex returns the row position of id when visible.
func (n *Navigator) RowIndex(id string) (int, bool) {
	i, ok := n.rowIndex[id]
	return i, ok
}

// SetActive moves the active row to id when it is visible (pointer click on a row).
func (n *Navigator) SetActive(id string) bool {
	if _, ok := n.rowIndex[id]; !ok {
		return false
	}
	n.activeID = id
	n.scrollIntoView()
	return true
}

// Toggle flips the expand state of id (pointer click on a disclosure control).
func (n *Navigator) Toggle(id string) bool {
	if !n.idx.Expandable().Has(id) {
		return false
	}
	n.setExpanded(n.expanded.Toggle(id))
	return true
}

func (n *Navigator) Expand(id string) bool {
	if !n.idx.Expandable().Has(id) || n.expanded.Has(id) {
		return false
	}
	n.setExpanded(n.expanded.With(id))
	return true
}

func (n *Navigator) Collapse(id string) bool {
	if !n.expanded.Has(id) {
		return false
	}
	n.setExpanded(n.expanded.Without(id))
	return true
}

// ExpandAll opens every expandable node.
func (n *Navigator) ExpandAll() {
	n.setExpanded(n.idx.Expandable())
}

// CollapseAll closes every node.
func (n *Navigator) CollapseAll() {
	n.setExpanded(ExpandSet{})
}

// setExpanded applies a user-driven expand change. The active row stays put when still
// visible, otherwise it moves to its nearest visible ancestor.
func (n *Navigator) setExpanded(next ExpandSet) {
	prevActive := n.activeID
	n.expanded = next
	n.reflow()
	if _, ok := n.rowIndex[prevActive]; !ok && prevActive != "" {
		for _, a := range n.idx.Ancestors(prevActive) {
			if _, ok := n.rowIndex[a]; ok {
				prevActive = a
				break
			}
		}
	}
	if _, ok := n.rowIndex[prevActive]; ok {
		n.activeID = prevActive
	} else if len(n.rows) > 0 {
		n.activeID = n.rows[0].ID()
	} else {
		n.activeID = ""
	}
	n.scrollIntoView()
}

func (n *Navigator) reflow() {
	n.rows = Flatten(n.nodes, n.expanded)
	n.rowIndex = make(map[string]int, len(n.rows))
	for i, r := range n.rows {
		n.rowIndex[r.ID()] = i
	}
	n.clampOffset()
}
