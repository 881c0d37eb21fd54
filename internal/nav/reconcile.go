package nav

// Reconcile carries expand state across a tree rebuild.
//
// Previously expanded ids that are still expandable stay expanded. Ids that became
// expandable in this snapshot (absent from prevKnown) open by default when their depth
// is at most defaultDepth. Ids that were already known and are not in prevExpanded stay
// collapsed: the user closed them.
//
// The returned known set must be passed back as prevKnown on the next rebuild.
func Reconcile(prevExpanded, prevKnown ExpandSet, idx Index, defaultDepth int) (expanded, known ExpandSet) {
	known = idx.Expandable()
	keep := prevExpanded.Intersect(known)

	var fresh []string
	for _, id := range known.Minus(prevKnown).IDs() {
		if d, ok := idx.Depth(id); ok && d <= defaultDepth {
			fresh = append(fresh, id)
		}
	}
	return keep.With(fresh...), known
}

// RevealAncestors expands every expandable ancestor of id. Other entries are untouched.
func RevealAncestors(expanded ExpandSet, idx Index, id string) ExpandSet {
	var add []string
	for _, a := range idx.Ancestors(id) {
		if idx.Expandable().Has(a) {
			add = append(add, a)
		}
	}
	if len(add) == 0 {
		return expanded
	}
	return expanded.With(add...)
}

// ResolveActive picks the active row id after rows changed: the selected id when visible,
// else the previous active id when still visible, else the first row, else "".
func ResolveActive(rows []Row, selectedID, prevActiveID string) string {
	if len(rows) == 0 {
		return ""
	}
	var hasSelected, hasPrev bool
	for _, r := range rows {
		if selectedID != "" && r.ID() == selectedID {
			hasSelected = true
		}
		if prevActiveID != "" && r.ID() == prevActiveID {
			hasPrev = true
		}
	}
	switch {
	case hasSelected:
		return selectedID
	case hasPrev:
		return prevActiveID
	default:
		return rows[0].ID()
	}
}
