package nav

import (
	"fmt"
	"testing"

	"outline-cli/internal/model"

	"github.com/google/go-cmp/cmp"
)

func tn(id string, children ...model.Node) model.Node {
	return model.Node{ID: id, Label: id, Path: id, Children: children}
}

// A
//   A1
//     A1a
//       A1a-x
//   A2
// B
//   B1
func sampleTree() []model.Node {
	return []model.Node{
		tn("A",
			tn("A1", tn("A1a", tn("A1a-x"))),
			tn("A2"),
		),
		tn("B", tn("B1")),
	}
}

func rowIDs(nav *Navigator) []string {
	var out []string
	for _, r := range nav.Rows() {
		out = append(out, r.ID())
	}
	return out
}

func newNav(t *testing.T, nodes []model.Node) *Navigator {
	t.Helper()
	nav := New(DefaultOptions())
	nav.SetViewport(50)
	nav.SetNodes(nodes)
	return nav
}

func TestSetNodes_DefaultExpandsShallowSubtrees(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	want := []string{"A", "A1", "A1a", "A2", "B", "B1"}
	if diff := cmp.Diff(want, rowIDs(nav)); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if nav.IsExpanded("A1a") {
		t.Fatalf("expected depth-2 subtree to start collapsed")
	}
	if nav.ActiveID() != "A" {
		t.Fatalf("expected first row active, got %q", nav.ActiveID())
	}
	r := nav.Rows()[2]
	if r.Depth != 2 || !r.HasChildren || r.Expanded || r.ParentID != "A1" {
		t.Fatalf("unexpected row metadata: %+v", r)
	}
}

func TestCollapse_RemovesExactlySubtreeRows(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	nav.Expand("A1a")
	before := rowIDs(nav)

	nav.Collapse("A")
	if diff := cmp.Diff([]string{"A", "B", "B1"}, rowIDs(nav)); diff != "" {
		t.Fatalf("rows after collapse mismatch (-want +got):\n%s", diff)
	}

	nav.Expand("A")
	if diff := cmp.Diff(before, rowIDs(nav)); diff != "" {
		t.Fatalf("rows after re-expand mismatch (-want +got):\n%s", diff)
	}
}

func TestRebuild_PreservesUserCollapseAndOpensNewSubtrees(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	nav.Collapse("B")

	next := sampleTree()
	next = append(next, tn("C", tn("C1")))
	// A2 gains children: newly expandable, depth 1.
	next[0].Children[1].Children = []model.Node{tn("A2-x")}
	nav.SetNodes(next)

	if nav.IsExpanded("B") {
		t.Fatalf("expected previously collapsed B to stay collapsed")
	}
	if !nav.IsExpanded("C") {
		t.Fatalf("expected new subtree C to open by default")
	}
	if !nav.IsExpanded("A2") {
		t.Fatalf("expected newly expandable A2 to open by default")
	}
	if !nav.IsExpanded("A") || !nav.IsExpanded("A1") {
		t.Fatalf("expected user-kept expansions to survive")
	}
}

func TestRebuild_IdenticalTreeKeepsState(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	nav.Collapse("A1")
	nav.Expand("A1a")
	nav.HandleKey(KeyDown)
	expanded := nav.Expanded()
	active := nav.ActiveID()

	nav.SetNodes(sampleTree())
	if !nav.Expanded().Equal(expanded) {
		t.Fatalf("expand set changed across identical rebuild: %v -> %v", expanded.IDs(), nav.Expanded().IDs())
	}
	if nav.ActiveID() != active {
		t.Fatalf("expected active %q to survive, got %q", active, nav.ActiveID())
	}
}

func TestRebuild_DropsExpansionOfVanishedNodes(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	nav.SetNodes([]model.Node{tn("A", tn("A2"))})
	if nav.IsExpanded("A1") || nav.IsExpanded("B") {
		t.Fatalf("expected vanished ids to leave the expand set, got %v", nav.Expanded().IDs())
	}
}

func TestSetSelected_RevealsAllAncestors(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	nav.CollapseAll()
	nav.Expand("B")

	nav.SetSelected("A1a-x")
	for _, id := range []string{"A", "A1", "A1a"} {
		if !nav.IsExpanded(id) {
			t.Fatalf("expected ancestor %q expanded, got %v", id, nav.Expanded().IDs())
		}
	}
	if !nav.IsExpanded("B") {
		t.Fatalf("expected unrelated expand state untouched")
	}
	if nav.ActiveID() != "A1a-x" {
		t.Fatalf("expected selected row active, got %q", nav.ActiveID())
	}
}

func TestSetSelected_UnknownIDFallsBack(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	nav.HandleKey(KeyDown)
	nav.SetSelected("does-not-exist")
	if nav.ActiveID() != "A1" {
		t.Fatalf("expected previous active to be kept, got %q", nav.ActiveID())
	}

	nav.SetNodes([]model.Node{tn("Z")})
	if nav.ActiveID() != "Z" {
		t.Fatalf("expected first row to become active, got %q", nav.ActiveID())
	}
}

func TestKeys_RightExpandsThenEntersFirstChild(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	if !nav.SetActive("A1a") {
		t.Fatalf("expected A1a visible")
	}

	res := nav.HandleKey(KeyRight)
	if !res.Toggled || res.Moved {
		t.Fatalf("expected expand without move, got %+v", res)
	}
	if nav.ActiveID() != "A1a" || !nav.IsExpanded("A1a") {
		t.Fatalf("expected A1a expanded and still active, got active=%q", nav.ActiveID())
	}

	res = nav.HandleKey(KeyRight)
	if !res.Moved || nav.ActiveID() != "A1a-x" || res.FocusID != "A1a-x" {
		t.Fatalf("expected move to first child, got %+v active=%q", res, nav.ActiveID())
	}

	// Leaf: right is a no-op.
	if res := nav.HandleKey(KeyRight); res != (Result{}) {
		t.Fatalf("expected no-op on leaf, got %+v", res)
	}
}

func TestKeys_LeftCollapsesThenMovesToParent(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	nav.SetActive("A2")

	res := nav.HandleKey(KeyLeft)
	if !res.Moved || nav.ActiveID() != "A" {
		t.Fatalf("expected leaf left to move to parent, got %+v active=%q", res, nav.ActiveID())
	}
	res = nav.HandleKey(KeyLeft)
	if !res.Toggled || nav.IsExpanded("A") || nav.ActiveID() != "A" {
		t.Fatalf("expected collapse of A, got %+v", res)
	}
	if res := nav.HandleKey(KeyLeft); res != (Result{}) {
		t.Fatalf("expected no-op at collapsed root, got %+v", res)
	}
}

func TestKeys_UpDownClampAtBoundaries(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	if res := nav.HandleKey(KeyUp); res != (Result{}) || nav.ActiveID() != "A" {
		t.Fatalf("expected up on first row to be a no-op, got %+v active=%q", res, nav.ActiveID())
	}

	nav.HandleKey(KeyEnd)
	last := nav.ActiveID()
	if last != "B1" {
		t.Fatalf("expected end to reach last row, got %q", last)
	}
	if res := nav.HandleKey(KeyDown); res != (Result{}) || nav.ActiveID() != last {
		t.Fatalf("expected down on last row to be a no-op, got %+v", res)
	}

	nav.HandleKey(KeyHome)
	for i, want := range []string{"A1", "A1a", "A2"} {
		res := nav.HandleKey(KeyDown)
		if !res.Moved || nav.ActiveID() != want {
			t.Fatalf("step %d: expected %q, got %q", i, want, nav.ActiveID())
		}
	}
}

func TestKeys_EnterAndSpaceActivate(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	nav.SetActive("B1")
	for _, k := range []Key{KeyEnter, KeySpace} {
		res := nav.HandleKey(k)
		if res.Activated == nil || res.Activated.ID != "B1" {
			t.Fatalf("%s: expected activation of B1, got %+v", k, res)
		}
	}
}

func TestKeys_EmptyRowsDisableHandlers(t *testing.T) {
	t.Parallel()

	nav := newNav(t, nil)
	if !nav.Empty() {
		t.Fatalf("expected empty navigator")
	}
	for _, k := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight, KeyEnter, KeySpace, KeyHome, KeyEnd} {
		if res := nav.HandleKey(k); res != (Result{}) {
			t.Fatalf("%s: expected no-op, got %+v", k, res)
		}
	}
	if nav.ActiveID() != "" {
		t.Fatalf("expected no active row, got %q", nav.ActiveID())
	}
}

func TestToggle_CollapsingAncestorMovesActiveToIt(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	nav.SetActive("A1a")
	if !nav.Toggle("A") {
		t.Fatalf("expected toggle to apply")
	}
	if nav.ActiveID() != "A" {
		t.Fatalf("expected active to fall back to visible ancestor, got %q", nav.ActiveID())
	}
	if nav.Toggle("B1") {
		t.Fatalf("expected toggle on leaf to be rejected")
	}
}

func TestSetNodes_DefaultExpandDepthOption(t *testing.T) {
	t.Parallel()

	nav := New(Options{DefaultExpandDepth: -1})
	nav.SetNodes(sampleTree())
	if diff := cmp.Diff([]string{"A", "B"}, rowIDs(nav)); diff != "" {
		t.Fatalf("expected nothing expanded (-want +got):\n%s", diff)
	}
}

func wideTree(count int) []model.Node {
	var leaves []model.Node
	for i := 0; i < count; i++ {
		leaves = append(leaves, tn(fmt.Sprintf("leaf-%03d", i)))
	}
	return []model.Node{tn("root", leaves...)}
}

func TestWindow_BelowThresholdMaterializesAll(t *testing.T) {
	t.Parallel()

	nav := New(Options{VirtualizeThreshold: 200, Overscan: 4, DefaultExpandDepth: 1})
	nav.SetViewport(10)
	nav.SetNodes(wideTree(50))
	w := nav.Window()
	if w.Virtualized || w.Start != 0 || w.End != 51 {
		t.Fatalf("expected full window, got %+v", w)
	}
}

func TestWindow_VirtualizedFollowsActiveRow(t *testing.T) {
	t.Parallel()

	nav := New(Options{VirtualizeThreshold: 200, Overscan: 6, DefaultExpandDepth: 1})
	nav.SetViewport(20)
	nav.SetNodes(wideTree(499)) // 500 rows including root

	w := nav.Window()
	if !w.Virtualized || w.Start != 0 || w.End != 26 {
		t.Fatalf("expected initial window [0,26), got %+v", w)
	}

	for i := 0; i < 30; i++ {
		nav.HandleKey(KeyDown)
	}
	if nav.ActiveIndex() != 30 {
		t.Fatalf("expected traversal over logical rows to reach 30, got %d", nav.ActiveIndex())
	}
	if nav.Offset() != 11 {
		t.Fatalf("expected viewport scrolled to 11, got %d", nav.Offset())
	}
	if !nav.Window().Contains(nav.ActiveIndex()) {
		t.Fatalf("expected active row materialized, window=%+v", nav.Window())
	}

	res := nav.HandleKey(KeyEnd)
	if res.FocusID != "leaf-498" {
		t.Fatalf("expected focus on last row, got %+v", res)
	}
	w = nav.Window()
	if w.Start != 474 || w.End != 500 || nav.Offset() != 480 {
		t.Fatalf("expected window [474,500) offset 480, got %+v offset=%d", w, nav.Offset())
	}

	nav.ScrollTo(100)
	w = nav.Window()
	if w.Start != 94 || w.End != 126 {
		t.Fatalf("expected scroll to recompute window, got %+v", w)
	}
	// Scrolling never moves the active row.
	if nav.ActiveID() != "leaf-498" {
		t.Fatalf("expected active to stay after scroll, got %q", nav.ActiveID())
	}
	// The next key scrolls it back into view before focusing.
	nav.HandleKey(KeyUp)
	if !nav.Viewport().Contains(nav.ActiveIndex()) {
		t.Fatalf("expected active row inside viewport, viewport=%+v active=%d", nav.Viewport(), nav.ActiveIndex())
	}

	nav.ScrollTo(-50)
	if nav.Offset() != 0 {
		t.Fatalf("expected offset clamped to 0, got %d", nav.Offset())
	}
	nav.ScrollTo(10_000)
	if nav.Offset() != 480 {
		t.Fatalf("expected offset clamped to 480, got %d", nav.Offset())
	}
}

func TestKeys_PageDownJumpsByViewport(t *testing.T) {
	t.Parallel()

	nav := New(DefaultOptions())
	nav.SetViewport(10)
	nav.SetNodes(wideTree(40))
	nav.HandleKey(KeyPageDown)
	if nav.ActiveIndex() != 9 {
		t.Fatalf("expected page down to move 9 rows, got %d", nav.ActiveIndex())
	}
	nav.HandleKey(KeyPageUp)
	nav.HandleKey(KeyPageUp)
	if nav.ActiveIndex() != 0 {
		t.Fatalf("expected page up to clamp at 0, got %d", nav.ActiveIndex())
	}
}

func TestReveal_IsOneShot(t *testing.T) {
	t.Parallel()

	nav := newNav(t, sampleTree())
	nav.CollapseAll()
	if !nav.Reveal("A1a-x") {
		t.Fatalf("expected reveal of known id")
	}
	if nav.ActiveID() != "A1a-x" || !nav.IsExpanded("A1a") {
		t.Fatalf("expected revealed row active, got %q", nav.ActiveID())
	}
	nav.HandleKey(KeyHome)
	nav.SetNodes(sampleTree())
	if nav.ActiveID() != "A" {
		t.Fatalf("expected rebuild to keep the user's position, got %q", nav.ActiveID())
	}
	if nav.Reveal("missing") {
		t.Fatalf("expected unknown id to be rejected")
	}
}

func TestRestore_SeedsReconcile(t *testing.T) {
	t.Parallel()

	nav := New(DefaultOptions())
	nav.SetViewport(20)
	// Saved: A open, B closed by the user; both were known.
	nav.Restore(NewExpandSet("A"), NewExpandSet("A", "A1", "B"), "A2")
	nav.SetNodes(sampleTree())

	if nav.IsExpanded("B") || nav.IsExpanded("A1") {
		t.Fatalf("expected saved collapses to survive, got %v", nav.Expanded().IDs())
	}
	if !nav.IsExpanded("A") {
		t.Fatalf("expected saved expansion to survive")
	}
	// A1a was never known, but it sits below collapsed A1 at depth 2: stays closed.
	if nav.IsExpanded("A1a") {
		t.Fatalf("expected deep new subtree closed")
	}
	if nav.ActiveID() != "A2" {
		t.Fatalf("expected saved active row, got %q", nav.ActiveID())
	}
}
