package filter

import (
	"testing"

	"outline-cli/internal/build"
	"outline-cli/internal/model"

	"github.com/google/go-cmp/cmp"
)

func identityTree() []model.Node {
	return build.Viewer(build.ViewerInput{Categories: []build.ViewerCategory{{
		ID:    "identity",
		Label: "Identity",
		Records: []build.ViewerRecord{
			{Group: "Nameplate", Path: "Nameplate.ManufacturerName", Label: "ManufacturerName", Value: "ACME"},
			{Group: "Nameplate", Path: "Nameplate.TotalCO2", Label: "TotalCO2", Value: ""},
		},
	}, {
		ID:    "carbon",
		Label: "Carbon Footprint",
		Records: []build.ViewerRecord{
			{Group: "PCF", Path: "PCF.Value", Label: "PCFValue", Value: 1.2},
		},
	}}}, nil)
}

func labels(nodes []model.Node) []string {
	var out []string
	model.Walk(nodes, func(n model.Node, _ int, _ string) bool {
		out = append(out, n.Label)
		return true
	})
	return out
}

func TestApply_ManufacturerKeepsSingleBranch(t *testing.T) {
	t.Parallel()

	got := labels(Apply(identityTree(), "manufacturer"))
	want := []string{"Identity", "Nameplate", "ManufacturerName"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filtered tree mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_BlankQueryReturnsInput(t *testing.T) {
	t.Parallel()

	in := identityTree()
	for _, q := range []string{"", "   ", "\t"} {
		if diff := cmp.Diff(in, Apply(in, q)); diff != "" {
			t.Fatalf("query %q changed the tree:\n%s", q, diff)
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"manufacturer", "name", "identity", "pcf", "zzz", "NAMEPLATE"} {
		once := Apply(identityTree(), q)
		twice := Apply(once, q)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("query %q not idempotent:\n%s", q, diff)
		}
	}
}

func TestApply_PreservesAncestry(t *testing.T) {
	t.Parallel()

	out := Apply(identityTree(), "co2")
	leaf, ok := model.Find(out, identityTree()[0].Children[0].Children[1].ID)
	if !ok || leaf.Label != "TotalCO2" {
		t.Fatalf("expected TotalCO2 to survive")
	}
	if len(out) != 1 || out[0].Label != "Identity" {
		t.Fatalf("expected Identity ancestor to be kept, got %v", labels(out))
	}
	if len(out[0].Children) != 1 || out[0].Children[0].Label != "Nameplate" {
		t.Fatalf("expected Nameplate ancestor to be kept, got %v", labels(out))
	}
}

func TestApply_MatchingParentGetsFilteredChildren(t *testing.T) {
	t.Parallel()

	tree := []model.Node{{
		ID: "s", Label: "Name section",
		Children: []model.Node{
			{ID: "a", Label: "Name"},
			{ID: "b", Label: "Street"},
		},
	}}
	got := labels(Apply(tree, "name"))
	if diff := cmp.Diff([]string{"Name section", "Name"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	// Parent matches but no child does: parent stays, as a leaf.
	got = labels(Apply(tree, "section"))
	if diff := cmp.Diff([]string{"Name section"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := identityTree()
	before := identityTree()
	_ = Apply(in, "manufacturer")
	if diff := cmp.Diff(before, in); diff != "" {
		t.Fatalf("input mutated:\n%s", diff)
	}
}

func TestHaystack_IncludesMetaFields(t *testing.T) {
	t.Parallel()

	n := model.Node{
		Label: "L", Path: "p", IDShort: "ids", SemanticID: "urn:x", SearchableText: "extra",
		Meta: model.Meta{model.MetaTemplateKey: "tmpl", model.MetaCategoryLabel: "Cat", "other": "hidden"},
	}
	if got := Haystack(n); got != "L p ids urn:x extra tmpl Cat" {
		t.Fatalf("unexpected haystack %q", got)
	}
	if !Matches(n, "TMPL") || !Matches(n, "urn:") || Matches(n, "hidden") {
		t.Fatalf("unexpected match results")
	}
}

func TestCount(t *testing.T) {
	t.Parallel()
	if got := Count(identityTree()); got != 7 {
		t.Fatalf("expected 7 nodes, got %d", got)
	}
}
