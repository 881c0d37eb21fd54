package build

import (
	"net/url"
	"sort"
	"strings"

	"outline-cli/internal/model"
	"outline-cli/internal/statusutil"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const uncategorized = "uncategorized"

type EditorInput struct {
	Submodels []EditorSubmodel
}

// Health is the pre-computed completion record of one submodel.
type Health struct {
	RequiredTotal     int
	RequiredCompleted int
	Errors            int
	Warnings          int
	Risk              model.Risk
}

// EditorSubmodel field rules: ID required (summaries without one are skipped);
// Label defaults to IDShort then ID; Category defaults to "uncategorized";
// CategoryLabel defaults to Category; EditHref defaults to /submodels/<id>/edit.
type EditorSubmodel struct {
	ID            string
	IDShort       string
	SemanticID    string
	Label         string
	Category      string
	CategoryLabel string
	Health        Health
	Root          Element
	EditHref      string
}

func (s EditorSubmodel) label() string {
	for _, v := range []string{s.Label, s.IDShort, s.ID} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (s EditorSubmodel) editHref() string {
	if h := strings.TrimSpace(s.EditHref); h != "" {
		return h
	}
	return "/submodels/" + url.PathEscape(strings.TrimSpace(s.ID)) + "/edit"
}

// Editor builds the submodel list outline: category -> submodel -> sections/fields.
// Categories are ordered by locale collation of their id.
func Editor(in EditorInput) []model.Node {
	type bucket struct {
		id    string
		label string
		nodes []model.Node
	}
	buckets := map[string]*bucket{}
	var ids []string

	for _, sm := range in.Submodels {
		smID := strings.TrimSpace(sm.ID)
		if smID == "" {
			continue
		}
		catID := strings.TrimSpace(sm.Category)
		if catID == "" {
			catID = uncategorized
		}
		b := buckets[catID]
		if b == nil {
			label := strings.TrimSpace(sm.CategoryLabel)
			if label == "" {
				label = catID
			}
			b = &bucket{id: catID, label: label}
			buckets[catID] = b
			ids = append(ids, catID)
		}
		b.nodes = append(b.nodes, buildEditorSubmodel(sm, catID, b.label))
	}

	col := collate.New(language.English)
	sort.SliceStable(ids, func(i, j int) bool { return col.CompareString(ids[i], ids[j]) < 0 })

	out := make([]model.Node, 0, len(ids))
	for _, id := range ids {
		b := buckets[id]
		counts := statusutil.RollupCounts(b.nodes)
		out = append(out, model.Node{
			ID:    model.CreateID(model.KindCategory, b.id),
			Kind:  model.KindCategory,
			Label: b.label,
			Path:  b.id,
			Status: &model.Status{
				Completion:        statusutil.Aggregate(b.nodes),
				RequiredTotal:     counts.RequiredTotal,
				RequiredCompleted: counts.RequiredCompleted,
				Errors:            counts.Errors,
				Warnings:          counts.Warnings,
				Risk:              statusutil.WorstRisk(b.nodes),
			},
			Meta: model.Meta{
				model.MetaCategoryID:    b.id,
				model.MetaCategoryLabel: b.label,
			},
			Children: b.nodes,
		})
	}
	return out
}

func buildEditorSubmodel(sm EditorSubmodel, catID, catLabel string) model.Node {
	smID := strings.TrimSpace(sm.ID)
	href := sm.editHref()
	b := editorBuilder{submodelID: smID, href: href}

	var children []model.Node
	for i, el := range sm.Root.Children {
		children = append(children, b.element(el, el.segment(i)))
	}

	h := sm.Health
	return model.Node{
		ID:         model.CreateID(model.KindSubmodel, smID),
		Kind:       model.KindSubmodel,
		Label:      sm.label(),
		Path:       smID,
		IDShort:    strings.TrimSpace(sm.IDShort),
		SemanticID: strings.TrimSpace(sm.SemanticID),
		Status: &model.Status{
			Completion:        statusutil.CompletionFromCounts(h.RequiredTotal, h.RequiredCompleted),
			Required:          h.RequiredTotal > 0,
			RequiredTotal:     h.RequiredTotal,
			RequiredCompleted: h.RequiredCompleted,
			Errors:            h.Errors,
			Warnings:          h.Warnings,
			Risk:              h.Risk,
		},
		Target: &model.Target{Href: href, Query: map[string]string{"submodel": smID}},
		Meta: model.Meta{
			model.MetaSubmodelID:    smID,
			model.MetaCategoryID:    catID,
			model.MetaCategoryLabel: catLabel,
		},
		Children: children,
	}
}

type editorBuilder struct {
	submodelID string
	href       string
}

func (b editorBuilder) node(kind model.Kind, el Element, path, label string) model.Node {
	if label == "" {
		label = lastSegment(path)
	}
	return model.Node{
		ID:         model.CreateID(kind, b.submodelID+"/"+path),
		Kind:       kind,
		Label:      label,
		Path:       path,
		IDShort:    strings.TrimSpace(el.IDShort),
		SemanticID: strings.TrimSpace(el.SemanticID),
		Target: &model.Target{
			Href:  b.href,
			Query: map[string]string{"submodel": b.submodelID, "focus": path},
		},
		Meta: model.Meta{model.MetaSubmodelID: b.submodelID},
	}
}

func (b editorBuilder) element(el Element, path string) model.Node {
	switch el.Shape {
	case ShapeList:
		n := b.node(model.KindSection, el, path, el.label())
		for i, it := range el.Items {
			p := itemPath(path, i)
			var child model.Node
			if it.Shape == ShapeLeaf {
				child = b.node(model.KindField, it, p, itemLabel(n.Label, i))
				child.Status = &model.Status{Completion: model.CompletionOf(it.Value)}
			} else {
				child = b.element(it, p)
				child.Label = itemLabel(n.Label, i)
			}
			child.Meta[model.MetaListIndex] = i
			n.Children = append(n.Children, child)
		}
		n.Status = &model.Status{Completion: statusutil.Aggregate(n.Children)}
		return n
	case ShapeComposite:
		n := b.node(model.KindSection, el, path, el.label())
		for i, ch := range el.Children {
			n.Children = append(n.Children, b.element(ch, model.JoinPath(path, ch.segment(i))))
		}
		n.Status = &model.Status{Completion: statusutil.Aggregate(n.Children)}
		return n
	default:
		n := b.node(model.KindField, el, path, el.label())
		n.Status = &model.Status{Completion: model.CompletionOf(el.Value)}
		return n
	}
}
