package build

import (
	"strconv"
	"strings"

	"outline-cli/internal/model"
	"outline-cli/internal/statusutil"
)

// ViewerInput is the classified record set shown by the read-only viewer.
type ViewerInput struct {
	Categories []ViewerCategory
}

// ViewerCategory field rules: ID required (categories without one are skipped),
// Label defaults to ID, Records may be empty (the category is then skipped).
type ViewerCategory struct {
	ID      string
	Label   string
	Records []ViewerRecord
}

// ViewerRecord field rules: Path required (records without one are skipped),
// Group defaults to the category label, Label defaults to the last path segment.
type ViewerRecord struct {
	Group      string
	Path       string
	Label      string
	IDShort    string
	SemanticID string
	Value      any
}

// KeyFunc returns the same-page anchor key for one leaf occurrence. index is the
// record's position within its category, so repeated logical fields get distinct keys.
type KeyFunc func(categoryID, group string, rec ViewerRecord, index int) string

// DefaultViewerKey keys a leaf by category, group, path and occurrence index.
func DefaultViewerKey(categoryID, group string, rec ViewerRecord, index int) string {
	return categoryID + "/" + group + "/" + strings.TrimSpace(rec.Path) + "#" + strconv.Itoa(index)
}

// Viewer builds one category node per non-empty category, one section per group label
// (first-seen order) and one field per record.
func Viewer(in ViewerInput, key KeyFunc) []model.Node {
	if key == nil {
		key = DefaultViewerKey
	}
	var out []model.Node
	for _, cat := range in.Categories {
		catID := strings.TrimSpace(cat.ID)
		if catID == "" {
			continue
		}
		catLabel := strings.TrimSpace(cat.Label)
		if catLabel == "" {
			catLabel = catID
		}

		var groupOrder []string
		groups := map[string][]model.Node{}
		for i, rec := range cat.Records {
			path := strings.TrimSpace(rec.Path)
			if path == "" {
				continue
			}
			group := strings.TrimSpace(rec.Group)
			if group == "" {
				group = catLabel
			}
			if _, ok := groups[group]; !ok {
				groupOrder = append(groupOrder, group)
			}
			anchor := key(catID, group, rec, i)
			label := strings.TrimSpace(rec.Label)
			if label == "" {
				label = lastSegment(path)
			}
			groups[group] = append(groups[group], model.Node{
				ID:         model.CreateID(model.KindField, anchor),
				Kind:       model.KindField,
				Label:      label,
				Path:       path,
				IDShort:    strings.TrimSpace(rec.IDShort),
				SemanticID: strings.TrimSpace(rec.SemanticID),
				Status:     &model.Status{Completion: model.CompletionOf(rec.Value)},
				Target:     &model.Target{Anchor: anchor},
				Meta:       model.Meta{model.MetaCategoryID: catID},
			})
		}
		if len(groupOrder) == 0 {
			continue
		}

		var sections []model.Node
		for _, g := range groupOrder {
			leaves := groups[g]
			gPath := catID + "." + g
			sections = append(sections, model.Node{
				ID:       model.CreateID(model.KindSection, gPath),
				Kind:     model.KindSection,
				Label:    g,
				Path:     gPath,
				Status:   &model.Status{Completion: statusutil.Aggregate(leaves)},
				Target:   &model.Target{Anchor: catID + "/" + g},
				Meta:     model.Meta{model.MetaCategoryID: catID},
				Children: leaves,
			})
		}

		out = append(out, model.Node{
			ID:     model.CreateID(model.KindCategory, catID),
			Kind:   model.KindCategory,
			Label:  catLabel,
			Path:   catID,
			Status: &model.Status{Completion: statusutil.Aggregate(sections)},
			Target: &model.Target{Anchor: catID},
			Meta: model.Meta{
				model.MetaCategoryID:    catID,
				model.MetaCategoryLabel: catLabel,
			},
			Children: sections,
		})
	}
	return out
}
