package source

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"outline-cli/internal/build"
	"outline-cli/internal/model"
)

func decodeViewer(raw map[string]any) build.ViewerInput {
	var in build.ViewerInput
	for _, c := range maps(raw["categories"]) {
		cat := build.ViewerCategory{
			ID:    str(c, "id"),
			Label: str(c, "label"),
		}
		for _, r := range maps(c["records"]) {
			cat.Records = append(cat.Records, build.ViewerRecord{
				Group:      str(r, "group"),
				Path:       str(r, "path"),
				Label:      str(r, "label"),
				IDShort:    str(r, "idShort"),
				SemanticID: str(r, "semanticId"),
				Value:      r["value"],
			})
		}
		in.Categories = append(in.Categories, cat)
	}
	return in
}

func decodeEditor(raw map[string]any) build.EditorInput {
	var in build.EditorInput
	for _, s := range maps(raw["submodels"]) {
		h, _ := s["health"].(map[string]any)
		sm := build.EditorSubmodel{
			ID:            str(s, "id"),
			IDShort:       str(s, "idShort"),
			SemanticID:    str(s, "semanticId"),
			Label:         str(s, "label"),
			Category:      str(s, "category"),
			CategoryLabel: str(s, "categoryLabel"),
			EditHref:      str(s, "editHref"),
			Health: build.Health{
				RequiredTotal:     num(h, "requiredTotal"),
				RequiredCompleted: num(h, "requiredCompleted"),
				Errors:            num(h, "errors"),
				Warnings:          num(h, "warnings"),
				Risk:              model.Risk(strings.ToLower(str(h, "risk"))),
			},
		}
		if root, ok := s["root"].(map[string]any); ok {
			sm.Root = decodeElement(root)
		} else {
			// A bare element list is the submodel's top level.
			sm.Root = build.Element{Shape: build.ShapeComposite, Children: elements(s["elements"])}
		}
		in.Submodels = append(in.Submodels, sm)
	}
	return in
}

func decodeSelfEditor(raw map[string]any) build.SelfEditorInput {
	in := build.SelfEditorInput{TemplateKey: str(raw, "templateKey")}
	def, ok := raw["template"].(map[string]any)
	if !ok {
		def, _ = raw["definition"].(map[string]any)
	}
	if def != nil {
		in.Root = decodeElement(def)
		in.Root.Shape = build.ShapeComposite
	}
	in.Data, _ = raw["data"].(map[string]any)
	for _, e := range maps(raw["errors"]) {
		in.Errors = append(in.Errors, build.FieldError{
			Path:    str(e, "path"),
			Message: str(e, "message"),
			Warning: flag(e, "warning") || strings.EqualFold(str(e, "severity"), "warning"),
		})
	}
	return in
}

func decodeElement(m map[string]any) build.Element {
	el := build.Element{
		IDShort:    str(m, "idShort"),
		Label:      str(m, "label"),
		SemanticID: str(m, "semanticId"),
		Required:   flag(m, "required"),
		Value:      m["value"],
		Children:   elements(m["children"]),
		Items:      elements(m["items"]),
	}
	if item, ok := m["item"].(map[string]any); ok {
		it := decodeElement(item)
		el.Item = &it
	}

	hint := str(m, "shape")
	if hint == "" {
		hint = str(m, "type")
	}
	switch {
	case hint != "":
		el.Shape = build.ParseShape(hint)
	case el.Item != nil || m["items"] != nil:
		el.Shape = build.ShapeList
	case m["children"] != nil:
		el.Shape = build.ShapeComposite
	default:
		el.Shape = build.ShapeLeaf
	}
	return el
}

func elements(v any) []build.Element {
	var out []build.Element
	for _, m := range maps(v) {
		out = append(out, decodeElement(m))
	}
	return out
}

// maps returns the object entries of a list, dropping anything else.
func maps(v any) []map[string]any {
	list, _ := v.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, it := range list {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func str(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return v.String()
	case bool, int, int64, float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

func num(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func flag(m map[string]any, key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	default:
		return false
	}
}

// normalizeMap rewrites decoder-specific containers (TOML table arrays, YAML
// map[any]any) into map[string]any and []any.
func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return normalizeMap(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, it := range t {
			out[i] = normalize(it)
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() != reflect.Uint8 {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = normalize(rv.Index(i).Interface())
		}
		return out
	}
	return v
}
