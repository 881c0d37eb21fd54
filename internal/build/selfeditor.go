package build

import (
	"reflect"
	"strings"

	"outline-cli/internal/model"
	"outline-cli/internal/statusutil"
)

// SelfEditorInput binds one template definition to the live form data of the submodel
// being edited.
//
// Field rules: TemplateKey required for ids (defaults to Root.IDShort, then "template");
// Root is the definition tree, its children are the form's top-level fields; Data may be nil;
// Errors may be empty.
type SelfEditorInput struct {
	TemplateKey string
	Root        Element
	Data        map[string]any
	Errors      []FieldError
}

// FieldError is one field-level validation message. It applies to the node whose path
// equals Path and to every ancestor of that node.
type FieldError struct {
	Path    string
	Message string
	Warning bool
}

func (in SelfEditorInput) templateKey() string {
	for _, v := range []string{in.TemplateKey, in.Root.IDShort} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return "template"
}

// SelfEditor builds the single-submodel outline mirroring the definition tree. Lists
// expand by the length of the live data array at their path.
func SelfEditor(in SelfEditorInput) []model.Node {
	key := in.templateKey()
	b := selfEditorBuilder{templateKey: key, errors: in.Errors}

	var children []model.Node
	for i, def := range in.Root.Children {
		seg := def.segment(i)
		children = append(children, b.element(def, seg, lookup(in.Data, seg)))
	}

	label := in.Root.label()
	if label == "" {
		label = key
	}
	counts := statusutil.RollupCounts(children)
	errs, warns := b.count("")
	return []model.Node{{
		ID:         model.CreateID(model.KindSubmodel, key),
		Kind:       model.KindSubmodel,
		Label:      label,
		Path:       "",
		IDShort:    strings.TrimSpace(in.Root.IDShort),
		SemanticID: strings.TrimSpace(in.Root.SemanticID),
		Status: &model.Status{
			Completion:        statusutil.Aggregate(children),
			RequiredTotal:     counts.RequiredTotal,
			RequiredCompleted: counts.RequiredCompleted,
			Errors:            errs,
			Warnings:          warns,
		},
		Target:   &model.Target{Anchor: key},
		Meta:     model.Meta{model.MetaTemplateKey: key},
		Children: children,
	}}
}

type selfEditorBuilder struct {
	templateKey string
	errors      []FieldError
}

// count returns errors and warnings at path or nested under it. The empty path is the
// form root and counts everything.
func (b selfEditorBuilder) count(path string) (errs, warns int) {
	for _, fe := range b.errors {
		p := strings.TrimSpace(fe.Path)
		if path != "" && p != path && !strings.HasPrefix(p, path+".") {
			continue
		}
		if fe.Warning {
			warns++
		} else {
			errs++
		}
	}
	return errs, warns
}

func (b selfEditorBuilder) node(kind model.Kind, def Element, path, label string) model.Node {
	if label == "" {
		label = lastSegment(path)
	}
	errs, warns := b.count(path)
	return model.Node{
		ID:         model.CreateID(kind, path),
		Kind:       kind,
		Label:      label,
		Path:       path,
		IDShort:    strings.TrimSpace(def.IDShort),
		SemanticID: strings.TrimSpace(def.SemanticID),
		Status: &model.Status{
			Required: def.Required,
			Errors:   errs,
			Warnings: warns,
		},
		Target: &model.Target{Anchor: path},
		Meta:   model.Meta{model.MetaTemplateKey: b.templateKey},
	}
}

func (b selfEditorBuilder) element(def Element, path string, value any) model.Node {
	switch def.Shape {
	case ShapeList:
		n := b.node(model.KindSection, def, path, def.label())
		entries := asList(value)
		for i, entry := range entries {
			p := itemPath(path, i)
			var child model.Node
			if def.Item == nil {
				child = b.leaf(Element{Shape: ShapeLeaf}, p, itemLabel(n.Label, i), entry)
			} else {
				child = b.element(*def.Item, p, entry)
				child.Label = itemLabel(n.Label, i)
			}
			child.Meta[model.MetaListIndex] = i
			n.Children = append(n.Children, child)
		}
		b.rollup(&n, def)
		if len(n.Children) == 0 {
			// Required-but-unpopulated list: empty, never partial.
			n.Status.Completion = model.CompletionEmpty
		}
		return n
	case ShapeComposite:
		n := b.node(model.KindSection, def, path, def.label())
		obj := asObject(value)
		for i, ch := range def.Children {
			seg := ch.segment(i)
			n.Children = append(n.Children, b.element(ch, model.JoinPath(path, seg), lookup(obj, seg)))
		}
		b.rollup(&n, def)
		return n
	default:
		return b.leaf(def, path, def.label(), value)
	}
}

func (b selfEditorBuilder) leaf(def Element, path, label string, value any) model.Node {
	n := b.node(model.KindField, def, path, label)
	n.Status.Completion = model.CompletionOf(value)
	if def.Required {
		n.Status.RequiredTotal = 1
		if n.Status.Completion == model.CompletionComplete {
			n.Status.RequiredCompleted = 1
		}
	}
	return n
}

func (b selfEditorBuilder) rollup(n *model.Node, def Element) {
	counts := statusutil.RollupCounts(n.Children)
	n.Status.Completion = statusutil.Aggregate(n.Children)
	n.Status.RequiredTotal = counts.RequiredTotal
	n.Status.RequiredCompleted = counts.RequiredCompleted
	if def.Required && len(n.Children) == 0 {
		// The definition demands content that does not exist yet.
		n.Status.RequiredTotal = 1
	}
}

func lookup(obj map[string]any, key string) any {
	if obj == nil {
		return nil
	}
	return obj[key]
}

func asObject(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			if s, ok := k.(string); ok {
				out[s] = vv
			}
		}
		return out
	default:
		return nil
	}
}

func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
