// Package source reads outline source snapshots from disk and maps them onto the
// builder inputs. JSON, YAML and TOML documents are accepted.
//
// A document names its shape in a top-level "kind" field (viewer, editor, selfeditor).
// Without one the shape is inferred from the top-level keys.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"outline-cli/internal/build"
	"outline-cli/internal/model"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Kind string

const (
	KindViewer     Kind = "viewer"
	KindEditor     Kind = "editor"
	KindSelfEditor Kind = "selfeditor"
)

type UnknownKindError struct {
	Kind string
}

func (e UnknownKindError) Error() string {
	return fmt.Sprintf("unknown source kind: %q (expected viewer|editor|selfeditor)", e.Kind)
}

// ParseKind accepts the kind names plus a few aliases. The empty string is allowed and
// means "infer from the document".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "viewer", "view":
		return KindViewer, nil
	case "editor", "list":
		return KindEditor, nil
	case "selfeditor", "self-editor", "self", "form":
		return KindSelfEditor, nil
	default:
		return "", UnknownKindError{Kind: s}
	}
}

// Snapshot is one decoded source document. Exactly one of the inputs is set, matching Kind.
type Snapshot struct {
	Kind       Kind
	Viewer     *build.ViewerInput
	Editor     *build.EditorInput
	SelfEditor *build.SelfEditorInput
}

// Nodes runs the matching builder.
func (s Snapshot) Nodes() []model.Node {
	switch s.Kind {
	case KindViewer:
		if s.Viewer != nil {
			return build.Viewer(*s.Viewer, nil)
		}
	case KindEditor:
		if s.Editor != nil {
			return build.Editor(*s.Editor)
		}
	case KindSelfEditor:
		if s.SelfEditor != nil {
			return build.SelfEditor(*s.SelfEditor)
		}
	}
	return nil
}

// Load reads path and decodes it. kind overrides the document's own kind when non-empty.
func Load(path string, kind Kind) (Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read source: %w", err)
	}
	raw, err := Parse(b, FormatFromPath(path))
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return Decode(raw, kind)
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the document format by extension. Unknown extensions are read as
// YAML, which also accepts plain JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Parse decodes b into a generic document tree of map[string]any, []any and scalars.
func Parse(b []byte, f Format) (map[string]any, error) {
	var raw map[string]any
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(b, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(b, &raw); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(b, &raw); err != nil {
			return nil, err
		}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return normalizeMap(raw), nil
}

// Decode maps a generic document onto the builder input for kind.
func Decode(raw map[string]any, kind Kind) (Snapshot, error) {
	if kind == "" {
		k, err := ParseKind(str(raw, "kind"))
		if err != nil {
			return Snapshot{}, err
		}
		kind = k
	}
	if kind == "" {
		kind = inferKind(raw)
	}
	switch kind {
	case KindViewer:
		in := decodeViewer(raw)
		return Snapshot{Kind: kind, Viewer: &in}, nil
	case KindEditor:
		in := decodeEditor(raw)
		return Snapshot{Kind: kind, Editor: &in}, nil
	case KindSelfEditor:
		in := decodeSelfEditor(raw)
		return Snapshot{Kind: kind, SelfEditor: &in}, nil
	default:
		return Snapshot{}, UnknownKindError{Kind: string(kind)}
	}
}

func inferKind(raw map[string]any) Kind {
	switch {
	case raw["submodels"] != nil:
		return KindEditor
	case raw["template"] != nil, raw["definition"] != nil:
		return KindSelfEditor
	default:
		return KindViewer
	}
}
