// Package build turns the three supported source shapes into uniform outline trees.
//
// Every builder is a pure function: same input, same output (ids included). Builders never
// fail; malformed or missing optional fields are treated as absent.
package build

import (
	"strconv"
	"strings"

	"outline-cli/internal/model"
)

// Shape tags the recursion variant of a source element.
type Shape int

const (
	ShapeLeaf Shape = iota
	ShapeList
	ShapeComposite
)

func (s Shape) String() string {
	switch s {
	case ShapeList:
		return "list"
	case ShapeComposite:
		return "composite"
	default:
		return "leaf"
	}
}

// ParseShape maps a source type hint to a Shape. Unknown hints are leaves.
func ParseShape(s string) Shape {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "list", "array", "submodelelementlist":
		return ShapeList
	case "composite", "collection", "object", "submodelelementcollection", "entity":
		return ShapeComposite
	default:
		return ShapeLeaf
	}
}

// Element is one node of a recursive source tree.
//
// Field rules:
//   - IDShort: required for addressing; an element without one is addressed by its index.
//   - Label: optional, defaults to IDShort.
//   - Value: leaves only (editor content trees). Ignored for lists/composites.
//   - Children: composites only.
//   - Items: lists in content trees (editor builder), one element per entry.
//   - Item: lists in definition trees (self-editor builder), the per-entry template.
//   - Required: definition trees only.
type Element struct {
	Shape      Shape
	IDShort    string
	Label      string
	SemanticID string
	Required   bool
	Value      any
	Children   []Element
	Items      []Element
	Item       *Element
}

func (e Element) label() string {
	if s := strings.TrimSpace(e.Label); s != "" {
		return s
	}
	return strings.TrimSpace(e.IDShort)
}

// segment is the element's path segment, falling back to its position among siblings.
func (e Element) segment(index int) string {
	if s := strings.TrimSpace(e.IDShort); s != "" {
		return s
	}
	return strconv.Itoa(index)
}

func itemPath(parent string, i int) string {
	return model.JoinPath(parent, strconv.Itoa(i))
}

func itemLabel(parentLabel string, i int) string {
	if parentLabel == "" {
		return "#" + strconv.Itoa(i+1)
	}
	return parentLabel + " #" + strconv.Itoa(i+1)
}

func lastSegment(path string) string {
	path = strings.Trim(path, ".")
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}
