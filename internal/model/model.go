package model

import "strings"

type Kind string

const (
	KindRoot     Kind = "root"
	KindCategory Kind = "category"
	KindSubmodel Kind = "submodel"
	KindSection  Kind = "section"
	KindField    Kind = "field"
)

type Completion string

const (
	CompletionEmpty    Completion = "empty"
	CompletionPartial  Completion = "partial"
	CompletionComplete Completion = "complete"
)

type Risk string

const (
	RiskLow      Risk = "low"
	RiskMedium   Risk = "medium"
	RiskHigh     Risk = "high"
	RiskCritical Risk = "critical"
)

// Rank orders risks from least to most severe. Unknown values rank below low.
func (r Risk) Rank() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return 0
	}
}

// Status is the aggregate completion/risk record attached to a node by a builder.
// A nil *Status (or an empty Completion) means the node does not vote in aggregation.
type Status struct {
	Completion        Completion `json:"completion,omitempty"`
	Required          bool       `json:"required,omitempty"`
	RequiredTotal     int        `json:"requiredTotal,omitempty"`
	RequiredCompleted int        `json:"requiredCompleted,omitempty"`
	Errors            int        `json:"errors,omitempty"`
	Warnings          int        `json:"warnings,omitempty"`
	Risk              Risk       `json:"risk,omitempty"`
}

// Target describes what activating a node should do. It is opaque to the engine.
//
// Either Href (+ Query) is set for a routed destination, or Anchor for an in-page key.
type Target struct {
	Href   string            `json:"href,omitempty"`
	Query  map[string]string `json:"query,omitempty"`
	Anchor string            `json:"path,omitempty"`
}

func (t *Target) IsRoute() bool  { return t != nil && strings.TrimSpace(t.Href) != "" }
func (t *Target) IsAnchor() bool { return t != nil && !t.IsRoute() && strings.TrimSpace(t.Anchor) != "" }

// Meta carries builder-specific context (string, number or bool values only).
type Meta map[string]any

const (
	MetaTemplateKey   = "templateKey"
	MetaCategoryID    = "categoryId"
	MetaCategoryLabel = "categoryLabel"
	MetaSubmodelID    = "submodelId"
	MetaListIndex     = "listIndex"
)

// String returns the value under k when it is a string (empty otherwise).
func (m Meta) String(k string) string {
	if m == nil {
		return ""
	}
	s, _ := m[k].(string)
	return s
}

type Node struct {
	ID             string `json:"id"`
	Kind           Kind   `json:"kind"`
	Label          string `json:"label"`
	Path           string `json:"path"`
	IDShort        string `json:"idShort,omitempty"`
	SemanticID     string `json:"semanticId,omitempty"`
	SearchableText string `json:"searchableText,omitempty"`

	Status *Status `json:"status,omitempty"`
	Target *Target `json:"target,omitempty"`
	Meta   Meta    `json:"meta,omitempty"`

	Children []Node `json:"children,omitempty"`
}

func (n Node) HasChildren() bool { return len(n.Children) > 0 }

// Completion returns the node's completion, or "" when the node carries none.
func (n Node) Completion() Completion {
	if n.Status == nil {
		return ""
	}
	return n.Status.Completion
}

// CreateID derives a node id from its kind and logical path. Rebuilding from refreshed
// data yields the same id for the same logical node.
func CreateID(kind Kind, path string) string {
	return string(kind) + ":" + path
}

// JoinPath joins non-empty dot-path segments.
func JoinPath(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), ".")
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, ".")
}

// Walk visits nodes depth-first pre-order. Returning false from fn skips the subtree.
func Walk(nodes []Node, fn func(n Node, depth int, parentID string) bool) {
	var walk func(ns []Node, depth int, parentID string)
	walk = func(ns []Node, depth int, parentID string) {
		for _, n := range ns {
			if !fn(n, depth, parentID) {
				continue
			}
			walk(n.Children, depth+1, n.ID)
		}
	}
	walk(nodes, 0, "")
}

func IDs(nodes []Node) []string {
	var out []string
	Walk(nodes, func(n Node, _ int, _ string) bool {
		out = append(out, n.ID)
		return true
	})
	return out
}

func Find(nodes []Node, id string) (*Node, bool) {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i], true
		}
		if n, ok := Find(nodes[i].Children, id); ok {
			return n, true
		}
	}
	return nil, false
}
