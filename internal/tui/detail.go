package tui

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"outline-cli/internal/model"
)

// targetString renders a target the way a host router would see it: href?query for
// routed targets, #anchor for in-page targets.
func targetString(t *model.Target) string {
	switch {
	case t.IsRoute():
		if len(t.Query) == 0 {
			return t.Href
		}
		q := url.Values{}
		for k, v := range t.Query {
			q.Set(k, v)
		}
		return t.Href + "?" + q.Encode()
	case t.IsAnchor():
		return "#" + t.Anchor
	default:
		return ""
	}
}

// detailMarkdown describes a node for the detail pane.
func detailMarkdown(n model.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", mdEscape(n.Label))

	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	row := func(k, v string) {
		if strings.TrimSpace(v) == "" {
			return
		}
		fmt.Fprintf(&b, "| %s | `%s` |\n", k, strings.ReplaceAll(v, "`", "'"))
	}
	row("kind", string(n.Kind))
	row("id", n.ID)
	row("path", n.Path)
	row("idShort", n.IDShort)
	row("semanticId", n.SemanticID)
	row("target", targetString(n.Target))
	b.WriteString("\n")

	if st := n.Status; st != nil {
		b.WriteString("## Status\n\n")
		if st.Completion != "" {
			fmt.Fprintf(&b, "- completion: **%s**\n", st.Completion)
		}
		if st.RequiredTotal > 0 {
			fmt.Fprintf(&b, "- required: %d/%d\n", st.RequiredCompleted, st.RequiredTotal)
		} else if st.Required {
			b.WriteString("- required\n")
		}
		if st.Errors > 0 {
			fmt.Fprintf(&b, "- errors: %d\n", st.Errors)
		}
		if st.Warnings > 0 {
			fmt.Fprintf(&b, "- warnings: %d\n", st.Warnings)
		}
		if st.Risk != "" {
			fmt.Fprintf(&b, "- risk: %s\n", st.Risk)
		}
		b.WriteString("\n")
	}

	if len(n.Meta) > 0 {
		keys := make([]string, 0, len(n.Meta))
		for k := range n.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("## Meta\n\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %v\n", k, n.Meta[k])
		}
		b.WriteString("\n")
	}

	if len(n.Children) > 0 {
		fmt.Fprintf(&b, "_%d children_\n", len(n.Children))
	}
	return b.String()
}

func mdEscape(s string) string {
	r := strings.NewReplacer("*", `\*`, "_", `\_`, "#", `\#`, "`", "'")
	return r.Replace(s)
}
