package statusutil

import (
	"fmt"
	"strings"

	"outline-cli/internal/model"
)

// Aggregate rolls up completion from already-computed children.
//
// Children without a completion do not vote. No voters => empty.
// All complete => complete, all empty => empty, anything else => partial.
func Aggregate(children []model.Node) model.Completion {
	if len(children) == 0 {
		return model.CompletionEmpty
	}
	voters := 0
	complete := 0
	empty := 0
	for _, ch := range children {
		switch ch.Completion() {
		case "":
			continue
		case model.CompletionComplete:
			complete++
		case model.CompletionEmpty:
			empty++
		}
		voters++
	}
	switch {
	case voters == 0:
		return model.CompletionEmpty
	case complete == voters:
		return model.CompletionComplete
	case empty == voters:
		return model.CompletionEmpty
	default:
		return model.CompletionPartial
	}
}

// CompletionFromCounts derives completion from required-field health counts.
func CompletionFromCounts(total, completed int) model.Completion {
	if total <= 0 {
		return model.CompletionComplete
	}
	if completed <= 0 {
		return model.CompletionEmpty
	}
	if completed >= total {
		return model.CompletionComplete
	}
	return model.CompletionPartial
}

func NormalizeCompletion(s string) (model.Completion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "empty":
		return model.CompletionEmpty, nil
	case "partial":
		return model.CompletionPartial, nil
	case "complete", "completed":
		return model.CompletionComplete, nil
	case "":
		return "", nil
	default:
		return "", fmt.Errorf("invalid completion: %q", s)
	}
}

// NormalizeRisk maps free-form risk labels to a Risk. Unknown labels map to "".
func NormalizeRisk(s string) model.Risk {
	switch r := model.Risk(strings.ToLower(strings.TrimSpace(s))); r {
	case model.RiskLow, model.RiskMedium, model.RiskHigh, model.RiskCritical:
		return r
	default:
		return ""
	}
}

// Counts is the summed health of a set of nodes.
type Counts struct {
	RequiredTotal     int
	RequiredCompleted int
	Errors            int
	Warnings          int
}

// RollupCounts sums the counters of direct children. Children already carry their
// subtree totals, so this never walks deeper than one level.
func RollupCounts(children []model.Node) Counts {
	var c Counts
	for _, ch := range children {
		if ch.Status == nil {
			continue
		}
		c.RequiredTotal += ch.Status.RequiredTotal
		c.RequiredCompleted += ch.Status.RequiredCompleted
		c.Errors += ch.Status.Errors
		c.Warnings += ch.Status.Warnings
	}
	return c
}

// WorstRisk returns the most severe risk among children ("" if none carry one).
func WorstRisk(children []model.Node) model.Risk {
	var worst model.Risk
	for _, ch := range children {
		if ch.Status == nil {
			continue
		}
		if ch.Status.Risk.Rank() > worst.Rank() {
			worst = ch.Status.Risk
		}
	}
	return worst
}

// IsDone reports whether a node counts as finished for progress display.
func IsDone(n model.Node) bool {
	return n.Completion() == model.CompletionComplete
}

// ChildProgress counts direct children with a completion, and how many are complete.
// Children without a completion are ignored.
func ChildProgress(children []model.Node) (done, total int) {
	for _, ch := range children {
		if ch.Completion() == "" {
			continue
		}
		total++
		if IsDone(ch) {
			done++
		}
	}
	return done, total
}
