package nav

import "sort"

// ExpandSet is an immutable set of node ids. Every transition returns a new set and
// leaves the receiver untouched, so old and new states can be compared directly.
type ExpandSet struct {
	m map[string]struct{}
}

func NewExpandSet(ids ...string) ExpandSet {
	return ExpandSet{}.With(ids...)
}

func (s ExpandSet) Has(id string) bool {
	_, ok := s.m[id]
	return ok
}

func (s ExpandSet) Len() int { return len(s.m) }

func (s ExpandSet) clone(extra int) map[string]struct{} {
	m := make(map[string]struct{}, len(s.m)+extra)
	for k := range s.m {
		m[k] = struct{}{}
	}
	return m
}

func (s ExpandSet) With(ids ...string) ExpandSet {
	m := s.clone(len(ids))
	for _, id := range ids {
		if id != "" {
			m[id] = struct{}{}
		}
	}
	return ExpandSet{m: m}
}

func (s ExpandSet) Without(ids ...string) ExpandSet {
	m := s.clone(0)
	for _, id := range ids {
		delete(m, id)
	}
	return ExpandSet{m: m}
}

func (s ExpandSet) Toggle(id string) ExpandSet {
	if s.Has(id) {
		return s.Without(id)
	}
	return s.With(id)
}

// Intersect keeps ids present in both sets.
func (s ExpandSet) Intersect(o ExpandSet) ExpandSet {
	m := map[string]struct{}{}
	for k := range s.m {
		if o.Has(k) {
			m[k] = struct{}{}
		}
	}
	return ExpandSet{m: m}
}

// Minus keeps ids of s that are not in o.
func (s ExpandSet) Minus(o ExpandSet) ExpandSet {
	m := map[string]struct{}{}
	for k := range s.m {
		if !o.Has(k) {
			m[k] = struct{}{}
		}
	}
	return ExpandSet{m: m}
}

func (s ExpandSet) Equal(o ExpandSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for k := range s.m {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// IDs returns the members sorted.
func (s ExpandSet) IDs() []string {
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
