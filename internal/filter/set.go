package filter

import (
	"encoding/json"
	"sort"
)

// Set is a set of accepted facet values. It serialises as a sorted array.
type Set map[string]struct{}

func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		if v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s Set) Active() bool {
	return len(s) > 0
}

// Toggle adds v when absent and removes it otherwise.
func (s Set) Toggle(v string) {
	if s.Has(v) {
		delete(s, v)
		return
	}
	s[v] = struct{}{}
}

func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (s Set) Clone() Set {
	return NewSet(s.Values()...)
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *Set) UnmarshalJSON(raw []byte) error {
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return err
	}
	*s = NewSet(values...)
	return nil
}
