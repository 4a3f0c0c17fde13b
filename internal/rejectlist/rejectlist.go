// Package rejectlist holds the static business-rule data (blocked
// states, blocked card BIN prefixes) evaluated before or alongside
// vendor invocation. Lists are built once at process start and passed
// by reference into the adapters; they are never mutated afterwards.
package rejectlist

import "strings"

// Set: immutable membership set with case-insensitive lookup.
type Set struct {
	values map[string]struct{}
}

func NewSet(values ...string) *Set {
	s := &Set{values: make(map[string]struct{}, len(values))}
	for _, v := range values {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		s.values[v] = struct{}{}
	}
	return s
}

func (s *Set) Contains(v string) bool {
	if s == nil {
		return false
	}
	_, ok := s.values[strings.ToUpper(strings.TrimSpace(v))]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}
