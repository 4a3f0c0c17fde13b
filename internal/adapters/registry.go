package adapters

import "github.com/Sardaar2003/fortigatex-sub001/internal/domain"

// Registry maps projects to their adapters. Built once at bootstrap,
// read-only afterwards.
type Registry struct {
	adapters map[domain.Project]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[domain.Project]Adapter, len(adapters))}
	for _, a := range adapters {
		if a == nil {
			continue
		}
		r.adapters[a.Project()] = a
	}
	return r
}

// Lookup returns the adapter for a project, (nil, false) when the
// project has no registered integration.
func (r *Registry) Lookup(p domain.Project) (Adapter, bool) {
	if r == nil {
		return nil, false
	}
	a, ok := r.adapters[p]
	return a, ok
}
