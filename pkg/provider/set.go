package provider

import (
	"fmt"
	"sort"

	"github.com/sqlshape/sqlshape/pkg/dialect"
)

// Set is an explicit collection of providers keyed by dialect. Hosts build
// one at startup with the dialects they need; there is no process-global
// registration, so two sets in one process never interfere.
type Set struct {
	providers map[dialect.ID]Provider
}

// NewSet builds a set from the given providers. Registering two providers
// for the same dialect panics.
func NewSet(providers ...Provider) *Set {
	s := &Set{providers: make(map[dialect.ID]Provider, len(providers))}
	for _, p := range providers {
		s.Register(p)
	}
	return s
}

// Register adds a provider to the set.
func (s *Set) Register(p Provider) {
	id := p.Dialect()
	if _, ok := s.providers[id]; ok {
		panic(fmt.Sprintf("provider: duplicate provider for dialect %q", id))
	}
	s.providers[id] = p
}

// Get returns the provider for the dialect or ErrProviderNotFound.
func (s *Set) Get(id dialect.ID) (Provider, error) {
	p, ok := s.providers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotFound, id)
	}
	return p, nil
}

// Dialects returns the registered dialect IDs in lexicographic order.
func (s *Set) Dialects() []dialect.ID {
	out := make([]dialect.ID, 0, len(s.providers))
	for id := range s.providers {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
