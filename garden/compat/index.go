// Package compat implements the Compatibility Index: an in-memory,
// symmetric lookup of pairwise species affinity, built once per
// process and treated as immutable for the lifetime of a request.
//
// Adapted from lixenwraith-vi-fighter/genetic/registry/registry.go's
// RWMutex-guarded map of immutable-after-construction entries; the
// write path here is collapsed to a single construction step since the
// index never mutates mid-request.
package compat

import (
	"sync"

	"github.com/fernwood-labs/huertogen/garden"
)

// Index is the built compatibility lookup. Zero value is not usable;
// construct with New or Build.
type Index struct {
	mu      sync.RWMutex
	entries map[string]map[string]float64
}

// New returns an empty Index; every lookup on it yields 0. Build
// creates and fills its own Index rather than loading into this one.
func New() *Index {
	return &Index{entries: make(map[string]map[string]float64)}
}

// Build loads a full entry set into a new Index. Returns a
// *garden.CatalogueError if, and only if, loading itself fails; lookups
// never fail once the index is built, so Build is the only fallible
// entry point.
func Build(entries []garden.CompatibilityEntry) (*Index, error) {
	idx := New()
	for _, e := range entries {
		if e.Species1 == "" || e.Species2 == "" {
			return nil, garden.NewCatalogueError("compatibility entry missing species name")
		}
		if e.Score < -1 || e.Score > 1 {
			return nil, garden.NewCatalogueError("compatibility score out of [-1, 1] range")
		}
		idx.set(e.Species1, e.Species2, e.Score)
	}
	return idx, nil
}

func (idx *Index) set(a, b string, score float64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.entries[a] == nil {
		idx.entries[a] = make(map[string]float64)
	}
	idx.entries[a][b] = score
}

// Lookup returns the compatibility score between two species. It
// checks map[a][b], then map[b][a], and finally defaults to 0
// (neutral) when no entry exists in either direction.
func (idx *Index) Lookup(a, b string) float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if m, ok := idx.entries[a]; ok {
		if v, ok := m[b]; ok {
			return v
		}
	}
	if m, ok := idx.entries[b]; ok {
		if v, ok := m[a]; ok {
			return v
		}
	}
	return 0
}

// Size returns the number of distinct "from" species with at least one
// recorded entry; exposed for diagnostics/tests only.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}
