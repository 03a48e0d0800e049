// Package registry collects the block kernels that run one biquad section
// over a buffer and picks the best one for the running CPU.
package registry

import (
	"cmp"
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are biquad transfer coefficients (a0 normalized to 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// History is the Direct Form I memory of one section: the two most recent
// inputs (X1 newest) and the two most recent outputs (Y1 newest).
type History struct {
	X1, X2 float64
	Y1, Y2 float64
}

// ProcessFn runs one biquad section over src, writing dst, and returns the
// advanced history. dst and src have equal length and may be the same slice.
type ProcessFn func(c Coefficients, h History, dst, src []float64) History

// OpEntry is one registered kernel.
type OpEntry struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int
	Process   ProcessFn
}

// OpRegistry stores the kernels known to the process. Entries are kept in
// descending priority; equal priorities keep registration order.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
}

// Global is filled by the init functions of the kernel packages.
var Global = &OpRegistry{}

// Register adds a kernel.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	slices.SortStableFunc(r.entries, func(a, b OpEntry) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
}

// Lookup returns the highest-priority kernel the features support, or nil.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := slices.IndexFunc(r.entries, func(e OpEntry) bool {
		return cpu.Supports(features, e.SIMDLevel)
	})
	if i < 0 {
		return nil
	}

	entry := r.entries[i]
	return &entry
}

// ListEntries returns a copy of the entries in lookup order.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.entries)
}
