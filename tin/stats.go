package tin

import (
	"sync/atomic"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/katalvlaran/gotin/quadedge"
)

// Stats is a snapshot of a Tin's diagnostic counters: vertex/edge/triangle
// counts plus point-location and predicate-evaluation telemetry.
type Stats struct {
	VertexCount    int
	EdgeCount      int
	TriangleCount  int
	Locked         bool
	Conformant     bool

	WalkCount     int64
	TotalSteps    int64
	ExteriorWalks int64

	PredicateTests     int64
	PredicateFallbacks int64
	FallbackRate       float64

	MergeLogEntries int
}

// Stats computes a Stats snapshot. Complexity: O(live pool capacity), since
// triangle and edge counts are derived by a single pass over the pool.
func (t *Tin) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	triangles, edges := t.countTrianglesAndEdgesLocked()

	return Stats{
		VertexCount:        t.countVerticesLocked(),
		EdgeCount:          edges,
		TriangleCount:      triangles,
		Locked:             t.locked,
		Conformant:         t.conformant,
		WalkCount:          atomic.LoadInt64(&t.diag.walkCount),
		TotalSteps:         atomic.LoadInt64(&t.diag.totalSteps),
		ExteriorWalks:      atomic.LoadInt64(&t.diag.exteriorWalks),
		PredicateTests:     t.kernel.TestCount(),
		PredicateFallbacks: t.kernel.FallbackCount(),
		FallbackRate:       t.kernel.FallbackRate(),
		MergeLogEntries:    len(t.mergeLog),
	}
}

func (t *Tin) countVerticesLocked() int {
	seen := make(map[*quadedge.Vertex]struct{})
	for _, base := range t.pool.IterAllocated() {
		for _, e := range [2]int32{base, base ^ 1} {
			v := t.pool.Orig(e)
			if !v.IsNull() {
				seen[v] = struct{}{}
			}
		}
	}

	return len(seen)
}

func (t *Tin) countTrianglesAndEdgesLocked() (triangles, edges int) {
	bases := t.pool.IterAllocated()
	edges = len(bases)
	seenFace := make(map[int32]bool, edges)
	for _, base := range bases {
		for _, e := range [2]int32{base, base ^ 1} {
			if seenFace[e] || t.pool.IsGhost(e) {
				continue
			}
			tri := t.pool.Triangle(e)
			seenFace[tri[0]] = true
			seenFace[tri[1]] = true
			seenFace[tri[2]] = true
			triangles++
		}
	}

	return triangles, edges
}

// String renders Stats as a go-pretty table, suitable for log output or a
// terminal diagnostics dump.
func (s Stats) String() string {
	w := table.NewWriter()
	w.SetTitle("TIN Stats")
	w.AppendHeader(table.Row{"Metric", "Value"})
	w.AppendRow(table.Row{"Vertices", s.VertexCount})
	w.AppendRow(table.Row{"Edges", s.EdgeCount})
	w.AppendRow(table.Row{"Triangles", s.TriangleCount})
	w.AppendRow(table.Row{"Locked", s.Locked})
	w.AppendRow(table.Row{"Conformant", s.Conformant})
	w.AppendRow(table.Row{"Walks", s.WalkCount})
	w.AppendRow(table.Row{"Walk steps", s.TotalSteps})
	w.AppendRow(table.Row{"Exterior walks", s.ExteriorWalks})
	w.AppendRow(table.Row{"Predicate tests", s.PredicateTests})
	w.AppendRow(table.Row{"Predicate fallbacks", s.PredicateFallbacks})
	w.AppendRow(table.Row{"Fallback rate", s.FallbackRate})
	w.AppendRow(table.Row{"Merge log entries", s.MergeLogEntries})

	return w.Render()
}
