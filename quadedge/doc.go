// Package quadedge provides the arena-backed topological substrate every
// other gotin package builds on: an immutable Vertex record, a paged Edge
// Pool allocator producing stable int32-indexed directed half-edges, and
// the navigation/constraint-bit primitives layered over the pool.
//
// Each undirected mesh edge is represented as a pair of directed records
// sharing an even/odd index (2k primal, 2k+1 dual); the dual of an index
// is always index^1, so no pointer chasing is needed to find it. Within a
// triangle, Next/Prev walk the three edges of that face (so e, Next(e),
// Next(Next(e)) visits a triangle's boundary); Dual(e) is the opposite-
// direction half-edge shared with the neighbouring face, and the origin
// of Dual(e) is by construction e's destination. Pinwheel walks the
// half-edges around a single vertex by alternating Prev and Dual.
//
// Every directed edge's 32-bit packed constraint word (spec.md §3) lives
// on its dual (odd-indexed) record; the typed accessors in
// constraint_bits.go normalize either direction of an edge to that slot,
// so callers never need to reason about which physical record holds it.
//
// Errors:
//
//	ErrIndexOutOfRange - a region or line index exceeds its packed field width.
package quadedge
