// Package hilbert maps 2-D coordinates onto a Hilbert space-filling curve,
// used to pre-sort a batch of vertices before incremental insertion so
// that spatially nearby vertices are inserted close together in time
// (shorter point-location walks, no effect on the resulting triangulation;
// spec.md §5).
package hilbert
