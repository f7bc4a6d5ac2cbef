// Package constraint implements the Constraint Processor (spec.md §4.5):
// forcing a linear segment or a closed polygon ring into an existing
// *tin.Tin's triangulation by tunnelling through whatever edges cross it,
// then flood-filling the polygon's interior with a region index.
//
// Every operation here mutates the same *quadedge.Pool the owning Tin
// holds (via the exported accessors tin.Tin provides), so a constraint
// insertion and an ordinary incremental AddVertex interleave safely only
// under the caller's own synchronization — exactly the contract tin.Tin
// itself documents for its own mutators.
package constraint
