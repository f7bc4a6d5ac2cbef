// Package gotin is an incremental, constrained Delaunay triangulation (CDT)
// engine for building Triangulated Irregular Networks (TINs) in Go.
//
// 🚀 What is gotin?
//
//	A planar mesh library built around a quad-edge topology that brings
//	together:
//
//	  • A geometric kernel: orientation, in-circle and circumcircle
//	    predicates with an extended-precision fallback
//	  • An arena-backed quad-edge pool: stable integer-indexed edge
//	    records instead of a pointer graph
//	  • An incremental TIN engine: bootstrap, stochastic Lawson's-walk
//	    point location, Delaunay restoration by flipping
//	  • A constrained-edge processor: tunnelling insertion by edge flips
//	    (no separate cavity re-triangulation), polygon region flood-fill
//	  • A Ruppert mesh refiner: quality-driven Steiner point insertion
//	    with shell-indexed seditious-edge handling near acute corners
//
// ✨ Why choose gotin?
//
//   - Arena-based          — quad-edges are stable int32 indices, not
//     pointers; no cyclic-reference hazards
//   - Deterministic        — a fixed insertion order and RNG seed
//     reproduce the same edge pool, modulo free-list reuse
//   - Extensible           — constrained regions and Ruppert refinement
//     compose on top of the same quad-edge pool
//   - Narrow core          — interpolation, rasterization, contouring,
//     and file I/O are external collaborators against the interfaces in
//     the tin package, not part of this module
//
// Under the hood, everything is organized under five subpackages:
//
//	kernel/     — orientation / in-circle / circumcircle predicates and thresholds
//	quadedge/   — Vertex, Edge Pool, quad-edge navigation and packed constraint bits
//	tin/        — the TIN Engine: bootstrap, locator, incremental insert, flip
//	constraint/ — forced-edge insertion by flip tunnelling, region labelling
//	refine/     — Ruppert refinement (off-centers, encroachment, seditious edges)
//
// plus a small hilbert/ utility for optional Hilbert-curve vertex
// pre-ordering ahead of a bulk insert.
//
// Quick ASCII example, a unit square split along one diagonal:
//
//	(0,2)───(2,2)
//	  │    ╱   │
//	  │  ╱     │
//	(0,0)───(2,0)
//
// See SPEC_FULL.md and DESIGN.md in the module root for the full design
// rationale and the grounding ledger behind each package.
//
//	go get github.com/katalvlaran/gotin
package gotin
