// Package refine implements the Ruppert Refiner (spec.md §4.6):
// quality-driven Steiner point insertion that removes encroached
// constraint segments and triangles below a minimum-angle bound, while
// guaranteeing termination near acute input corners via shell-indexed
// seditious-edge detection.
//
// Refine operates on an already-bootstrapped, already-constrained
// *tin.Tin entirely through its exported surface (AddVertex, Navigator,
// Pool, GetTriangles/GetEdges): every actual mesh mutation — a segment
// split or a bad-triangle Steiner insertion — is just another vertex
// going through the TIN Engine's own incremental-insertion and
// Delaunay-restoration path, so this package never touches quad-edge
// pointers directly.
package refine
