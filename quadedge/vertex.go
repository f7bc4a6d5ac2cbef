package quadedge

import (
	"math"

	"github.com/katalvlaran/gotin/kernel"
)

// statusBit is one of the four status flags packed into Vertex.status.
type statusBit uint8

const (
	// StatusSynthetic marks a vertex introduced by the engine itself
	// (a Steiner point, a tunnelled split point) rather than supplied by
	// the caller.
	StatusSynthetic statusBit = 1 << iota

	// StatusConstraintMember marks a vertex that terminates or lies on
	// at least one constraint segment.
	StatusConstraintMember

	// StatusWithheld marks a vertex staged by the caller but intentionally
	// excluded from triangulation (reserved for future external use; the
	// core engine never sets this bit itself).
	StatusWithheld

	// StatusNull marks the ghost sentinel, NullVertex.
	StatusNull
)

// Vertex is an immutable point record: (x, y, z, index, status, aux).
// Distinct logical vertices are distinguished by pointer identity, never
// by coordinate equality — two *Vertex values with equal coordinates are
// still different vertices unless they are the same pointer.
type Vertex struct {
	X, Y   float64
	Z      float32
	Index  int32
	status uint8
	aux    uint8
}

// NullVertex is the singleton "ghost" endpoint of hull edges: it closes
// the outer face of the triangulation. Its coordinates are NaN so that
// any arithmetic performed on it accidentally produces NaN rather than a
// plausible-looking finite result.
var NullVertex = &Vertex{
	X:      math.NaN(),
	Y:      math.NaN(),
	Index:  -1,
	status: uint8(StatusNull),
}

// NewVertex constructs a real vertex with the given coordinates and index.
func NewVertex(x, y float64, z float32, index int32) *Vertex {
	return &Vertex{X: x, Y: y, Z: z, Index: index}
}

// NewSyntheticVertex constructs a vertex flagged StatusSynthetic, for
// Steiner points introduced by constraint tunnelling or Ruppert refinement.
func NewSyntheticVertex(x, y float64, z float32, index int32) *Vertex {
	v := NewVertex(x, y, z, index)
	v.status = uint8(StatusSynthetic)

	return v
}

// Point converts v to the bare coordinate pair the kernel package's
// predicates consume.
func (v *Vertex) Point() kernel.Point { return kernel.Point{X: v.X, Y: v.Y} }

// IsNull reports whether v is the ghost sentinel NullVertex.
func (v *Vertex) IsNull() bool { return v == NullVertex || v.has(StatusNull) }

// IsSynthetic reports whether v was introduced by the engine rather than
// supplied by the caller.
func (v *Vertex) IsSynthetic() bool { return v.has(StatusSynthetic) }

// IsConstraintMember reports whether v terminates or lies on a constraint.
func (v *Vertex) IsConstraintMember() bool { return v.has(StatusConstraintMember) }

// IsWithheld reports whether v is staged but withheld from triangulation.
func (v *Vertex) IsWithheld() bool { return v.has(StatusWithheld) }

// MarkConstraintMember sets StatusConstraintMember. X, Y, and Index never
// change after construction; this status bit and Z (via UpdateZ) are the
// only pieces of a Vertex that legitimately evolve after creation, since
// whether a vertex participates in a constraint, and which Z value a merged
// duplicate keeps, are only known once later events occur.
func (v *Vertex) MarkConstraintMember() { v.status |= uint8(StatusConstraintMember) }

// UpdateZ overwrites v's Z value. Used by the TIN engine's vertex-merge
// path (MergeReplace, MergeAverage); X, Y, and Index remain fixed.
func (v *Vertex) UpdateZ(z float32) { v.Z = z }

func (v *Vertex) has(bit statusBit) bool { return v.status&uint8(bit) != 0 }

// Coincident reports whether v and other lie within the kernel's
// vertex-coincidence threshold of each other.
func Coincident(k *kernel.Kernel, v, other *Vertex) bool {
	if v.IsNull() || other.IsNull() {
		return false
	}
	dx := v.X - other.X
	dy := v.Y - other.Y
	d2 := dx*dx + dy*dy
	thresh := k.VertexCoincidenceThreshold()

	return d2 <= thresh*thresh
}
