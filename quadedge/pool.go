package quadedge

// pagePairs is the number of quad-edge pairs per page (spec.md §4.2: "typical
// page ≈ 1024 edge pairs"). pageRecords is the corresponding number of
// individual directed-edge records (two per pair: primal + dual).
const pagePairs = 1024
const pageRecords = pagePairs * 2

// edgeRecord is one directed half-edge: its origin vertex, the next/prev
// half-edges within its enclosing triangle, and (meaningfully only on the
// dual/odd-indexed record of a pair) the packed constraint word.
type edgeRecord struct {
	orig       *Vertex
	next, prev int32
	constraint uint32
}

// Pool is the paged quad-edge allocator (spec.md §4.2). Indices are stable
// for the lifetime of a pair: allocate-then-free-then-allocate on an empty
// free-list reuses the same index, which keeps test fixtures reproducible.
type Pool struct {
	pages    [][]edgeRecord
	live     int32 // number of records ever handed out by growth (excludes free-list reuse)
	freeList []int32
	count    int32 // number of currently allocated pairs
	epoch    uint64
}

// NewPool returns an empty Edge Pool.
func NewPool() *Pool { return &Pool{} }

// Allocate obtains a quad-edge pair with primal origin a and dual origin b
// (equivalently: a directed edge a->b whose destination is b, since the
// destination of any edge is defined as the origin of its dual). The pair
// comes from the free-list when non-empty, else from the current page
// (growing the pool by one page when the current page is full). Next/Prev
// of both new records point to themselves until the caller threads them
// into a face loop. Complexity: O(1) amortized.
func (p *Pool) Allocate(a, b *Vertex) int32 {
	var base int32
	if n := len(p.freeList); n > 0 {
		base = p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
	} else {
		base = p.live
		p.live += 2
		p.ensureCapacity(p.live)
	}

	pr := p.record(base)
	dr := p.record(base + 1)
	*pr = edgeRecord{orig: a, next: base, prev: base}
	*dr = edgeRecord{orig: b, next: base + 1, prev: base + 1}
	p.count++

	return base
}

// Free pushes the pair containing e onto the free-list. It does not clear
// ring pointers or the constraint word (spec.md §4.2): callers that reuse
// the index via a subsequent Allocate overwrite them anyway, and this
// implementation marks both records' origin nil so IterAllocated and
// IsLive can distinguish a freed pair from a live one in constant time.
func (p *Pool) Free(e int32) {
	base := BaseRef(e)
	p.record(base).orig = nil
	p.record(base + 1).orig = nil
	p.freeList = append(p.freeList, base)
	p.count--
}

// IsLive reports whether e's pair is currently allocated.
func (p *Pool) IsLive(e int32) bool {
	base := BaseRef(e)
	if base < 0 || base >= p.live {
		return false
	}

	return p.record(base).orig != nil
}

// Len returns the number of currently allocated quad-edge pairs.
func (p *Pool) Len() int32 { return p.count }

// Epoch returns a counter bumped by Clear, so long-lived iterators can
// detect that the pool they were built against has been reset.
func (p *Pool) Epoch() uint64 { return p.epoch }

// IterAllocated returns the base (even) index of every currently allocated
// pair, in ascending order. Complexity: O(live capacity).
func (p *Pool) IterAllocated() []int32 {
	out := make([]int32, 0, p.count)
	for i := int32(0); i < p.live; i += 2 {
		if p.record(i).orig != nil {
			out = append(out, i)
		}
	}

	return out
}

// Clear discards every page, resetting the pool to empty and invalidating
// any previously returned index. Bumps Epoch.
func (p *Pool) Clear() {
	p.pages = nil
	p.live = 0
	p.freeList = nil
	p.count = 0
	p.epoch++
}

func (p *Pool) ensureCapacity(n int32) {
	for int32(len(p.pages))*pageRecords < n {
		p.pages = append(p.pages, make([]edgeRecord, pageRecords))
	}
}

func (p *Pool) record(i int32) *edgeRecord {
	page := i / pageRecords
	local := i % pageRecords

	return &p.pages[page][local]
}

// BaseRef returns the primal (lowest-index, even) side of e's pair.
func BaseRef(e int32) int32 { return e &^ 1 }

// Dual returns the other half of e's quad-edge pair: Dual(Dual(e)) == e.
func Dual(e int32) int32 { return e ^ 1 }
