package refine

import "container/heap"

// badTriangleItem is one candidate for quality-driven Steiner insertion.
// Ordering by the larger squared cross product among otherwise-equally
// skinny triangles mirrors Shewchuk's own largest-first bad-triangle
// selection, built on container/heap.
type badTriangleItem struct {
	edge    int32 // the directed edge tin.Triangle was discovered from
	crossSq float64
}

// badTriangleQueue is a max-heap on crossSq: container/heap's Pop always
// returns the worst (largest) remaining triangle.
type badTriangleQueue []*badTriangleItem

func (q badTriangleQueue) Len() int           { return len(q) }
func (q badTriangleQueue) Less(i, j int) bool { return q[i].crossSq > q[j].crossSq }
func (q badTriangleQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *badTriangleQueue) Push(x interface{}) {
	*q = append(*q, x.(*badTriangleItem))
}

func (q *badTriangleQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]

	return item
}

// popWorst drains candidates into a fresh heap and returns the single
// worst one. Refine rebuilds this heap every outer iteration from the
// mesh's current state rather than maintaining it incrementally across
// mutations: simpler to reason about without a compiler on hand, at the
// cost of an O(n log n) rebuild per Steiner insertion instead of an O(log
// n) incremental update.
func popWorst(candidates []*badTriangleItem) (*badTriangleItem, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	pq := badTriangleQueue(candidates)
	heap.Init(&pq)

	return heap.Pop(&pq).(*badTriangleItem), true
}
