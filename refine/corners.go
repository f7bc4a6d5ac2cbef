package refine

import (
	"math"

	"github.com/katalvlaran/gotin/quadedge"
	"github.com/katalvlaran/gotin/tin"
)

// buildCornerInfo computes each constraint vertex's minimum incident
// angle over every pair of its incident constraint edges, and flags it
// critical when that minimum falls below 60 degrees (spec.md §4.6
// "cornerInfo[v]"). A vertex touched by only one constraint edge has no
// angle to measure and is never critical.
//
// For a junction where more than two constraint edges meet, this takes
// the minimum over every pair rather than only angularly-adjacent pairs;
// junctions of that degree are rare in practice, and the wider
// comparison only ever makes a corner's criticality detection more
// conservative, never less.
func buildCornerInfo(segs []tin.Edge) map[*quadedge.Vertex]*CornerInfo {
	neighbors := make(map[*quadedge.Vertex][]*quadedge.Vertex)
	for _, s := range segs {
		neighbors[s.A] = append(neighbors[s.A], s.B)
		neighbors[s.B] = append(neighbors[s.B], s.A)
	}

	info := make(map[*quadedge.Vertex]*CornerInfo, len(neighbors))
	for v, ns := range neighbors {
		if len(ns) < 2 {
			info[v] = &CornerInfo{MinAngleRad: math.Pi, Critical: false}
			continue
		}

		minAngle := math.Pi
		for i := 0; i < len(ns); i++ {
			for j := i + 1; j < len(ns); j++ {
				a := angleAt(v.Point(), ns[i].Point(), ns[j].Point())
				if a < minAngle {
					minAngle = a
				}
			}
		}
		info[v] = &CornerInfo{MinAngleRad: minAngle, Critical: minAngle < math.Pi/3}
	}

	return info
}
