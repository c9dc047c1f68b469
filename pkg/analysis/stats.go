// Package analysis computes summary metrics over a folded category
// tree.
package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

// Stats summarize the shape of one category tree.
type Stats struct {
	// Total counts categories at every level.
	Total int
	// PerLevel counts categories per depth, index 0 = top level.
	PerLevel [model.NumLevels]int
	// Leaves counts categories with no children, at any depth.
	Leaves int
	// MaxDepth is the deepest populated level, 0 for an empty tree.
	MaxDepth int
	// Branching describes the fan-out of the categories at each depth.
	Branching [model.NumLevels]BranchStats
}

// BranchStats describe the fan-out of categories at one depth.
type BranchStats struct {
	Mean   float64
	StdDev float64
	Max    int
}

// Summarize walks the tree once and fills Stats.
func Summarize(root *model.Node) Stats {
	var s Stats
	if root == nil {
		return s
	}

	var fanouts [model.NumLevels][]float64
	root.Walk(func(node *model.Node, depth int) {
		s.Total++
		if depth < model.NumLevels {
			s.PerLevel[depth]++
			fanouts[depth] = append(fanouts[depth], float64(node.Len()))
		}
		if node.Len() == 0 {
			s.Leaves++
		}
		if depth+1 > s.MaxDepth {
			s.MaxDepth = depth + 1
		}
	})

	for lvl, xs := range fanouts {
		if len(xs) == 0 {
			continue
		}
		b := BranchStats{Mean: stat.Mean(xs, nil)}
		if len(xs) > 1 {
			b.StdDev = stat.StdDev(xs, nil)
		}
		for _, x := range xs {
			if int(x) > b.Max {
				b.Max = int(x)
			}
		}
		s.Branching[lvl] = b
	}
	return s
}
