package analysis

import (
	"math"
	"testing"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

func sampleTree() *model.Node {
	root := model.NewRoot()
	fruit := root.EnsureChild("Fruit")
	citrus := fruit.EnsureChild("Citrus")
	citrus.EnsureChild("Orange")
	citrus.EnsureChild("Lemon")
	fruit.EnsureChild("Berry").EnsureChild("Strawberry")
	return root
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleTree())

	if s.Total != 6 {
		t.Errorf("Expected 6 categories, got %d", s.Total)
	}
	if s.PerLevel != [model.NumLevels]int{1, 2, 3, 0} {
		t.Errorf("Expected per-level counts [1 2 3 0], got %v", s.PerLevel)
	}
	if s.Leaves != 3 {
		t.Errorf("Expected 3 leaves, got %d", s.Leaves)
	}
	if s.MaxDepth != 3 {
		t.Errorf("Expected max depth 3, got %d", s.MaxDepth)
	}
}

func TestSummarize_Branching(t *testing.T) {
	s := Summarize(sampleTree())

	// One top-level category with two children.
	top := s.Branching[0]
	if top.Mean != 2 || top.Max != 2 {
		t.Errorf("Expected top-level fan-out mean 2 max 2, got %+v", top)
	}
	if top.StdDev != 0 {
		t.Errorf("Expected zero spread for a single sample, got %f", top.StdDev)
	}

	// Citrus has two children, Berry one.
	second := s.Branching[1]
	if second.Mean != 1.5 || second.Max != 2 {
		t.Errorf("Expected second-level fan-out mean 1.5 max 2, got %+v", second)
	}
	if math.Abs(second.StdDev-math.Sqrt(0.5)) > 1e-9 {
		t.Errorf("Expected sample stddev sqrt(0.5), got %f", second.StdDev)
	}

	// All third-level categories are leaves.
	third := s.Branching[2]
	if third.Mean != 0 || third.Max != 0 {
		t.Errorf("Expected leaf level fan-out zero, got %+v", third)
	}
}

func TestSummarize_EmptyTree(t *testing.T) {
	s := Summarize(model.NewRoot())
	if s.Total != 0 || s.Leaves != 0 || s.MaxDepth != 0 {
		t.Errorf("Expected zero stats for empty tree, got %+v", s)
	}

	s = Summarize(nil)
	if s.Total != 0 {
		t.Errorf("Expected zero stats for nil root, got %+v", s)
	}
}

func TestSummarize_FullDepth(t *testing.T) {
	root := model.NewRoot()
	root.EnsureChild("A").EnsureChild("B").EnsureChild("C").EnsureChild("D")

	s := Summarize(root)
	if s.MaxDepth != model.NumLevels {
		t.Errorf("Expected max depth %d, got %d", model.NumLevels, s.MaxDepth)
	}
	if s.PerLevel != [model.NumLevels]int{1, 1, 1, 1} {
		t.Errorf("Expected one category per level, got %v", s.PerLevel)
	}
	if s.Leaves != 1 {
		t.Errorf("Expected single leaf, got %d", s.Leaves)
	}
}
