// Package hierarchy folds flat category rows into the four-level tree.
package hierarchy

import (
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

// Options configure a fold.
type Options struct {
	Policy EmptyCellPolicy
}

// Fold builds the category tree from the table's rows. Rows are
// visited top to bottom and names attach in first-seen order, so the
// same input always produces the same tree. Fully blank rows are
// skipped.
func Fold(table *model.Table, opts Options) *model.Node {
	root := model.NewRoot()
	if table == nil {
		return root
	}

	var carry model.Row
	for _, row := range table.Rows {
		if row.IsBlank() {
			continue
		}

		switch opts.Policy {
		case PolicyRepeat:
			for lvl := range carry {
				if row[lvl] != "" {
					carry[lvl] = row[lvl]
				}
			}
			insert(root, carry.Path())
		case PolicyBridge:
			node := root
			for _, name := range row {
				if name == "" {
					continue
				}
				node = node.EnsureChild(name)
			}
		default:
			insert(root, row.Path())
		}
	}
	return root
}

func insert(root *model.Node, path []string) {
	node := root
	for _, name := range path {
		node = node.EnsureChild(name)
	}
}
