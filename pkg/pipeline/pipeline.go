// Package pipeline runs one complete upload cycle: decode the table,
// fold the tree, render the text.
package pipeline

import (
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/hierarchy"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/loader"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/render"
)

// Options configure one cycle.
type Options struct {
	Policy hierarchy.EmptyCellPolicy
	Indent string
}

// Result is everything one cycle produces.
type Result struct {
	Table *model.Table
	Tree  *model.Node
	Text  string
}

// Render runs a full cycle over raw file bytes. Each call stands
// alone; nothing carries over between invocations.
func Render(name string, data []byte, opts Options) (Result, error) {
	table, err := loader.LoadBytes(name, data)
	if err != nil {
		return Result{}, err
	}
	return fromTable(table, opts), nil
}

// RenderFile is Render for a file on disk.
func RenderFile(path string, opts Options) (Result, error) {
	table, err := loader.Load(path)
	if err != nil {
		return Result{}, err
	}
	return fromTable(table, opts), nil
}

func fromTable(table *model.Table, opts Options) Result {
	tree := hierarchy.Fold(table, hierarchy.Options{Policy: opts.Policy})
	return Result{
		Table: table,
		Tree:  tree,
		Text:  render.Text(tree, render.Options{Indent: opts.Indent}),
	}
}
