// Package render turns a category tree into indented text.
package render

import (
	"bufio"
	"io"
	"iter"
	"strings"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

// DefaultIndent is the indentation unit for one hierarchy level.
const DefaultIndent = "  "

// Options configure rendering.
type Options struct {
	// Indent is prepended once per depth level. Empty selects
	// DefaultIndent.
	Indent string
}

func (o Options) unit() string {
	if o.Indent == "" {
		return DefaultIndent
	}
	return o.Indent
}

// Lines yields one line per category in depth-first stored order,
// top-level categories flush left and each deeper level indented one
// more unit. The sequence is finite and can be ranged over any number
// of times.
func Lines(root *model.Node, opts Options) iter.Seq[string] {
	unit := opts.unit()
	return func(yield func(string) bool) {
		if root != nil {
			emit(root, 0, unit, yield)
		}
	}
}

func emit(n *model.Node, depth int, unit string, yield func(string) bool) bool {
	for _, c := range n.Children {
		if !yield(strings.Repeat(unit, depth) + c.Name) {
			return false
		}
		if !emit(c, depth+1, unit, yield) {
			return false
		}
	}
	return true
}

// Text renders the whole tree, one line per category, each line
// terminated by a newline. An empty tree renders as the empty string.
func Text(root *model.Node, opts Options) string {
	var b strings.Builder
	for line := range Lines(root, opts) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Write streams the rendered tree to w.
func Write(w io.Writer, root *model.Node, opts Options) error {
	bw := bufio.NewWriter(w)
	for line := range Lines(root, opts) {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
