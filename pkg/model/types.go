package model

import "strings"

// Level identifies one of the four hierarchy levels, top to bottom.
type Level int

const (
	LevelParent Level = iota
	LevelMaster
	LevelSub1
	LevelSub2
)

// NumLevels is the fixed depth of the category hierarchy.
const NumLevels = 4

// RequiredColumns are the input column headers, in level order.
// Matching is exact and case-sensitive (after trimming surrounding
// whitespace from the header cell).
var RequiredColumns = [NumLevels]string{
	"PARENT CATEGORY",
	"MASTER CATEGORY",
	"SUBCATEGORY 1",
	"SUBCATEGORY 2",
}

// IsValid returns true if the level is one of the four recognized levels.
func (l Level) IsValid() bool {
	return l >= LevelParent && l < NumLevels
}

// Column returns the input column header for the level.
func (l Level) Column() string {
	if !l.IsValid() {
		return ""
	}
	return RequiredColumns[l]
}

// String returns a short display name for the level.
func (l Level) String() string {
	switch l {
	case LevelParent:
		return "parent"
	case LevelMaster:
		return "master"
	case LevelSub1:
		return "sub1"
	case LevelSub2:
		return "sub2"
	}
	return "invalid"
}

// Row is one input record: a category name per level, in level order.
// Cells are already whitespace-trimmed by the loader; an empty string
// means the cell was blank. Rows are immutable once read.
type Row [NumLevels]string

// IsBlank returns true if every cell in the row is empty.
func (r Row) IsBlank() bool {
	for _, v := range r {
		if v != "" {
			return false
		}
	}
	return true
}

// Path returns the leading non-empty cells of the row, stopping at the
// first empty cell. This is the row's contribution to the tree under the
// default end-of-path interpretation of blanks.
func (r Row) Path() []string {
	for i, v := range r {
		if v == "" {
			return append([]string(nil), r[:i]...)
		}
	}
	return append([]string(nil), r[:]...)
}

// Table is an ordered set of rows read from one input file, plus enough
// provenance to describe where it came from.
type Table struct {
	SourceName string   // file name as uploaded/opened (display only)
	Format     Format   // detected input format
	Headers    []string // full header row, extra columns included
	Rows       []Row    // data rows in file order
}

// IsEmpty returns true if the table has a header but no data rows.
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// PathSeparator joins category names into a breadcrumb like
// "Fruit > Citrus > Orange". Used for search, exports, and display.
const PathSeparator = " > "

// JoinPath renders a slice of category names as a breadcrumb string.
func JoinPath(names []string) string {
	return strings.Join(names, PathSeparator)
}
