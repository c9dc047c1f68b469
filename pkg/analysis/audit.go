package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

// FindingKind classifies a data quality finding.
type FindingKind string

const (
	// FindingCaseCollision marks sibling names that differ only by case.
	FindingCaseCollision FindingKind = "case-collision"
	// FindingDuplicateRow marks a path contributed by more than one row.
	FindingDuplicateRow FindingKind = "duplicate-row"
	// FindingGapCell marks a value that sits behind a blank cell.
	FindingGapCell FindingKind = "gap-cell"
)

// Finding is one data quality issue found in the source table.
type Finding struct {
	Kind   FindingKind
	Path   string // breadcrumb of the affected branch
	Detail string // human readable description
	Rows   []int  // source file row numbers, header is row 1
}

// AuditResult summarizes the findings for one table.
type AuditResult struct {
	RowCount       int
	Findings       []Finding
	DuplicateRows  int
	GapCells       int
	CaseCollisions int
}

// Clean reports whether the audit found nothing to flag.
func (r AuditResult) Clean() bool {
	return len(r.Findings) == 0
}

// Audit checks the source table for common spreadsheet mistakes: rows
// that repeat an existing path, values stranded behind a blank cell
// (dropped unless a policy bridges them), and sibling names that
// differ only by case. Row numbers match the source file, counting the
// header as row 1. Findings come back sorted by kind, then path.
func Audit(table *model.Table) AuditResult {
	var result AuditResult
	if table == nil {
		return result
	}
	result.RowCount = len(table.Rows)

	seenPaths := make(map[string][]int)
	// parent path -> lowercased name -> distinct spellings seen
	spellings := make(map[string]map[string][]string)

	for i, row := range table.Rows {
		fileRow := i + 2
		if row.IsBlank() {
			continue
		}

		path := row.Path()
		key := model.JoinPath(path)
		seenPaths[key] = append(seenPaths[key], fileRow)

		blankAt := -1
		for level, cell := range row {
			if cell == "" {
				if blankAt < 0 {
					blankAt = level
				}
				continue
			}
			if blankAt >= 0 {
				result.Findings = append(result.Findings, Finding{
					Kind:   FindingGapCell,
					Path:   key,
					Detail: fmt.Sprintf("%q in %s follows a blank %s", cell, model.RequiredColumns[level], model.RequiredColumns[blankAt]),
					Rows:   []int{fileRow},
				})
				result.GapCells++
			}
		}

		for level, name := range path {
			parent := model.JoinPath(path[:level])
			lower := strings.ToLower(name)
			if spellings[parent] == nil {
				spellings[parent] = make(map[string][]string)
			}
			if !containsString(spellings[parent][lower], name) {
				spellings[parent][lower] = append(spellings[parent][lower], name)
			}
		}
	}

	for key, rows := range seenPaths {
		if len(rows) > 1 {
			sort.Ints(rows)
			result.Findings = append(result.Findings, Finding{
				Kind:   FindingDuplicateRow,
				Path:   key,
				Detail: fmt.Sprintf("%s appears %d times", key, len(rows)),
				Rows:   rows,
			})
			result.DuplicateRows++
		}
	}

	for parent, byLower := range spellings {
		for _, variants := range byLower {
			if len(variants) < 2 {
				continue
			}
			sort.Strings(variants)
			path := variants[0]
			if parent != "" {
				path = parent + model.PathSeparator + variants[0]
			}
			result.Findings = append(result.Findings, Finding{
				Kind:   FindingCaseCollision,
				Path:   path,
				Detail: fmt.Sprintf("sibling names differ only by case: %s", strings.Join(variants, ", ")),
			})
			result.CaseCollisions++
		}
	}

	sort.Slice(result.Findings, func(i, j int) bool {
		if result.Findings[i].Kind != result.Findings[j].Kind {
			return result.Findings[i].Kind < result.Findings[j].Kind
		}
		return result.Findings[i].Path < result.Findings[j].Path
	})
	return result
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
