package hierarchy

import "fmt"

// EmptyCellPolicy controls how Fold treats an empty cell that appears
// before the end of a row.
type EmptyCellPolicy int

const (
	// PolicyEndPath stops the row's path at the first empty cell.
	PolicyEndPath EmptyCellPolicy = iota
	// PolicyRepeat fills an empty cell with the nearest value above it
	// in the same column, the way merged spreadsheet cells export.
	PolicyRepeat
	// PolicyBridge skips the empty level and attaches deeper names
	// under the last non-empty ancestor.
	PolicyBridge
)

func (p EmptyCellPolicy) String() string {
	switch p {
	case PolicyEndPath:
		return "end-path"
	case PolicyRepeat:
		return "repeat"
	case PolicyBridge:
		return "bridge"
	}
	return fmt.Sprintf("EmptyCellPolicy(%d)", int(p))
}

// ParsePolicy maps a flag or config value to a policy. The empty
// string selects the default.
func ParsePolicy(s string) (EmptyCellPolicy, error) {
	switch s {
	case "", "end-path":
		return PolicyEndPath, nil
	case "repeat":
		return PolicyRepeat, nil
	case "bridge":
		return PolicyBridge, nil
	}
	return PolicyEndPath, fmt.Errorf("unknown empty-cell policy %q (want end-path, repeat, or bridge)", s)
}
