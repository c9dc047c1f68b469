package loader

import (
	"fmt"
	"strings"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

// SchemaError reports required columns that are absent from the input
// header row. Missing is in canonical column order.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Missing, ", "))
}

// ParseError reports input bytes that could not be decoded as the
// declared format (corrupt workbook, malformed CSV quoting, or an
// unrecognized format altogether).
type ParseError struct {
	Format model.Format
	Err    error
}

func (e *ParseError) Error() string {
	if e.Format == model.FormatUnknown {
		return fmt.Sprintf("cannot read input: %v", e.Err)
	}
	return fmt.Sprintf("cannot read input as %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
