// Package loader reads category workbooks (CSV or XLSX) into ordered
// row tables. It is the only place input bytes are interpreted; every
// failure surfaces as a *SchemaError or *ParseError.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

// Load reads the file at path into a Table.
func Load(path string) (*model.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	return LoadBytes(filepath.Base(path), data)
}

// LoadBytes parses raw file bytes into a Table. The name is used for
// format detection and provenance only; it does not need to exist on
// disk (uploads and stdin both come through here).
func LoadBytes(name string, data []byte) (*model.Table, error) {
	format := model.DetectFormat(name, data)

	var (
		headers []string
		records [][]string
		err     error
	)
	switch format {
	case model.FormatCSV:
		headers, records, err = readCSV(data)
	case model.FormatXLSX:
		headers, records, err = readXLSX(data)
	default:
		if strings.EqualFold(filepath.Ext(name), ".xls") {
			return nil, &ParseError{Err: errors.New("legacy .xls workbooks are not supported; re-save the file as .xlsx")}
		}
		return nil, &ParseError{Err: fmt.Errorf("unrecognized file format for %q (expected .csv or .xlsx)", name)}
	}
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}

	cols, schemaErr := resolveColumns(headers)
	if schemaErr != nil {
		return nil, schemaErr
	}

	rows := make([]model.Row, 0, len(records))
	for _, record := range records {
		var row model.Row
		for level := 0; level < model.NumLevels; level++ {
			idx := cols[level]
			if idx < len(record) {
				row[level] = strings.TrimSpace(record[idx])
			}
		}
		rows = append(rows, row)
	}

	return &model.Table{
		SourceName: name,
		Format:     format,
		Headers:    headers,
		Rows:       rows,
	}, nil
}

// resolveColumns maps each required column to its index in the header
// row. Headers are matched exactly (case-sensitive) after trimming
// surrounding whitespace; if a header repeats, the first occurrence
// wins. Extra columns are ignored.
func resolveColumns(headers []string) ([model.NumLevels]int, *SchemaError) {
	byName := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if _, seen := byName[h]; !seen {
			byName[h] = i
		}
	}

	var cols [model.NumLevels]int
	var missing []string
	for level, name := range model.RequiredColumns {
		idx, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[level] = idx
	}
	if len(missing) > 0 {
		return cols, &SchemaError{Missing: missing}
	}
	return cols, nil
}
