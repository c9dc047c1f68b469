package loader

import (
	"bytes"
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSX decodes a workbook's first sheet into a header row plus data
// records. GetRows drops trailing empty cells, so records are padded
// back out to the header width before use.
func readXLSX(data []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("sheet is empty")
	}

	headers := rows[0]
	records := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make([]string, len(headers))
		for i := range headers {
			if i < len(row) {
				record[i] = coerceCell(row[i])
			}
		}
		records = append(records, record)
	}
	return headers, records, nil
}

// coerceCell normalizes the string form of a spreadsheet cell. The one
// rule: a numeric cell whose text carries only a zero fraction (the
// "123.0" artifact of float-typed category codes) is rendered without
// the decimal point. Anything else is preserved exactly, zero-padded
// codes like "007" and genuine decimals like "4.5" included, so
// category names are never silently altered.
func coerceCell(s string) string {
	dot := strings.IndexByte(s, '.')
	if dot < 1 {
		return s
	}
	intPart, frac := s[:dot], s[dot+1:]
	if frac == "" {
		return s
	}
	for i := 0; i < len(frac); i++ {
		if frac[i] != '0' {
			return s
		}
	}
	start := 0
	if intPart[0] == '-' || intPart[0] == '+' {
		start = 1
	}
	if start == len(intPart) {
		return s
	}
	for i := start; i < len(intPart); i++ {
		if intPart[i] < '0' || intPart[i] > '9' {
			return s
		}
	}
	return intPart
}
