package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
)

// utf8BOM is the byte-order mark Excel prepends when exporting
// "CSV UTF-8" files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readCSV decodes comma-separated text into a header row plus data
// records. Ragged rows are tolerated (missing trailing cells read as
// empty); cell text is preserved verbatim apart from the whitespace
// trim applied later when rows are built.
func readCSV(data []byte) ([]string, [][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var headers []string
	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if headers == nil {
			headers = record
			continue
		}
		records = append(records, record)
	}

	if headers == nil {
		return nil, nil, errors.New("file is empty")
	}
	return headers, records, nil
}
