package model

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format is the declared encoding of an input file.
type Format string

const (
	FormatUnknown Format = ""
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
)

// IsValid returns true if the format is one cld can read.
func (f Format) IsValid() bool {
	return f == FormatCSV || f == FormatXLSX
}

// String returns a display name for the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "CSV"
	case FormatXLSX:
		return "XLSX"
	}
	return "unknown"
}

// xlsxMagic is the ZIP local-file-header signature; .xlsx workbooks are
// ZIP containers and always start with it.
var xlsxMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// DetectFormat decides the input format from the file name extension,
// falling back to content sniffing when the extension is absent or
// unrecognized (e.g. data arriving on stdin). Returns FormatUnknown if
// neither the name nor the bytes identify a supported format.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX
	case ".xls":
		// Legacy OLE workbooks are not ZIP containers; refuse to guess
		// so the loader can report a precise error.
		return FormatUnknown
	}

	if bytes.HasPrefix(data, xlsxMagic) {
		return FormatXLSX
	}
	if looksLikeText(data) {
		return FormatCSV
	}
	return FormatUnknown
}

// looksLikeText reports whether the leading bytes are plausible CSV:
// non-empty and free of NUL bytes in the first 512 bytes.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	probe := data
	if len(probe) > 512 {
		probe = probe[:512]
	}
	return !bytes.ContainsRune(probe, 0)
}
