package model

import "testing"

func TestDetectFormat_ByExtension(t *testing.T) {
	cases := []struct {
		name string
		want Format
	}{
		{"categories.csv", FormatCSV},
		{"categories.CSV", FormatCSV},
		{"categories.xlsx", FormatXLSX},
		{"categories.XLSX", FormatXLSX},
		{"categories.xlsm", FormatXLSX},
		{"categories.xls", FormatUnknown},
	}
	for _, tc := range cases {
		if got := DetectFormat(tc.name, nil); got != tc.want {
			t.Errorf("DetectFormat(%q): expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestDetectFormat_SniffsZipMagic(t *testing.T) {
	data := append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte("rest of archive")...)
	if got := DetectFormat("upload", data); got != FormatXLSX {
		t.Errorf("Expected FormatXLSX from ZIP magic, got %v", got)
	}
}

func TestDetectFormat_SniffsTextAsCSV(t *testing.T) {
	data := []byte("PARENT CATEGORY,MASTER CATEGORY,SUBCATEGORY 1,SUBCATEGORY 2\n")
	if got := DetectFormat("-", data); got != FormatCSV {
		t.Errorf("Expected FormatCSV from text sniff, got %v", got)
	}
}

func TestDetectFormat_BinaryGarbageIsUnknown(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03}
	if got := DetectFormat("mystery", data); got != FormatUnknown {
		t.Errorf("Expected FormatUnknown, got %v", got)
	}
}

func TestRowPath_StopsAtFirstBlank(t *testing.T) {
	r := Row{"Fruit", "", "Orange", ""}
	got := r.Path()
	if len(got) != 1 || got[0] != "Fruit" {
		t.Errorf("Expected path [Fruit], got %v", got)
	}
}

func TestRowIsBlank(t *testing.T) {
	if !(Row{}).IsBlank() {
		t.Error("Expected empty row to be blank")
	}
	if (Row{"", "", "", "Train"}).IsBlank() {
		t.Error("Expected row with a value to be non-blank")
	}
}
