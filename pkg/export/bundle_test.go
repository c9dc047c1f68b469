package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteBundle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bundle")

	err := WriteBundle(BundleOptions{
		Dir:   dir,
		Root:  sampleTree(),
		Text:  "Fruit\n  Citrus\n    Orange\n    Lemon\n  Berry\n    Strawberry\n",
		Title: "categories.csv",
		Meta:  SQLiteMeta{Source: "categories.csv", Tool: "cld"},
	})
	if err != nil {
		t.Fatalf("WriteBundle failed: %v", err)
	}

	for _, name := range []string{"hierarchy.txt", "hierarchy.svg", "hierarchy.png", "hierarchy.sqlite3"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("artifact %s is empty", name)
		}
	}
}

func TestWriteBundle_BaseName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bundle")

	err := WriteBundle(BundleOptions{
		Dir:      dir,
		BaseName: "categories",
		Root:     sampleTree(),
		Text:     "Fruit\n",
	})
	if err != nil {
		t.Fatalf("WriteBundle failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "categories.txt")); err != nil {
		t.Errorf("expected categories.txt: %v", err)
	}
}
