package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

func sampleTree() *model.Node {
	root := model.NewRoot()
	fruit := root.EnsureChild("Fruit")
	citrus := fruit.EnsureChild("Citrus")
	citrus.EnsureChild("Orange")
	citrus.EnsureChild("Lemon")
	fruit.EnsureChild("Berry").EnsureChild("Strawberry")
	return root
}

func TestSaveSnapshot_SVGAndPNG(t *testing.T) {
	root := sampleTree()

	tmp := t.TempDir()
	cases := []struct {
		name string
		file string
	}{
		{"svg", "tree.svg"},
		{"png", "tree.png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(tmp, tc.file)
			err := SaveSnapshot(SnapshotOptions{
				Path:  out,
				Root:  root,
				Title: "categories.csv",
			})
			if err != nil {
				t.Fatalf("SaveSnapshot error: %v", err)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("output not created: %v", err)
			}
			if info.Size() == 0 {
				t.Fatalf("output file is empty")
			}
		})
	}
}

func TestSaveSnapshot_FormatOverridesExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tree.image")
	err := SaveSnapshot(SnapshotOptions{
		Path:   out,
		Format: "svg",
		Root:   sampleTree(),
	})
	if err != nil {
		t.Fatalf("SaveSnapshot error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output not created: %v", err)
	}
}

func TestSaveSnapshot_InvalidFormat(t *testing.T) {
	err := SaveSnapshot(SnapshotOptions{
		Path:   "tree.txt",
		Format: "txt",
		Root:   sampleTree(),
	})
	if err == nil {
		t.Fatalf("expected error for invalid format")
	}
}

func TestSaveSnapshot_EmptyTree(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.svg")
	err := SaveSnapshot(SnapshotOptions{Path: out, Root: model.NewRoot()})
	if err != nil {
		t.Fatalf("SaveSnapshot error on empty tree: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("output file is empty")
	}
}
