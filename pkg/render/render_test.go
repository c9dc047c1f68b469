package render_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/render"
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

func TestText(t *testing.T) {
	want := "Fruit\n" +
		"  Citrus\n" +
		"    Orange\n" +
		"    Lemon\n" +
		"  Berry\n" +
		"    Strawberry\n"

	if got := render.Text(sampleTree(), render.Options{}); got != want {
		t.Errorf("Expected:\n%s\nGot:\n%s", want, got)
	}
}

func TestText_EmptyTree(t *testing.T) {
	if got := render.Text(model.NewRoot(), render.Options{}); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
	if got := render.Text(nil, render.Options{}); got != "" {
		t.Errorf("Expected empty string for nil root, got %q", got)
	}
}

func TestText_CustomIndent(t *testing.T) {
	root := model.NewRoot()
	root.EnsureChild("Fruit").EnsureChild("Citrus")

	if got := render.Text(root, render.Options{Indent: "\t"}); got != "Fruit\n\tCitrus\n" {
		t.Errorf("Expected tab indent, got %q", got)
	}
	if got := render.Text(root, render.Options{Indent: "    "}); got != "Fruit\n    Citrus\n" {
		t.Errorf("Expected four-space indent, got %q", got)
	}
}

func TestText_Idempotent(t *testing.T) {
	root := sampleTree()
	first := render.Text(root, render.Options{})
	second := render.Text(root, render.Options{})
	if first != second {
		t.Error("Expected identical text on repeated rendering")
	}
}

func TestLines_Restartable(t *testing.T) {
	seq := render.Lines(sampleTree(), render.Options{})

	collect := func() []string {
		var out []string
		for line := range seq {
			out = append(out, line)
		}
		return out
	}

	first := collect()
	second := collect()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected restartable sequence, got %v then %v", first, second)
	}
	if len(first) != 6 {
		t.Errorf("Expected 6 lines, got %d", len(first))
	}
}

func TestLines_EarlyBreak(t *testing.T) {
	var got []string
	for line := range render.Lines(sampleTree(), render.Options{}) {
		got = append(got, line)
		if len(got) == 2 {
			break
		}
	}
	if !reflect.DeepEqual(got, []string{"Fruit", "  Citrus"}) {
		t.Errorf("Expected first two lines, got %v", got)
	}
}

func TestWrite(t *testing.T) {
	root := sampleTree()
	var buf bytes.Buffer
	if err := render.Write(&buf, root, render.Options{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.String() != render.Text(root, render.Options{}) {
		t.Errorf("Expected Write output to match Text, got %q", buf.String())
	}
}
