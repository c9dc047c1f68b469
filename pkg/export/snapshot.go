package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

// SnapshotOptions configure SaveSnapshot.
type SnapshotOptions struct {
	// Path is the output file. Its extension selects the format when
	// Format is empty.
	Path string

	// Format is "svg" or "png".
	Format string

	// Root is the tree to draw.
	Root *model.Node

	// Title is drawn above the tree when non-empty.
	Title string
}

const (
	snapshotMargin     = 24
	snapshotLineHeight = 20
	snapshotIndentPx   = 22
	snapshotFontSize   = 13
)

// SaveSnapshot renders the tree as a static image.
func SaveSnapshot(opts SnapshotOptions) error {
	format := opts.Format
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.Path)), ".")
	}

	lines := snapshotLines(opts.Root)
	switch format {
	case "svg":
		return saveSVG(opts.Path, opts.Title, lines)
	case "png":
		return savePNG(opts.Path, opts.Title, lines)
	}
	return fmt.Errorf("unsupported snapshot format %q (want svg or png)", format)
}

type snapshotLine struct {
	depth int
	text  string
}

func snapshotLines(root *model.Node) []snapshotLine {
	var lines []snapshotLine
	if root != nil {
		root.Walk(func(node *model.Node, depth int) {
			lines = append(lines, snapshotLine{depth: depth, text: node.Name})
		})
	}
	return lines
}

// snapshotSize estimates the canvas from line lengths. Widths use a
// fixed per-cell estimate so wide runes still fit.
func snapshotSize(title string, lines []snapshotLine) (int, int) {
	widest := runewidth.StringWidth(title) * 9
	for _, ln := range lines {
		w := ln.depth*snapshotIndentPx + runewidth.StringWidth(ln.text)*8
		if w > widest {
			widest = w
		}
	}
	width := widest + 2*snapshotMargin
	if width < 320 {
		width = 320
	}

	height := len(lines)*snapshotLineHeight + 2*snapshotMargin
	if title != "" {
		height += snapshotLineHeight + snapshotLineHeight/2
	}
	if height < 120 {
		height = 120
	}
	return width, height
}

func saveSVG(path, title string, lines []snapshotLine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	defer f.Close()

	width, height := snapshotSize(title, lines)
	canvas := svg.New(f)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#ffffff")

	y := snapshotMargin
	if title != "" {
		y += snapshotLineHeight
		canvas.Text(snapshotMargin, y, title,
			"font-family:sans-serif;font-size:15px;font-weight:bold;fill:#1a1a2e")
		y += snapshotLineHeight / 2
	}
	for _, ln := range lines {
		y += snapshotLineHeight
		x := snapshotMargin + ln.depth*snapshotIndentPx
		canvas.Text(x, y, ln.text, "font-family:monospace;font-size:13px;fill:#16161d")
	}
	canvas.End()
	return nil
}

func savePNG(path, title string, lines []snapshotLine) error {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parse builtin font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    snapshotFontSize,
		DPI:     96,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("build font face: %w", err)
	}
	defer face.Close()

	width, height := snapshotSize(title, lines)
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)

	y := float64(snapshotMargin)
	if title != "" {
		y += snapshotLineHeight
		dc.SetRGB(0.10, 0.10, 0.18)
		dc.DrawString(title, snapshotMargin, y)
		y += snapshotLineHeight / 2
	}
	dc.SetRGB(0.09, 0.09, 0.11)
	for _, ln := range lines {
		y += snapshotLineHeight
		dc.DrawString(ln.text, float64(snapshotMargin+ln.depth*snapshotIndentPx), y)
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
