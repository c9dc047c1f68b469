package export

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/model"
)

// BundleOptions configure WriteBundle.
type BundleOptions struct {
	// Dir receives the artifacts; created if missing.
	Dir string

	// BaseName names the files, "hierarchy" when empty.
	BaseName string

	// Root is the tree to export.
	Root *model.Node

	// Text is the rendered hierarchy.
	Text string

	// Title is drawn on image snapshots.
	Title string

	// Meta is recorded in the sqlite artifact.
	Meta SQLiteMeta
}

// WriteBundle writes the txt, svg, png, and sqlite artifacts for one
// tree side by side, one goroutine per format.
func WriteBundle(opts BundleOptions) error {
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return fmt.Errorf("create bundle directory: %w", err)
	}
	base := opts.BaseName
	if base == "" {
		base = "hierarchy"
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		return WriteText(filepath.Join(opts.Dir, base+".txt"), opts.Text)
	})
	g.Go(func() error {
		return SaveSnapshot(SnapshotOptions{
			Path:  filepath.Join(opts.Dir, base+".svg"),
			Root:  opts.Root,
			Title: opts.Title,
		})
	})
	g.Go(func() error {
		return SaveSnapshot(SnapshotOptions{
			Path:  filepath.Join(opts.Dir, base+".png"),
			Root:  opts.Root,
			Title: opts.Title,
		})
	})
	g.Go(func() error {
		return WriteSQLite(filepath.Join(opts.Dir, base+".sqlite3"), opts.Root, opts.Meta)
	})
	return g.Wait()
}
