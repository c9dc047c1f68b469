// Package export delivers rendered category hierarchies to files, the
// system clipboard, image snapshots, a standalone SQLite database, and
// a local upload server.
package export

import (
	"fmt"
	"os"
)

// DefaultTextName is the filename offered for downloaded hierarchies.
const DefaultTextName = "hierarchy.txt"

// WriteText writes rendered hierarchy text to path as UTF-8.
func WriteText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write text export: %w", err)
	}
	return nil
}
