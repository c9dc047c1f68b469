package export

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyText places rendered hierarchy text on the system clipboard.
func CopyText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard available on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
