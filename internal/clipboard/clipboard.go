// Package clipboard writes an export payload to the system clipboard.
// The OS-level clipboard here only takes plain text, so the payload's HTML
// encoding is for callers that can build a dual-MIME write themselves; the
// plain-text fallback is the default path, not an error.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/kertal/git-vegas/internal/export"
)

// Write puts the payload's plain-text encoding on the clipboard.
func Write(p export.Payload) error {
	if err := clipboard.WriteAll(p.PlainText); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}
