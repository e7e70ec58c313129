// Package clip copies prompt and worksheet text to the system clipboard.
package clip

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copier writes text to a clipboard.
type Copier interface {
	Copy(text string) error
}

// System copies through the OS clipboard (pbcopy, xclip/xsel, clip.exe).
type System struct{}

func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("copy to clipboard: no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// Memory keeps the last copied text. Used where no system clipboard exists
// and in tests.
type Memory struct {
	Last  string
	Count int
	Err   error
}

func (m *Memory) Copy(text string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Last = text
	m.Count++
	return nil
}
