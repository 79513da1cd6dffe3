package app

import (
	"github.com/atotto/clipboard"
	"github.com/kk-code-lab/thwack/internal/apperr"
)

// Clipboard receives the path the user copies.
type Clipboard interface {
	SetContents(text string) error
}

type systemClipboard struct{}

// newSystemClipboard returns the OS clipboard, or an error when no
// backend (pbcopy, xclip, xsel, wl-copy, the Windows API) is available.
func newSystemClipboard() (Clipboard, error) {
	if clipboard.Unsupported {
		return nil, apperr.Clipboard("no clipboard utility is available")
	}
	return systemClipboard{}, nil
}

func (systemClipboard) SetContents(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return apperr.Clipboard("cannot copy %q to the clipboard: %w", text, err)
	}
	return nil
}
