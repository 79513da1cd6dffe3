package render

import (
	"strings"

	"github.com/kk-code-lab/thwack/internal/textutil"
)

// footerHelpWidth is the width the full key hint line needs.
var footerHelpWidth = textutil.DisplayWidth(buildFooterHelpText())

type helpSegment struct {
	key   string
	label string
}

func footerHelpSegments() []helpSegment {
	return []helpSegment{
		{key: "<Up>/<Ctrl-p>:", label: "Up"},
		{key: "<Down>/<Ctrl-n>:", label: "Down"},
		{key: "<Enter>:", label: "Execute"},
		{key: "<C-d>/<C-y>:", label: "Copy (relative/absolute)"},
	}
}

// buildFooterHelpText returns the hint line as plain text.
func buildFooterHelpText() string {
	segments := footerHelpSegments()
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.key+" "+seg.label)
	}
	return strings.Join(parts, "  ")
}

// drawFooterHelp draws the key hints on row y, keys bold. Terminals
// narrower than the hint line get nothing.
func (r *Renderer) drawFooterHelp(y, width int) {
	if width < footerHelpWidth {
		return
	}
	x := 0
	for i, seg := range footerHelpSegments() {
		if i > 0 {
			x += 2
		}
		x = r.drawText(x, y, width, seg.key, r.theme.HelpKey)
		x++
		x = r.drawText(x, y, width, seg.label, r.theme.HelpLabel)
	}
}
