package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines the styles the finder draws with. Colors stay at the
// terminal defaults; emphasis is carried by attributes.
type ColorTheme struct {
	Text      tcell.Style
	Prompt    tcell.Style
	Match     tcell.Style
	Selection tcell.Style
	Status    tcell.Style
	HelpKey   tcell.Style
	HelpLabel tcell.Style
}

// GetColorTheme returns the default styles.
func GetColorTheme() ColorTheme {
	base := tcell.StyleDefault.Background(tcell.ColorDefault).Foreground(tcell.ColorDefault)
	return ColorTheme{
		Text:      base,
		Prompt:    base,
		Match:     base.Bold(true),
		Selection: base,
		Status:    base.Bold(true).Reverse(true),
		HelpKey:   base.Bold(true),
		HelpLabel: base,
	}
}
