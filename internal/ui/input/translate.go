package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Translate converts a tcell event into an Action. Events the finder does
// not react to yield nil.
func Translate(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return translateKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return ResizeAction{Width: w, Height: h}
	default:
		return nil
	}
}

func translateKey(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyRune:
		// Alt and Ctrl chords are not text.
		if ev.Modifiers()&^tcell.ModShift != 0 {
			return nil
		}
		r := ev.Rune()
		if unicode.IsControl(r) {
			return nil
		}
		return QueryPushAction{Char: r}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return QueryPopAction{}
	case tcell.KeyUp, tcell.KeyCtrlP:
		return SelectUpAction{}
	case tcell.KeyDown, tcell.KeyCtrlN:
		return SelectDownAction{}
	case tcell.KeyLeft:
		return CursorLeftAction{}
	case tcell.KeyRight:
		return CursorRightAction{}
	case tcell.KeyEnter:
		return InvokeAction{}
	case tcell.KeyCtrlY:
		return CopyAbsolutePathAction{}
	case tcell.KeyCtrlD:
		return CopyRelativePathAction{}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return QuitAction{}
	default:
		return nil
	}
}
