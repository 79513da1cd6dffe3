package input

// Action is what the session does in response to one terminal event.
type Action interface{}

// ===== QUERY ACTIONS =====

type QueryPushAction struct {
	Char rune
}
type QueryPopAction struct{}
type CursorLeftAction struct{}
type CursorRightAction struct{}

// ===== SELECTION ACTIONS =====

type SelectUpAction struct{}
type SelectDownAction struct{}

// ===== HAND-OFF ACTIONS =====

type InvokeAction struct{}
type CopyAbsolutePathAction struct{}
type CopyRelativePathAction struct{}
type QuitAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}
