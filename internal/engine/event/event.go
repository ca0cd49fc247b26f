package event

import "github.com/inkstone-edit/inkstone/internal/engine/cursor"

// Kind discriminates event types, both in memory and on the wire.
type Kind string

const (
	KindInsert       Kind = "insert"
	KindDelete       Kind = "delete"
	KindMoveCursor   Kind = "move_cursor"
	KindAddCursor    Kind = "add_cursor"
	KindRemoveCursor Kind = "remove_cursor"
	KindScroll       Kind = "scroll"
	KindSetViewport  Kind = "set_viewport"
	KindChangeMode   Kind = "change_mode"
)

// Event is a single recorded editor action.
type Event interface {
	// Kind returns the event's type tag.
	Kind() Kind

	// ModifiesBuffer reports whether replaying the event changes
	// buffer content.
	ModifiesBuffer() bool

	// Inverse returns the event that undoes this one. The second
	// return is false for events that have no content effect to
	// invert.
	Inverse() (Event, bool)
}

// Insert records text inserted at a byte position.
type Insert struct {
	Position int
	Text     string
	Cursor   cursor.ID
}

func (e Insert) Kind() Kind { return KindInsert }
func (e Insert) ModifiesBuffer() bool { return true }

func (e Insert) Inverse() (Event, bool) {
	return Delete{
		Start:       e.Position,
		End:         e.Position + len(e.Text),
		DeletedText: e.Text,
		Cursor:      e.Cursor,
	}, true
}

// Delete records removal of the byte range [Start, End). The removed
// text is captured so the event can be inverted.
type Delete struct {
	Start       int
	End         int
	DeletedText string
	Cursor      cursor.ID
}

func (e Delete) Kind() Kind { return KindDelete }
func (e Delete) ModifiesBuffer() bool { return true }

func (e Delete) Inverse() (Event, bool) {
	return Insert{
		Position: e.Start,
		Text:     e.DeletedText,
		Cursor:   e.Cursor,
	}, true
}

// MoveCursor records a cursor moving to a new position, optionally
// with a selection anchor.
type MoveCursor struct {
	Cursor   cursor.ID
	Position int
	Anchor   *int
}

func (e MoveCursor) Kind() Kind { return KindMoveCursor }
func (e MoveCursor) ModifiesBuffer() bool { return false }
func (e MoveCursor) Inverse() (Event, bool) { return nil, false }

// AddCursor records a new cursor joining the set.
type AddCursor struct {
	Cursor   cursor.ID
	Position int
	Anchor   *int
}

func (e AddCursor) Kind() Kind { return KindAddCursor }
func (e AddCursor) ModifiesBuffer() bool { return false }
func (e AddCursor) Inverse() (Event, bool) { return nil, false }

// RemoveCursor records a cursor leaving the set.
type RemoveCursor struct {
	Cursor cursor.ID
}

func (e RemoveCursor) Kind() Kind { return KindRemoveCursor }
func (e RemoveCursor) ModifiesBuffer() bool { return false }
func (e RemoveCursor) Inverse() (Event, bool) { return nil, false }

// Scroll records the view scrolling by a line delta.
type Scroll struct {
	LineOffset int
}

func (e Scroll) Kind() Kind { return KindScroll }
func (e Scroll) ModifiesBuffer() bool { return false }
func (e Scroll) Inverse() (Event, bool) { return nil, false }

// SetViewport records the view jumping so TopLine is the first
// visible line.
type SetViewport struct {
	TopLine int
}

func (e SetViewport) Kind() Kind { return KindSetViewport }
func (e SetViewport) ModifiesBuffer() bool { return false }
func (e SetViewport) Inverse() (Event, bool) { return nil, false }

// ChangeMode records an editing mode switch.
type ChangeMode struct {
	Mode string
}

func (e ChangeMode) Kind() Kind { return KindChangeMode }
func (e ChangeMode) ModifiesBuffer() bool { return false }
func (e ChangeMode) Inverse() (Event, bool) { return nil, false }
