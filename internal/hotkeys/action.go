// Package hotkeys maps global digit hotkeys to desktop actions.
package hotkeys

import "fmt"

// Kind discriminates the two hotkey actions.
type Kind int

const (
	// KindSwitch switches to the target desktop.
	KindSwitch Kind = iota
	// KindMoveWindow moves the foreground window to the target desktop.
	KindMoveWindow
)

func (k Kind) String() string {
	switch k {
	case KindSwitch:
		return "switch"
	case KindMoveWindow:
		return "move-window"
	default:
		return "unknown"
	}
}

// Action is what a hotkey does: a kind plus a target desktop index in [0,9].
// Immutable once placed in a Table.
type Action struct {
	Kind   Kind
	Target int
}

func (a Action) String() string {
	return fmt.Sprintf("%s(%d)", a.Kind, a.Target)
}

// Event is a pressed hotkey forwarded from the X event loop to the control
// loop. ID is the key sequence the binding was registered under.
type Event struct {
	ID string
}
