// Package daemon runs the control loop that serializes all desktop actions.
package daemon

import (
	"context"
	"log/slog"

	"github.com/deskhop/deskhop/internal/hotkeys"
)

// Switcher switches the current desktop.
type Switcher interface {
	SwitchTo(target int)
}

// WindowMover moves the foreground window to another desktop.
type WindowMover interface {
	MoveForegroundTo(target int)
}

// Loop owns the hotkey dispatch table and processes one input per iteration:
// a forwarded hotkey press, an IPC-injected action, or shutdown. Because a
// single goroutine drains both ordered channels, rapid repeated presses are
// serialized, never reordered or coalesced. A failed action never stops the
// loop; failures surface via notifications and logs inside the components.
type Loop struct {
	table    hotkeys.Table
	events   <-chan hotkeys.Event
	injected <-chan hotkeys.Action
	switcher Switcher
	mover    WindowMover
	logger   *slog.Logger
}

// NewLoop creates a control loop. injected carries actions arriving over IPC;
// it may be nil when no IPC surface is wired.
func NewLoop(table hotkeys.Table, events <-chan hotkeys.Event, injected <-chan hotkeys.Action,
	switcher Switcher, mover WindowMover, logger *slog.Logger) *Loop {
	return &Loop{
		table:    table,
		events:   events,
		injected: injected,
		switcher: switcher,
		mover:    mover,
		logger:   logger,
	}
}

// Run processes events until the context is cancelled.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Info("control loop started", "bindings", len(l.table))

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("control loop stopped")
			return
		case ev := <-l.events:
			action, ok := l.table[ev.ID]
			if !ok {
				l.logger.Warn("unknown hotkey event", "id", ev.ID)
				continue
			}
			l.logger.Debug("hotkey pressed", "id", ev.ID, "action", action.String())
			l.dispatch(action)
		case action := <-l.injected:
			l.logger.Debug("injected action", "action", action.String())
			l.dispatch(action)
		}
	}
}

func (l *Loop) dispatch(action hotkeys.Action) {
	switch action.Kind {
	case hotkeys.KindSwitch:
		l.switcher.SwitchTo(action.Target)
	case hotkeys.KindMoveWindow:
		l.mover.MoveForegroundTo(action.Target)
	default:
		l.logger.Warn("unknown action kind", "kind", int(action.Kind))
	}
}
