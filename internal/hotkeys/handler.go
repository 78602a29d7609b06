package hotkeys

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/deskhop/deskhop/internal/x11"
)

// Handler grabs global hotkeys on the X root window and forwards press events
// into an ordered channel. The key-press callbacks run on the X event loop
// goroutine and do nothing but the channel send, so dispatch order is exactly
// press order.
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
	events chan Event

	// grab registers one key sequence on the X server. A field so tests can
	// exercise the registration loop without a live display.
	grab func(sequence string) error
}

var ignoreModsOnce sync.Once

// NewHandler creates a hotkey handler on the given X connection.
func NewHandler(conn *x11.Connection, logger *slog.Logger) *Handler {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})

	h := &Handler{
		xu:     conn.XUtil,
		root:   conn.Root,
		logger: logger,
		events: make(chan Event, 16),
	}
	h.grab = h.grabKey
	return h
}

// Events returns the channel pressed hotkeys are forwarded on.
func (h *Handler) Events() <-chan Event {
	return h.events
}

// BindTable grabs every key sequence in the table. Each registration attempt
// is independent: a failed grab (typically the combination is taken by
// another client) does not stop the remaining ones. All failures are
// collected into the returned error so the caller can report them once.
func (h *Handler) BindTable(table Table) error {
	sequences := make([]string, 0, len(table))
	for sequence := range table {
		sequences = append(sequences, sequence)
	}
	sort.Strings(sequences)

	var failed []error
	for _, sequence := range sequences {
		if err := h.grab(sequence); err != nil {
			h.logger.Error("hotkey registration failed", "sequence", sequence, "error", err)
			failed = append(failed, fmt.Errorf("%s: %w", sequence, err))
			continue
		}
		h.logger.Info("registered hotkey", "sequence", sequence, "action", table[sequence].String())
	}
	return errors.Join(failed...)
}

func (h *Handler) grabKey(sequence string) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		h.events <- Event{ID: sequence}
	}).Connect(h.xu, h.root, sequence, true)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
