package focus

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/deskhop/deskhop/internal/registry"
)

type fakeWindow struct {
	exists   bool
	viewable bool
	managed  bool
	title    string
	desktop  int
}

// fakeX implements Windows over an ordered set of fake windows and records
// which operations were performed.
type fakeX struct {
	order   []uint32
	windows map[uint32]fakeWindow

	visited     []uint32
	raised      []uint32
	activated   []uint32
	activateErr map[uint32]bool
}

func newFakeX() *fakeX {
	return &fakeX{
		windows:     make(map[uint32]fakeWindow),
		activateErr: make(map[uint32]bool),
	}
}

func (f *fakeX) add(id uint32, w fakeWindow) {
	f.order = append(f.order, id)
	f.windows[id] = w
}

func (f *fakeX) EachClientWindow(visit func(uint32) bool) error {
	for _, id := range f.order {
		f.visited = append(f.visited, id)
		if visit(id) {
			return nil
		}
	}
	return nil
}

func (f *fakeX) WindowExists(id uint32) bool   { return f.windows[id].exists }
func (f *fakeX) WindowViewable(id uint32) bool { return f.windows[id].viewable }
func (f *fakeX) WindowManaged(id uint32) bool  { return f.windows[id].managed }

func (f *fakeX) WindowTitle(id uint32) (string, error) {
	w := f.windows[id]
	if w.title == "" {
		return "", fmt.Errorf("window %d has no title", id)
	}
	return w.title, nil
}

func (f *fakeX) WindowDesktop(id uint32) (int, error) {
	w, ok := f.windows[id]
	if !ok {
		return 0, fmt.Errorf("no such window %d", id)
	}
	return w.desktop, nil
}

func (f *fakeX) RaiseWindow(id uint32) error {
	f.raised = append(f.raised, id)
	return nil
}

func (f *fakeX) ActivateWindow(id uint32) error {
	if f.activateErr[id] {
		return fmt.Errorf("activation refused for window %d", id)
	}
	f.activated = append(f.activated, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func normalWindow(desktop int) fakeWindow {
	return fakeWindow{exists: true, viewable: true, managed: true, title: "xterm", desktop: desktop}
}

func TestFinder_FirstMatchWinsAndStopsEnumeration(t *testing.T) {
	x := newFakeX()
	x.add(1, fakeWindow{exists: true, viewable: false, managed: true, title: "hidden", desktop: 2})
	x.add(2, normalWindow(2))
	x.add(3, normalWindow(2)) // also eligible, must never be visited

	f := NewFinder(x, testLogger())
	got, ok := f.FirstOn(2)
	if !ok || got != 2 {
		t.Fatalf("FirstOn(2) = %d, %v; want 2, true", got, ok)
	}
	if len(x.visited) != 2 {
		t.Errorf("visited %v windows, want enumeration to stop after the first match", x.visited)
	}
}

func TestFinder_SkipRules(t *testing.T) {
	tests := []struct {
		name   string
		window fakeWindow
	}{
		{"not viewable", fakeWindow{exists: true, viewable: false, managed: true, title: "t", desktop: 1}},
		{"not managed", fakeWindow{exists: true, viewable: true, managed: false, title: "t", desktop: 1}},
		{"no title", fakeWindow{exists: true, viewable: true, managed: true, title: "", desktop: 1}},
		{"wrong desktop", normalWindow(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := newFakeX()
			x.add(7, tt.window)

			f := NewFinder(x, testLogger())
			if _, ok := f.FirstOn(1); ok {
				t.Errorf("FirstOn(1) found a window that should have been skipped")
			}
		})
	}
}

func TestRestore_RememberedWindowStillValid(t *testing.T) {
	x := newFakeX()
	x.add(10, normalWindow(1))

	reg := registry.New()
	reg.Remember(1, 10)

	r := NewRestorer(x, reg, testLogger())
	r.Restore(1)

	if len(x.activated) != 1 || x.activated[0] != 10 {
		t.Fatalf("activated = %v, want [10]", x.activated)
	}
	if len(x.visited) != 0 {
		t.Errorf("enumeration ran even though the remembered window was usable")
	}
}

func TestRestore_StaleRememberedFallsBackToFinder(t *testing.T) {
	x := newFakeX()
	x.windows[10] = fakeWindow{exists: false} // remembered window is gone
	x.add(20, normalWindow(1))

	reg := registry.New()
	reg.Remember(1, 10)

	r := NewRestorer(x, reg, testLogger())
	r.Restore(1)

	if len(x.activated) != 1 || x.activated[0] != 20 {
		t.Fatalf("activated = %v, want fallback window [20]", x.activated)
	}
	// Stale entries are tolerated, not deleted.
	if got, ok := reg.Lookup(1); !ok || got != 10 {
		t.Errorf("registry entry = %d, %v; want stale entry 10 left in place", got, ok)
	}
}

func TestRestore_MigratedWindowFallsBackToFinder(t *testing.T) {
	x := newFakeX()
	// Remembered for desktop 1, but the user dragged it to desktop 4.
	x.windows[10] = normalWindow(4)
	x.add(20, normalWindow(1))

	reg := registry.New()
	reg.Remember(1, 10)

	r := NewRestorer(x, reg, testLogger())
	r.Restore(1)

	if len(x.activated) != 1 || x.activated[0] != 20 {
		t.Fatalf("activated = %v, want fallback window [20]", x.activated)
	}
	if got, _ := reg.Lookup(1); got != 10 {
		t.Errorf("registry entry = %d, want 10 (migration must not modify the entry)", got)
	}
}

func TestRestore_ActivationFailureFallsThrough(t *testing.T) {
	x := newFakeX()
	x.windows[10] = normalWindow(1)
	x.activateErr[10] = true
	x.add(20, normalWindow(1))

	reg := registry.New()
	reg.Remember(1, 10)

	r := NewRestorer(x, reg, testLogger())
	r.Restore(1)

	if len(x.activated) != 1 || x.activated[0] != 20 {
		t.Fatalf("activated = %v, want fallback window [20]", x.activated)
	}
}

func TestRestore_NothingToFocusIsNotAnError(t *testing.T) {
	x := newFakeX()

	r := NewRestorer(x, registry.New(), testLogger())
	r.Restore(5) // must not panic or activate anything

	if len(x.activated) != 0 {
		t.Errorf("activated = %v, want no focus change on an empty desktop", x.activated)
	}
}
