package runtimepath

import (
	"path/filepath"
	"testing"
)

func TestDir_PrefersXDGRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/tmp/xdg-test")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if dir != "/tmp/xdg-test" {
		t.Errorf("Dir() = %q, want XDG_RUNTIME_DIR value", dir)
	}
}

func TestDir_FallbackWithoutXDG(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if dir == "" {
		t.Fatal("Dir() returned an empty path")
	}
}

func TestSocketPath(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/tmp/xdg-test")

	path, err := SocketPath()
	if err != nil {
		t.Fatalf("SocketPath() error: %v", err)
	}
	if filepath.Base(path) != "deskhop.sock" {
		t.Errorf("SocketPath() = %q, want a deskhop.sock under the runtime dir", path)
	}
}
