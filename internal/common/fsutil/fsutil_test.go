package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExpandHome(t *testing.T) {
	// Set a deterministic HOME for the duration of this test so we never skip.
	origHome, hadHome := os.LookupEnv("HOME")
	origUserProfile, hadUserProfile := os.LookupEnv("USERPROFILE")
	t.Cleanup(func() {
		if hadHome {
			_ = os.Setenv("HOME", origHome)
		} else {
			_ = os.Unsetenv("HOME")
		}
		if hadUserProfile {
			_ = os.Setenv("USERPROFILE", origUserProfile)
		} else {
			_ = os.Unsetenv("USERPROFILE")
		}
	})

	home := t.TempDir()
	// Configure both env vars for cross-platform behavior of os.UserHomeDir.
	_ = os.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		_ = os.Setenv("USERPROFILE", home)
	}
	// raw path unaffected
	if got, err := ExpandHome("/tmp"); err != nil || got != "/tmp" {
		t.Fatalf("got %q err=%v", got, err)
	}
	// empty path
	if got, err := ExpandHome(""); err != nil || got != "" {
		t.Fatalf("got %q err=%v", got, err)
	}
	// ~ expansion
	p, err := ExpandHome("~")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if p != home {
		t.Fatalf("expected %q, got %q", home, p)
	}
	// ~/subdir
	sub := "test-sub"
	exp, err := ExpandHome("~/" + sub)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if runtime.GOOS == "windows" {
		if filepath.Base(exp) != sub {
			t.Fatalf("unexpected expanded path: %q", exp)
		}
	} else {
		expected := filepath.Join(home, sub)
		if exp != expected {
			t.Fatalf("expected %q, got %q", expected, exp)
		}
	}
}

func TestResolvePath(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(b, "m.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	// absolute paths are returned cleaned
	abs := filepath.Join(b, "x", "..", "m.json")
	if got, err := ResolvePath(abs, a); err != nil || got != filepath.Join(b, "m.json") {
		t.Fatalf("abs: got %q err=%v", got, err)
	}
	// first existing base wins
	if got, err := ResolvePath("m.json", a, b); err != nil || got != filepath.Join(b, "m.json") {
		t.Fatalf("fallback: got %q err=%v", got, err)
	}
	// nothing exists: first base candidate
	if got, err := ResolvePath("missing.json", a, b); err != nil || got != filepath.Join(a, "missing.json") {
		t.Fatalf("missing: got %q err=%v", got, err)
	}
	// no bases: relative to the working directory
	got, err := ResolvePath("rel.json")
	if err != nil || !filepath.IsAbs(got) {
		t.Fatalf("no bases: got %q err=%v", got, err)
	}
}

func TestExecutableDir(t *testing.T) {
	dir, err := ExecutableDir()
	if err != nil {
		t.Skipf("no executable path on this platform: %v", err)
	}
	if !PathExists(dir) {
		t.Fatalf("executable dir %q does not exist", dir)
	}
}
