package chromepath

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolve_Precedence(t *testing.T) {
	t.Setenv(EnvVar, "/env/chrome")

	if path, src := Resolve("/explicit/chrome"); path != "/explicit/chrome" || src != SourceExplicit {
		t.Errorf("expected explicit path, got %s (%s)", path, src)
	}
	if path, src := Resolve(""); path != "/env/chrome" || src != SourceEnv {
		t.Errorf("expected CHROME_PATH, got %s (%s)", path, src)
	}
}

func TestResolve_NothingFound(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("absolute install locations may exist on this platform")
	}
	t.Setenv(EnvVar, "")
	t.Setenv("PATH", "/nonexistent")

	path, src := Resolve("")
	if path != "" && src != SourceSystem {
		t.Errorf("unexpected result %s (%s)", path, src)
	}
	if path == "" && src != SourceNone {
		t.Errorf("expected SourceNone, got %s", src)
	}
}

func TestCandidates(t *testing.T) {
	for _, goos := range []string{"darwin", "linux", "freebsd"} {
		if len(candidates(goos)) == 0 {
			t.Errorf("expected candidates for %s", goos)
		}
	}
	if got := candidates("linux"); got[0] != "chromium" {
		t.Errorf("expected chromium first on linux, got %s", got[0])
	}
}

func TestLookup(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	if got := lookup("/bin/sh"); got != "/bin/sh" {
		t.Errorf("expected /bin/sh, got %q", got)
	}
	if got := lookup("/definitely/not/a/real/path/chrome"); got != "" {
		t.Errorf("expected empty for missing path, got %q", got)
	}
	if got := lookup("definitely-not-a-real-command-xyz123"); got != "" {
		t.Errorf("expected empty for missing command, got %q", got)
	}
}

func TestRequire(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	t.Setenv(EnvVar, "")

	if path, src, err := Require("/bin/sh"); err != nil || path != "/bin/sh" || src != SourceExplicit {
		t.Errorf("expected /bin/sh from flag, got %s (%s) %v", path, src, err)
	}

	missing := filepath.Join(t.TempDir(), "chrome")
	if _, src, err := Require(missing); !errors.Is(err, ErrNotFound) || src != SourceExplicit {
		t.Errorf("expected ErrNotFound for missing explicit path, got %s %v", src, err)
	}

	t.Setenv(EnvVar, missing)
	if _, src, err := Require(""); !errors.Is(err, ErrNotFound) || src != SourceEnv {
		t.Errorf("expected ErrNotFound for missing CHROME_PATH, got %s %v", src, err)
	}
}
