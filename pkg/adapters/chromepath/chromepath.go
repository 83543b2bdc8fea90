// Package chromepath locates a Chrome or Chromium executable.
package chromepath

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// EnvVar names the environment variable consulted after an explicit path.
const EnvVar = "CHROME_PATH"

// Source tells where a resolved path came from.
type Source string

const (
	SourceExplicit Source = "flag"
	SourceEnv      Source = "env"
	SourceSystem   Source = "system"
	SourceNone     Source = ""
)

// Resolve returns the executable to launch, in order of precedence:
// the explicit path, $CHROME_PATH, then a platform search. It returns an
// empty path and SourceNone when nothing is found.
func Resolve(explicitPath string) (string, Source) {
	if explicitPath != "" {
		return explicitPath, SourceExplicit
	}
	if envPath := os.Getenv(EnvVar); envPath != "" {
		return envPath, SourceEnv
	}
	if path := findSystem(runtime.GOOS); path != "" {
		return path, SourceSystem
	}
	return "", SourceNone
}

// ErrNotFound reports that no usable Chrome executable exists.
var ErrNotFound = errors.New("chrome not found")

// Require resolves like Resolve and also checks that the executable exists.
func Require(explicitPath string) (string, Source, error) {
	path, source := Resolve(explicitPath)
	if path == "" {
		return "", SourceNone, fmt.Errorf("%w: install Chrome/Chromium, set %s, or use --chrome-path", ErrNotFound, EnvVar)
	}
	found := lookup(path)
	if found == "" {
		return "", source, fmt.Errorf("%w at %s (%s)", ErrNotFound, path, source)
	}
	return found, source, nil
}

// candidates lists well-known locations per platform, Chromium before Chrome.
func candidates(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Google Chrome Canary.app/Contents/MacOS/Google Chrome Canary",
		}
	case "linux":
		return []string{
			"chromium",
			"chromium-browser",
			"google-chrome-stable",
			"google-chrome",
			"/snap/bin/chromium",
		}
	case "windows":
		var out []string
		for _, env := range []string{"PROGRAMFILES", "PROGRAMFILES(X86)", "LOCALAPPDATA"} {
			root := os.Getenv(env)
			if root == "" {
				continue
			}
			out = append(out,
				filepath.Join(root, "Chromium", "Application", "chrome.exe"),
				filepath.Join(root, "Google", "Chrome", "Application", "chrome.exe"),
			)
		}
		return out
	default:
		return []string{"chromium", "google-chrome"}
	}
}

func findSystem(goos string) string {
	for _, candidate := range candidates(goos) {
		if path := lookup(candidate); path != "" {
			return path
		}
	}
	return ""
}

// lookup checks absolute paths with Stat and bare names against $PATH.
func lookup(nameOrPath string) string {
	if filepath.IsAbs(nameOrPath) {
		if _, err := os.Stat(nameOrPath); err == nil {
			return nameOrPath
		}
		return ""
	}
	if path, err := exec.LookPath(nameOrPath); err == nil {
		return path
	}
	return ""
}
