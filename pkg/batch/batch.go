// Package batch expands a URL list into capture targets with unique output names.
package batch

import (
	"bufio"
	"bytes"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/snaphero/pkg/ports"
)

// TimestampLayout is the capture-time component of derived file names.
const TimestampLayout = "20060102_150405"

// Target is one URL of a batch with its derived output path.
type Target struct {
	Index      int // 1-based position among the targets
	URL        string
	OutputPath string
}

// MaxLineLength is the longest line ParseTargets accepts.
const MaxLineLength = 1024 * 1024

// ParseTargets returns the URLs listed in data, one per line.
// Blank lines and lines starting with '#' (after trimming) are skipped.
// A line longer than MaxLineLength is an error.
func ParseTargets(data []byte) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", len(urls)+1, err)
	}
	return urls, nil
}

// Host returns the host component used in derived file names: the URL's
// host (with port) without a leading "www.", with every character outside
// [A-Za-z0-9.-] replaced by '_'.
func Host(rawURL string) string {
	host := ""
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	} else {
		// Scheme-less input such as "example.com/path".
		rest := rawURL
		if i := strings.Index(rest, "//"); i >= 0 {
			rest = rest[i+2:]
		}
		host, _, _ = strings.Cut(rest, "/")
	}
	host = strings.TrimPrefix(strings.ToLower(host), "www.")

	var b strings.Builder
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

// Namer derives unique output paths for batch targets.
// Names follow prefix + host + "_" + timestamp + ext. When a name was already
// handed out in this run or exists on disk, a counter suffix "_2", "_3", ...
// is appended.
type Namer struct {
	dir    string
	prefix string
	ext    string
	fs     ports.FileSystem
	now    func() time.Time
	used   map[string]bool
}

// NewNamer creates a Namer writing into dir with the given prefix and image format.
func NewNamer(fs ports.FileSystem, dir, prefix string, format ports.ImageFormat) *Namer {
	ext := ".png"
	if format == ports.FormatJPEG {
		ext = ".jpg"
	}
	return &Namer{
		dir:    dir,
		prefix: prefix,
		ext:    ext,
		fs:     fs,
		now:    time.Now,
		used:   make(map[string]bool),
	}
}

// WithClock replaces the time source. Used by tests.
func (n *Namer) WithClock(now func() time.Time) *Namer {
	n.now = now
	return n
}

// Name returns the output path for rawURL, evaluated at capture time.
func (n *Namer) Name(rawURL string) string {
	stem := n.prefix + Host(rawURL) + "_" + n.now().Format(TimestampLayout)

	candidate := filepath.Join(n.dir, stem+n.ext)
	for i := 2; n.taken(candidate); i++ {
		candidate = filepath.Join(n.dir, fmt.Sprintf("%s_%d%s", stem, i, n.ext))
	}
	n.used[candidate] = true
	return candidate
}

func (n *Namer) taken(path string) bool {
	if n.used[path] {
		return true
	}
	if n.fs == nil {
		return false
	}
	exists, err := n.fs.Exists(path)
	return err == nil && exists
}
