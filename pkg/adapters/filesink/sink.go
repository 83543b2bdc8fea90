// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"path/filepath"
	"strings"

	"github.com/user/snaphero/pkg/ports"
)

// Sink saves debug output under a base directory:
//
//	<baseDir>/captures/<name>.json
//	<baseDir>/batch.json
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new Sink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveCaptureJSON saves the record of one capture.
func (s *Sink) SaveCaptureJSON(name string, data []byte) error {
	dir := filepath.Join(s.baseDir, "captures")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(dir, safeName(name)+".json"), data)
}

// SaveBatchJSON saves the batch report.
func (s *Sink) SaveBatchJSON(data []byte) error {
	if err := s.fs.MkdirAll(s.baseDir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "batch.json"), data)
}

// safeName keeps capture names inside the captures directory.
func safeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' {
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "capture"
	}
	return name
}

var _ ports.DebugSink = (*Sink)(nil)
