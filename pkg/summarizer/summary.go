// Package summarizer renders reports of capture runs.
package summarizer

import (
	"time"

	"github.com/user/snaphero/pkg/pipeline"
)

// Status values of a CaptureInfo.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Summary contains everything reported about a single or batch run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time `json:"generatedAt"`
	Source      string    `json:"source,omitempty"` // Batch file path; empty for single captures

	Settings Settings      `json:"settings"`
	Captures []CaptureInfo `json:"captures"`

	// Totals
	Total     int           `json:"total"` // Targets listed; may exceed len(Captures) if the run stopped early
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"-"`

	// ContactSheet is the generated overview image, if any.
	ContactSheet string `json:"contactSheet,omitempty"`
}

// Settings contains the capture configuration shared by every target.
type Settings struct {
	Engine         string  `json:"engine"`
	Preset         string  `json:"preset,omitempty"`
	ViewportWidth  int     `json:"viewportWidth"`
	ViewportHeight int     `json:"viewportHeight"`
	Scale          float64 `json:"scale"`
	FullPage       bool    `json:"fullPage"`
	Format         string  `json:"format"`
	Quality        int     `json:"quality"`
	DarkMode       bool    `json:"darkMode"`
	TimeoutMs      int64   `json:"timeoutMs"`
}

// CaptureInfo is the outcome of one capture.
type CaptureInfo struct {
	Index      int    `json:"index"`
	URL        string `json:"url"`
	OutputPath string `json:"outputPath"`
	Status     string `json:"status"`
	ByteSize   int64  `json:"byteSize"`
	DurationMs int64  `json:"durationMs"`
	Kind       string `json:"kind,omitempty"`    // Failure kind
	Message    string `json:"message,omitempty"` // Failure message
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets the batch file path.
func (b *Builder) WithSource(path string) *Builder {
	b.summary.Source = path
	return b
}

// WithSettings sets the capture settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithTotal sets the number of listed targets.
func (b *Builder) WithTotal(total int) *Builder {
	b.summary.Total = total
	return b
}

// WithDuration sets the wall time of the run.
func (b *Builder) WithDuration(d time.Duration) *Builder {
	b.summary.Duration = d
	return b
}

// WithContactSheet records the path of a generated contact sheet.
func (b *Builder) WithContactSheet(path string) *Builder {
	b.summary.ContactSheet = path
	return b
}

// AddResult appends a capture outcome.
func (b *Builder) AddResult(r pipeline.Result) *Builder {
	info := CaptureInfo{
		Index:      r.Index,
		URL:        r.URL,
		OutputPath: r.OutputPath,
		Status:     StatusSuccess,
		ByteSize:   r.ByteSize,
		DurationMs: r.Duration.Milliseconds(),
	}
	if r.Failure != nil {
		info.Status = StatusFailure
		info.Kind = string(r.Failure.Kind)
		info.Message = r.Failure.Error()
		info.ByteSize = 0
	}
	b.summary.Captures = append(b.summary.Captures, info)
	return b
}

// AddResults appends several capture outcomes in order.
func (b *Builder) AddResults(results []pipeline.Result) *Builder {
	for _, r := range results {
		b.AddResult(r)
	}
	return b
}

// Build computes the totals and returns the Summary.
func (b *Builder) Build() *Summary {
	s := b.summary
	s.Succeeded, s.Failed = 0, 0
	for _, c := range s.Captures {
		if c.Status == StatusSuccess {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	if s.Total < len(s.Captures) {
		s.Total = len(s.Captures)
	}
	return s
}
