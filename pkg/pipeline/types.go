package pipeline

import (
	"time"

	"github.com/user/snaphero/pkg/ports"
)

// =============================================================================
// Readiness Stage Types
// =============================================================================

// Readiness step names, in execution order.
const (
	StepNavigate       = "navigate"
	StepWaitSelector   = "wait-for-selector"
	StepHideBanners    = "hide-cookie-banners"
	StepDelay          = "delay"
	StepScreenshot     = "screenshot"
	StepWriteOutput    = "write-output"
	StepAcquireSession = "acquire-session"
)

// ReadinessInput contains the page and the waits to apply before capture.
type ReadinessInput struct {
	Page              ports.Page
	URL               string
	Timeout           time.Duration // Applies to navigation and to the selector wait
	WaitForSelector   string        // Empty skips the selector wait
	HideCookieBanners bool
	Delay             time.Duration // Zero skips the fixed delay
}

// ReadinessResult reports which steps ran.
type ReadinessResult struct {
	Steps []string
	// ScriptErr holds the banner-hiding script error, if any. It never fails the capture.
	ScriptErr error
}

// =============================================================================
// Shot Stage Types
// =============================================================================

// ShotInput contains parameters for capturing a ready page.
type ShotInput struct {
	Page       ports.Page
	OutputPath string
	FullPage   bool
	Format     ports.ImageFormat
	Quality    int // Only used for JPEG
}

// ShotResult describes the written image.
type ShotResult struct {
	OutputPath string
	ByteSize   int64
}

// =============================================================================
// Contact Sheet Stage Types
// =============================================================================

// SheetEntry is one image placed on the contact sheet.
type SheetEntry struct {
	Label string
	Path  string
}

// SheetInput contains parameters for contact sheet generation.
type SheetInput struct {
	Entries    []SheetEntry
	OutputPath string
	Columns    int // default: 3
	ThumbWidth int // default: 320
}

// SheetResult describes the generated contact sheet.
type SheetResult struct {
	OutputPath string
	Width      int
	Height     int
	Count      int // Entries actually placed on the sheet
}

// =============================================================================
// Capture Results
// =============================================================================

// Result is the outcome of one capture: Success when Failure is nil,
// otherwise Failure describes what went wrong.
type Result struct {
	Index      int // 1-based position in a batch, 0 for single captures
	URL        string
	OutputPath string
	ByteSize   int64
	Failure    *Failure
	StartedAt  time.Time
	Duration   time.Duration
}

// OK reports whether the capture succeeded.
func (r Result) OK() bool {
	return r.Failure == nil
}
