// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors returned (wrapped) by Page implementations so that callers
// can classify failures without knowing the underlying engine.
var (
	// ErrNavigationTimeout reports that a page did not finish loading in time.
	ErrNavigationTimeout = errors.New("navigation timeout")

	// ErrSelectorTimeout reports that a CSS selector never became visible in time.
	ErrSelectorTimeout = errors.New("selector timeout")
)

// Browser abstracts the headless browser process.
type Browser interface {
	// Launch starts the browser process with the given options.
	// A launch failure is not attributable to any capture target.
	Launch(ctx context.Context, opts BrowserOptions) error

	// NewContext creates an isolated browsing context. Cookies and storage
	// are never shared between contexts.
	NewContext(ctx context.Context, opts ContextOptions) (BrowserContext, error)

	// Close shuts down the browser. It is safe to call more than once.
	Close() error
}

// BrowserContext is an isolated browsing session inside one browser process.
type BrowserContext interface {
	// NewPage opens a page inside the context.
	NewPage(ctx context.Context) (Page, error)

	// Close disposes the context and every page in it. It is safe to call
	// more than once.
	Close() error
}

// Page is a single tab that can be navigated and captured.
type Page interface {
	// Navigate loads url and waits for the load event.
	// Returns an error wrapping ErrNavigationTimeout when timeout elapses.
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// WaitForSelector waits until an element matching the CSS selector is visible.
	// Returns an error wrapping ErrSelectorTimeout when timeout elapses.
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error

	// Evaluate runs a JavaScript expression in the page and discards its value.
	Evaluate(ctx context.Context, script string) error

	// Screenshot rasterizes the page and returns the encoded image bytes.
	Screenshot(ctx context.Context, opts ScreenshotOptions) ([]byte, error)
}

// BrowserOptions configures browser launch settings.
type BrowserOptions struct {
	Headless          bool
	ChromePath        string
	IgnoreHTTPSErrors bool   // Ignore HTTPS certificate errors
	ProxyServer       string // HTTP proxy server (e.g., "http://proxy:8080")
}

// ColorScheme is the emulated prefers-color-scheme media feature.
type ColorScheme string

const (
	// ColorSchemeDefault leaves the page's color scheme untouched.
	ColorSchemeDefault ColorScheme = ""
	ColorSchemeLight   ColorScheme = "light"
	ColorSchemeDark    ColorScheme = "dark"
)

// ContextOptions configures an isolated browsing context.
type ContextOptions struct {
	ViewportWidth     int     // CSS pixels
	ViewportHeight    int     // CSS pixels
	DeviceScaleFactor float64 // Device pixels per CSS pixel
	ColorScheme       ColorScheme
	UserAgent         string            // Empty keeps the browser default
	Headers           map[string]string // Extra HTTP headers sent with every request
}

// ScreenshotOptions configures a single screenshot.
type ScreenshotOptions struct {
	FullPage bool
	Format   ImageFormat
	// Quality is sent to the encoder only when non-nil. PNG captures never set it.
	Quality *int
}
