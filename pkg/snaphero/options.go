// Package snaphero provides the capture options model and its builder.
package snaphero

import (
	"fmt"
	"maps"
	"math"
	"time"

	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
)

// Preset viewport sizes.
const (
	MobileWidth  = 375
	MobileHeight = 667
	TabletWidth  = 768
	TabletHeight = 1024
)

// Defaults used when neither a config file nor a flag sets a value.
const (
	DefaultOutputPath     = "screenshot.png"
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultQuality        = 80
	DefaultScale          = 1.0
	DefaultTimeout        = 15 * time.Second
)

// Options is the validated configuration of one capture.
// Values are read-only once built; use ForTarget to derive per-target copies.
type Options struct {
	URL        string
	OutputPath string
	FullPage   bool
	Delay      time.Duration

	ViewportWidth  int
	ViewportHeight int
	Scale          float64 // Device scale factor

	Quality int // JPEG quality 1-100; ignored for PNG

	DarkMode          bool
	HideCookieBanners bool
	WaitForSelector   string
	Timeout           time.Duration
	UserAgent         string
	Headers           map[string]string
}

// Format returns the encoding selected by the output path extension.
func (o Options) Format() ports.ImageFormat {
	return ports.FormatForPath(o.OutputPath)
}

// ContextOptions converts the options to browser context settings.
func (o Options) ContextOptions() ports.ContextOptions {
	scheme := ports.ColorSchemeDefault
	if o.DarkMode {
		scheme = ports.ColorSchemeDark
	}
	return ports.ContextOptions{
		ViewportWidth:     o.ViewportWidth,
		ViewportHeight:    o.ViewportHeight,
		DeviceScaleFactor: o.Scale,
		ColorScheme:       scheme,
		UserAgent:         o.UserAgent,
		Headers:           maps.Clone(o.Headers),
	}
}

// ForTarget returns a copy of o for another URL and output path.
// Nothing else varies between batch targets.
func (o Options) ForTarget(url, outputPath string) Options {
	c := o
	c.URL = url
	c.OutputPath = outputPath
	c.Headers = maps.Clone(o.Headers)
	return c
}

// Validate checks the invariants of Options. It never touches the network.
func (o Options) Validate() error {
	if o.Quality < 1 || o.Quality > 100 {
		return configError("quality must be between 1 and 100, got %d", o.Quality)
	}
	if o.ViewportWidth <= 0 || o.ViewportHeight <= 0 {
		return configError("viewport must be positive, got %dx%d", o.ViewportWidth, o.ViewportHeight)
	}
	if !(o.Scale > 0) || math.IsInf(o.Scale, 0) {
		return configError("scale must be greater than 0, got %g", o.Scale)
	}
	if o.Delay < 0 {
		return configError("delay must not be negative, got %s", o.Delay)
	}
	if o.Timeout <= 0 {
		return configError("timeout must be positive, got %s", o.Timeout)
	}
	if o.OutputPath == "" {
		return configError("output path must not be empty")
	}
	return nil
}

func configError(format string, args ...interface{}) error {
	return pipeline.NewFailure(pipeline.KindConfiguration, "validate", fmt.Sprintf(format, args...), nil)
}
