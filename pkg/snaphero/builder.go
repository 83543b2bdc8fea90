package snaphero

import (
	"maps"
	"math"
	"time"
)

// Builder provides a fluent interface for building Options.
type Builder struct {
	options Options
	mobile  bool
	tablet  bool
	err     error
}

// NewBuilder creates a Builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		options: Defaults(),
	}
}

// Defaults returns the built-in default options.
func Defaults() Options {
	return Options{
		OutputPath:     DefaultOutputPath,
		ViewportWidth:  DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
		Scale:          DefaultScale,
		Quality:        DefaultQuality,
		Timeout:        DefaultTimeout,
	}
}

// WithURL sets the target URL.
func (b *Builder) WithURL(url string) *Builder {
	b.options.URL = url
	return b
}

// WithOutputPath sets the output file. Its extension selects PNG or JPEG.
func (b *Builder) WithOutputPath(path string) *Builder {
	b.options.OutputPath = path
	return b
}

// WithFullPage captures the full scrollable page instead of the viewport.
func (b *Builder) WithFullPage(fullPage bool) *Builder {
	b.options.FullPage = fullPage
	return b
}

// WithDelaySeconds sets the settle delay before capture.
// Values that do not fit a time.Duration make Build fail.
func (b *Builder) WithDelaySeconds(seconds float64) *Builder {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || math.Abs(seconds) > maxDelaySeconds {
		b.err = configError("delay must be a finite number of seconds, got %g", seconds)
		return b
	}
	b.err = nil
	b.options.Delay = time.Duration(seconds * float64(time.Second))
	return b
}

const maxDelaySeconds = float64(math.MaxInt64 / int64(time.Second))

// WithViewport sets an explicit viewport size. Presets override it.
func (b *Builder) WithViewport(width, height int) *Builder {
	b.options.ViewportWidth = width
	b.options.ViewportHeight = height
	return b
}

// WithViewportWidth sets the viewport width only.
func (b *Builder) WithViewportWidth(width int) *Builder {
	b.options.ViewportWidth = width
	return b
}

// WithViewportHeight sets the viewport height only.
func (b *Builder) WithViewportHeight(height int) *Builder {
	b.options.ViewportHeight = height
	return b
}

// WithMobile requests the 375x667 mobile viewport.
func (b *Builder) WithMobile(enabled bool) *Builder {
	b.mobile = enabled
	return b
}

// WithTablet requests the 768x1024 tablet viewport.
func (b *Builder) WithTablet(enabled bool) *Builder {
	b.tablet = enabled
	return b
}

// WithQuality sets the JPEG quality.
func (b *Builder) WithQuality(quality int) *Builder {
	b.options.Quality = quality
	return b
}

// WithScale sets the device scale factor.
func (b *Builder) WithScale(scale float64) *Builder {
	b.options.Scale = scale
	return b
}

// WithDarkMode requests dark color-scheme emulation.
func (b *Builder) WithDarkMode(enabled bool) *Builder {
	b.options.DarkMode = enabled
	return b
}

// WithHideCookieBanners enables the banner-hiding script.
func (b *Builder) WithHideCookieBanners(enabled bool) *Builder {
	b.options.HideCookieBanners = enabled
	return b
}

// WithWaitForSelector waits for a CSS selector before capture.
func (b *Builder) WithWaitForSelector(selector string) *Builder {
	b.options.WaitForSelector = selector
	return b
}

// WithTimeoutMillis sets the navigation and selector timeout.
func (b *Builder) WithTimeoutMillis(ms int) *Builder {
	b.options.Timeout = time.Duration(ms) * time.Millisecond
	return b
}

// WithUserAgent overrides the browser user agent.
func (b *Builder) WithUserAgent(ua string) *Builder {
	b.options.UserAgent = ua
	return b
}

// WithHeaders merges extra HTTP headers. Later calls win on duplicate names.
func (b *Builder) WithHeaders(headers map[string]string) *Builder {
	if len(headers) == 0 {
		return b
	}
	if b.options.Headers == nil {
		b.options.Headers = make(map[string]string, len(headers))
	}
	maps.Copy(b.options.Headers, headers)
	return b
}

// Preset returns the name of the preset that Build will apply.
func (b *Builder) Preset() string {
	switch {
	case b.tablet:
		return "tablet"
	case b.mobile:
		return "mobile"
	default:
		return ""
	}
}

// Build applies presets and validates the result.
// Presets replace any explicit viewport. When both are requested the tablet
// preset is applied after the mobile one and therefore wins.
func (b *Builder) Build() (Options, error) {
	if b.err != nil {
		return Options{}, b.err
	}
	opts := b.options
	opts.Headers = maps.Clone(b.options.Headers)

	if b.mobile {
		opts.ViewportWidth = MobileWidth
		opts.ViewportHeight = MobileHeight
	}
	if b.tablet {
		opts.ViewportWidth = TabletWidth
		opts.ViewportHeight = TabletHeight
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
