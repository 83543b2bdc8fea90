package snaphero

import (
	"math"
	"testing"
	"time"

	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
)

func TestBuilder_Defaults(t *testing.T) {
	opts, err := NewBuilder().WithURL("https://example.com").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.OutputPath != "screenshot.png" {
		t.Errorf("expected default output screenshot.png, got %s", opts.OutputPath)
	}
	if opts.ViewportWidth != 1280 || opts.ViewportHeight != 720 {
		t.Errorf("expected 1280x720, got %dx%d", opts.ViewportWidth, opts.ViewportHeight)
	}
	if opts.Quality != 80 {
		t.Errorf("expected quality 80, got %d", opts.Quality)
	}
	if opts.Scale != 1 {
		t.Errorf("expected scale 1, got %g", opts.Scale)
	}
	if opts.Timeout != 15*time.Second {
		t.Errorf("expected 15s timeout, got %s", opts.Timeout)
	}
}

func TestBuilder_Presets(t *testing.T) {
	tests := []struct {
		name          string
		mobile        bool
		tablet        bool
		width, height int
		wantW, wantH  int
		wantPreset    string
	}{
		{name: "explicit", width: 1920, height: 1080, wantW: 1920, wantH: 1080},
		{name: "mobile overrides explicit", mobile: true, width: 1920, height: 1080, wantW: 375, wantH: 667, wantPreset: "mobile"},
		{name: "tablet overrides explicit", tablet: true, width: 1920, height: 1080, wantW: 768, wantH: 1024, wantPreset: "tablet"},
		{name: "tablet wins over mobile", mobile: true, tablet: true, width: 100, height: 100, wantW: 768, wantH: 1024, wantPreset: "tablet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder().
				WithViewport(tt.width, tt.height).
				WithMobile(tt.mobile).
				WithTablet(tt.tablet)

			if b.Preset() != tt.wantPreset {
				t.Errorf("expected preset %q, got %q", tt.wantPreset, b.Preset())
			}

			opts, err := b.Build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if opts.ViewportWidth != tt.wantW || opts.ViewportHeight != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, opts.ViewportWidth, opts.ViewportHeight)
			}
		})
	}
}

func TestBuilder_QualityBounds(t *testing.T) {
	tests := []struct {
		quality int
		wantErr bool
	}{
		{quality: -5, wantErr: true},
		{quality: 0, wantErr: true},
		{quality: 1, wantErr: false},
		{quality: 80, wantErr: false},
		{quality: 100, wantErr: false},
		{quality: 101, wantErr: true},
	}

	for _, tt := range tests {
		_, err := NewBuilder().WithQuality(tt.quality).Build()
		if tt.wantErr {
			if err == nil {
				t.Errorf("quality %d: expected error", tt.quality)
				continue
			}
			if !pipeline.IsKind(err, pipeline.KindConfiguration) {
				t.Errorf("quality %d: expected configuration failure, got %v", tt.quality, err)
			}
		} else if err != nil {
			t.Errorf("quality %d: unexpected error: %v", tt.quality, err)
		}
	}
}

func TestBuilder_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
	}{
		{"zero width", NewBuilder().WithViewportWidth(0)},
		{"negative height", NewBuilder().WithViewportHeight(-1)},
		{"zero scale", NewBuilder().WithScale(0)},
		{"NaN scale", NewBuilder().WithScale(math.NaN())},
		{"infinite scale", NewBuilder().WithScale(math.Inf(1))},
		{"negative delay", NewBuilder().WithDelaySeconds(-1)},
		{"NaN delay", NewBuilder().WithDelaySeconds(math.NaN())},
		{"infinite delay", NewBuilder().WithDelaySeconds(math.Inf(1))},
		{"overflowing delay", NewBuilder().WithDelaySeconds(1e12)},
		{"zero timeout", NewBuilder().WithTimeoutMillis(0)},
		{"empty output", NewBuilder().WithOutputPath("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			if !pipeline.IsKind(err, pipeline.KindConfiguration) {
				t.Errorf("expected configuration failure, got %v", err)
			}
		})
	}
}

func TestBuilder_DelaySeconds(t *testing.T) {
	opts, err := NewBuilder().WithDelaySeconds(1.5).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Delay != 1500*time.Millisecond {
		t.Errorf("expected 1.5s delay, got %s", opts.Delay)
	}
}

func TestOptions_Format(t *testing.T) {
	tests := []struct {
		path string
		want ports.ImageFormat
	}{
		{"shot.png", ports.FormatPNG},
		{"shot.PNG", ports.FormatPNG},
		{"shot.jpg", ports.FormatJPEG},
		{"shot.JPG", ports.FormatJPEG},
		{"shot.jpeg", ports.FormatJPEG},
		{"shot.JpEg", ports.FormatJPEG},
		{"shot.webp", ports.FormatPNG},
		{"shot", ports.FormatPNG},
	}

	for _, tt := range tests {
		opts := Options{OutputPath: tt.path}
		if got := opts.Format(); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.path, tt.want, got)
		}
	}
}

func TestOptions_ForTarget(t *testing.T) {
	template, err := NewBuilder().
		WithHeaders(map[string]string{"X-Test": "1"}).
		WithFullPage(true).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	target := template.ForTarget("https://example.com", "out.png")
	target.Headers["X-Test"] = "changed"

	if template.Headers["X-Test"] != "1" {
		t.Error("ForTarget must not share the headers map with the template")
	}
	if target.URL != "https://example.com" || target.OutputPath != "out.png" {
		t.Errorf("unexpected target: %+v", target)
	}
	if !target.FullPage {
		t.Error("expected FullPage to be carried over")
	}
}

func TestOptions_ContextOptions(t *testing.T) {
	opts, err := NewBuilder().
		WithMobile(true).
		WithScale(2).
		WithDarkMode(true).
		WithUserAgent("Bot/1.0").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctxOpts := opts.ContextOptions()
	if ctxOpts.ViewportWidth != 375 || ctxOpts.ViewportHeight != 667 {
		t.Errorf("unexpected viewport %dx%d", ctxOpts.ViewportWidth, ctxOpts.ViewportHeight)
	}
	if ctxOpts.DeviceScaleFactor != 2 {
		t.Errorf("expected scale 2, got %g", ctxOpts.DeviceScaleFactor)
	}
	if ctxOpts.ColorScheme != ports.ColorSchemeDark {
		t.Errorf("expected dark color scheme, got %q", ctxOpts.ColorScheme)
	}
	if ctxOpts.UserAgent != "Bot/1.0" {
		t.Errorf("expected user agent, got %q", ctxOpts.UserAgent)
	}
}
