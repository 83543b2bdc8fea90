package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/snaphero/pkg/ports"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}

	opts, err := cfg.Builder().WithURL("https://example.com").Build()
	if err != nil {
		t.Fatalf("defaults must build: %v", err)
	}
	if opts.OutputPath != "screenshot.png" || opts.Quality != 80 || opts.Timeout != 15*time.Second {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if !cfg.Headless || cfg.Engine != EngineChromedp || cfg.BatchPrefix != "screenshot_" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snaphero.yaml")
	content := `
output: out/home.jpg
full_page: true
delay: 1.5
tablet: true
quality: 60
dark_mode: true
wait_for_selector: "#app"
timeout_ms: 5000
headers:
  Authorization: Bearer token
engine: rod
headless: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	// Unset keys keep defaults.
	if cfg.BatchPrefix != "screenshot_" || cfg.Scale != 1 {
		t.Errorf("expected defaults for missing keys, got %+v", cfg)
	}
	if cfg.Headless {
		t.Error("expected headless false from file")
	}

	opts, err := cfg.Builder().WithURL("https://example.com").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if opts.ViewportWidth != 768 || opts.ViewportHeight != 1024 {
		t.Errorf("expected tablet preset, got %dx%d", opts.ViewportWidth, opts.ViewportHeight)
	}
	if opts.Delay != 1500*time.Millisecond {
		t.Errorf("expected 1.5s delay, got %s", opts.Delay)
	}
	if opts.Format() != ports.FormatJPEG || opts.Quality != 60 {
		t.Errorf("unexpected format/quality %s/%d", opts.Format(), opts.Quality)
	}
	if opts.Headers["Authorization"] != "Bearer token" {
		t.Errorf("expected header from file, got %v", opts.Headers)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("quality: [not a number"), 0644)
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"engine", func(c *Config) { c.Engine = "firefox" }},
		{"batch format", func(c *Config) { c.BatchFormat = "gif" }},
		{"log level", func(c *Config) { c.LogLevel = "verbose" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseBatchFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ports.ImageFormat
		wantErr bool
	}{
		{"png", ports.FormatPNG, false},
		{"PNG", ports.FormatPNG, false},
		{"jpg", ports.FormatJPEG, false},
		{"jpeg", ports.FormatJPEG, false},
		{"webp", ports.FormatPNG, true},
	}
	for _, tt := range tests {
		got, err := ParseBatchFormat(tt.in)
		if (err != nil) != tt.wantErr || (!tt.wantErr && got != tt.want) {
			t.Errorf("ParseBatchFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestParseHeaders(t *testing.T) {
	headers, err := ParseHeaders([]string{"X-Test: 1", "Authorization:Bearer a:b", "X-Test: 2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if headers["X-Test"] != "2" {
		t.Errorf("expected later value to win, got %q", headers["X-Test"])
	}
	if headers["Authorization"] != "Bearer a:b" {
		t.Errorf("expected value with colon preserved, got %q", headers["Authorization"])
	}

	for _, bad := range []string{"no-colon", ": value"} {
		if _, err := ParseHeaders([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
