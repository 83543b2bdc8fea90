// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/snaphero/pkg/ports"
	"github.com/user/snaphero/pkg/snaphero"
)

// Supported browser engines.
const (
	EngineChromedp   = "chromedp"
	EnginePlaywright = "playwright"
	EngineRod        = "rod"
)

// Config represents the full configuration for snaphero.
type Config struct {
	// Output
	OutputPath string  `yaml:"output"`
	FullPage   bool    `yaml:"full_page"`
	Delay      float64 `yaml:"delay"` // seconds

	// Viewport
	ViewportWidth  int     `yaml:"viewport_width"`
	ViewportHeight int     `yaml:"viewport_height"`
	Mobile         bool    `yaml:"mobile"`
	Tablet         bool    `yaml:"tablet"`
	Scale          float64 `yaml:"scale"`

	// Rendering
	Quality           int               `yaml:"quality"`
	DarkMode          bool              `yaml:"dark_mode"`
	HideCookieBanners bool              `yaml:"hide_cookie_banners"`
	WaitForSelector   string            `yaml:"wait_for_selector"`
	TimeoutMs         int               `yaml:"timeout_ms"`
	UserAgent         string            `yaml:"user_agent"`
	Headers           map[string]string `yaml:"headers"`

	// Batch
	BatchPrefix string `yaml:"batch_prefix"`
	BatchFormat string `yaml:"batch_format"` // png or jpg

	// Browser
	Engine            string `yaml:"engine"`
	ChromePath        string `yaml:"chrome_path"`
	Headless          bool   `yaml:"headless"`
	IgnoreHTTPSErrors bool   `yaml:"ignore_https_errors"`
	ProxyServer       string `yaml:"proxy_server"`
	BrowserPerCapture bool   `yaml:"browser_per_capture"`

	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		OutputPath:     snaphero.DefaultOutputPath,
		ViewportWidth:  snaphero.DefaultViewportWidth,
		ViewportHeight: snaphero.DefaultViewportHeight,
		Scale:          snaphero.DefaultScale,
		Quality:        snaphero.DefaultQuality,
		TimeoutMs:      int(snaphero.DefaultTimeout / time.Millisecond),

		BatchPrefix: "screenshot_",
		BatchFormat: "png",

		Engine:   EngineChromedp,
		Headless: true,

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
// Keys missing from the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that Options validation does not cover.
func (c Config) Validate() error {
	switch c.Engine {
	case EngineChromedp, EnginePlaywright, EngineRod:
	default:
		return fmt.Errorf("unknown engine %q (want chromedp, playwright or rod)", c.Engine)
	}
	if _, err := ParseBatchFormat(c.BatchFormat); err != nil {
		return err
	}
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Builder returns an options builder populated from the configuration.
func (c Config) Builder() *snaphero.Builder {
	return snaphero.NewBuilder().
		WithOutputPath(c.OutputPath).
		WithFullPage(c.FullPage).
		WithDelaySeconds(c.Delay).
		WithViewport(c.ViewportWidth, c.ViewportHeight).
		WithMobile(c.Mobile).
		WithTablet(c.Tablet).
		WithScale(c.Scale).
		WithQuality(c.Quality).
		WithDarkMode(c.DarkMode).
		WithHideCookieBanners(c.HideCookieBanners).
		WithWaitForSelector(c.WaitForSelector).
		WithTimeoutMillis(c.TimeoutMs).
		WithUserAgent(c.UserAgent).
		WithHeaders(c.Headers)
}

// BrowserOptions returns the launch settings for the configured engine.
func (c Config) BrowserOptions() ports.BrowserOptions {
	return ports.BrowserOptions{
		Headless:          c.Headless,
		ChromePath:        c.ChromePath,
		IgnoreHTTPSErrors: c.IgnoreHTTPSErrors,
		ProxyServer:       c.ProxyServer,
	}
}

// ParseBatchFormat maps "png", "jpg" or "jpeg" to an image format.
func ParseBatchFormat(s string) (ports.ImageFormat, error) {
	switch strings.ToLower(s) {
	case "", "png":
		return ports.FormatPNG, nil
	case "jpg", "jpeg":
		return ports.FormatJPEG, nil
	default:
		return ports.FormatPNG, fmt.Errorf("unknown batch format %q (want png or jpg)", s)
	}
}

// ParseHeader splits a "Name: value" header flag.
func ParseHeader(s string) (name, value string, err error) {
	name, value, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid header %q (want \"Name: value\")", s)
	}
	return name, strings.TrimSpace(value), nil
}

// ParseHeaders parses repeated header flags. Later values win.
func ParseHeaders(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(values))
	for _, v := range values {
		name, value, err := ParseHeader(v)
		if err != nil {
			return nil, err
		}
		headers[name] = value
	}
	return headers, nil
}
