// Package rodbrowser implements the browser ports on go-rod.
package rodbrowser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/user/snaphero/pkg/adapters/chromepath"
	"github.com/user/snaphero/pkg/ports"
)

// Browser implements ports.Browser with a launcher-managed Chrome.
type Browser struct {
	logger ports.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// New creates a new Browser.
func New(logger ports.Logger) *Browser {
	return &Browser{logger: logger.WithComponent("browser")}
}

func newLauncher(opts ports.BrowserOptions, chromePath string) *launcher.Launcher {
	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(true).
		Leakless(false).
		Bin(chromePath)

	if opts.ProxyServer != "" {
		l = l.Proxy(opts.ProxyServer)
	}
	if opts.IgnoreHTTPSErrors {
		l.Set(flags.Flag("ignore-certificate-errors"))
	}

	l.Set(flags.Flag("hide-scrollbars"))
	l.Set(flags.Flag("mute-audio"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-gpu"))
	l.Set(flags.Flag("no-first-run"))
	return l
}

// Launch starts a locally installed Chrome and connects to it over CDP.
// The launcher is always given an explicit binary so it never downloads one.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	chromePath, source, err := chromepath.Require(opts.ChromePath)
	if err != nil {
		return err
	}
	b.logger.Debug("Using Chrome at %s (%s)", chromePath, source)

	l := newLauncher(opts, chromePath)
	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return fmt.Errorf("connect to chrome: %w", err)
	}

	b.mu.Lock()
	b.launcher, b.browser = l, browser
	b.mu.Unlock()
	return nil
}

// NewContext creates an incognito browser context with one configured page.
func (b *Browser) NewContext(ctx context.Context, opts ports.ContextOptions) (ports.BrowserContext, error) {
	b.mu.Lock()
	browser := b.browser
	b.mu.Unlock()
	if browser == nil {
		return nil, errors.New("browser is not running")
	}

	incognito, err := browser.Context(ctx).Incognito()
	if err != nil {
		return nil, fmt.Errorf("create incognito context: %w", err)
	}
	bc := &BrowserContext{browser: incognito.Context(context.Background())}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		bc.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}
	if err := configure(page, opts); err != nil {
		bc.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("configure context: %w", err)
	}

	// Drop the creation context so later calls are bound per operation.
	bc.page = &Page{page: page.Context(context.Background())}
	return bc, nil
}

func configure(page *rod.Page, opts ports.ContextOptions) error {
	err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.ViewportWidth,
		Height:            opts.ViewportHeight,
		DeviceScaleFactor: opts.DeviceScaleFactor,
	})
	if err != nil {
		return err
	}

	if opts.ColorScheme != ports.ColorSchemeDefault {
		err = proto.EmulationSetEmulatedMedia{
			Features: []*proto.EmulationMediaFeature{
				{Name: "prefers-color-scheme", Value: string(opts.ColorScheme)},
			},
		}.Call(page)
		if err != nil {
			return err
		}
	}

	if opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: opts.UserAgent}); err != nil {
			return err
		}
	}

	if len(opts.Headers) > 0 {
		headers := make(proto.NetworkHeaders, len(opts.Headers))
		for k, v := range opts.Headers {
			headers[k] = gson.New(v)
		}
		if err := (proto.NetworkSetExtraHTTPHeaders{Headers: headers}).Call(page); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the browser and removes the launcher's profile directory.
func (b *Browser) Close() error {
	b.mu.Lock()
	browser, l := b.browser, b.launcher
	b.browser, b.launcher = nil, nil
	b.mu.Unlock()

	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
		l.Cleanup()
	}
	return err
}

var _ ports.Browser = (*Browser)(nil)

// BrowserContext wraps an incognito rod.Browser.
type BrowserContext struct {
	browser *rod.Browser
	page    *Page
	once    sync.Once
}

// NewPage returns the page created with the context.
func (c *BrowserContext) NewPage(ctx context.Context) (ports.Page, error) {
	if c.page == nil {
		return nil, errors.New("context has no page")
	}
	return c.page, nil
}

// Close disposes the incognito context and its pages.
func (c *BrowserContext) Close() error {
	var err error
	c.once.Do(func() {
		err = c.browser.Close()
	})
	return err
}

var _ ports.BrowserContext = (*BrowserContext)(nil)

// Page implements ports.Page on a rod.Page.
type Page struct {
	page *rod.Page
}

// timedOut reports whether err came from the operation timeout rather than
// from the caller giving up.
func timedOut(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded)
}

// Navigate loads url and waits for the load event.
func (p *Page) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	err := page.Navigate(url)
	if err == nil {
		err = page.WaitLoad()
	}
	switch {
	case timedOut(ctx, err):
		return fmt.Errorf("%w after %s: %s", ports.ErrNavigationTimeout, timeout, url)
	case err != nil && ctx.Err() != nil:
		return ctx.Err()
	}
	return err
}

// WaitForSelector waits until the first element matching selector is visible.
func (p *Page) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	el, err := page.Element(selector)
	if err == nil {
		err = el.WaitVisible()
	}
	switch {
	case timedOut(ctx, err):
		return fmt.Errorf("%w after %s: %s", ports.ErrSelectorTimeout, timeout, selector)
	case err != nil && ctx.Err() != nil:
		return ctx.Err()
	}
	return err
}

// Evaluate runs a JavaScript expression and discards its value.
func (p *Page) Evaluate(ctx context.Context, script string) error {
	expr := strings.TrimRight(strings.TrimSpace(script), ";")
	_, err := p.page.Context(ctx).Eval("() => (" + expr + ")")
	return err
}

// Screenshot captures the viewport, or the whole document when FullPage is set.
func (p *Page) Screenshot(ctx context.Context, opts ports.ScreenshotOptions) ([]byte, error) {
	req := &proto.PageCaptureScreenshot{Format: proto.PageCaptureScreenshotFormatPng}
	if opts.Format == ports.FormatJPEG {
		req.Format = proto.PageCaptureScreenshotFormatJpeg
	}
	if opts.Quality != nil {
		req.Quality = gson.Int(*opts.Quality)
	}

	data, err := p.page.Context(ctx).Screenshot(opts.FullPage, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return data, nil
}

var _ ports.Page = (*Page)(nil)
