// Package pwbrowser implements the browser ports on playwright-go.
package pwbrowser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/user/snaphero/pkg/ports"
)

// Browser implements ports.Browser with a Playwright-driven Chromium.
type Browser struct {
	logger ports.Logger

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    ports.BrowserOptions
}

// New creates a new Browser.
func New(logger ports.Logger) *Browser {
	return &Browser{logger: logger.WithComponent("browser")}
}

// Launch starts the Playwright driver and a Chromium instance.
// The driver and browsers must already be installed (`playwright install chromium`).
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.ChromePath != "" {
		launch.ExecutablePath = playwright.String(opts.ChromePath)
	}
	if opts.ProxyServer != "" {
		launch.Proxy = &playwright.Proxy{Server: opts.ProxyServer}
	}

	browser, err := pw.Chromium.Launch(launch)
	if err != nil {
		pw.Stop()
		return fmt.Errorf("launch chromium: %w", err)
	}
	b.logger.Debug("Playwright Chromium %s started", browser.Version())

	b.mu.Lock()
	b.pw, b.browser, b.opts = pw, browser, opts
	b.mu.Unlock()
	return nil
}

// NewContext creates a Playwright browser context with the emulation settings applied.
func (b *Browser) NewContext(ctx context.Context, opts ports.ContextOptions) (ports.BrowserContext, error) {
	b.mu.Lock()
	browser, launchOpts := b.browser, b.opts
	b.mu.Unlock()
	if browser == nil {
		return nil, errors.New("browser is not running")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
		DeviceScaleFactor: playwright.Float(opts.DeviceScaleFactor),
		IgnoreHttpsErrors: playwright.Bool(launchOpts.IgnoreHTTPSErrors),
	}
	switch opts.ColorScheme {
	case ports.ColorSchemeDark:
		options.ColorScheme = playwright.ColorSchemeDark
	case ports.ColorSchemeLight:
		options.ColorScheme = playwright.ColorSchemeLight
	}
	if opts.UserAgent != "" {
		options.UserAgent = playwright.String(opts.UserAgent)
	}
	if len(opts.Headers) > 0 {
		options.ExtraHttpHeaders = opts.Headers
	}

	pctx, err := browser.NewContext(options)
	if err != nil {
		return nil, fmt.Errorf("create context: %w", err)
	}
	return &BrowserContext{ctx: pctx}, nil
}

// Close closes Chromium and stops the driver.
func (b *Browser) Close() error {
	b.mu.Lock()
	pw, browser := b.pw, b.browser
	b.pw, b.browser = nil, nil
	b.mu.Unlock()

	var errs []error
	if browser != nil {
		errs = append(errs, browser.Close())
	}
	if pw != nil {
		errs = append(errs, pw.Stop())
	}
	return errors.Join(errs...)
}

var _ ports.Browser = (*Browser)(nil)

// BrowserContext wraps a playwright.BrowserContext.
type BrowserContext struct {
	ctx  playwright.BrowserContext
	once sync.Once
}

// NewPage opens a page in the context.
func (c *BrowserContext) NewPage(ctx context.Context) (ports.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, err := c.ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &Page{page: page}, nil
}

// Close closes the context and all of its pages.
func (c *BrowserContext) Close() error {
	var err error
	c.once.Do(func() {
		err = c.ctx.Close()
	})
	return err
}

var _ ports.BrowserContext = (*BrowserContext)(nil)

// Page implements ports.Page on a playwright.Page.
type Page struct {
	page playwright.Page
}

// guard closes the page when ctx is cancelled so a blocked driver call returns.
// The returned func must be called when the operation ends.
func (p *Page) guard(ctx context.Context) func() bool {
	return context.AfterFunc(ctx, func() { p.page.Close() })
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

// Navigate loads url and waits for the load event.
func (p *Page) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer p.guard(ctx)()

	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   millis(timeout),
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, playwright.ErrTimeout):
		return fmt.Errorf("%w after %s: %s", ports.ErrNavigationTimeout, timeout, url)
	}
	return err
}

// WaitForSelector waits until the first element matching selector is visible.
func (p *Page) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer p.guard(ctx)()

	_, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: millis(timeout),
	})
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, playwright.ErrTimeout):
		return fmt.Errorf("%w after %s: %s", ports.ErrSelectorTimeout, timeout, selector)
	}
	return err
}

// Evaluate runs a JavaScript expression and discards its value.
func (p *Page) Evaluate(ctx context.Context, script string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer p.guard(ctx)()

	if _, err := p.page.Evaluate(script); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Screenshot captures the viewport, or the whole document when FullPage is set.
func (p *Page) Screenshot(ctx context.Context, opts ports.ScreenshotOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer p.guard(ctx)()

	options := playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(opts.FullPage),
		Type:     playwright.ScreenshotTypePng,
	}
	if opts.Format == ports.FormatJPEG {
		options.Type = playwright.ScreenshotTypeJpeg
	}
	if opts.Quality != nil {
		options.Quality = playwright.Int(*opts.Quality)
	}

	data, err := p.page.Screenshot(options)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return data, nil
}

var _ ports.Page = (*Page)(nil)
