// Package chromebrowser implements the browser ports on chromedp.
package chromebrowser

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/user/snaphero/pkg/adapters/chromepath"
	"github.com/user/snaphero/pkg/ports"
)

// Browser implements ports.Browser using chromedp. One Chrome process is
// shared by every context it creates.
type Browser struct {
	logger ports.Logger

	mu          sync.Mutex
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

// New creates a new Browser.
func New(logger ports.Logger) *Browser {
	return &Browser{logger: logger.WithComponent("browser")}
}

func allocatorOptions(opts ports.BrowserOptions, chromePath string) []chromedp.ExecAllocatorOption {
	options := []chromedp.ExecAllocatorOption{
		chromedp.ExecPath(chromePath),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("safebrowsing-disable-auto-update", true),

		// Server, CI and container execution
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-zygote", true),
	}

	if opts.Headless {
		options = append(options, chromedp.Flag("headless", "new"))
	}
	if opts.IgnoreHTTPSErrors {
		options = append(options,
			chromedp.Flag("ignore-certificate-errors", true),
			chromedp.Flag("allow-insecure-localhost", true))
	}
	if opts.ProxyServer != "" {
		options = append(options, chromedp.ProxyServer(opts.ProxyServer))
	}
	return options
}

// Launch starts Chrome and waits until it accepts commands.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	chromePath, source, err := chromepath.Require(opts.ChromePath)
	if err != nil {
		return err
	}
	b.logger.Debug("Using Chrome at %s (%s)", chromePath, source)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions(opts, chromePath)...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	// The first Run starts the process.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return fmt.Errorf("start chrome: %w", err)
	}

	b.mu.Lock()
	b.allocCancel, b.ctx, b.cancel = allocCancel, browserCtx, cancel
	b.mu.Unlock()
	return nil
}

// NewContext opens a tab in a new CDP browser context and applies opts to it.
func (b *Browser) NewContext(ctx context.Context, opts ports.ContextOptions) (ports.BrowserContext, error) {
	b.mu.Lock()
	parent := b.ctx
	b.mu.Unlock()
	if parent == nil {
		return nil, errors.New("browser is not running")
	}

	tabCtx, cancel := chromedp.NewContext(parent, chromedp.WithNewBrowserContext())
	bc := &BrowserContext{page: &Page{ctx: tabCtx}, cancel: cancel}

	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	if err := chromedp.Run(tabCtx, contextActions(opts)...); err != nil {
		bc.Close()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("configure context: %w", err)
	}
	return bc, nil
}

func contextActions(opts ports.ContextOptions) []chromedp.Action {
	actions := []chromedp.Action{
		network.Enable(),
		emulation.SetDeviceMetricsOverride(int64(opts.ViewportWidth), int64(opts.ViewportHeight), opts.DeviceScaleFactor, false),
	}
	if opts.ColorScheme != ports.ColorSchemeDefault {
		actions = append(actions, emulation.SetEmulatedMedia().WithFeatures([]*emulation.MediaFeature{
			{Name: "prefers-color-scheme", Value: string(opts.ColorScheme)},
		}))
	}
	if opts.UserAgent != "" {
		actions = append(actions, emulation.SetUserAgentOverride(opts.UserAgent))
	}
	if len(opts.Headers) > 0 {
		headers := make(network.Headers, len(opts.Headers))
		for k, v := range opts.Headers {
			headers[k] = v
		}
		actions = append(actions, network.SetExtraHTTPHeaders(headers))
	}
	return actions
}

// Close shuts Chrome down. It is safe to call more than once.
func (b *Browser) Close() error {
	b.mu.Lock()
	cancel, allocCancel := b.cancel, b.allocCancel
	b.ctx, b.cancel, b.allocCancel = nil, nil, nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if allocCancel != nil {
		allocCancel()
	}
	return nil
}

var _ ports.Browser = (*Browser)(nil)

// BrowserContext is one isolated CDP browser context holding a single tab.
type BrowserContext struct {
	page   *Page
	cancel context.CancelFunc
	once   sync.Once
}

// NewPage returns the context's tab.
func (c *BrowserContext) NewPage(ctx context.Context) (ports.Page, error) {
	return c.page, nil
}

// Close closes the tab and disposes the browser context.
func (c *BrowserContext) Close() error {
	var err error
	c.once.Do(func() {
		err = chromedp.Cancel(c.page.ctx)
		c.cancel()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

var _ ports.BrowserContext = (*BrowserContext)(nil)

// Page implements ports.Page on a chromedp tab context.
type Page struct {
	ctx context.Context
}

// run executes actions on the tab, bounded by timeout when positive and
// cancelled together with ctx.
func (p *Page) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) (timedOut bool, err error) {
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(p.ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(p.ctx)
	}
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err = chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() == nil && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return true, err
	}
	if err != nil && ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, err
}

// Navigate loads url and waits for the load event.
func (p *Page) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	timedOut, err := p.run(ctx, timeout, chromedp.Navigate(url))
	if timedOut {
		return fmt.Errorf("%w after %s: %s", ports.ErrNavigationTimeout, timeout, url)
	}
	return err
}

// WaitForSelector waits until the first element matching selector is visible.
func (p *Page) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	timedOut, err := p.run(ctx, timeout, chromedp.WaitVisible(selector, chromedp.ByQuery))
	if timedOut {
		return fmt.Errorf("%w after %s: %s", ports.ErrSelectorTimeout, timeout, selector)
	}
	return err
}

// Evaluate runs a JavaScript expression and discards its value.
func (p *Page) Evaluate(ctx context.Context, script string) error {
	_, err := p.run(ctx, 0, chromedp.Evaluate(script, nil))
	return err
}

// scrollSizeScript measures the full document in CSS pixels.
const scrollSizeScript = `({
  width: Math.max(document.documentElement.scrollWidth, document.body ? document.body.scrollWidth : 0),
  height: Math.max(document.documentElement.scrollHeight, document.body ? document.body.scrollHeight : 0)
})`

// Screenshot captures the viewport, or the whole document when FullPage is set.
func (p *Page) Screenshot(ctx context.Context, opts ports.ScreenshotOptions) ([]byte, error) {
	var buf []byte
	_, err := p.run(ctx, 0, chromedp.ActionFunc(func(ctx context.Context) error {
		params := page.CaptureScreenshot().WithFormat(page.CaptureScreenshotFormatPng)
		if opts.Format == ports.FormatJPEG {
			params = params.WithFormat(page.CaptureScreenshotFormatJpeg)
		}
		if opts.Quality != nil {
			params = params.WithQuality(int64(*opts.Quality))
		}

		if opts.FullPage {
			var size struct {
				Width  float64 `json:"width"`
				Height float64 `json:"height"`
			}
			if err := chromedp.Evaluate(scrollSizeScript, &size).Do(ctx); err != nil {
				return fmt.Errorf("measure page: %w", err)
			}
			params = params.
				WithCaptureBeyondViewport(true).
				WithClip(&page.Viewport{
					X:      0,
					Y:      0,
					Width:  math.Ceil(size.Width),
					Height: math.Ceil(size.Height),
					Scale:  1,
				})
		}

		var err error
		buf, err = params.Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	return buf, nil
}

var _ ports.Page = (*Page)(nil)
