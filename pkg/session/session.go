// Package session manages the browser lifecycle across captures.
//
// A Manager launches one browser process and hands out a fresh isolated
// context for every capture. With per-capture isolation enabled the browser
// itself is relaunched for every capture instead.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
)

// Manager owns a browser and scopes capture work to isolated contexts.
type Manager struct {
	browser    ports.Browser
	opts       ports.BrowserOptions
	logger     ports.Logger
	perCapture bool

	mu       sync.Mutex
	launched bool
}

// New creates a Manager. When perCapture is true, With launches and closes
// the browser around every capture.
func New(browser ports.Browser, opts ports.BrowserOptions, logger ports.Logger, perCapture bool) *Manager {
	return &Manager{
		browser:    browser,
		opts:       opts,
		logger:     logger.WithComponent("session"),
		perCapture: perCapture,
	}
}

// Start launches the shared browser. It is a no-op in per-capture mode and
// when the browser is already running.
func (m *Manager) Start(ctx context.Context) error {
	if m.perCapture {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.launched {
		return nil
	}
	if err := m.launch(ctx); err != nil {
		return err
	}
	m.launched = true
	return nil
}

func (m *Manager) launch(ctx context.Context) error {
	if m.opts.Headless {
		m.logger.Debug("Launching browser in headless mode")
	} else {
		m.logger.Debug("Launching browser in visible mode")
	}
	if err := m.browser.Launch(ctx, m.opts); err != nil {
		// Launch may leave a half-started process behind.
		m.browser.Close()
		return pipeline.NewFailure(pipeline.KindLaunch, pipeline.StepAcquireSession, "browser could not be started", err)
	}
	return nil
}

// With runs fn against a new page in a fresh isolated context.
// The context is closed on every exit path, including panics in fn.
// Errors from acquiring the context or page are launch failures.
func (m *Manager) With(ctx context.Context, opts ports.ContextOptions, fn func(ctx context.Context, page ports.Page) error) (err error) {
	if m.perCapture {
		if err := m.launch(ctx); err != nil {
			return err
		}
		defer func() {
			if cerr := m.browser.Close(); cerr != nil {
				m.logger.Debug("Failed to close browser: %v", cerr)
			}
		}()
	} else {
		m.mu.Lock()
		launched := m.launched
		m.mu.Unlock()
		if !launched {
			return pipeline.NewFailure(pipeline.KindLaunch, pipeline.StepAcquireSession, "browser is not running", nil)
		}
	}

	bc, err := m.browser.NewContext(ctx, opts)
	if err != nil {
		return acquireError(ctx, "browser context could not be created", err)
	}
	defer func() {
		if cerr := bc.Close(); cerr != nil {
			m.logger.Debug("Failed to close browser context: %v", cerr)
		}
	}()

	page, err := bc.NewPage(ctx)
	if err != nil {
		return acquireError(ctx, "page could not be opened", err)
	}

	m.logger.Debug("Opened isolated context %dx%d", opts.ViewportWidth, opts.ViewportHeight)
	return fn(ctx, page)
}

// Close shuts down the shared browser. It is safe to call more than once.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.launched {
		return nil
	}
	m.launched = false
	return m.browser.Close()
}

func acquireError(ctx context.Context, message string, err error) error {
	// Cancellation surfaces as the caller's own error rather than a launch failure.
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return ctxErr
	}
	return pipeline.NewFailure(pipeline.KindLaunch, pipeline.StepAcquireSession, message, err)
}
