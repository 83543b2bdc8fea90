// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/user/snaphero/pkg/ports"
)

// Browser is a mock implementation of ports.Browser.
// Contexts created by NewContext are recorded for verification.
type Browser struct {
	mu sync.Mutex

	LaunchFunc     func(ctx context.Context, opts ports.BrowserOptions) error
	NewContextFunc func(ctx context.Context, opts ports.ContextOptions) (ports.BrowserContext, error)
	CloseFunc      func() error

	// NewPageFunc is used by contexts created with the default NewContext.
	NewPageFunc func(ctx context.Context) (ports.Page, error)

	// Page is returned by default contexts when NewPageFunc is nil.
	Page *Page

	// Recorded calls for verification
	LaunchCalls  []ports.BrowserOptions
	Contexts     []*BrowserContext
	ContextCalls []ports.ContextOptions
	CloseCalls   int
}

func (m *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	m.mu.Lock()
	m.LaunchCalls = append(m.LaunchCalls, opts)
	m.mu.Unlock()
	if m.LaunchFunc != nil {
		return m.LaunchFunc(ctx, opts)
	}
	return nil
}

func (m *Browser) NewContext(ctx context.Context, opts ports.ContextOptions) (ports.BrowserContext, error) {
	m.mu.Lock()
	m.ContextCalls = append(m.ContextCalls, opts)
	m.mu.Unlock()
	if m.NewContextFunc != nil {
		return m.NewContextFunc(ctx, opts)
	}

	bc := &BrowserContext{NewPageFunc: m.NewPageFunc}
	if bc.NewPageFunc == nil {
		page := m.Page
		if page == nil {
			page = &Page{}
		}
		bc.NewPageFunc = func(context.Context) (ports.Page, error) { return page, nil }
	}
	m.mu.Lock()
	m.Contexts = append(m.Contexts, bc)
	m.mu.Unlock()
	return bc, nil
}

func (m *Browser) Close() error {
	m.mu.Lock()
	m.CloseCalls++
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// OpenContexts returns the number of default contexts that were never closed.
func (m *Browser) OpenContexts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Contexts {
		if c.Closed() == 0 {
			n++
		}
	}
	return n
}

var _ ports.Browser = (*Browser)(nil)

// BrowserContext is a mock implementation of ports.BrowserContext.
type BrowserContext struct {
	mu sync.Mutex

	NewPageFunc func(ctx context.Context) (ports.Page, error)
	CloseFunc   func() error

	closeCalls int
}

func (m *BrowserContext) NewPage(ctx context.Context) (ports.Page, error) {
	if m.NewPageFunc != nil {
		return m.NewPageFunc(ctx)
	}
	return &Page{}, nil
}

func (m *BrowserContext) Close() error {
	m.mu.Lock()
	m.closeCalls++
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Closed returns how many times Close was called.
func (m *BrowserContext) Closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}

var _ ports.BrowserContext = (*BrowserContext)(nil)

// Page is a mock implementation of ports.Page.
type Page struct {
	mu sync.Mutex

	NavigateFunc        func(ctx context.Context, url string, timeout time.Duration) error
	WaitForSelectorFunc func(ctx context.Context, selector string, timeout time.Duration) error
	EvaluateFunc        func(ctx context.Context, script string) error
	ScreenshotFunc      func(ctx context.Context, opts ports.ScreenshotOptions) ([]byte, error)

	// Recorded calls for verification
	NavigateCalls   []string
	SelectorCalls   []string
	EvaluateCalls   []string
	ScreenshotCalls []ports.ScreenshotOptions
}

func (m *Page) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	m.mu.Lock()
	m.NavigateCalls = append(m.NavigateCalls, url)
	m.mu.Unlock()
	if m.NavigateFunc != nil {
		return m.NavigateFunc(ctx, url, timeout)
	}
	return nil
}

func (m *Page) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	m.mu.Lock()
	m.SelectorCalls = append(m.SelectorCalls, selector)
	m.mu.Unlock()
	if m.WaitForSelectorFunc != nil {
		return m.WaitForSelectorFunc(ctx, selector, timeout)
	}
	return nil
}

func (m *Page) Evaluate(ctx context.Context, script string) error {
	m.mu.Lock()
	m.EvaluateCalls = append(m.EvaluateCalls, script)
	m.mu.Unlock()
	if m.EvaluateFunc != nil {
		return m.EvaluateFunc(ctx, script)
	}
	return nil
}

func (m *Page) Screenshot(ctx context.Context, opts ports.ScreenshotOptions) ([]byte, error) {
	m.mu.Lock()
	m.ScreenshotCalls = append(m.ScreenshotCalls, opts)
	m.mu.Unlock()
	if m.ScreenshotFunc != nil {
		return m.ScreenshotFunc(ctx, opts)
	}
	// PNG signature
	return []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, nil
}

var _ ports.Page = (*Page)(nil)
