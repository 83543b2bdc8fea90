package session

import (
	"context"
	"errors"
	"testing"

	"github.com/user/snaphero/pkg/adapters/logger"
	"github.com/user/snaphero/pkg/mocks"
	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
)

func TestManager_WithClosesContext(t *testing.T) {
	browser := &mocks.Browser{}
	m := New(browser, ports.BrowserOptions{Headless: true}, logger.NewNoop(), false)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer m.Close()

	for i := 0; i < 3; i++ {
		err := m.With(context.Background(), ports.ContextOptions{ViewportWidth: 800, ViewportHeight: 600}, func(ctx context.Context, page ports.Page) error {
			return page.Navigate(ctx, "https://example.com", 0)
		})
		if err != nil {
			t.Fatalf("With failed: %v", err)
		}
	}

	if len(browser.LaunchCalls) != 1 {
		t.Errorf("expected 1 launch, got %d", len(browser.LaunchCalls))
	}
	if len(browser.Contexts) != 3 {
		t.Errorf("expected 3 contexts, got %d", len(browser.Contexts))
	}
	if n := browser.OpenContexts(); n != 0 {
		t.Errorf("expected all contexts closed, %d still open", n)
	}
}

func TestManager_WithClosesContextOnError(t *testing.T) {
	browser := &mocks.Browser{}
	m := New(browser, ports.BrowserOptions{}, logger.NewNoop(), false)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	want := errors.New("boom")
	err := m.With(context.Background(), ports.ContextOptions{}, func(ctx context.Context, page ports.Page) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected callback error, got %v", err)
	}
	if n := browser.OpenContexts(); n != 0 {
		t.Errorf("expected context closed after error, %d still open", n)
	}
}

func TestManager_WithClosesContextOnPanic(t *testing.T) {
	browser := &mocks.Browser{}
	m := New(browser, ports.BrowserOptions{}, logger.NewNoop(), false)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	func() {
		defer func() { recover() }()
		m.With(context.Background(), ports.ContextOptions{}, func(ctx context.Context, page ports.Page) error {
			panic("unexpected")
		})
	}()

	if n := browser.OpenContexts(); n != 0 {
		t.Errorf("expected context closed after panic, %d still open", n)
	}
}

func TestManager_LaunchFailure(t *testing.T) {
	browser := &mocks.Browser{
		LaunchFunc: func(ctx context.Context, opts ports.BrowserOptions) error {
			return errors.New("chrome not found")
		},
	}
	m := New(browser, ports.BrowserOptions{}, logger.NewNoop(), false)

	err := m.Start(context.Background())
	if !pipeline.IsKind(err, pipeline.KindLaunch) {
		t.Fatalf("expected launch failure, got %v", err)
	}
	if !pipeline.KindLaunch.Fatal() {
		t.Error("launch failures must be fatal")
	}
}

func TestManager_NewContextFailure(t *testing.T) {
	browser := &mocks.Browser{
		NewContextFunc: func(ctx context.Context, opts ports.ContextOptions) (ports.BrowserContext, error) {
			return nil, errors.New("target crashed")
		},
	}
	m := New(browser, ports.BrowserOptions{}, logger.NewNoop(), false)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	called := false
	err := m.With(context.Background(), ports.ContextOptions{}, func(ctx context.Context, page ports.Page) error {
		called = true
		return nil
	})
	if !pipeline.IsKind(err, pipeline.KindLaunch) {
		t.Fatalf("expected launch failure, got %v", err)
	}
	if called {
		t.Error("callback must not run without a page")
	}
}

func TestManager_NotStarted(t *testing.T) {
	m := New(&mocks.Browser{}, ports.BrowserOptions{}, logger.NewNoop(), false)
	err := m.With(context.Background(), ports.ContextOptions{}, func(ctx context.Context, page ports.Page) error {
		return nil
	})
	if !pipeline.IsKind(err, pipeline.KindLaunch) {
		t.Fatalf("expected launch failure, got %v", err)
	}
}

func TestManager_PerCapture(t *testing.T) {
	browser := &mocks.Browser{}
	m := New(browser, ports.BrowserOptions{}, logger.NewNoop(), true)

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(browser.LaunchCalls) != 0 {
		t.Fatalf("Start must not launch in per-capture mode")
	}

	for i := 0; i < 2; i++ {
		if err := m.With(context.Background(), ports.ContextOptions{}, func(ctx context.Context, page ports.Page) error {
			return nil
		}); err != nil {
			t.Fatalf("With failed: %v", err)
		}
	}

	if len(browser.LaunchCalls) != 2 {
		t.Errorf("expected 2 launches, got %d", len(browser.LaunchCalls))
	}
	if browser.CloseCalls != 2 {
		t.Errorf("expected 2 browser closes, got %d", browser.CloseCalls)
	}
}

func TestManager_CloseIdempotent(t *testing.T) {
	browser := &mocks.Browser{}
	m := New(browser, ports.BrowserOptions{}, logger.NewNoop(), false)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	m.Close()
	m.Close()

	if browser.CloseCalls != 1 {
		t.Errorf("expected 1 browser close, got %d", browser.CloseCalls)
	}
}
