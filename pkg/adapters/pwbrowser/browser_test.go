package pwbrowser

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/user/snaphero/pkg/adapters/logger"
	"github.com/user/snaphero/pkg/ports"
)

func TestBrowser_CaptureFixture(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body style="height:3000px"><p id="ready">ok</p></body></html>`))
	}))
	defer server.Close()

	ctx := context.Background()
	b := New(logger.NewNoop())
	if err := b.Launch(ctx, ports.BrowserOptions{Headless: true}); err != nil {
		t.Skipf("Playwright driver not available: %v", err)
	}
	defer b.Close()

	bc, err := b.NewContext(ctx, ports.ContextOptions{
		ViewportWidth:     320,
		ViewportHeight:    240,
		DeviceScaleFactor: 1,
		ColorScheme:       ports.ColorSchemeDark,
	})
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	defer bc.Close()

	page, err := bc.NewPage(ctx)
	if err != nil {
		t.Fatalf("NewPage failed: %v", err)
	}
	if err := page.Navigate(ctx, server.URL, 10*time.Second); err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}

	quality := 60
	data, err := page.Screenshot(ctx, ports.ScreenshotOptions{FullPage: true, Format: ports.FormatJPEG, Quality: &quality})
	if err != nil {
		t.Fatalf("Screenshot failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xff, 0xd8}) {
		t.Error("expected JPEG data")
	}

	err = page.WaitForSelector(ctx, "#missing", 300*time.Millisecond)
	if !errors.Is(err, ports.ErrSelectorTimeout) {
		t.Errorf("expected ErrSelectorTimeout, got %v", err)
	}
}

func TestBrowser_CancelledLaunch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := New(logger.NewNoop())
	if err := b.Launch(ctx, ports.BrowserOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close on idle browser failed: %v", err)
	}
}
