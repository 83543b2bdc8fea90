package readiness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/user/snaphero/pkg/adapters/logger"
	"github.com/user/snaphero/pkg/mocks"
	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
)

func newStage(slept *[]time.Duration) *Stage {
	return New(logger.NewNoop()).WithSleep(func(ctx context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	})
}

func TestStage_StepOrder(t *testing.T) {
	var slept []time.Duration
	page := &mocks.Page{}

	result, err := newStage(&slept).Execute(context.Background(), pipeline.ReadinessInput{
		Page:              page,
		URL:               "https://example.com",
		Timeout:           time.Second,
		WaitForSelector:   "#main",
		HideCookieBanners: true,
		Delay:             2 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{pipeline.StepNavigate, pipeline.StepWaitSelector, pipeline.StepHideBanners, pipeline.StepDelay}
	if !slices.Equal(result.Steps, want) {
		t.Errorf("expected steps %v, got %v", want, result.Steps)
	}
	if len(page.SelectorCalls) != 1 || page.SelectorCalls[0] != "#main" {
		t.Errorf("unexpected selector calls: %v", page.SelectorCalls)
	}
	if len(page.EvaluateCalls) != 1 {
		t.Errorf("expected banner script to run once, got %d", len(page.EvaluateCalls))
	}
	if len(slept) != 1 || slept[0] != 2*time.Second {
		t.Errorf("expected a single 2s delay, got %v", slept)
	}
}

func TestStage_OptionalStepsSkipped(t *testing.T) {
	var slept []time.Duration
	page := &mocks.Page{}

	result, err := newStage(&slept).Execute(context.Background(), pipeline.ReadinessInput{
		Page:    page,
		URL:     "https://example.com",
		Timeout: time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !slices.Equal(result.Steps, []string{pipeline.StepNavigate}) {
		t.Errorf("expected only navigation, got %v", result.Steps)
	}
	if len(page.SelectorCalls) != 0 || len(page.EvaluateCalls) != 0 || len(slept) != 0 {
		t.Error("optional steps must not run")
	}
}

func TestStage_NavigationFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want pipeline.Kind
	}{
		{"timeout", fmt.Errorf("load: %w", ports.ErrNavigationTimeout), pipeline.KindNavigationTimeout},
		{"dns", errors.New("net::ERR_NAME_NOT_RESOLVED"), pipeline.KindNavigationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var slept []time.Duration
			page := &mocks.Page{
				NavigateFunc: func(ctx context.Context, url string, timeout time.Duration) error {
					return tt.err
				},
			}

			_, err := newStage(&slept).Execute(context.Background(), pipeline.ReadinessInput{
				Page:            page,
				URL:             "https://example.com",
				Timeout:         time.Second,
				WaitForSelector: "#main",
			})

			f, ok := pipeline.AsFailure(err)
			if !ok {
				t.Fatalf("expected failure, got %v", err)
			}
			if f.Kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, f.Kind)
			}
			if f.URL != "https://example.com" {
				t.Errorf("expected URL in failure, got %q", f.URL)
			}
			if len(page.SelectorCalls) != 0 {
				t.Error("selector wait must not run after failed navigation")
			}
		})
	}
}

func TestStage_SelectorTimeout(t *testing.T) {
	var slept []time.Duration
	page := &mocks.Page{
		WaitForSelectorFunc: func(ctx context.Context, selector string, timeout time.Duration) error {
			return ports.ErrSelectorTimeout
		},
	}

	_, err := newStage(&slept).Execute(context.Background(), pipeline.ReadinessInput{
		Page:              page,
		URL:               "https://example.com",
		Timeout:           time.Second,
		WaitForSelector:   "#never",
		HideCookieBanners: true,
		Delay:             time.Second,
	})

	f, ok := pipeline.AsFailure(err)
	if !ok || f.Kind != pipeline.KindSelectorTimeout {
		t.Fatalf("expected selector timeout, got %v", err)
	}
	if !strings.Contains(f.Error(), "#never") {
		t.Errorf("expected selector in message, got %q", f.Error())
	}
	if len(page.EvaluateCalls) != 0 || len(slept) != 0 {
		t.Error("later steps must not run after selector timeout")
	}
}

func TestStage_BannerScriptErrorIsNotFatal(t *testing.T) {
	var slept []time.Duration
	page := &mocks.Page{
		EvaluateFunc: func(ctx context.Context, script string) error {
			return errors.New("ReferenceError")
		},
	}

	result, err := newStage(&slept).Execute(context.Background(), pipeline.ReadinessInput{
		Page:              page,
		URL:               "https://example.com",
		Timeout:           time.Second,
		HideCookieBanners: true,
		Delay:             time.Second,
	})
	if err != nil {
		t.Fatalf("banner script errors must not fail the capture: %v", err)
	}
	if result.ScriptErr == nil {
		t.Error("expected ScriptErr to be recorded")
	}
	if len(slept) != 1 {
		t.Error("delay must still run after a script error")
	}
}

func TestStage_CancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(logger.NewNoop()).Execute(ctx, pipeline.ReadinessInput{
		Page:    &mocks.Page{},
		URL:     "https://example.com",
		Timeout: time.Second,
		Delay:   time.Hour,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHideCookieBannersScript(t *testing.T) {
	for _, want := range []string{"cookie|consent|gdpr", "/i", "offsetHeight > 50", "aria-label"} {
		if !strings.Contains(HideCookieBannersScript, want) {
			t.Errorf("script should contain %q", want)
		}
	}
	if !strings.HasPrefix(HideCookieBannersScript, "(() =>") || !strings.HasSuffix(HideCookieBannersScript, ")()") {
		t.Error("script must be a self-invoking expression")
	}
}

func TestStage_ProgressAtInfoLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	log := logger.NewConsoleWithWriters(ports.LevelInfo, &out, &errOut)
	stage := New(log).WithSleep(func(ctx context.Context, d time.Duration) error { return nil })

	_, err := stage.Execute(context.Background(), pipeline.ReadinessInput{
		Page:              &mocks.Page{},
		URL:               "https://example.com",
		Timeout:           time.Second,
		WaitForSelector:   "#main",
		HideCookieBanners: true,
		Delay:             2 * time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Loading https://example.com...",
		"Waiting for selector: #main",
		"Hiding cookie banners...",
		"Waiting 2s before capture",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output, got %q", want, out.String())
		}
	}
	if errOut.Len() != 0 {
		t.Errorf("expected nothing on stderr, got %q", errOut.String())
	}
}
