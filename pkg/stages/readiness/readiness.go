// Package readiness implements the page readiness stage.
// It navigates a page and applies the configured waits before capture.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
)

// BannerMinHeight is the minimum rendered height in pixels for an element to
// be treated as a cookie banner.
const BannerMinHeight = 50

// HideCookieBannersScript hides elements whose class, id or aria-label
// mentions cookies or consent. It is an expression so that every engine can
// evaluate it as-is.
var HideCookieBannersScript = fmt.Sprintf(`(() => {
  const pattern = /cookie|consent|gdpr/i;
  let hidden = 0;
  for (const el of document.querySelectorAll('*')) {
    const cls = typeof el.className === 'string' ? el.className : '';
    const label = el.getAttribute('aria-label') || '';
    if (!pattern.test(cls) && !pattern.test(el.id || '') && !pattern.test(label)) continue;
    if (el.offsetHeight > %d) {
      el.style.setProperty('display', 'none', 'important');
      hidden++;
    }
  }
  return hidden;
})()`, BannerMinHeight)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Stage makes a page ready for capture.
type Stage struct {
	logger ports.Logger
	sleep  SleepFunc
}

// New creates a new readiness stage.
func New(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("readiness"),
		sleep:  sleepContext,
	}
}

// WithSleep replaces the delay implementation. Used by tests.
func (s *Stage) WithSleep(fn SleepFunc) *Stage {
	s.sleep = fn
	return s
}

// Execute runs navigation, the selector wait, banner hiding and the delay,
// in that order. Every step except navigation is optional.
func (s *Stage) Execute(ctx context.Context, input pipeline.ReadinessInput) (pipeline.ReadinessResult, error) {
	var result pipeline.ReadinessResult

	s.logger.Info("Loading %s...", input.URL)
	if err := input.Page.Navigate(ctx, input.URL, input.Timeout); err != nil {
		return result, navigationFailure(ctx, input, err)
	}
	result.Steps = append(result.Steps, pipeline.StepNavigate)

	if input.WaitForSelector != "" {
		s.logger.Info("Waiting for selector: %s", input.WaitForSelector)
		if err := input.Page.WaitForSelector(ctx, input.WaitForSelector, input.Timeout); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			f := pipeline.NewFailure(pipeline.KindSelectorTimeout, pipeline.StepWaitSelector,
				fmt.Sprintf("selector %q not visible within %s", input.WaitForSelector, input.Timeout), err)
			f.URL = input.URL
			return result, f
		}
		result.Steps = append(result.Steps, pipeline.StepWaitSelector)
	}

	if input.HideCookieBanners {
		s.logger.Info("Hiding cookie banners...")
		if err := input.Page.Evaluate(ctx, HideCookieBannersScript); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			// Best effort: the capture goes ahead with the banner visible.
			s.logger.Warn("Cookie banner script failed on %s: %v", input.URL, err)
			result.ScriptErr = err
		} else {
			s.logger.Debug("Cookie banners hidden")
		}
		result.Steps = append(result.Steps, pipeline.StepHideBanners)
	}

	if input.Delay > 0 {
		s.logger.Info("Waiting %s before capture", input.Delay)
		if err := s.sleep(ctx, input.Delay); err != nil {
			return result, err
		}
		result.Steps = append(result.Steps, pipeline.StepDelay)
	}

	return result, nil
}

func navigationFailure(ctx context.Context, input pipeline.ReadinessInput, err error) error {
	var f *pipeline.Failure
	switch {
	case errors.Is(err, ports.ErrNavigationTimeout):
		f = pipeline.NewFailure(pipeline.KindNavigationTimeout, pipeline.StepNavigate,
			fmt.Sprintf("page did not load within %s", input.Timeout), err)
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		f = pipeline.NewFailure(pipeline.KindNavigationError, pipeline.StepNavigate, "", err)
	}
	f.URL = input.URL
	return f
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ pipeline.Stage[pipeline.ReadinessInput, pipeline.ReadinessResult] = (*Stage)(nil)
