// Package orchestrator coordinates single captures and batch runs.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/snaphero/pkg/batch"
	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
	"github.com/user/snaphero/pkg/snaphero"
)

// Sessions hands out isolated browser pages. See session.Manager.
type Sessions interface {
	Start(ctx context.Context) error
	With(ctx context.Context, opts ports.ContextOptions, fn func(ctx context.Context, page ports.Page) error) error
}

// Orchestrator runs the readiness and shot stages inside browser sessions.
type Orchestrator struct {
	sessions       Sessions
	readinessStage pipeline.Stage[pipeline.ReadinessInput, pipeline.ReadinessResult]
	shotStage      pipeline.Stage[pipeline.ShotInput, pipeline.ShotResult]
	fs             ports.FileSystem
	sink           ports.DebugSink
	logger         ports.Logger
	now            func() time.Time
}

// New creates a new Orchestrator.
func New(
	sessions Sessions,
	readinessStage pipeline.Stage[pipeline.ReadinessInput, pipeline.ReadinessResult],
	shotStage pipeline.Stage[pipeline.ShotInput, pipeline.ShotResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		sessions:       sessions,
		readinessStage: readinessStage,
		shotStage:      shotStage,
		fs:             fs,
		sink:           sink,
		logger:         logger,
		now:            time.Now,
	}
}

// WithClock replaces the time source used for batch file names and timings.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Capture validates opts and captures a single URL.
//
// The returned Result always describes the outcome. The error is non-nil only
// when the run as a whole cannot continue: a fatal failure kind (invalid
// options, browser launch) or cancellation of ctx.
func (o *Orchestrator) Capture(ctx context.Context, opts snaphero.Options) (pipeline.Result, error) {
	result := pipeline.Result{URL: opts.URL, OutputPath: opts.OutputPath, StartedAt: o.now()}

	if err := opts.Validate(); err != nil {
		return failed(result, err), err
	}
	if opts.URL == "" {
		f := pipeline.NewFailure(pipeline.KindConfiguration, "validate", "a URL is required", nil)
		return failed(result, f), f
	}
	if err := o.sessions.Start(ctx); err != nil {
		return failed(result, err), err
	}

	result, err := o.capture(ctx, result, opts)
	o.saveCapture("capture", opts, result)
	return result, err
}

// BatchRequest describes a batch run.
type BatchRequest struct {
	FilePath  string           // URL list, one per line
	Template  snaphero.Options // Shared options; URL and OutputPath are set per target
	Prefix    string           // File name prefix for derived output paths
	Format    ports.ImageFormat
	OutputDir string // Directory for derived output paths; empty means the working directory
}

// BatchReport aggregates the results of a batch run in target order.
type BatchReport struct {
	Results   []pipeline.Result
	Total     int // Targets listed in the file
	Succeeded int
	Failed    int
	StartedAt time.Time
	Duration  time.Duration
}

// Attempted returns how many targets were attempted.
func (r BatchReport) Attempted() int {
	return len(r.Results)
}

// RunBatch captures every target listed in req.FilePath sequentially.
// A failing target is recorded and the batch continues; only fatal failures
// and cancellation stop it early, in which case the partial report is
// returned together with the error.
func (o *Orchestrator) RunBatch(ctx context.Context, req BatchRequest) (BatchReport, error) {
	report := BatchReport{StartedAt: o.now()}

	if err := req.Template.Validate(); err != nil {
		return report, err
	}

	data, err := o.fs.ReadFile(req.FilePath)
	if err != nil {
		return report, pipeline.NewFailure(pipeline.KindConfiguration, "read-batch-file",
			fmt.Sprintf("cannot read %s", req.FilePath), err)
	}
	urls, err := batch.ParseTargets(data)
	if err != nil {
		return report, pipeline.NewFailure(pipeline.KindConfiguration, "read-batch-file",
			fmt.Sprintf("cannot parse %s", req.FilePath), err)
	}
	if len(urls) == 0 {
		return report, pipeline.NewFailure(pipeline.KindNoTargets, "read-batch-file",
			fmt.Sprintf("no valid URLs found in %s", req.FilePath), nil)
	}
	report.Total = len(urls)
	o.logger.Info("Found %d URLs to capture", len(urls))

	if err := o.sessions.Start(ctx); err != nil {
		return report, err
	}

	namer := batch.NewNamer(o.fs, req.OutputDir, req.Prefix, req.Format).WithClock(o.now)
	defer func() {
		report.Duration = o.now().Sub(report.StartedAt)
		o.saveBatch(report)
	}()

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		index := i + 1
		o.logger.Info("[%d/%d] Processing: %s", index, len(urls), url)

		opts := req.Template.ForTarget(url, namer.Name(url))
		result := pipeline.Result{Index: index, URL: url, OutputPath: opts.OutputPath, StartedAt: o.now()}
		result, err := o.capture(ctx, result, opts)
		report.Results = append(report.Results, result)
		if result.OK() {
			report.Succeeded++
		} else {
			report.Failed++
		}
		o.saveCapture(fmt.Sprintf("%03d_%s", index, batch.Host(url)), opts, result)

		if err != nil {
			o.logger.Error("Batch stopped at target %d of %d: %v", index, len(urls), err)
			return report, err
		}
	}

	o.logger.Info("Batch complete: %d succeeded, %d failed", report.Succeeded, report.Failed)
	return report, nil
}

// capture runs readiness and shot for one target. Per-target failures are
// folded into the result; the error return carries fatal problems only.
func (o *Orchestrator) capture(ctx context.Context, result pipeline.Result, opts snaphero.Options) (pipeline.Result, error) {
	err := o.sessions.With(ctx, opts.ContextOptions(), func(ctx context.Context, page ports.Page) error {
		if _, err := o.readinessStage.Execute(ctx, pipeline.ReadinessInput{
			Page:              page,
			URL:               opts.URL,
			Timeout:           opts.Timeout,
			WaitForSelector:   opts.WaitForSelector,
			HideCookieBanners: opts.HideCookieBanners,
			Delay:             opts.Delay,
		}); err != nil {
			return err
		}

		shot, err := o.shotStage.Execute(ctx, pipeline.ShotInput{
			Page:       page,
			OutputPath: opts.OutputPath,
			FullPage:   opts.FullPage,
			Format:     opts.Format(),
			Quality:    opts.Quality,
		})
		if err != nil {
			return err
		}
		result.OutputPath = shot.OutputPath
		result.ByteSize = shot.ByteSize
		return nil
	})
	result.Duration = o.now().Sub(result.StartedAt)

	if err == nil {
		o.logger.Info("Screenshot saved: %s (%d bytes)", result.OutputPath, result.ByteSize)
		return result, nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			f := pipeline.NewFailure(pipeline.KindCapture, "cancelled", "capture interrupted", ctxErr)
			f.URL = opts.URL
			result.Failure = f
			return result, ctxErr
		}
	}

	f, ok := pipeline.AsFailure(err)
	if !ok {
		f = pipeline.NewFailure(pipeline.KindCapture, pipeline.StepScreenshot, "", err)
	}
	if f.URL == "" {
		f.URL = opts.URL
	}
	result.Failure = f

	if f.Kind.Fatal() {
		return result, f
	}
	o.logger.Warn("Capture failed for %s: %v", opts.URL, f)
	return result, nil
}

func failed(result pipeline.Result, err error) pipeline.Result {
	f, ok := pipeline.AsFailure(err)
	if !ok {
		f = pipeline.NewFailure(pipeline.KindConfiguration, "validate", "", err)
	}
	result.Failure = f
	return result
}
