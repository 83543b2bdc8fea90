package orchestrator

import (
	"encoding/json"

	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
	"github.com/user/snaphero/pkg/snaphero"
)

// captureRecord is the debug JSON written for every capture.
type captureRecord struct {
	URL        string            `json:"url"`
	OutputPath string            `json:"output_path"`
	Format     string            `json:"format"`
	FullPage   bool              `json:"full_page"`
	Viewport   [2]int            `json:"viewport"`
	Scale      float64           `json:"scale"`
	Quality    int               `json:"quality,omitempty"`
	DarkMode   bool              `json:"dark_mode,omitempty"`
	Selector   string            `json:"wait_for_selector,omitempty"`
	HideBanner bool              `json:"hide_cookie_banners,omitempty"`
	DelayMs    int64             `json:"delay_ms,omitempty"`
	TimeoutMs  int64             `json:"timeout_ms"`
	UserAgent  string            `json:"user_agent,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Outcome    outcomeRecord     `json:"outcome"`
}

type outcomeRecord struct {
	URL        string `json:"url,omitempty"`
	Status     string `json:"status"`
	ByteSize   int64  `json:"byte_size,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	Kind       string `json:"kind,omitempty"`
	Stage      string `json:"stage,omitempty"`
	Message    string `json:"message,omitempty"`
}

type batchRecord struct {
	Total      int             `json:"total"`
	Attempted  int             `json:"attempted"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	DurationMs int64           `json:"duration_ms"`
	Results    []outcomeRecord `json:"results"`
}

func newOutcome(r pipeline.Result) outcomeRecord {
	out := outcomeRecord{
		URL:        r.URL,
		Status:     "success",
		ByteSize:   r.ByteSize,
		DurationMs: r.Duration.Milliseconds(),
	}
	if f := r.Failure; f != nil {
		out.Status = "failure"
		out.Kind = string(f.Kind)
		out.Stage = f.Stage
		out.Message = f.Error()
	}
	return out
}

func (o *Orchestrator) saveCapture(name string, opts snaphero.Options, r pipeline.Result) {
	if !o.sink.Enabled() {
		return
	}
	rec := captureRecord{
		URL:        opts.URL,
		OutputPath: r.OutputPath,
		Format:     opts.Format().String(),
		FullPage:   opts.FullPage,
		Viewport:   [2]int{opts.ViewportWidth, opts.ViewportHeight},
		Scale:      opts.Scale,
		DarkMode:   opts.DarkMode,
		Selector:   opts.WaitForSelector,
		HideBanner: opts.HideCookieBanners,
		DelayMs:    opts.Delay.Milliseconds(),
		TimeoutMs:  opts.Timeout.Milliseconds(),
		UserAgent:  opts.UserAgent,
		Headers:    opts.Headers,
		Outcome:    newOutcome(r),
	}
	if opts.Format() == ports.FormatJPEG {
		rec.Quality = opts.Quality
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return
	}
	if err := o.sink.SaveCaptureJSON(name, data); err != nil {
		o.logger.Debug("Failed to save debug output: %v", err)
	}
}

func (o *Orchestrator) saveBatch(report BatchReport) {
	if !o.sink.Enabled() {
		return
	}
	rec := batchRecord{
		Total:      report.Total,
		Attempted:  report.Attempted(),
		Succeeded:  report.Succeeded,
		Failed:     report.Failed,
		DurationMs: report.Duration.Milliseconds(),
	}
	for _, r := range report.Results {
		rec.Results = append(rec.Results, newOutcome(r))
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return
	}
	if err := o.sink.SaveBatchJSON(data); err != nil {
		o.logger.Debug("Failed to save debug output: %v", err)
	}
}
