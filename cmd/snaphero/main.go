// Package main provides the CLI entry point for snaphero.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/snaphero/pkg/adapters/chromebrowser"
	"github.com/user/snaphero/pkg/adapters/filesink"
	"github.com/user/snaphero/pkg/adapters/ggrenderer"
	"github.com/user/snaphero/pkg/adapters/logger"
	"github.com/user/snaphero/pkg/adapters/nullsink"
	"github.com/user/snaphero/pkg/adapters/osfilesystem"
	"github.com/user/snaphero/pkg/adapters/pwbrowser"
	"github.com/user/snaphero/pkg/adapters/rodbrowser"
	"github.com/user/snaphero/pkg/config"
	"github.com/user/snaphero/pkg/orchestrator"
	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
	"github.com/user/snaphero/pkg/presenter"
	"github.com/user/snaphero/pkg/session"
	"github.com/user/snaphero/pkg/snaphero"
	"github.com/user/snaphero/pkg/stages/contactsheet"
	"github.com/user/snaphero/pkg/stages/readiness"
	"github.com/user/snaphero/pkg/stages/shot"
	"github.com/user/snaphero/pkg/summarizer"
)

var version = "2.0.0"

// Flag categories
const (
	catCapture  = "Capture"
	catViewport = "Viewport"
	catPage     = "Page"
	catBatch    = "Batch"
	catBrowser  = "Browser"
	catDebug    = "Debug"
	catLogging  = "Logging"
	catInfo     = "Information"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "snaphero",
		Usage:           l10n.T("Capture screenshots of web pages"),
		Description:     l10n.T("snaphero captures web page screenshots in a headless browser, one URL at a time or in batches."),
		Writer:          out,
		ErrWriter:       errOut,
		HideVersion:     true,
		HideHelpCommand: true,
		// Header values may contain commas.
		DisableSliceFlagSeparator: true,
		Flags:                     flags(),
		Action: func(c *cli.Context) error {
			return run(c, out)
		},
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		// Capture
		&cli.StringFlag{Name: "url", Usage: l10n.T("URL of the page to capture"), Category: catCapture},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: snaphero.DefaultOutputPath, Usage: l10n.T("Output file (.png, .jpg or .jpeg)"), Category: catCapture},
		&cli.BoolFlag{Name: "full-page", Usage: l10n.T("Capture the full scrollable page"), Category: catCapture},
		&cli.Float64Flag{Name: "delay", Usage: l10n.T("Seconds to wait after load before capturing"), Category: catCapture},
		&cli.IntFlag{Name: "quality", Value: snaphero.DefaultQuality, Usage: l10n.T("JPEG quality 1-100"), Category: catCapture},

		// Viewport
		&cli.IntFlag{Name: "viewport-width", Value: snaphero.DefaultViewportWidth, Usage: l10n.T("Viewport width in pixels"), Category: catViewport},
		&cli.IntFlag{Name: "viewport-height", Value: snaphero.DefaultViewportHeight, Usage: l10n.T("Viewport height in pixels"), Category: catViewport},
		&cli.BoolFlag{Name: "mobile", Usage: l10n.T("Use the mobile viewport (375x667)"), Category: catViewport},
		&cli.BoolFlag{Name: "tablet", Usage: l10n.T("Use the tablet viewport (768x1024)"), Category: catViewport},
		&cli.Float64Flag{Name: "scale", Value: snaphero.DefaultScale, Usage: l10n.T("Device scale factor (2 for HiDPI)"), Category: catViewport},

		// Page
		&cli.BoolFlag{Name: "dark-mode", Usage: l10n.T("Emulate a dark color scheme"), Category: catPage},
		&cli.BoolFlag{Name: "hide-cookie-banners", Usage: l10n.T("Hide common cookie consent banners"), Category: catPage},
		&cli.StringFlag{Name: "wait-for-selector", Usage: l10n.T("Wait until a CSS selector is visible"), Category: catPage},
		&cli.IntFlag{Name: "timeout", Value: int(snaphero.DefaultTimeout.Milliseconds()), Usage: l10n.T("Navigation and selector timeout in milliseconds"), Category: catPage},
		&cli.StringFlag{Name: "user-agent", Usage: l10n.T("Custom user agent"), Category: catPage},
		&cli.StringSliceFlag{Name: "header", Usage: l10n.T("Extra request header \"Name: value\" (repeatable)"), Category: catPage},

		// Batch
		&cli.StringFlag{Name: "batch", Usage: l10n.T("File with one URL per line"), Category: catBatch},
		&cli.StringFlag{Name: "batch-prefix", Value: "screenshot_", Usage: l10n.T("Prefix for batch output files"), Category: catBatch},
		&cli.StringFlag{Name: "batch-format", Value: "png", Usage: l10n.T("Batch output format (png or jpg)"), Category: catBatch},
		&cli.StringFlag{Name: "output-dir", Usage: l10n.T("Directory for batch output files"), Category: catBatch},
		&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a batch summary (Markdown, or JSON for .json)"), Category: catBatch},
		&cli.StringFlag{Name: "contact-sheet", Usage: l10n.T("Write a thumbnail grid of the batch"), Category: catBatch},

		// Browser
		&cli.StringFlag{Name: "engine", Value: config.EngineChromedp, Usage: l10n.T("Browser engine (chromedp, playwright or rod)"), Category: catBrowser},
		&cli.StringFlag{Name: "chrome-path", Usage: l10n.T("Path to Chrome executable"), Category: catBrowser},
		&cli.BoolFlag{Name: "no-headless", Usage: l10n.T("Run browser in non-headless mode"), Category: catBrowser},
		&cli.BoolFlag{Name: "ignore-https-errors", Usage: l10n.T("Ignore HTTPS certificate errors"), Category: catBrowser},
		&cli.StringFlag{Name: "proxy-server", Usage: l10n.T("HTTP proxy server (e.g., http://proxy:8080)"), Category: catBrowser},
		&cli.BoolFlag{Name: "browser-per-capture", Usage: l10n.T("Launch a new browser for every capture"), Category: catBrowser},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), Category: catBrowser},

		// Debug
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output"), Category: catDebug},
		&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output"), Category: catDebug},

		// Logging
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)"), Category: catLogging},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output"), Category: catLogging},
		&cli.BoolFlag{Name: "no-banner", Usage: l10n.T("Do not print the startup banner"), Category: catLogging},

		// Information
		&cli.BoolFlag{Name: "manual", Usage: l10n.T("Show the complete manual"), Category: catInfo},
		&cli.BoolFlag{Name: "examples", Usage: l10n.T("Show usage examples"), Category: catInfo},
		&cli.BoolFlag{Name: "version", Aliases: []string{"v"}, Usage: l10n.T("Show version information"), Category: catInfo},
	}
}

// loadConfig layers the config file (if any) and the explicitly set flags
// over the defaults.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("full-page") {
		cfg.FullPage = c.Bool("full-page")
	}
	if c.IsSet("delay") {
		cfg.Delay = c.Float64("delay")
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}
	if c.IsSet("viewport-width") {
		cfg.ViewportWidth = c.Int("viewport-width")
	}
	if c.IsSet("viewport-height") {
		cfg.ViewportHeight = c.Int("viewport-height")
	}
	if c.IsSet("mobile") {
		cfg.Mobile = c.Bool("mobile")
	}
	if c.IsSet("tablet") {
		cfg.Tablet = c.Bool("tablet")
	}
	if c.IsSet("scale") {
		cfg.Scale = c.Float64("scale")
	}
	if c.IsSet("dark-mode") {
		cfg.DarkMode = c.Bool("dark-mode")
	}
	if c.IsSet("hide-cookie-banners") {
		cfg.HideCookieBanners = c.Bool("hide-cookie-banners")
	}
	if c.IsSet("wait-for-selector") {
		cfg.WaitForSelector = c.String("wait-for-selector")
	}
	if c.IsSet("timeout") {
		cfg.TimeoutMs = c.Int("timeout")
	}
	if c.IsSet("user-agent") {
		cfg.UserAgent = c.String("user-agent")
	}
	if c.IsSet("header") {
		headers, err := config.ParseHeaders(c.StringSlice("header"))
		if err != nil {
			return cfg, err
		}
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			cfg.Headers[k] = v
		}
	}
	if c.IsSet("batch-prefix") {
		cfg.BatchPrefix = c.String("batch-prefix")
	}
	if c.IsSet("batch-format") {
		cfg.BatchFormat = c.String("batch-format")
	}
	if c.IsSet("engine") {
		cfg.Engine = c.String("engine")
	}
	if c.IsSet("chrome-path") {
		cfg.ChromePath = c.String("chrome-path")
	}
	if c.IsSet("no-headless") {
		cfg.Headless = !c.Bool("no-headless")
	}
	if c.IsSet("ignore-https-errors") {
		cfg.IgnoreHTTPSErrors = c.Bool("ignore-https-errors")
	}
	if c.IsSet("proxy-server") {
		cfg.ProxyServer = c.String("proxy-server")
	}
	if c.IsSet("browser-per-capture") {
		cfg.BrowserPerCapture = c.Bool("browser-per-capture")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	return cfg, cfg.Validate()
}

func newBrowser(engine string, log ports.Logger) ports.Browser {
	switch engine {
	case config.EnginePlaywright:
		return pwbrowser.New(log)
	case config.EngineRod:
		return rodbrowser.New(log)
	default:
		return chromebrowser.New(log)
	}
}

func run(c *cli.Context, out io.Writer) error {
	p := presenter.New(out, version)
	switch {
	case c.Bool("version"):
		p.Version()
		return nil
	case c.Bool("manual"):
		p.Manual()
		return nil
	case c.Bool("examples"):
		p.Examples()
		return nil
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	builder := cfg.Builder().WithURL(c.String("url"))
	opts, err := builder.Build()
	if err != nil {
		return cli.Exit(err, 1)
	}

	// Create logger
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		level, _ := ports.ParseLogLevel(cfg.LogLevel)
		log = logger.NewConsole(level)
	}

	if !c.Bool("no-banner") && !c.Bool("quiet") {
		p.Banner()
	}
	if preset := builder.Preset(); preset != "" {
		log.Info("Using %s viewport (%dx%d)", preset, opts.ViewportWidth, opts.ViewportHeight)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	var sink ports.DebugSink
	if c.Bool("debug") {
		debugDir := c.String("debug-dir")
		if err := fs.MkdirAll(debugDir); err != nil {
			return cli.Exit(fmt.Errorf("create debug directory: %w", err), 1)
		}
		sink = filesink.New(debugDir, fs)
	} else {
		sink = nullsink.New()
	}

	sessions := session.New(newBrowser(cfg.Engine, log), cfg.BrowserOptions(), log, cfg.BrowserPerCapture)
	defer sessions.Close()

	orch := orchestrator.New(
		sessions,
		readiness.New(log),
		shot.New(fs, log),
		fs,
		sink,
		log,
	)

	batchFile := c.String("batch")
	if batchFile == "" {
		result, err := orch.Capture(ctx, opts)
		if err != nil {
			return cli.Exit(err, 1)
		}
		if !result.OK() {
			return cli.Exit("", 1)
		}
		return nil
	}

	format, _ := config.ParseBatchFormat(cfg.BatchFormat)
	report, batchErr := orch.RunBatch(ctx, orchestrator.BatchRequest{
		FilePath:  batchFile,
		Template:  opts,
		Prefix:    cfg.BatchPrefix,
		Format:    format,
		OutputDir: c.String("output-dir"),
	})

	// Reports cover whatever finished, even after an interrupt.
	sheetPath := writeContactSheet(context.WithoutCancel(ctx), c.String("contact-sheet"), report, fs, log)

	if summaryPath := c.String("summary"); summaryPath != "" && report.Total > 0 {
		summary := summarizer.NewBuilder().
			WithSource(batchFile).
			WithSettings(summarizer.Settings{
				Engine:         cfg.Engine,
				Preset:         builder.Preset(),
				ViewportWidth:  opts.ViewportWidth,
				ViewportHeight: opts.ViewportHeight,
				Scale:          opts.Scale,
				FullPage:       opts.FullPage,
				Format:         format.String(),
				Quality:        opts.Quality,
				DarkMode:       opts.DarkMode,
				TimeoutMs:      opts.Timeout.Milliseconds(),
			}).
			WithTotal(report.Total).
			WithDuration(report.Duration).
			WithContactSheet(sheetPath).
			AddResults(report.Results).
			Build()

		writer := summarizer.NewWriter(summarizer.ForPath(summaryPath), fs)
		if err := writer.Write(summaryPath, summary); err != nil {
			log.Warn("Failed to write summary: %v", err)
		} else {
			log.Info("Summary saved to %s", summaryPath)
		}
	}

	if batchErr != nil {
		return cli.Exit(batchErr, 1)
	}
	return nil
}

// writeContactSheet composes the successful captures into one image.
// Failures are logged and never change the batch outcome.
func writeContactSheet(ctx context.Context, path string, report orchestrator.BatchReport, fs ports.FileSystem, log ports.Logger) string {
	if path == "" || report.Succeeded == 0 {
		return ""
	}

	var entries []pipeline.SheetEntry
	for _, r := range report.Results {
		if r.OK() {
			entries = append(entries, pipeline.SheetEntry{Label: r.URL, Path: r.OutputPath})
		}
	}

	stage := contactsheet.New(ggrenderer.New(), fs, log)
	if _, err := stage.Execute(ctx, pipeline.SheetInput{Entries: entries, OutputPath: path}); err != nil {
		log.Warn("Failed to write contact sheet: %v", err)
		return ""
	}
	return path
}
