// Package shot implements the screenshot stage.
package shot

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
)

// Stage captures a ready page and writes the image to disk.
type Stage struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a new shot stage.
func New(fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		logger: logger.WithComponent("shot"),
	}
}

// Execute takes the screenshot and writes it to input.OutputPath.
// Nothing is written when the capture fails.
func (s *Stage) Execute(ctx context.Context, input pipeline.ShotInput) (pipeline.ShotResult, error) {
	opts := ports.ScreenshotOptions{
		FullPage: input.FullPage,
		Format:   input.Format,
	}
	// PNG is lossless; the quality parameter is only meaningful for JPEG.
	if input.Format == ports.FormatJPEG {
		q := input.Quality
		opts.Quality = &q
	}

	s.logger.Debug("Capturing %s screenshot (full page: %t)", input.Format, input.FullPage)
	data, err := input.Page.Screenshot(ctx, opts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return pipeline.ShotResult{}, ctxErr
		}
		return pipeline.ShotResult{}, pipeline.NewFailure(pipeline.KindCapture, pipeline.StepScreenshot, "", err)
	}
	if len(data) == 0 {
		return pipeline.ShotResult{}, pipeline.NewFailure(pipeline.KindCapture, pipeline.StepScreenshot, "browser returned an empty image", nil)
	}

	if dir := filepath.Dir(input.OutputPath); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir); err != nil {
			return pipeline.ShotResult{}, pipeline.NewFailure(pipeline.KindCapture, pipeline.StepWriteOutput,
				fmt.Sprintf("create directory %s", dir), err)
		}
	}
	if err := s.fs.WriteFile(input.OutputPath, data); err != nil {
		return pipeline.ShotResult{}, pipeline.NewFailure(pipeline.KindCapture, pipeline.StepWriteOutput,
			fmt.Sprintf("write %s", input.OutputPath), err)
	}

	size := int64(len(data))
	if n, err := s.fs.Size(input.OutputPath); err == nil {
		size = n
	}
	s.logger.Debug("Wrote %d bytes to %s", size, input.OutputPath)

	return pipeline.ShotResult{
		OutputPath: input.OutputPath,
		ByteSize:   size,
	}, nil
}

var _ pipeline.Stage[pipeline.ShotInput, pipeline.ShotResult] = (*Stage)(nil)
