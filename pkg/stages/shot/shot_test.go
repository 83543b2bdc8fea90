package shot

import (
	"context"
	"errors"
	"testing"

	"github.com/user/snaphero/pkg/adapters/logger"
	"github.com/user/snaphero/pkg/mocks"
	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
)

func TestStage_QualityOnlyForJPEG(t *testing.T) {
	tests := []struct {
		name        string
		format      ports.ImageFormat
		wantQuality bool
	}{
		{"png", ports.FormatPNG, false},
		{"jpeg", ports.FormatJPEG, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := &mocks.Page{}
			fs := mocks.NewFileSystem()

			_, err := New(fs, logger.NewNoop()).Execute(context.Background(), pipeline.ShotInput{
				Page:       page,
				OutputPath: "out/shot." + tt.name,
				Format:     tt.format,
				Quality:    55,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(page.ScreenshotCalls) != 1 {
				t.Fatalf("expected 1 screenshot, got %d", len(page.ScreenshotCalls))
			}
			got := page.ScreenshotCalls[0]
			if tt.wantQuality {
				if got.Quality == nil || *got.Quality != 55 {
					t.Errorf("expected quality 55, got %v", got.Quality)
				}
			} else if got.Quality != nil {
				t.Errorf("PNG capture must not carry quality, got %d", *got.Quality)
			}
			if got.Format != tt.format {
				t.Errorf("expected format %s, got %s", tt.format, got.Format)
			}
		})
	}
}

func TestStage_WritesFile(t *testing.T) {
	data := []byte("image-bytes")
	page := &mocks.Page{
		ScreenshotFunc: func(ctx context.Context, opts ports.ScreenshotOptions) ([]byte, error) {
			if !opts.FullPage {
				t.Error("expected full page capture")
			}
			return data, nil
		},
	}
	fs := mocks.NewFileSystem()

	result, err := New(fs, logger.NewNoop()).Execute(context.Background(), pipeline.ShotInput{
		Page:       page,
		OutputPath: "shots/a.png",
		FullPage:   true,
		Format:     ports.FormatPNG,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	written, ok := fs.GetFile("shots/a.png")
	if !ok || string(written) != string(data) {
		t.Errorf("expected file to contain screenshot data, got %q", written)
	}
	if result.ByteSize != int64(len(data)) {
		t.Errorf("expected size %d, got %d", len(data), result.ByteSize)
	}
	if exists, _ := fs.Exists("shots"); !exists {
		t.Error("expected output directory to be created")
	}
}

func TestStage_CaptureFailureWritesNothing(t *testing.T) {
	page := &mocks.Page{
		ScreenshotFunc: func(ctx context.Context, opts ports.ScreenshotOptions) ([]byte, error) {
			return nil, errors.New("target closed")
		},
	}
	fs := mocks.NewFileSystem()

	_, err := New(fs, logger.NewNoop()).Execute(context.Background(), pipeline.ShotInput{
		Page:       page,
		OutputPath: "a.png",
	})
	if !pipeline.IsKind(err, pipeline.KindCapture) {
		t.Fatalf("expected capture failure, got %v", err)
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("no file should be written when capture fails")
	}
}

func TestStage_WriteFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}

	_, err := New(fs, logger.NewNoop()).Execute(context.Background(), pipeline.ShotInput{
		Page:       &mocks.Page{},
		OutputPath: "a.png",
	})
	f, ok := pipeline.AsFailure(err)
	if !ok || f.Kind != pipeline.KindCapture || f.Stage != pipeline.StepWriteOutput {
		t.Fatalf("expected write-output capture failure, got %v", err)
	}
}
