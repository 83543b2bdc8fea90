// Package contactsheet implements the contact sheet stage.
// It tiles the screenshots of a batch into a single labelled overview image.
package contactsheet

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/user/snaphero/pkg/pipeline"
	"github.com/user/snaphero/pkg/ports"
)

// Layout constants in pixels.
const (
	DefaultColumns    = 3
	DefaultThumbWidth = 320
	gap               = 16
	labelHeight       = 24
	fontSize          = 12
	maxLabelRunes     = 48
)

var (
	backgroundColor = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	borderColor     = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	labelColor      = color.RGBA{R: 40, G: 40, B: 40, A: 255}
)

// Stage renders contact sheets.
type Stage struct {
	renderer ports.Renderer
	fs       ports.FileSystem
	logger   ports.Logger
}

// New creates a new contact sheet stage.
func New(renderer ports.Renderer, fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		fs:       fs,
		logger:   logger.WithComponent("contactsheet"),
	}
}

// Execute decodes every entry, scales it to ThumbWidth and draws it into a
// grid. Entries that cannot be read or decoded are skipped with a warning.
func (s *Stage) Execute(ctx context.Context, input pipeline.SheetInput) (pipeline.SheetResult, error) {
	columns := input.Columns
	if columns <= 0 {
		columns = DefaultColumns
	}
	thumbWidth := input.ThumbWidth
	if thumbWidth <= 0 {
		thumbWidth = DefaultThumbWidth
	}

	type tile struct {
		label  string
		img    image.Image
		height int
	}
	var tiles []tile
	cellHeight := 0

	for _, entry := range input.Entries {
		if err := ctx.Err(); err != nil {
			return pipeline.SheetResult{}, err
		}
		data, err := s.fs.ReadFile(entry.Path)
		if err != nil {
			s.logger.Warn("Skipping %s on contact sheet: %v", entry.Path, err)
			continue
		}
		img, err := s.renderer.DecodeImage(data, ports.FormatAuto)
		if err != nil {
			s.logger.Warn("Skipping %s on contact sheet: %v", entry.Path, err)
			continue
		}

		b := img.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			continue
		}
		h := b.Dy() * thumbWidth / b.Dx()
		if h < 1 {
			h = 1
		}
		tiles = append(tiles, tile{
			label:  entry.Label,
			img:    s.renderer.ResizeImage(img, thumbWidth, h),
			height: h,
		})
		if h > cellHeight {
			cellHeight = h
		}
	}

	if len(tiles) == 0 {
		return pipeline.SheetResult{}, fmt.Errorf("no images to place on contact sheet")
	}

	if columns > len(tiles) {
		columns = len(tiles)
	}
	rows := (len(tiles) + columns - 1) / columns
	width := gap + columns*(thumbWidth+gap)
	rowHeight := cellHeight + labelHeight + gap
	height := gap + rows*rowHeight

	canvas := s.renderer.CreateCanvas(width, height, backgroundColor)
	style := ports.TextStyle{FontSize: fontSize, Color: labelColor, Align: ports.AlignCenter}

	for i, t := range tiles {
		x := gap + (i%columns)*(thumbWidth+gap)
		y := gap + (i/columns)*rowHeight

		canvas.DrawImage(t.img, x, y)
		canvas.DrawRectStroke(x, y, thumbWidth, t.height, borderColor, 1)
		canvas.DrawText(truncate(t.label, maxLabelRunes), x+thumbWidth/2, y+cellHeight+labelHeight/2, style)
	}

	data, err := s.renderer.EncodeImage(canvas.ToImage(), ports.FormatForPath(input.OutputPath), 90)
	if err != nil {
		return pipeline.SheetResult{}, fmt.Errorf("encode contact sheet: %w", err)
	}
	if dir := filepath.Dir(input.OutputPath); dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir); err != nil {
			return pipeline.SheetResult{}, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := s.fs.WriteFile(input.OutputPath, data); err != nil {
		return pipeline.SheetResult{}, fmt.Errorf("write contact sheet: %w", err)
	}

	s.logger.Info("Contact sheet written: %s (%d images)", input.OutputPath, len(tiles))
	return pipeline.SheetResult{
		OutputPath: input.OutputPath,
		Width:      width,
		Height:     height,
		Count:      len(tiles),
	}, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

var _ pipeline.Stage[pipeline.SheetInput, pipeline.SheetResult] = (*Stage)(nil)
