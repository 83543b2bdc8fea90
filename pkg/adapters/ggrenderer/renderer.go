// Package ggrenderer draws batch contact sheets with the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/snaphero/pkg/ports"
)

// Renderer turns saved screenshots into thumbnails and lays them out on a
// sheet. Thumbnails are scaled with x/image, the sheet is drawn with gg.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateCanvas starts an empty sheet of the given size.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	return &sheet{dc: dc}
}

// DecodeImage reads a screenshot back from disk. Batch captures mix PNG and
// JPEG, so FormatAuto sniffs the format.
func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	src := bytes.NewReader(data)
	switch format {
	case ports.FormatPNG:
		img, err = png.Decode(src)
	case ports.FormatJPEG:
		img, err = jpeg.Decode(src)
	default:
		img, _, err = image.Decode(src)
	}
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

// EncodeImage serialises the finished sheet. quality applies to JPEG only.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case ports.FormatPNG:
		err = png.Encode(&buf, img)
	case ports.FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	default:
		return nil, fmt.Errorf("unsupported contact sheet format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode contact sheet as %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// ResizeImage produces a thumbnail of exactly width x height.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	thumb := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), img, img.Bounds(), draw.Over, nil)
	return thumb
}

var _ ports.Renderer = (*Renderer)(nil)

type sheet struct {
	dc *gg.Context
}

func (s *sheet) DrawImage(img image.Image, x, y int) {
	s.dc.DrawImage(img, x, y)
}

// DrawRectStroke frames a thumbnail.
func (s *sheet) DrawRectStroke(x, y, w, h int, col color.Color, strokeWidth float64) {
	s.dc.SetColor(col)
	s.dc.SetLineWidth(strokeWidth)
	s.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	s.dc.Stroke()
}

// DrawText writes a thumbnail caption, vertically centred on y. gg's
// built-in face is used unless style.FontPath loads.
func (s *sheet) DrawText(text string, x, y int, style ports.TextStyle) {
	if style.FontPath != "" {
		// A failed load leaves the current face in place.
		_ = s.dc.LoadFontFace(style.FontPath, style.FontSize)
	}
	s.dc.SetColor(style.Color)

	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1
	}
	s.dc.DrawStringAnchored(text, float64(x), float64(y), ax, 0.5)
}

func (s *sheet) ToImage() image.Image {
	return s.dc.Image()
}

var _ ports.Canvas = (*sheet)(nil)
