package ports

import (
	"image"
	"image/color"
	"path/filepath"
	"strings"
)

// Renderer builds contact sheets from saved screenshots.
type Renderer interface {
	// CreateCanvas starts an empty sheet filled with bg.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage reads a screenshot. FormatAuto detects PNG or JPEG.
	DecodeImage(data []byte, format ImageFormat) (image.Image, error)

	// EncodeImage writes the sheet in format; quality is JPEG-only.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage scales a screenshot to a thumbnail.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas is a contact sheet being drawn.
type Canvas interface {
	DrawImage(img image.Image, x, y int)
	DrawRectStroke(x, y, w, h int, c color.Color, strokeWidth float64)
	DrawText(text string, x, y int, style TextStyle)
	ToImage() image.Image
}

// TextStyle defines text rendering properties.
type TextStyle struct {
	FontSize float64
	FontPath string
	Color    color.Color
	Align    TextAlign
}

// TextAlign specifies text alignment.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
	// FormatAuto sniffs the format from the data when decoding.
	FormatAuto
)

// String returns the conventional file extension (without dot) for the format.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	default:
		return "auto"
	}
}

// FormatForPath maps a file extension to an encoding, case-insensitively.
// .jpg and .jpeg select JPEG; every other extension, including none, is PNG.
func FormatForPath(path string) ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	default:
		return FormatPNG
	}
}
