package featuremap

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/multierr"
)

// Format is an image encoding.
type Format int

const (
	FormatPNG Format = iota + 1
	FormatSVG
	FormatJPEG
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatSVG:
		return "svg"
	case FormatJPEG:
		return "jpeg"
	}
	return "unknown"
}

var formatsByExt = map[string]Format{
	".png":  FormatPNG,
	".svg":  FormatSVG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
}

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatsByExt[ext]; ok {
		return f, nil
	}
	if ext == "" {
		return 0, errors.Errorf("%s: no file extension, cannot choose an image format (png, svg, jpg)", path)
	}
	return 0, errors.Errorf("%s: unsupported image format %q (png, svg, jpg)", path, ext)
}

// Plot is everything a Drawer needs for one figure.
type Plot struct {
	Record Record
	Title  string
	Width  float64 // inches
	DPI    float64
}

// Drawer renders a plot in the given format.
type Drawer interface {
	Draw(w io.Writer, format Format, p Plot) error
}

// SaveFile draws p into path, choosing the format from its extension.
// A partially written file is removed when drawing fails.
func SaveFile(path string, d Drawer, p Plot) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := p.Record.Validate(); err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create image")
	}
	defer func() {
		err = multierr.Append(err, fh.Close())
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	if err := d.Draw(fh, format, p); err != nil {
		return errors.Wrapf(err, "draw %s", format)
	}
	return nil
}
