// Package imgio handles image acquisition and export at the pipeline
// boundary: decoding source files into in-memory images and writing
// rendered output back to disk. The pipeline itself never touches I/O.
package imgio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	// Register the extra decodable source formats with image.Decode;
	// PNG and JPEG register through the named imports above.
	_ "image/gif"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrLoad marks image acquisition failures: unreadable files, truncated
// data, unsupported formats. It is distinct from pipeline errors so
// callers can tell a bad source apart from a bad configuration.
var ErrLoad = errors.New("imgio: cannot load image")

// Load reads and decodes an image file, auto-detecting the format.
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from the given reader, auto-detecting the
// format.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	_ = format // format string available if needed
	return img, nil
}

// Fit downscales img so neither dimension exceeds maxDim, preserving
// aspect ratio. Images already within bounds are returned unchanged.
// Catmull-Rom resampling keeps halftone-relevant detail reasonably
// intact.
func Fit(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	nw, nh := w, h
	if w >= h {
		nw = maxDim
		nh = h * maxDim / w
	} else {
		nh = maxDim
		nw = w * maxDim / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SavePNG writes the image to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imgio: create file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("imgio: encode PNG: %w", err)
	}

	return f.Close()
}

// SaveJPEG writes the image to a JPEG file with the given quality (1-100).
func SaveJPEG(path string, img image.Image, quality int) error {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imgio: create file: %w", err)
	}

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		_ = f.Close()
		return fmt.Errorf("imgio: encode JPEG: %w", err)
	}

	return f.Close()
}

// Save writes the image to path, choosing the encoder from the file
// extension. ".jpg"/".jpeg" encode JPEG at the given quality; everything
// else encodes PNG.
func Save(path string, img image.Image, quality int) error {
	switch ext := filepath.Ext(path); ext {
	case ".jpg", ".jpeg":
		return SaveJPEG(path, img, quality)
	default:
		return SavePNG(path, img)
	}
}
