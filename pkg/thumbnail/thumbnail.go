package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	// DefaultName is the placeholder shown for items without a thumbnail.
	DefaultName = "default_product.png"
	// DefaultSize is the bounding box, in pixels, thumbnails are scaled into.
	DefaultSize = 100
	// JPEGQuality is the compression quality for JPEG output.
	JPEGQuality = 85
)

var formats = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Store keeps resized thumbnails in a single directory.
type Store struct {
	dir  string
	size int
}

// New creates a Store rooted at dir, creating the directory if needed.
// A non-positive size uses DefaultSize.
func New(dir string, size int) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating thumbnail directory: %w", err)
	}
	return &Store{dir: dir, size: size}, nil
}

// Dir returns the directory thumbnails are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Save validates the image by sniffing its bytes, scales it to fit the
// configured box and writes it under a random name. The returned name is
// relative to Dir. originalName is only used in error messages.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", originalName, err)
	}
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}

	detected := http.DetectContentType(data)
	ext, ok := formats[detected]
	if !ok {
		return "", fmt.Errorf("%w: %s is %s", ErrUnsupportedFormat, originalName, detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding %q: %w", originalName, err)
	}
	img = fit(img, s.size)

	var buf bytes.Buffer
	if ext == ".png" {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality})
	}
	if err != nil {
		return "", fmt.Errorf("encoding %q: %w", originalName, err)
	}

	name := uuid.NewString() + ext
	if err := s.write(name, buf.Bytes()); err != nil {
		return "", err
	}
	return name, nil
}

// Path resolves a stored name to its file path. Names that would escape the
// directory are rejected.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// EnsurePlaceholder writes a plain DefaultName image when none exists.
func (s *Store) EnsurePlaceholder() error {
	p := filepath.Join(s.dir, DefaultName)
	if _, err := os.Stat(p); err == nil {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, s.size, s.size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding placeholder: %w", err)
	}
	return s.write(DefaultName, buf.Bytes())
}

// write stores data under name via a temporary file so readers never see a
// partial image.
func (s *Store) write(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing thumbnail: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing thumbnail: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("storing thumbnail: %w", err)
	}
	return nil
}

// fit scales img down so neither side exceeds maxDim, keeping the aspect
// ratio. Smaller images are returned unchanged.
func fit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = h * maxDim / w
	} else {
		newW = w * maxDim / h
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
