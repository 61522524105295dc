// Package avatar turns an arbitrary photo into a fixed-size circular PNG
// with a colored ring border.
//
// A Pipeline is immutable once built and may be shared by any number of
// goroutines. The circle mask and ring are rendered once in New.
package avatar

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/png"
	"io"
	"math"

	_ "github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

var (
	ErrDecode     = errors.New("avatar: cannot decode image")
	ErrEmptyImage = errors.New("avatar: image has no pixels")
	ErrEncode     = errors.New("avatar: cannot encode image")
)

// Options controls the output geometry. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	// Size is the edge length of the square output in pixels.
	Size int
	// RingWidth is the stroke width of the border ring in pixels.
	RingWidth float64
	// RingColor is the stroke color of the border ring.
	RingColor color.NRGBA
	// CompressionLevel is passed to the PNG encoder.
	CompressionLevel png.CompressionLevel
	// MaxInputPixels caps width*height of a source image, checked from its
	// header before any pixel is decoded. Zero disables the check.
	MaxInputPixels int64
}

// DefaultMaxInputPixels is 0x3FFF * 0x3FFF.
const DefaultMaxInputPixels int64 = 268402689

func DefaultOptions() Options {
	return Options{
		Size:             400,
		RingWidth:        8,
		RingColor:        color.NRGBA{R: 0x39, G: 0xaf, B: 0xd7, A: 0xff},
		CompressionLevel: png.BestCompression,
		MaxInputPixels:   DefaultMaxInputPixels,
	}
}

func (o Options) validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("avatar: size must be positive, got %d", o.Size)
	}
	if o.RingWidth < 0 || o.RingWidth*2 > float64(o.Size) {
		return fmt.Errorf("avatar: ring width %.1f does not fit size %d", o.RingWidth, o.Size)
	}
	if o.MaxInputPixels < 0 {
		return fmt.Errorf("avatar: max input pixels must not be negative, got %d", o.MaxInputPixels)
	}
	return nil
}

type Pipeline struct {
	opts Options
	mask *image.Alpha
	ring *image.RGBA
}

func New(opts Options) (*Pipeline, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &Pipeline{
		opts: opts,
		mask: circleMask(opts.Size),
		ring: ringLayer(opts.Size, opts.RingWidth, opts.RingColor),
	}, nil
}

func (p *Pipeline) Options() Options {
	return p.opts
}

// Render runs the whole pipeline on encoded source bytes and returns the
// encoded PNG.
func (p *Pipeline) Render(src []byte) ([]byte, error) {
	img, err := p.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	out, err := p.Compose(img)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := p.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a JPEG, PNG, GIF or WEBP image and applies its EXIF
// orientation. Orientation must be fixed before fitting. Images whose header
// declares more than MaxInputPixels pixels are rejected without decoding.
func (p *Pipeline) Decode(r io.Reader) (image.Image, error) {
	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &header))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if limit := p.opts.MaxInputPixels; limit > 0 && int64(cfg.Width)*int64(cfg.Height) > limit {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, limit)
	}

	img, err := imaging.Decode(io.MultiReader(&header, r), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// Compose fits img into the square canvas, cuts it to a circle and draws the
// ring on top.
func (p *Pipeline) Compose(img image.Image) (*image.NRGBA, error) {
	fitted, err := contain(img, p.opts.Size)
	if err != nil {
		return nil, err
	}

	bounds := image.Rect(0, 0, p.opts.Size, p.opts.Size)
	out := image.NewNRGBA(bounds)

	// Src through the mask on an empty canvas is destination-in: every
	// pixel keeps its color and its alpha is scaled by the mask.
	draw.DrawMask(out, bounds, fitted, image.Point{}, p.mask, image.Point{}, draw.Src)
	draw.Draw(out, bounds, p.ring, image.Point{}, draw.Over)

	return out, nil
}

func (p *Pipeline) Encode(w io.Writer, img image.Image) error {
	err := imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(p.opts.CompressionLevel))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// contain scales img so its longer side equals size and centers it on a
// transparent size x size canvas.
func contain(img image.Image, size int) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}

	scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	nw := clamp(int(math.Round(float64(w)*scale)), 1, size)
	nh := clamp(int(math.Round(float64(h)*scale)), 1, size)

	var resized image.Image = img
	if nw != w || nh != h {
		resized = imaging.Resize(img, nw, nh, imaging.Lanczos)
	}

	canvas := imaging.New(size, size, color.NRGBA{})
	return imaging.PasteCenter(canvas, resized), nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
