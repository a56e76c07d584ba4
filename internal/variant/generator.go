package variant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"fotos/internal/models"
)

// ErrDecode reports source bytes that are not a decodable raster image.
var ErrDecode = errors.New("source is not a decodable image")

// EncodedMediaType is the media type of every encoded variant.
const EncodedMediaType = "image/jpeg"

// Variant is one encoded derivative produced by Generate.
type Variant struct {
	Size   int
	Data   []byte
	Width  int
	Height int
}

// Request carries one generation call: source bytes, the ordered target
// widths, and an optional geometry directive.
type Request struct {
	Source   []byte
	Widths   []int
	Geometry *models.Geometry
}

// Result is the one-shot response of an async generation worker.
type Result struct {
	Variants []Variant
	Err      error
}

// Options control the encode quality tiers. Quality must not decrease as
// target size increases; targets below SmallMaxWidth use QualitySmall.
type Options struct {
	QualitySmall  int
	QualityLarge  int
	SmallMaxWidth int
}

// DefaultOptions returns the standard quality tiers.
func DefaultOptions() Options {
	return Options{QualitySmall: 80, QualityLarge: 90, SmallMaxWidth: 500}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.QualitySmall == 0 {
		o.QualitySmall = def.QualitySmall
	}
	if o.QualityLarge == 0 {
		o.QualityLarge = def.QualityLarge
	}
	if o.SmallMaxWidth == 0 {
		o.SmallMaxWidth = def.SmallMaxWidth
	}
	return o
}

// Validate rejects quality tiers that would decrease with target size.
func (o Options) Validate() error {
	o = o.withDefaults()
	if o.QualitySmall > o.QualityLarge {
		return fmt.Errorf("quality for small targets (%d) exceeds quality for large targets (%d)", o.QualitySmall, o.QualityLarge)
	}
	return nil
}

func (o Options) qualityFor(width int) int {
	if width < o.SmallMaxWidth {
		return o.QualitySmall
	}
	return o.QualityLarge
}

// GenerateAsync runs Generate on its own worker goroutine and delivers the
// single result on the returned channel. One worker per call; the worker owns
// the rasters it processes and is torn down when the result is sent.
func GenerateAsync(ctx context.Context, req Request, opts Options) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		variants, err := Generate(ctx, req, opts)
		ch <- Result{Variants: variants, Err: err}
	}()
	return ch
}

// Generate decodes the source, applies the geometry directive, and produces
// one encoded variant per requested target width, in request order. The call
// is all-or-nothing: any decode, resample, or encode failure fails the whole
// call with no partial output.
func Generate(ctx context.Context, req Request, opts Options) ([]Variant, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(req.Widths) == 0 {
		return nil, fmt.Errorf("at least one target width is required")
	}
	for _, w := range req.Widths {
		if w <= 0 {
			return nil, fmt.Errorf("target width must be positive, got %d", w)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(req.Source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	cropped := renderCrop(src, req.Geometry)
	bounds := cropped.Bounds()
	cropW := bounds.Dx()
	cropH := bounds.Dy()

	variants := make([]Variant, 0, len(req.Widths))
	for _, targetW := range req.Widths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		targetH := int(math.Round(float64(cropH) * float64(targetW) / float64(cropW)))
		if targetH < 1 {
			targetH = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, bounds, draw.Src, nil)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: opts.qualityFor(targetW)}); err != nil {
			return nil, fmt.Errorf("encode %dpx variant: %w", targetW, err)
		}

		variants = append(variants, Variant{
			Size:   targetW,
			Data:   buf.Bytes(),
			Width:  targetW,
			Height: targetH,
		})
	}

	return variants, nil
}

// renderCrop renders the geometry's crop rectangle into an intermediate
// raster of exactly the crop's pixel dimensions. Rotation and scale apply
// about the center of the original (undrawn) source image before the crop
// offset is translated, so crop coordinates always live in the original
// image's coordinate space.
func renderCrop(src image.Image, geom *models.Geometry) *image.RGBA {
	srcBounds := src.Bounds()

	var x, y float64
	cropW := srcBounds.Dx()
	cropH := srcBounds.Dy()
	if geom != nil {
		x = geom.X
		y = geom.Y
		cropW = int(math.Round(geom.Width))
		cropH = int(math.Round(geom.Height))
	}
	if cropW < 1 {
		cropW = 1
	}
	if cropH < 1 {
		cropH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, cropW, cropH))

	if !geom.HasTransform() {
		offset := image.Pt(srcBounds.Min.X+int(math.Round(x)), srcBounds.Min.Y+int(math.Round(y)))
		draw.Draw(dst, dst.Bounds(), src, offset, draw.Src)
		return dst
	}

	sx, sy := geom.EffectiveScale()
	angle := geom.Rotate * math.Pi / 180
	sin, cos := math.Sincos(angle)

	// Source -> dst affine map: rotate/scale about the source center, then
	// translate the crop offset.
	cx := float64(srcBounds.Dx()) / 2
	cy := float64(srcBounds.Dy()) / 2
	a := cos * sx
	b := -sin * sy
	d := sin * sx
	e := cos * sy
	tx := cx - (a*cx + b*cy) - x
	ty := cy - (d*cx + e*cy) - y

	m := f64.Aff3{a, b, tx, d, e, ty}
	draw.CatmullRom.Transform(dst, m, src, srcBounds, draw.Src, nil)
	return dst
}
