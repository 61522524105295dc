package avatar

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four segments approximate a
// quarter circle each.
const kappa = 0.5522847498

func circleMask(size int) *image.Alpha {
	half := float32(size) / 2

	z := vector.NewRasterizer(size, size)
	addCircle(z, half, half, half, false)

	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// ringLayer renders a stroked circle of the given width whose outer edge
// touches the canvas border. The stroke is an annulus: the outer circle and
// the inner circle are wound in opposite directions so their coverage
// cancels inside.
func ringLayer(size int, width float64, c color.NRGBA) *image.RGBA {
	layer := image.NewRGBA(image.Rect(0, 0, size, size))
	if width <= 0 || c.A == 0 {
		return layer
	}

	half := float32(size) / 2
	radius := half - float32(width)/2
	outer := radius + float32(width)/2
	inner := radius - float32(width)/2

	z := vector.NewRasterizer(size, size)
	addCircle(z, half, half, outer, false)
	if inner > 0 {
		addCircle(z, half, half, inner, true)
	}

	z.Draw(layer, layer.Bounds(), image.NewUniform(c), image.Point{})
	return layer
}

func addCircle(z *vector.Rasterizer, cx, cy, r float32, reverse bool) {
	k := r * kappa

	z.MoveTo(cx+r, cy)
	if !reverse {
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	} else {
		z.CubeTo(cx+r, cy-k, cx+k, cy-r, cx, cy-r)
		z.CubeTo(cx-k, cy-r, cx-r, cy-k, cx-r, cy)
		z.CubeTo(cx-r, cy+k, cx-k, cy+r, cx, cy+r)
		z.CubeTo(cx+k, cy+r, cx+r, cy+k, cx+r, cy)
	}
	z.ClosePath()
}
