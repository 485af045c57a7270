package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn beneath a sticker.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult is the output of ApplyShadow.
type ShadowResult struct {
	// Image holds the source composited over its blurred shadow, with a
	// zero-based origin.
	Image *image.RGBA
	// Offset is where the source's top-left corner landed inside Image.
	Offset image.Point
}

// DefaultShadowOptions returns a soft shadow sized for small overlays.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  4,
		Offset:  image.Pt(2, 3),
		Opacity: 0.45,
	}
}

// ApplyShadow composites img over a blurred copy of its alpha channel. The
// canvas grows to fit the blur and offset; ShadowResult.Offset tells callers
// how far the original content moved.
func ApplyShadow(img image.Image, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	src := toRGBA(img)
	if src.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: src}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	srcBounds := src.Bounds()
	maskBounds := srcBounds.Inset(-radius)
	shadowBounds := maskBounds.Add(opts.Offset)
	canvas := srcBounds.Union(shadowBounds)

	mask := image.NewAlpha(maskBounds.Sub(maskBounds.Min))
	for y := srcBounds.Min.Y; y < srcBounds.Max.Y; y++ {
		for x := srcBounds.Min.X; x < srcBounds.Max.X; x++ {
			if a := src.RGBAAt(x, y).A; a != 0 {
				mask.SetAlpha(x-maskBounds.Min.X, y-maskBounds.Min.Y, color.Alpha{A: a})
			}
		}
	}
	blurred := boxBlur(mask, radius)

	dst := image.NewRGBA(canvas.Sub(canvas.Min))
	shade := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, blurred.Bounds().Add(shadowBounds.Min.Sub(canvas.Min)), shade, image.Point{}, blurred, image.Point{}, draw.Over)
	shift := srcBounds.Min.Sub(canvas.Min)
	draw.Draw(dst, srcBounds.Sub(canvas.Min), src, srcBounds.Min, draw.Over)
	return ShadowResult{Image: dst, Offset: shift}
}

// boxBlur runs a horizontal then a vertical running-sum pass of the given radius.
func boxBlur(src *image.Alpha, radius int) *image.Alpha {
	out := image.NewAlpha(src.Bounds())
	copy(out.Pix, src.Pix)
	if radius <= 0 {
		return out
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewAlpha(src.Bounds())
	blurPass(src.Pix, tmp.Pix, w, h, src.Stride, 1, radius)
	blurPass(tmp.Pix, out.Pix, h, w, 1, tmp.Stride, radius)
	return out
}

// blurPass averages each line of n samples (spaced step apart) over a window
// of 2*radius+1. Lines start lineStride apart.
func blurPass(in, out []uint8, n, lines, lineStride, step, radius int) {
	sums := make([]int, n+1)
	for l := 0; l < lines; l++ {
		base := l * lineStride
		for i := 0; i < n; i++ {
			sums[i+1] = sums[i] + int(in[base+i*step])
		}
		for i := 0; i < n; i++ {
			lo := max(i-radius, 0)
			hi := min(i+radius, n-1)
			out[base+i*step] = uint8((sums[hi+1] - sums[lo]) / (hi - lo + 1))
		}
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}
