// Package compose renders the photo and sticker overlay into the frame that
// the export flow captures.
package compose

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/example/stickersmash/assets"
	"github.com/example/stickersmash/internal/render"
	"github.com/example/stickersmash/internal/sticker"
)

// Frame geometry in logical units.
const (
	FrameWidth  = 320
	FrameHeight = 440
	// StickerTop places the sticker's resting position relative to the
	// bottom edge of the frame.
	StickerTop = -350
)

// Region is the capturable area of the composition.
var Region = image.Rect(0, 0, FrameWidth, FrameHeight)

// View describes one frame of the composition. A nil Image draws the
// placeholder artwork and a nil Sticker draws no overlay.
type View struct {
	Image     image.Image
	Sticker   image.Image
	Transform sticker.Transform
	Shadow    bool
}

// maxExtent bounds every sticker coordinate so that rectangle arithmetic,
// including the on-screen scaling, stays within int range. A sticker this
// large already covers the frame many times over.
const maxExtent = 1 << 28

// StickerRect returns the rectangle the sticker occupies inside the frame.
func StickerRect(t sticker.Transform) image.Rectangle {
	x := clampExtent(t.OffsetX)
	y := clampExtent(FrameHeight + StickerTop + t.OffsetY)
	size := clampExtent(math.Abs(t.Scale))
	return image.Rect(x, y, x+size, y+size)
}

func clampExtent(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > maxExtent:
		return maxExtent
	case v < -maxExtent:
		return -maxExtent
	}
	return int(math.Round(v))
}

// Render draws the view at frame resolution.
func (v View) Render() *image.RGBA {
	dst := image.NewRGBA(Region)
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, xdraw.Src)

	base := v.Image
	if base == nil {
		base = assets.Placeholder()
	}
	drawCover(dst, base)

	if v.Sticker != nil {
		v.drawSticker(dst)
	}
	return dst
}

func (v View) drawSticker(dst *image.RGBA) {
	rect := StickerRect(v.Transform)
	if rect.Empty() {
		return
	}
	if !v.Shadow {
		scaleInto(dst, rect, v.Sticker, xdraw.Over)
		return
	}
	opts := render.DefaultShadowOptions()
	margin := opts.Radius + max(abs(opts.Offset.X), abs(opts.Offset.Y))
	// Only the part of the sticker that can reach the frame is rasterised.
	area := dst.Bounds().Inset(-margin).Intersect(rect)
	if area.Empty() {
		return
	}
	layer := image.NewRGBA(area)
	scaleInto(layer, rect, v.Sticker, xdraw.Src)
	res := render.ApplyShadow(layer, opts)
	rb := res.Image.Bounds()
	delta := area.Min.Sub(res.Offset).Sub(rb.Min)
	target := rb.Add(delta).Intersect(dst.Bounds())
	xdraw.Draw(dst, target, res.Image, target.Min.Sub(delta), xdraw.Over)
}

// scaleInto maps src onto rect in dst coordinates. Pixels outside dst's
// bounds are never visited.
func scaleInto(dst *image.RGBA, rect image.Rectangle, src image.Image, op xdraw.Op) {
	sb := src.Bounds()
	if sb.Empty() || !rect.Overlaps(dst.Bounds()) {
		return
	}
	sx := float64(rect.Dx()) / float64(sb.Dx())
	sy := float64(rect.Dy()) / float64(sb.Dy())
	s2d := f64.Aff3{
		sx, 0, float64(rect.Min.X) - float64(sb.Min.X)*sx,
		0, sy, float64(rect.Min.Y) - float64(sb.Min.Y)*sy,
	}
	xdraw.CatmullRom.Transform(dst, s2d, src, sb, op, nil)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// drawCover scales src to fill dst, cropping whichever axis overflows.
func drawCover(dst *image.RGBA, src image.Image) {
	sb := src.Bounds()
	if sb.Empty() {
		return
	}
	db := dst.Bounds()
	scale := math.Max(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	cropW := int(math.Round(float64(db.Dx()) / scale))
	cropH := int(math.Round(float64(db.Dy()) / scale))
	if cropW > sb.Dx() {
		cropW = sb.Dx()
	}
	if cropH > sb.Dy() {
		cropH = sb.Dy()
	}
	x0 := sb.Min.X + (sb.Dx()-cropW)/2
	y0 := sb.Min.Y + (sb.Dy()-cropH)/2
	xdraw.CatmullRom.Scale(dst, db, src, image.Rect(x0, y0, x0+cropW, y0+cropH), xdraw.Src, nil)
}
