package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyShadowGrowsCanvas(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(5, 5, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	res := ApplyShadow(img, opts)
	if res.Image == nil {
		t.Fatal("expected output image")
	}
	want := image.Rect(0, 0, 22, 20)
	if !res.Image.Bounds().Eq(want) {
		t.Fatalf("bounds = %v, want %v", res.Image.Bounds(), want)
	}
	if res.Offset != image.Pt(0, 0) {
		t.Fatalf("offset = %v, want origin", res.Offset)
	}
	shadowPt := image.Pt(5, 5).Add(opts.Offset)
	if res.Image.RGBAAt(shadowPt.X, shadowPt.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", shadowPt)
	}
}

func TestApplyShadowNegativeOffsetShiftsContent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	res := ApplyShadow(img, ShadowOptions{Radius: 1, Offset: image.Pt(-3, -2), Opacity: 1})
	if res.Offset != image.Pt(4, 3) {
		t.Fatalf("offset = %v, want (4,3)", res.Offset)
	}
	if got := res.Image.RGBAAt(res.Offset.X, res.Offset.Y); got.G != 255 {
		t.Fatalf("source pixel not preserved, got %+v", got)
	}
}

func TestApplyShadowZeroOpacityIsIdentity(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	res := ApplyShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10), Opacity: 0})
	if res.Image != img {
		t.Fatalf("expected the input image to be returned untouched")
	}
}

func TestApplyShadowBlurSpreads(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	opts := ShadowOptions{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}

	res := ApplyShadow(img, opts)
	base := opts.Offset
	if res.Image.RGBAAt(base.X, base.Y).A == 0 {
		t.Fatal("expected alpha at base shadow location")
	}
	if res.Image.RGBAAt(base.X+1, base.Y).A == 0 {
		t.Fatal("expected blurred alpha to reach the neighbour")
	}
}
