package assets

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/example/stickersmash/internal/render"
	"github.com/example/stickersmash/internal/sticker"
)

// StickerSize is the edge length of the generated sticker artwork. Stickers
// are drawn large and scaled down so they stay crisp after a few double-taps.
const StickerSize = 256

var (
	faceFill   = color.RGBA{0xFF, 0xCC, 0x33, 0xFF}
	faceEdge   = color.RGBA{0xE0, 0x9A, 0x10, 0xFF}
	featureCol = color.RGBA{0x5A, 0x33, 0x10, 0xFF}
	mouthFill  = color.RGBA{0x8A, 0x1C, 0x1C, 0xFF}
	heartCol   = color.RGBA{0xE8, 0x2A, 0x4F, 0xFF}
	glassCol   = color.RGBA{0x10, 0x10, 0x18, 0xFF}
	white      = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

var (
	stickerMu    sync.Mutex
	stickerCache = map[sticker.Choice]*image.RGBA{}
)

// Sticker returns the artwork for c. The returned image is shared and must
// not be modified.
func Sticker(c sticker.Choice) (*image.RGBA, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("no artwork for sticker %d", int(c))
	}
	stickerMu.Lock()
	defer stickerMu.Unlock()
	if img, ok := stickerCache[c]; ok {
		return img, nil
	}
	img := drawSticker(c)
	stickerCache[c] = img
	return img, nil
}

func drawSticker(c sticker.Choice) *image.RGBA {
	const s = StickerSize
	img := image.NewRGBA(image.Rect(0, 0, s, s))
	cx, cy := s/2, s/2
	r := s/2 - 8
	render.FillCircle(img, cx, cy, r, faceEdge)
	render.FillCircle(img, cx, cy, r-6, faceFill)

	eyeY := cy - s/8
	leftX, rightX := cx-s/6, cx+s/6
	switch c {
	case sticker.Smile:
		drawEyes(img, leftX, rightX, eyeY)
		render.DrawArc(img, cx, cy+s/16, s/4, s/6, math.Pi/8, math.Pi-math.Pi/8, featureCol, 9)
	case sticker.Grin:
		drawEyes(img, leftX, rightX, eyeY)
		drawHalfDisc(img, cx, cy+s/16, s/4, s/5, mouthFill)
		render.FillRect(img, image.Rect(cx-s/5, cy+s/16, cx+s/5, cy+s/16+s/20), white)
	case sticker.Wink:
		render.FillEllipse(img, leftX, eyeY, s/22, s/14, featureCol)
		render.DrawArc(img, rightX, eyeY+s/32, s/16, s/24, math.Pi, 2*math.Pi, featureCol, 8)
		render.DrawArc(img, cx, cy+s/16, s/4, s/6, math.Pi/8, math.Pi-math.Pi/8, featureCol, 9)
	case sticker.Cool:
		drawGlasses(img, leftX, rightX, eyeY)
		render.DrawArc(img, cx+s/24, cy+s/8, s/5, s/10, math.Pi/6, math.Pi-math.Pi/3, featureCol, 9)
	case sticker.Surprised:
		render.FillCircle(img, leftX, eyeY, s/16, white)
		render.FillCircle(img, rightX, eyeY, s/16, white)
		render.FillCircle(img, leftX, eyeY, s/30, featureCol)
		render.FillCircle(img, rightX, eyeY, s/30, featureCol)
		render.FillEllipse(img, cx, cy+s/5, s/12, s/9, mouthFill)
	case sticker.Love:
		drawHeart(img, leftX, eyeY, s/10)
		drawHeart(img, rightX, eyeY, s/10)
		render.DrawArc(img, cx, cy+s/16, s/4, s/6, math.Pi/8, math.Pi-math.Pi/8, featureCol, 9)
	}
	return img
}

func drawEyes(img *image.RGBA, leftX, rightX, y int) {
	w, h := StickerSize/22, StickerSize/14
	render.FillEllipse(img, leftX, y, w, h, featureCol)
	render.FillEllipse(img, rightX, y, w, h, featureCol)
}

func drawGlasses(img *image.RGBA, leftX, rightX, y int) {
	w, h := StickerSize/9, StickerSize/14
	render.FillEllipse(img, leftX, y, w, h, glassCol)
	render.FillEllipse(img, rightX, y, w, h, glassCol)
	render.DrawLine(img, leftX, y-h/2, rightX, y-h/2, glassCol, 7)
	render.DrawLine(img, leftX-w, y-h/2, leftX-w-StickerSize/14, y-h, glassCol, 6)
	render.DrawLine(img, rightX+w, y-h/2, rightX+w+StickerSize/14, y-h, glassCol, 6)
	render.FillEllipse(img, leftX-w/3, y-h/3, w/4, h/5, color.RGBA{0x70, 0x70, 0x80, 0xFF})
	render.FillEllipse(img, rightX-w/3, y-h/3, w/4, h/5, color.RGBA{0x70, 0x70, 0x80, 0xFF})
}

// drawHalfDisc fills the lower half of an ellipse, used for open mouths.
func drawHalfDisc(img *image.RGBA, cx, cy, rx, ry int, col color.Color) {
	for dy := 0; dy <= ry; dy++ {
		span := int(float64(rx) * math.Sqrt(1.0-float64(dy*dy)/float64(ry*ry)))
		render.FillRect(img, image.Rect(cx-span, cy+dy, cx+span+1, cy+dy+1), col)
	}
}

// drawHeart draws a heart of roughly 2r width centred on (cx, cy).
func drawHeart(img *image.RGBA, cx, cy, r int) {
	lobe := r / 2
	render.FillCircle(img, cx-lobe, cy-lobe/2, lobe+1, heartCol)
	render.FillCircle(img, cx+lobe, cy-lobe/2, lobe+1, heartCol)
	for dy := 0; dy <= r; dy++ {
		half := r - dy
		render.FillRect(img, image.Rect(cx-half, cy-lobe/2+dy, cx+half+1, cy-lobe/2+dy+1), heartCol)
	}
}
