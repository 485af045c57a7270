package assets

import (
	"image"
	"image/color"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Placeholder dimensions match the composition frame.
const (
	PlaceholderWidth  = 320
	PlaceholderHeight = 440
)

var (
	placeholderOnce sync.Once
	placeholderImg  *image.RGBA
)

// Placeholder returns the background shown before a photo is chosen. The
// returned image is shared and must not be modified.
func Placeholder() *image.RGBA {
	placeholderOnce.Do(func() {
		placeholderImg = drawPlaceholder()
	})
	return placeholderImg
}

func drawPlaceholder() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PlaceholderWidth, PlaceholderHeight))
	top := color.RGBA{0x8E, 0xC5, 0xFC, 0xFF}
	bottom := color.RGBA{0xE0, 0xC3, 0xFC, 0xFF}
	for y := 0; y < PlaceholderHeight; y++ {
		t := float64(y) / float64(PlaceholderHeight-1)
		row := color.RGBA{
			R: lerp(top.R, bottom.R, t),
			G: lerp(top.G, bottom.G, t),
			B: lerp(top.B, bottom.B, t),
			A: 0xFF,
		}
		for x := 0; x < PlaceholderWidth; x++ {
			img.SetRGBA(x, y, row)
		}
	}
	face, err := placeholderFace()
	if err != nil {
		log.Printf("placeholder font: %v", err)
		return img
	}
	defer face.Close()
	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{0x25, 0x29, 0x2E, 0xC0}), Face: face}
	for i, line := range []string{"Sticker", "Smash"} {
		w := d.MeasureString(line).Ceil()
		d.Dot = fixed.P((PlaceholderWidth-w)/2, PlaceholderHeight/2+i*44)
		d.DrawString(line)
	}
	return img
}

func placeholderFace() (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: 40, DPI: 72, Hinting: font.HintingFull})
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
