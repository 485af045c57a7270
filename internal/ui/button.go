package ui

import (
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/stickersmash/internal/render"
	"github.com/example/stickersmash/internal/theme"
)

var (
	labelFace  font.Face
	smallFace  font.Face
	noticeFace font.Face
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	faces := []struct {
		dst  *font.Face
		size float64
	}{
		{&labelFace, 16},
		{&smallFace, 13},
		{&noticeFace, 22},
	}
	for _, fc := range faces {
		*fc.dst, err = opentype.NewFace(f, &opentype.FaceOptions{Size: fc.size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			log.Fatalf("font face: %v", err)
		}
	}
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Over)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// ToolbarButton is one of the buttons along the bottom of the window.
type ToolbarButton struct {
	def      buttonDef
	rect     image.Rectangle
	theme    *theme.Theme
	onSelect func(Action)
}

func newToolbarButton(b placedButton, th *theme.Theme, onSelect func(Action)) *CacheButton {
	return &CacheButton{Button: &ToolbarButton{def: b.buttonDef, rect: b.Rect, theme: th, onSelect: onSelect}}
}

func (tb *ToolbarButton) Draw(dst *image.RGBA, state ButtonState) {
	th := tb.theme
	bg := th.ButtonBackground
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonBackgroundPress
	}
	r := tb.rect
	switch {
	case tb.def.Primary:
		render.FillRoundRect(dst, r, 18, th.Accent)
		fill := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
		if state != StateDefault {
			fill = th.ButtonBackgroundHover
		}
		render.FillRoundRect(dst, r.Inset(4), 14, fill)
		drawLabel(dst, labelFace, r, tb.def.Label, th.ButtonTextPrimary)
	case tb.def.Round:
		cx, cy := r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2
		rad := min(r.Dx(), r.Dy()) / 2
		render.FillCircle(dst, cx, cy, rad-1, th.Accent)
		inner := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
		if state != StateDefault {
			inner = th.ButtonBackgroundHover
		}
		render.FillCircle(dst, cx, cy, rad-6, inner)
		arm := rad / 3
		render.DrawLine(dst, cx-arm, cy, cx+arm, cy, th.ButtonTextPrimary, 3)
		render.DrawLine(dst, cx, cy-arm, cx, cy+arm, th.ButtonTextPrimary, 3)
	case tb.def.Action == ActionUse:
		if state != StateDefault {
			render.FillRoundRect(dst, r, 8, bg)
		}
		drawLabel(dst, labelFace, r, tb.def.Label, th.ButtonText)
	default:
		if state != StateDefault {
			render.FillRoundRect(dst, r, 8, bg)
		}
		icon := image.Rect(r.Min.X, r.Min.Y+4, r.Max.X, r.Max.Y-18)
		drawIcon(dst, icon, tb.def.Action, th.ButtonText)
		drawLabel(dst, smallFace, image.Rect(r.Min.X, r.Max.Y-20, r.Max.X, r.Max.Y), tb.def.Label, th.ButtonText)
	}
}

func (tb *ToolbarButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolbarButton) SetRect(r image.Rectangle) {
	if r != tb.rect {
		tb.rect = r
	}
}

func (tb *ToolbarButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.def.Action)
	}
}

func drawIcon(dst *image.RGBA, r image.Rectangle, a Action, col color.Color) {
	cx, cy := r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2
	rad := min(r.Dx(), r.Dy()) / 3
	switch a {
	case ActionReset:
		render.DrawArc(dst, cx, cy, rad, rad, 0.5, 6.0, col, 2)
		render.DrawLine(dst, cx+rad, cy-4, cx+rad, cy+2, col, 2)
		render.DrawLine(dst, cx+rad, cy+2, cx+rad-6, cy+2, col, 2)
	case ActionSave:
		render.DrawLine(dst, cx, cy-rad, cx, cy+rad/2, col, 2)
		render.DrawLine(dst, cx-rad/2, cy, cx, cy+rad/2, col, 2)
		render.DrawLine(dst, cx+rad/2, cy, cx, cy+rad/2, col, 2)
		render.DrawLine(dst, cx-rad, cy+rad, cx+rad, cy+rad, col, 2)
	}
}

func drawLabel(dst *image.RGBA, face font.Face, r image.Rectangle, label string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	w := d.MeasureString(label).Ceil()
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-ascent-descent)/2 + ascent
	d.Dot = fixed.P(x, y)
	d.DrawString(label)
}
