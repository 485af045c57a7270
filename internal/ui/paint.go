package ui

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/stickersmash/assets"
	"github.com/example/stickersmash/internal/compose"
	"github.com/example/stickersmash/internal/render"
	"github.com/example/stickersmash/internal/sticker"
	"github.com/example/stickersmash/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// noticeDuration is how long a notice stays up without a click.
const noticeDuration = 2 * time.Second

// StickerCell shows one catalogue entry in the picker sheet.
type StickerCell struct {
	choice   sticker.Choice
	rect     image.Rectangle
	theme    *theme.Theme
	onSelect func(sticker.Choice)
}

func newStickerCell(c placedCell, th *theme.Theme, onSelect func(sticker.Choice)) *CacheButton {
	return &CacheButton{Button: &StickerCell{choice: c.Choice, rect: c.Rect, theme: th, onSelect: onSelect}}
}

func (sc *StickerCell) Draw(dst *image.RGBA, state ButtonState) {
	switch state {
	case StateHover:
		render.FillRoundRect(dst, sc.rect, 8, sc.theme.ButtonBackgroundHover)
	case StatePressed:
		render.FillRoundRect(dst, sc.rect, 8, sc.theme.ButtonBackgroundPress)
	}
	art, err := assets.Sticker(sc.choice)
	if err != nil {
		log.Printf("sticker %s: %v", sc.choice, err)
		return
	}
	xdraw.CatmullRom.Scale(dst, sc.rect.Inset(4), art, art.Bounds(), draw.Over, nil)
}

func (sc *StickerCell) Rect() image.Rectangle { return sc.rect }

func (sc *StickerCell) SetRect(r image.Rectangle) {
	if r != sc.rect {
		sc.rect = r
	}
}

func (sc *StickerCell) Activate() {
	if sc.onSelect != nil {
		sc.onSelect(sc.choice)
	}
}

type paintState struct {
	width, height int
	layout        Layout
	theme         *theme.Theme
	// view is drawn with the spring's displayed scale, not the stored one.
	view     compose.View
	buttons  []*CacheButton
	cells    []*CacheButton
	hover    image.Point
	pressed  bool
	selected sticker.Choice
	status   string
	message  string
}

func (st paintState) buttonState(b Button) ButtonState {
	if !st.hover.In(b.Rect()) {
		return StateDefault
	}
	if st.pressed {
		return StatePressed
	}
	return StateHover
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	dst := b.RGBA()
	th := st.theme
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}

	frame := st.view.Render()
	if ctx.Err() != nil {
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, st.layout.Frame, frame, frame.Bounds(), draw.Src, nil)
	if ctx.Err() != nil {
		return
	}

	render.FillRect(dst, st.layout.Toolbar, th.ToolbarBackground)
	for _, btn := range st.buttons {
		btn.Draw(dst, st.buttonState(btn))
	}
	if st.status != "" {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13}
		d.Dot = fixed.P(st.layout.Toolbar.Min.X+4, st.layout.Toolbar.Max.Y-4)
		d.DrawString(st.status)
	}
	if ctx.Err() != nil {
		return
	}

	if !st.layout.Sheet.Empty() {
		drawSheet(dst, st)
	}
	if ctx.Err() != nil {
		return
	}

	if st.message != "" {
		drawNotice(dst, th, st.layout, st.message)
	}
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawSheet(dst *image.RGBA, st paintState) {
	th := st.theme
	l := st.layout
	render.FillRect(dst, l.Sheet, th.ModalBackground)
	header := image.Rect(l.Sheet.Min.X, l.Sheet.Min.Y, l.Sheet.Max.X, l.Sheet.Min.Y+sheetHeaderHeight)
	render.FillRect(dst, header, th.ModalHeader)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ModalText), Face: labelFace}
	ascent := labelFace.Metrics().Ascent.Ceil()
	d.Dot = fixed.P(header.Min.X+padding, header.Min.Y+(header.Dy()+ascent)/2-1)
	d.DrawString("Choose a sticker")

	c := l.SheetClose.Inset(10)
	render.DrawLine(dst, c.Min.X, c.Min.Y, c.Max.X, c.Max.Y, th.ModalText, 2)
	render.DrawLine(dst, c.Min.X, c.Max.Y, c.Max.X, c.Min.Y, th.ModalText, 2)

	for _, cell := range st.cells {
		cell.Draw(dst, st.buttonState(cell))
		if cell.Button.(*StickerCell).choice == st.selected {
			render.StrokeRect(dst, cell.Rect(), th.Selection, 2)
		}
	}
}

func drawNotice(dst *image.RGBA, th *theme.Theme, l Layout, msg string) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.NoticeText), Face: noticeFace}
	wmsg := d.MeasureString(msg).Ceil()
	m := noticeFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	px := (l.Width - wmsg) / 2
	py := l.Frame.Min.Y + (l.Frame.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-16, py-ascent-12, px+wmsg+16, py+descent+12)
	bg := th.NoticeBackground
	draw.Draw(dst, rect, image.NewUniform(color.NRGBA{bg.R, bg.G, bg.B, bg.A}), image.Point{}, draw.Over)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
