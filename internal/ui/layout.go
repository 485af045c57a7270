package ui

import (
	"image"
	"math"

	"github.com/example/stickersmash/internal/compose"
	"github.com/example/stickersmash/internal/session"
	"github.com/example/stickersmash/internal/sticker"
)

const (
	defaultWidth  = 380
	defaultHeight = 720

	padding       = 20
	toolbarHeight = 140
	// sheetFraction is the share of the window height covered by the
	// sticker picker.
	sheetFraction     = 0.25
	sheetHeaderHeight = 32
	cellGap           = 8

	primaryButtonHeight = 52
	plainButtonHeight   = 40
	iconButtonSize      = 60
	addButtonSize       = 84
)

// Action is something the user can ask for with a button or key.
type Action int

const (
	ActionNone Action = iota
	ActionChoose
	ActionUse
	ActionReset
	ActionAdd
	ActionSave
	ActionCopy
	ActionClosePicker
	ActionSelect
	ActionQuit
)

// buttonDef describes a toolbar button before it is placed.
type buttonDef struct {
	Action  Action
	Label   string
	Primary bool
	Round   bool
}

func toolbarButtons(mode session.Mode) []buttonDef {
	if mode == session.ModeEditOptions {
		return []buttonDef{
			{Action: ActionReset, Label: "Reset"},
			{Action: ActionAdd, Label: "+", Round: true},
			{Action: ActionSave, Label: "Save"},
		}
	}
	return []buttonDef{
		{Action: ActionChoose, Label: "Choose a photo", Primary: true},
		{Action: ActionUse, Label: "Use this photo"},
	}
}

type placedButton struct {
	buttonDef
	Rect image.Rectangle
}

type placedCell struct {
	Choice sticker.Choice
	Rect   image.Rectangle
}

// Layout places everything in a window of the given size.
type Layout struct {
	Width, Height int
	// Frame is where the composition is drawn and Scale is screen pixels
	// per frame unit.
	Frame   image.Rectangle
	Scale   float64
	Toolbar image.Rectangle
	Buttons []placedButton
	// Sheet is empty while the sticker picker is hidden.
	Sheet      image.Rectangle
	SheetClose image.Rectangle
	Cells      []placedCell
}

// computeLayout arranges the window for the given toolbar mode and picker
// visibility.
func computeLayout(width, height int, mode session.Mode, modal bool) Layout {
	l := Layout{Width: width, Height: height}

	availW := float64(width - 2*padding)
	availH := float64(height - toolbarHeight - 2*padding)
	l.Scale = math.Max(0.1, math.Min(availW/compose.FrameWidth, availH/compose.FrameHeight))
	fw := int(math.Round(compose.FrameWidth * l.Scale))
	fh := int(math.Round(compose.FrameHeight * l.Scale))
	fx := (width - fw) / 2
	l.Frame = image.Rect(fx, padding, fx+fw, padding+fh)

	l.Toolbar = image.Rect(0, height-toolbarHeight, width, height)
	l.Buttons = placeButtons(l.Toolbar, toolbarButtons(mode))

	if modal {
		top := height - int(float64(height)*sheetFraction)
		l.Sheet = image.Rect(0, top, width, height)
		l.SheetClose = image.Rect(width-sheetHeaderHeight, top, width, top+sheetHeaderHeight)
		l.Cells = placeCells(image.Rect(padding, top+sheetHeaderHeight, width-padding, height))
	}
	return l
}

func placeButtons(bar image.Rectangle, defs []buttonDef) []placedButton {
	out := make([]placedButton, 0, len(defs))
	cx := bar.Min.X + bar.Dx()/2
	if len(defs) == 2 {
		// Stacked: wide primary button over a plain text button.
		w := min(bar.Dx()-2*padding, compose.FrameWidth)
		y := bar.Min.Y + 12
		for _, s := range defs {
			h := plainButtonHeight
			if s.Primary {
				h = primaryButtonHeight
			}
			out = append(out, placedButton{s, image.Rect(cx-w/2, y, cx+w/2, y+h)})
			y += h + 8
		}
		return out
	}
	// A row of icon buttons around a large round one.
	cy := bar.Min.Y + bar.Dy()/2
	spacing := min(bar.Dx()/len(defs), 120)
	first := cx - spacing*(len(defs)-1)/2
	for i, s := range defs {
		size := iconButtonSize
		if s.Round {
			size = addButtonSize
		}
		x := first + i*spacing
		out = append(out, placedButton{s, image.Rect(x-size/2, cy-size/2, x+size/2, cy+size/2)})
	}
	return out
}

func placeCells(body image.Rectangle) []placedCell {
	entries := sticker.Catalog()
	cellW := body.Dx() / len(entries)
	size := max(8, min(cellW-cellGap, body.Dy()-2*cellGap))
	cy := body.Min.Y + body.Dy()/2
	out := make([]placedCell, 0, len(entries))
	for i, e := range entries {
		cx := body.Min.X + i*cellW + cellW/2
		out = append(out, placedCell{Choice: e.Choice, Rect: image.Rect(cx-size/2, cy-size/2, cx+size/2, cy+size/2)})
	}
	return out
}

// ButtonAt returns the toolbar action under p. The toolbar is unreachable
// while the picker covers it.
func (l Layout) ButtonAt(p image.Point) Action {
	if l.InSheet(p) {
		return ActionNone
	}
	for _, b := range l.Buttons {
		if p.In(b.Rect) {
			return b.Action
		}
	}
	return ActionNone
}

// InSheet reports whether p falls on the sticker picker.
func (l Layout) InSheet(p image.Point) bool {
	return !l.Sheet.Empty() && p.In(l.Sheet)
}

// CellAt returns the sticker whose cell contains p.
func (l Layout) CellAt(p image.Point) sticker.Choice {
	for _, c := range l.Cells {
		if p.In(c.Rect) {
			return c.Choice
		}
	}
	return sticker.None
}

// ToFrame converts a screen distance into frame units.
func (l Layout) ToFrame(d float64) float64 {
	return d / l.Scale
}

// StickerRect returns the on-screen rectangle of a sticker with the given
// transform.
func (l Layout) StickerRect(t sticker.Transform) image.Rectangle {
	r := compose.StickerRect(t)
	return image.Rect(
		l.Frame.Min.X+int(math.Round(float64(r.Min.X)*l.Scale)),
		l.Frame.Min.Y+int(math.Round(float64(r.Min.Y)*l.Scale)),
		l.Frame.Min.X+int(math.Round(float64(r.Max.X)*l.Scale)),
		l.Frame.Min.Y+int(math.Round(float64(r.Max.Y)*l.Scale)),
	)
}

// OnSticker reports whether p hits the visible part of the sticker.
func (l Layout) OnSticker(p image.Point, t sticker.Transform) bool {
	return p.In(l.StickerRect(t).Intersect(l.Frame))
}
