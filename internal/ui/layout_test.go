package ui

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stickersmash/internal/compose"
	"github.com/example/stickersmash/internal/session"
	"github.com/example/stickersmash/internal/sticker"
)

func center(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

func TestLayoutToolbarPerMode(t *testing.T) {
	l := computeLayout(defaultWidth, defaultHeight, session.ModeChoosePhoto, false)
	require.Len(t, l.Buttons, 2)
	assert.Equal(t, ActionChoose, l.ButtonAt(center(l.Buttons[0].Rect)))
	assert.Equal(t, ActionUse, l.ButtonAt(center(l.Buttons[1].Rect)))
	assert.True(t, l.Sheet.Empty())
	assert.Empty(t, l.Cells)

	l = computeLayout(defaultWidth, defaultHeight, session.ModeEditOptions, false)
	require.Len(t, l.Buttons, 3)
	var got []Action
	for _, b := range l.Buttons {
		got = append(got, l.ButtonAt(center(b.Rect)))
		assert.True(t, b.Rect.In(l.Toolbar), "%s outside toolbar", b.Label)
	}
	assert.Equal(t, []Action{ActionReset, ActionAdd, ActionSave}, got)
}

func TestLayoutFrameKeepsAspect(t *testing.T) {
	for _, sz := range []image.Point{{defaultWidth, defaultHeight}, {1200, 900}, {300, 400}} {
		l := computeLayout(sz.X, sz.Y, session.ModeChoosePhoto, false)
		ratio := float64(l.Frame.Dx()) / float64(l.Frame.Dy())
		assert.InDelta(t, float64(compose.FrameWidth)/compose.FrameHeight, ratio, 0.02, "size %v", sz)
		assert.LessOrEqual(t, l.Frame.Max.Y, l.Toolbar.Min.Y, "size %v", sz)
		assert.GreaterOrEqual(t, l.Frame.Min.X, 0, "size %v", sz)
	}
}

func TestLayoutSheetCoversToolbar(t *testing.T) {
	l := computeLayout(defaultWidth, defaultHeight, session.ModeEditOptions, true)
	require.False(t, l.Sheet.Empty())
	assert.Equal(t, defaultHeight-int(defaultHeight*sheetFraction), l.Sheet.Min.Y)
	require.Len(t, l.Cells, sticker.Count)
	for i, c := range l.Cells {
		assert.Equal(t, sticker.Choice(i+1), c.Choice)
		assert.Equal(t, c.Choice, l.CellAt(center(c.Rect)))
		assert.True(t, c.Rect.In(l.Sheet))
	}
	assert.Equal(t, ActionNone, l.ButtonAt(center(l.Buttons[2].Rect)))
	assert.True(t, l.InSheet(center(l.SheetClose)))
	assert.Equal(t, sticker.None, l.CellAt(center(l.Frame)))
}

func TestLayoutStickerRect(t *testing.T) {
	l := computeLayout(defaultWidth, defaultHeight, session.ModeEditOptions, false)
	tr := sticker.NewTransform()
	r := l.StickerRect(tr)
	fr := compose.StickerRect(tr)
	assert.Equal(t, l.Frame.Min.X+int(float64(fr.Min.X)*l.Scale+0.5), r.Min.X)
	assert.InDelta(t, sticker.ImageSize*l.Scale, float64(r.Dx()), 1)
	assert.True(t, l.OnSticker(center(r), tr))
	assert.False(t, l.OnSticker(image.Pt(l.Frame.Max.X-2, l.Frame.Max.Y-2), tr))

	tr.OffsetX = 100
	tr.OffsetY = -20
	moved := l.StickerRect(tr)
	assert.InDelta(t, 100*l.Scale, float64(moved.Min.X-r.Min.X), 1)
	assert.InDelta(t, -20*l.Scale, float64(moved.Min.Y-r.Min.Y), 1)
}

func TestLayoutToFrame(t *testing.T) {
	l := computeLayout(defaultWidth, defaultHeight, session.ModeEditOptions, false)
	assert.InDelta(t, 10, l.ToFrame(10*l.Scale), 1e-9)
}
