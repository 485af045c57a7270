package ui

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stickersmash/internal/session"
	"github.com/example/stickersmash/internal/theme"
)

func TestToolbarButtonActivate(t *testing.T) {
	l := computeLayout(defaultWidth, defaultHeight, session.ModeEditOptions, false)
	var got []Action
	for _, b := range l.Buttons {
		btn := newToolbarButton(b, theme.Default(), func(a Action) { got = append(got, a) })
		btn.Activate()
	}
	assert.Equal(t, []Action{ActionReset, ActionAdd, ActionSave}, got)
}

func TestCacheButtonDrawsAndResets(t *testing.T) {
	l := computeLayout(defaultWidth, defaultHeight, session.ModeChoosePhoto, false)
	btn := newToolbarButton(l.Buttons[0], theme.Default(), nil)
	dst := image.NewRGBA(image.Rect(0, 0, defaultWidth, defaultHeight))
	btn.Draw(dst, StateDefault)
	require.NotNil(t, btn.cache[StateDefault])
	c := center(btn.Rect())
	assert.NotZero(t, dst.RGBAAt(c.X, c.Y).A)

	btn.SetRect(btn.Rect())
	assert.NotNil(t, btn.cache[StateDefault])
	btn.SetRect(btn.Rect().Add(image.Pt(0, 4)))
	assert.Nil(t, btn.cache[StateDefault])
}
