package sticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTapDetector(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		second time.Duration
		dx, dy float64
		want   bool
	}{
		{"quick and close", 120 * time.Millisecond, 2, 3, true},
		{"exactly at window", DoubleTapWindow, 0, 0, true},
		{"too slow", DoubleTapWindow + time.Millisecond, 0, 0, false},
		{"too far", 50 * time.Millisecond, 30, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewTapDetector()
			assert.False(t, d.Tap(base, 100, 100))
			assert.Equal(t, tc.want, d.Tap(base.Add(tc.second), 100+tc.dx, 100+tc.dy))
		})
	}
}

func TestTapDetectorThirdTapStartsOver(t *testing.T) {
	base := time.Now()
	d := NewTapDetector()
	d.Tap(base, 0, 0)
	assert.True(t, d.Tap(base.Add(10*time.Millisecond), 0, 0))
	assert.False(t, d.Tap(base.Add(20*time.Millisecond), 0, 0))
	assert.True(t, d.Tap(base.Add(30*time.Millisecond), 0, 0))
}

func TestTapDetectorCancel(t *testing.T) {
	base := time.Now()
	d := NewTapDetector()
	d.Tap(base, 0, 0)
	d.Cancel()
	assert.False(t, d.Tap(base.Add(10*time.Millisecond), 0, 0))
}
