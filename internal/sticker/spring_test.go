package sticker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpringSettlesOnTarget(t *testing.T) {
	s := NewSpring(40)
	s.SetTarget(80)
	moving := true
	for i := 0; i < 600 && moving; i++ {
		moving = s.Step(16 * time.Millisecond)
	}
	assert.False(t, moving, "spring never settled")
	assert.Equal(t, 80.0, s.Value)
	assert.True(t, s.Settled())
}

func TestSpringMovesTowardsTarget(t *testing.T) {
	s := NewSpring(40)
	s.SetTarget(160)
	s.Step(16 * time.Millisecond)
	assert.Greater(t, s.Value, 40.0)
	assert.Less(t, s.Value, 160.0)
}

func TestSpringAtRestDoesNotMove(t *testing.T) {
	s := NewSpring(40)
	assert.False(t, s.Step(time.Second))
	assert.Equal(t, 40.0, s.Value)
}

func TestSpringJump(t *testing.T) {
	s := NewSpring(40)
	s.SetTarget(400)
	s.Step(5 * time.Millisecond)
	s.Jump(40)
	assert.True(t, s.Settled())
	assert.Equal(t, 40.0, s.Value)
}
