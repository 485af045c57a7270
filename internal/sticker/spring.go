package sticker

import (
	"math"
	"time"
)

// Spring animates a displayed value towards a target. It only drives what is
// drawn on screen; exports always use the target value.
type Spring struct {
	Stiffness float64
	Damping   float64
	Mass      float64

	// RestDisplacement and RestSpeed decide when the spring snaps to its target.
	RestDisplacement float64
	RestSpeed        float64

	Value    float64
	Velocity float64
	Target   float64
}

// NewSpring returns a spring at rest on v.
func NewSpring(v float64) Spring {
	return Spring{
		Stiffness:        100,
		Damping:          10,
		Mass:             1,
		RestDisplacement: 0.01,
		RestSpeed:        2,
		Value:            v,
		Target:           v,
	}
}

// SetTarget retargets the spring, keeping the current velocity.
func (s *Spring) SetTarget(t float64) {
	s.Target = t
}

// Jump moves the spring to v immediately and stops it.
func (s *Spring) Jump(v float64) {
	s.Value = v
	s.Target = v
	s.Velocity = 0
}

// Settled reports whether the spring is resting on its target.
func (s *Spring) Settled() bool {
	return s.Value == s.Target && s.Velocity == 0
}

const springStep = time.Millisecond

// Step advances the simulation by dt and reports whether the spring is still
// moving afterwards.
func (s *Spring) Step(dt time.Duration) bool {
	if s.Settled() {
		return false
	}
	mass := s.Mass
	if mass <= 0 {
		mass = 1
	}
	for dt > 0 {
		h := springStep
		if dt < h {
			h = dt
		}
		dt -= h
		secs := h.Seconds()
		force := -s.Stiffness*(s.Value-s.Target) - s.Damping*s.Velocity
		s.Velocity += force / mass * secs
		s.Value += s.Velocity * secs
		if math.Abs(s.Value-s.Target) < s.RestDisplacement && math.Abs(s.Velocity) < s.RestSpeed {
			s.Value = s.Target
			s.Velocity = 0
			return false
		}
	}
	return true
}
