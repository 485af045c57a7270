package sticker

// ImageSize is the edge length, in frame units, of a freshly placed sticker.
const ImageSize = 40.0

// Transform positions and sizes the sticker overlay. Offsets are measured
// from the sticker's resting position inside the composition frame.
type Transform struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// NewTransform returns the transform every newly selected sticker starts with.
func NewTransform() Transform {
	return Transform{Scale: ImageSize}
}

// Phase reports whether a drag gesture is in progress.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// State holds the transform of the active sticker together with the drag
// baseline captured when the current gesture started.
type State struct {
	Transform Transform

	phase Phase
	baseX float64
	baseY float64
}

// NewState returns an idle state with the default transform.
func NewState() State {
	return State{Transform: NewTransform()}
}

// Phase returns the current gesture phase.
func (s *State) Phase() Phase { return s.phase }

// Reset re-initialises the transform and abandons any gesture in flight.
func (s *State) Reset() {
	*s = NewState()
}

// StartDrag snapshots the current offsets as the baseline for the gesture.
func (s *State) StartDrag() {
	s.baseX = s.Transform.OffsetX
	s.baseY = s.Transform.OffsetY
	s.phase = Dragging
}

// UpdateDrag moves the sticker to baseline + (dx, dy). The displacement is
// measured from where the gesture started, not from the previous update.
// Updates outside of a gesture are ignored and reported as false.
func (s *State) UpdateDrag(dx, dy float64) bool {
	if s.phase != Dragging {
		return false
	}
	s.Transform.OffsetX = s.baseX + dx
	s.Transform.OffsetY = s.baseY + dy
	return true
}

// EndDrag finishes the gesture. The offsets stay where the last update left them.
func (s *State) EndDrag() {
	s.phase = Idle
}

// DoubleTap doubles a non-zero scale. The scale is not clamped.
func (s *State) DoubleTap() {
	if s.Transform.Scale != 0 {
		s.Transform.Scale *= 2
	}
}
