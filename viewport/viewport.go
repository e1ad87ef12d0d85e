// Package viewport tracks the drawable size of the output surface and
// derives the aspect-fit scale factors used to letterbox or pillarbox
// the video inside it.
package viewport

// State holds the current drawable size in pixels. It is updated from
// resize events and read by the compositor on every refresh.
type State struct {
	Width  int
	Height int
}

// Resize stores a new drawable size. A redraw is not forced here; the
// hosting event loop schedules one.
func (s *State) Resize(width, height int) {
	s.Width = width
	s.Height = height
}

// Degenerate reports whether the drawable is too small to render into.
func (s *State) Degenerate() bool {
	return s.Width <= 0 || s.Height <= 0
}

// AspectRatio returns width over height.
func (s *State) AspectRatio() float32 {
	return float32(s.Width) / float32(s.Height)
}

// FitScale returns the relative width and height of the largest
// axis-aligned box with the frame's display aspect ratio that fits the
// drawable. When the screen is narrower than the frame the height is
// shrunk, otherwise the width is. At most one factor is below 1.0.
func (s *State) FitScale(frameDisplayAspectRatio float32) (relWidth, relHeight float32) {
	relWidth = 1.0
	relHeight = 1.0
	screenAspectRatio := s.AspectRatio()
	if screenAspectRatio < frameDisplayAspectRatio {
		relHeight = screenAspectRatio / frameDisplayAspectRatio
	} else {
		relWidth = frameDisplayAspectRatio / screenAspectRatio
	}
	return relWidth, relHeight
}
