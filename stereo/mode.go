// Package stereo defines the stereoscopic presentation modes and the
// per-frame decision of which views a mode needs rendered.
package stereo

import "fmt"

// Mode selects how the left and right views are presented on screen.
// The integer value of a Mode is shared with the display fragment
// shader's stereoMode uniform, so the order here must match the shader.
type Mode int

const (
	Left Mode = iota
	Right
	OpenGLStereo
	Alternating
	RedCyanDubois
	RedCyanFullColor
	RedCyanHalfColor
	RedCyanMonochrome
	GreenMagentaDubois
	GreenMagentaFullColor
	GreenMagentaHalfColor
	GreenMagentaMonochrome
	AmberBlueDubois
	AmberBlueFullColor
	AmberBlueHalfColor
	AmberBlueMonochrome
	RedGreenMonochrome
	RedBlueMonochrome
)

var modeNames = map[Mode]string{
	Left:                   "left",
	Right:                  "right",
	OpenGLStereo:           "opengl-stereo",
	Alternating:            "alternating",
	RedCyanDubois:          "red-cyan-dubois",
	RedCyanFullColor:       "red-cyan-fullcolor",
	RedCyanHalfColor:       "red-cyan-halfcolor",
	RedCyanMonochrome:      "red-cyan-monochrome",
	GreenMagentaDubois:     "green-magenta-dubois",
	GreenMagentaFullColor:  "green-magenta-fullcolor",
	GreenMagentaHalfColor:  "green-magenta-halfcolor",
	GreenMagentaMonochrome: "green-magenta-monochrome",
	AmberBlueDubois:        "amber-blue-dubois",
	AmberBlueFullColor:     "amber-blue-fullcolor",
	AmberBlueHalfColor:     "amber-blue-halfcolor",
	AmberBlueMonochrome:    "amber-blue-monochrome",
	RedGreenMonochrome:     "red-green-monochrome",
	RedBlueMonochrome:      "red-blue-monochrome",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("unknown-mode-%d", int(m))
}

// ParseMode returns the Mode named by s, as used for the command line
// mode option.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return Left, fmt.Errorf("unknown stereo mode: %s", s)
}

// Modes returns every presentation mode in shader-ordinal order.
func Modes() []Mode {
	all := make([]Mode, 0, len(modeNames))
	for m := Left; m <= RedBlueMonochrome; m++ {
		all = append(all, m)
	}
	return all
}

// Resolve decides the effective mode for a frame and which views must
// be rendered for it.
//
// A mono frame forces the effective mode to Left so that the right view
// is never requested from a source that cannot provide it. Alternating
// only needs the view that was not shown on the previous refresh;
// lastView is the view index (0 or 1) presented last. Every composited
// mode needs both views.
//
// Resolve is pure. Flipping the alternating parity is a post-draw step
// owned by the compositor.
func Resolve(requested Mode, frameIsStereo bool, lastView int) (effective Mode, needLeft, needRight bool) {
	if !frameIsStereo {
		return Left, true, false
	}
	switch requested {
	case Left:
		return Left, true, false
	case Right:
		return Right, false, true
	case Alternating:
		return Alternating, lastView != 0, lastView != 1
	default:
		return requested, true, true
	}
}
