package window

import (
	glfw "github.com/go-gl/glfw/v3.3/glfw"
)

// The default window shape is a 16:9 box.
const (
	sizeBaseWidth  = 16
	sizeBaseHeight = 9
)

// SizeHint returns the default window size: a 16:9 box scaled to three
// quarters of the primary monitor. Computed once at startup.
func SizeHint() (int, int) {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return 960, 540
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return 960, 540
	}
	return scaleToFit(sizeBaseWidth, sizeBaseHeight, mode.Width*3/4, mode.Height*3/4)
}

// scaleToFit scales base to the largest size that fits max while
// keeping its aspect ratio.
func scaleToFit(baseWidth, baseHeight, maxWidth, maxHeight int) (int, int) {
	if baseWidth <= 0 || baseHeight <= 0 || maxWidth <= 0 || maxHeight <= 0 {
		return baseWidth, baseHeight
	}
	if maxWidth*baseHeight <= maxHeight*baseWidth {
		return maxWidth, maxWidth * baseHeight / baseWidth
	}
	return maxHeight * baseWidth / baseHeight, maxHeight
}
