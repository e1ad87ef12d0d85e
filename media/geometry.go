// Package media supplies decoded video frames to the compositor. It
// defines the frame-source contract and an FFmpeg-backed file source
// that decodes to raw RGBA over a pipe and rasterizes individual views
// on request.
package media

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameGeometry describes the current decoded frame. It is produced
// once per refresh and consumed read-only by the compositor.
type FrameGeometry struct {
	ViewCount          int
	ViewWidth          int
	ViewHeight         int
	DisplayAspectRatio float32
	ThreeSixty         bool
}

// Source is the frame-source contract the compositor renders from.
// Both methods are called on the rendering thread only.
type Source interface {
	// FrameGeometry reports the geometry of the current frame, given
	// the drawable size. ok is false before the first frame has been
	// decoded, in which case the refresh is skipped.
	FrameGeometry(screenWidth, screenHeight int) (geometry FrameGeometry, ok bool)

	// RenderView rasterizes the requested view of the current frame
	// into the given texture under the given camera transform. The
	// texture storage is sized width x height by the caller.
	RenderView(projection, view mgl32.Mat4, viewIndex, width, height int, texture uint32) error
}

// Layout describes how the views are packed into a decoded frame.
type Layout int

const (
	// LayoutMono is a single view filling the frame.
	LayoutMono Layout = iota
	// LayoutLeftRight packs the left view into the left half of the
	// frame and the right view into the right half.
	LayoutLeftRight
	// LayoutTopBottom packs the left view into the top half of the
	// frame and the right view into the bottom half.
	LayoutTopBottom
)

func (l Layout) String() string {
	switch l {
	case LayoutMono:
		return "mono"
	case LayoutLeftRight:
		return "left-right"
	case LayoutTopBottom:
		return "top-bottom"
	}
	return fmt.Sprintf("unknown-layout-%d", int(l))
}

// ParseLayout returns the Layout named by s.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "mono":
		return LayoutMono, nil
	case "left-right":
		return LayoutLeftRight, nil
	case "top-bottom":
		return LayoutTopBottom, nil
	}
	return LayoutMono, fmt.Errorf("unknown input layout: %s", s)
}

// geometryFor derives per-view geometry from the full decoded frame
// size and its display aspect ratio. A zero frameAspectRatio falls
// back to the frame's pixel aspect.
func geometryFor(layout Layout, frameWidth, frameHeight int, frameAspectRatio float32) FrameGeometry {
	if frameAspectRatio <= 0.0 && frameHeight > 0 {
		frameAspectRatio = float32(frameWidth) / float32(frameHeight)
	}
	g := FrameGeometry{
		ViewCount:          1,
		ViewWidth:          frameWidth,
		ViewHeight:         frameHeight,
		DisplayAspectRatio: frameAspectRatio,
	}
	switch layout {
	case LayoutLeftRight:
		g.ViewCount = 2
		g.ViewWidth = frameWidth / 2
		g.DisplayAspectRatio = frameAspectRatio / 2.0
	case LayoutTopBottom:
		g.ViewCount = 2
		g.ViewHeight = frameHeight / 2
		g.DisplayAspectRatio = frameAspectRatio * 2.0
	}
	return g
}

// viewRegion returns the texcoord offset and scale selecting one
// view's sub-rectangle of the decoded frame texture. Decoded frames
// are stored top row first, so the vertical scale is negative to flip
// into GL's bottom-up convention.
func viewRegion(layout Layout, viewIndex int) (offsetX, offsetY, scaleX, scaleY float32) {
	switch layout {
	case LayoutLeftRight:
		if viewIndex == 0 {
			return 0.0, 1.0, 0.5, -1.0
		}
		return 0.5, 1.0, 0.5, -1.0
	case LayoutTopBottom:
		if viewIndex == 0 {
			return 0.0, 0.5, 1.0, -0.5
		}
		return 0.0, 1.0, 1.0, -0.5
	}
	return 0.0, 1.0, 1.0, -1.0
}
