// Package compositor renders decoded video frames to the screen in the
// selected stereoscopic presentation mode. It owns the per-eye view
// textures, the display shader program and the full-screen quad, and
// orchestrates the per-refresh sequence: geometry query, mode
// resolution, per-view render, composite draw.
package compositor

import (
	"fmt"
	"log"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/stereolab/stereoview/media"
	"github.com/stereolab/stereoview/orientation"
	"github.com/stereolab/stereoview/shader"
	"github.com/stereolab/stereoview/stereo"
	"github.com/stereolab/stereoview/viewport"
)

// Config fixes the compositor's environment at construction.
type Config struct {
	// Mode is the requested presentation mode.
	Mode stereo.Mode
	// OpenGLStereo is true when the drawable was created with dual
	// left/right hardware buffers.
	OpenGLStereo bool
	// GLES selects the constrained GPU profile's texture formats and
	// shader preamble.
	GLES bool
}

// Compositor draws one video frame per refresh. All methods must be
// called on the rendering thread with the GL context current.
type Compositor struct {
	source media.Source

	mode         stereo.Mode
	openGLStereo bool

	textures *viewTextures
	quadVAO  uint32
	program  uint32

	view0Loc          int32
	view1Loc          int32
	stereoModeLoc     int32
	relativeWidthLoc  int32
	relativeHeightLoc int32

	alternatingLastView int
	orientation         orientation.Controller
	viewport            viewport.State

	needsRedraw bool
}

// New checks the context's capabilities and builds the compositor's GL
// resources. Capability and shader failures are fatal for the session;
// the caller reports them and exits.
func New(source media.Source, cfg Config) (*Compositor, error) {
	var major, minor int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)
	if major < 3 || (major == 3 && minor < 2) {
		return nil, fmt.Errorf("insufficient OpenGL capabilities (have %d.%d, need 3.2)", major, minor)
	}
	if cfg.OpenGLStereo {
		var stereoBuffers bool
		gl.GetBooleanv(gl.STEREO, &stereoBuffers)
		if !stereoBuffers {
			return nil, fmt.Errorf("OpenGL stereo mode is not available on this system")
		}
	}

	c := &Compositor{
		source:              source,
		mode:                cfg.Mode,
		openGLStereo:        cfg.OpenGLStereo,
		alternatingLastView: 1,
	}

	c.textures = newViewTextures(cfg.GLES)
	c.quadVAO = newQuad()

	var err error
	c.program, err = shader.NewProgram(shader.DisplayVertexSource, shader.DisplayFragmentSource, cfg.GLES)
	if err != nil {
		return nil, fmt.Errorf("failed to create display program: %w", err)
	}
	c.view0Loc = gl.GetUniformLocation(c.program, gl.Str("view0\x00"))
	c.view1Loc = gl.GetUniformLocation(c.program, gl.Str("view1\x00"))
	c.stereoModeLoc = gl.GetUniformLocation(c.program, gl.Str("stereoMode\x00"))
	c.relativeWidthLoc = gl.GetUniformLocation(c.program, gl.Str("relativeWidth\x00"))
	c.relativeHeightLoc = gl.GetUniformLocation(c.program, gl.Str("relativeHeight\x00"))

	return c, nil
}

// Destroy releases the compositor's GL resources.
func (c *Compositor) Destroy() {
	gl.DeleteProgram(c.program)
	gl.DeleteVertexArrays(1, &c.quadVAO)
	c.textures.destroy()
}

// Mode returns the requested presentation mode.
func (c *Compositor) Mode() stereo.Mode {
	return c.mode
}

// SetMode changes the requested presentation mode. Takes effect on the
// next refresh.
func (c *Compositor) SetMode(mode stereo.Mode) {
	c.mode = mode
	c.ScheduleRedraw()
}

// ScheduleRedraw marks the display dirty; the hosting event loop calls
// RenderFrame on the next iteration.
func (c *Compositor) ScheduleRedraw() {
	c.needsRedraw = true
}

// TakeRedraw consumes the dirty flag.
func (c *Compositor) TakeRedraw() bool {
	due := c.needsRedraw
	c.needsRedraw = false
	return due
}

// Resize records a new drawable size and schedules a repaint so the
// fit factors take effect even while playback is paused or finished.
func (c *Compositor) Resize(width, height int) {
	c.viewport.Resize(width, height)
	c.ScheduleRedraw()
}

// Refresh schedules a repaint after window damage.
func (c *Compositor) Refresh() {
	c.ScheduleRedraw()
}

// Press, Move and Release feed pointer gestures to the 360° orientation
// controller.
func (c *Compositor) Press(x, y float64) {
	c.orientation.Press(x, y)
}

func (c *Compositor) Move(x, y float64) {
	if c.orientation.Move(x, y, c.viewport.Width, c.viewport.Height) {
		c.ScheduleRedraw()
	}
}

func (c *Compositor) Release() {
	c.orientation.Release()
}

// MediaChanged resets the session-scoped state: camera orientation and
// alternating parity.
func (c *Compositor) MediaChanged() {
	c.orientation.Reset()
	c.alternatingLastView = 1
	c.ScheduleRedraw()
}

// RenderFrame draws the current frame. Refreshes before the first
// decoded frame or with a degenerate drawable are skipped.
func (c *Compositor) RenderFrame() {
	if c.viewport.Degenerate() {
		return
	}
	geometry, ok := c.source.FrameGeometry(c.viewport.Width, c.viewport.Height)
	if !ok {
		return
	}

	frameIsStereo := geometry.ViewCount == 2
	mode, needLeft, needRight := stereo.Resolve(c.mode, frameIsStereo, c.alternatingLastView)

	// render the needed views into the view textures
	need := [2]bool{needLeft, needRight}
	for v := 0; v < 2; v++ {
		if !need[v] {
			continue
		}
		tex := c.textures.ensure(v, geometry.ViewWidth, geometry.ViewHeight)

		projection := mgl32.Ident4()
		view := mgl32.Ident4()
		if geometry.ThreeSixty {
			projection, view = c.orientation.Transform(c.viewport.AspectRatio())
		}
		if err := c.source.RenderView(projection, view, v, geometry.ViewWidth, geometry.ViewHeight, tex); err != nil {
			log.Printf("compositor: rendering view %d: %v", v, err)
			return
		}
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	// composite onto the display surface
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(c.viewport.Width), int32(c.viewport.Height))
	gl.Disable(gl.DEPTH_TEST)

	relWidth, relHeight := c.viewport.FitScale(geometry.DisplayAspectRatio)

	gl.UseProgram(c.program)
	gl.Uniform1i(c.view0Loc, 0)
	gl.Uniform1i(c.view1Loc, 1)
	gl.Uniform1f(c.relativeWidthLoc, relWidth)
	gl.Uniform1f(c.relativeHeightLoc, relHeight)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.textures.handle(0))
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, c.textures.handle(1))
	gl.BindVertexArray(c.quadVAO)

	if c.openGLStereo {
		if mode == stereo.OpenGLStereo {
			gl.DrawBuffer(gl.BACK_LEFT)
			gl.Uniform1i(c.stereoModeLoc, int32(stereo.Left))
			gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
			gl.DrawBuffer(gl.BACK_RIGHT)
			gl.Uniform1i(c.stereoModeLoc, int32(stereo.Right))
			gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
		} else {
			// a composited 2D mode on stereo hardware is duplicated
			// into both physical buffers
			mode = resolveAlternating(mode, c.alternatingLastView)
			gl.Uniform1i(c.stereoModeLoc, int32(mode))
			gl.DrawBuffer(gl.BACK_LEFT)
			gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
			gl.DrawBuffer(gl.BACK_RIGHT)
			gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
		}
	} else {
		mode = resolveAlternating(mode, c.alternatingLastView)
		gl.Uniform1i(c.stereoModeLoc, int32(mode))
		gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
	}
	gl.BindVertexArray(0)

	c.updateAlternating(frameIsStereo)
}

// resolveAlternating maps the Alternating mode to the eye due for
// display this refresh: the complement of the eye shown last.
func resolveAlternating(mode stereo.Mode, lastView int) stereo.Mode {
	if mode != stereo.Alternating {
		return mode
	}
	if lastView == 0 {
		return stereo.Right
	}
	return stereo.Left
}

// updateAlternating is the post-draw parity step: flip which eye was
// shown and immediately request the next refresh, driving the
// alternating flicker independently of the source frame rate.
func (c *Compositor) updateAlternating(frameIsStereo bool) {
	if c.mode != stereo.Alternating || !frameIsStereo {
		return
	}
	if c.alternatingLastView == 0 {
		c.alternatingLastView = 1
	} else {
		c.alternatingLastView = 0
	}
	c.ScheduleRedraw()
}

// newQuad builds the display quad: 4 vertices, 6 indices, positions
// and texcoords in separate buffers.
func newQuad() uint32 {
	quadPositions := []float32{
		-1.0, +1.0, 0.0,
		+1.0, +1.0, 0.0,
		+1.0, -1.0, 0.0,
		-1.0, -1.0, 0.0,
	}
	quadTexCoords := []float32{
		0.0, 1.0,
		1.0, 1.0,
		1.0, 0.0,
		0.0, 0.0,
	}
	quadIndices := []uint16{0, 3, 1, 1, 3, 2}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var positionBuf uint32
	gl.GenBuffers(1, &positionBuf)
	gl.BindBuffer(gl.ARRAY_BUFFER, positionBuf)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadPositions)*4, gl.Ptr(quadPositions), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	var texCoordBuf uint32
	gl.GenBuffers(1, &texCoordBuf)
	gl.BindBuffer(gl.ARRAY_BUFFER, texCoordBuf)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadTexCoords)*4, gl.Ptr(quadTexCoords), gl.STATIC_DRAW)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)

	var indexBuf uint32
	gl.GenBuffers(1, &indexBuf)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, indexBuf)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*2, gl.Ptr(quadIndices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return vao
}
