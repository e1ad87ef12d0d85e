// Package window owns the GLFW window and context and translates its
// events into the toolkit-neutral Handler callbacks consumed by the
// compositor.
package window

import (
	"fmt"
	"runtime"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
)

// Handler receives the pointer, resize and damage events the
// compositor needs.
type Handler interface {
	Press(x, y float64)
	Move(x, y float64)
	Release()
	Resize(width, height int)
	Refresh()
}

// KeyFunc receives key events verbatim. Player controls are handled by
// the hosting application, not interpreted here.
type KeyFunc func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)

// Context wraps the GLFW window hosting the compositor.
type Context struct {
	window  *glfw.Window
	handler Handler
	keyFunc KeyFunc
	stereo  bool
}

// Init initializes GLFW. Must be called from the main thread.
func Init() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}
	return nil
}

// Terminate shuts GLFW down. Must be called from the main thread.
func Terminate() {
	glfw.Terminate()
}

// New creates the window and makes its GL context current. When stereo
// is requested the window is created with dual left/right hardware
// buffers; refusal by the system is a fatal capability error since
// substituting a different output mode would not honor the requested
// display semantics.
func New(width, height int, stereo bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if stereo {
		glfw.WindowHint(glfw.Stereo, glfw.True)
	}

	win, err := glfw.CreateWindow(width, height, "stereoview", nil, nil)
	if err != nil {
		return nil, createWindowError(stereo, err)
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	c := &Context{window: win, stereo: stereo}
	win.SetMouseButtonCallback(c.mouseButtonCallback)
	win.SetCursorPosCallback(c.cursorPosCallback)
	win.SetFramebufferSizeCallback(c.framebufferSizeCallback)
	win.SetRefreshCallback(c.refreshCallback)
	win.SetKeyCallback(c.keyCallback)

	return c, nil
}

// createWindowError wraps a window-creation failure. With the stereo
// hint set the cause may be missing quad-buffer support, but creation
// can fail for unrelated reasons too, so the underlying error leads
// and the hint is only a suggestion.
func createWindowError(stereo bool, err error) error {
	if stereo {
		return fmt.Errorf("failed to create window: %w (dual left/right buffers may be unsupported on this system)", err)
	}
	return fmt.Errorf("failed to create window: %w", err)
}

// SetHandler wires the pointer/resize event consumer and primes it
// with the current framebuffer size.
func (c *Context) SetHandler(h Handler) {
	c.handler = h
	width, height := c.window.GetFramebufferSize()
	h.Resize(width, height)
}

// SetKeyFunc wires the key event consumer.
func (c *Context) SetKeyFunc(f KeyFunc) {
	c.keyFunc = f
}

// IsStereo reports whether the window has dual hardware buffers.
func (c *Context) IsStereo() bool {
	return c.stereo
}

// IsGLES reports whether the context is an OpenGL ES profile. GLFW
// desktop windows are always desktop GL here.
func (c *Context) IsGLES() bool {
	return false
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SwapBuffers() {
	c.window.SwapBuffers()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// WaitEvents blocks until an event arrives or the timeout (in seconds)
// expires, then processes pending events.
func (c *Context) WaitEvents(timeout float64) {
	glfw.WaitEventsTimeout(timeout)
}

func (c *Context) Destroy() {
	c.window.Destroy()
}

// cursorToPixels maps window coordinates to framebuffer pixels; on
// high-DPI displays the two differ by the content scale.
func (c *Context) cursorToPixels(x, y float64) (float64, float64) {
	fbWidth, fbHeight := c.window.GetFramebufferSize()
	winWidth, winHeight := c.window.GetSize()
	if winWidth > 0 && winHeight > 0 {
		x *= float64(fbWidth) / float64(winWidth)
		y *= float64(fbHeight) / float64(winHeight)
	}
	return x, y
}

func (c *Context) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if c.handler == nil || button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		x, y := c.cursorToPixels(w.GetCursorPos())
		c.handler.Press(x, y)
	case glfw.Release:
		c.handler.Release()
	}
}

func (c *Context) cursorPosCallback(w *glfw.Window, x, y float64) {
	if c.handler == nil {
		return
	}
	px, py := c.cursorToPixels(x, y)
	c.handler.Move(px, py)
}

func (c *Context) framebufferSizeCallback(w *glfw.Window, width, height int) {
	if c.handler == nil {
		return
	}
	c.handler.Resize(width, height)
}

func (c *Context) refreshCallback(w *glfw.Window) {
	if c.handler == nil {
		return
	}
	c.handler.Refresh()
}

func (c *Context) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
		return
	}
	if c.keyFunc != nil {
		c.keyFunc(key, scancode, action, mods)
	}
}
