package media

import (
	"fmt"
	"io"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/stereolab/stereoview/shader"
)

// FileSource decodes a video file with FFmpeg and serves its frames to
// the compositor. Decoding runs on a background goroutine feeding raw
// RGBA frames through a pipe; all GL work happens on the rendering
// thread in RenderView.
type FileSource struct {
	path       string
	layout     Layout
	threeSixty bool
	ffmpegPath string

	frameWidth  int
	frameHeight int
	aspectRatio float32
	frameRate   float64

	mu      sync.Mutex
	cond    *sync.Cond
	pending []byte
	started bool
	paused  bool
	closed  bool
	pipe    *io.PipeReader

	frameReady chan struct{}
	done       chan error

	// GL state, touched only on the rendering thread
	frameTex        uint32
	frameTexWidth   int
	frameTexHeight  int
	fbo             uint32
	quadVAO         uint32
	blitProgram     uint32
	equirectProgram uint32
	haveFrame       bool

	blitFrameLoc  int32
	blitOffsetLoc int32
	blitScaleLoc  int32
	eqFrameLoc    int32
	eqMatrixLoc   int32
	eqOffsetLoc   int32
	eqScaleLoc    int32
}

// Open probes the input file and prepares a source for it. Decoding
// does not start until Start is called.
func Open(path string, layout Layout, threeSixty bool, ffmpegPath string) (*FileSource, error) {
	width, height, aspectRatio, frameRate, err := probeVideo(path)
	if err != nil {
		return nil, err
	}
	log.Printf("media: %s: %dx%d, %s layout, %.3f fps", path, width, height, layout, frameRate)

	s := &FileSource{
		path:        path,
		layout:      layout,
		threeSixty:  threeSixty,
		ffmpegPath:  ffmpegPath,
		frameWidth:  width,
		frameHeight: height,
		aspectRatio: aspectRatio,
		frameRate:   frameRate,
		frameReady:  make(chan struct{}, 1),
		done:        make(chan error, 1),
	}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

// FrameRate returns the input's native frame rate, 0 if unknown.
func (s *FileSource) FrameRate() float64 {
	return s.frameRate
}

// FrameReady delivers a notification whenever a newly decoded frame is
// waiting. The hosting event loop treats it as a redraw request.
func (s *FileSource) FrameReady() <-chan struct{} {
	return s.frameReady
}

// Done delivers the decode pipeline's exit status.
func (s *FileSource) Done() <-chan error {
	return s.done
}

// TogglePause suspends or resumes frame delivery. The decoder blocks
// on pipe backpressure while paused.
func (s *FileSource) TogglePause() {
	s.mu.Lock()
	s.paused = !s.paused
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Close stops the decode goroutine, cancelling the pipe so a blocked
// read returns and the FFmpeg child exits on its broken output. GL
// resources are released separately by DestroyGL on the rendering
// thread.
func (s *FileSource) Close() {
	s.mu.Lock()
	s.closed = true
	pipe := s.pipe
	s.mu.Unlock()
	s.cond.Broadcast()
	if pipe != nil {
		pipe.CloseWithError(io.ErrClosedPipe)
	}
}

// Start launches the FFmpeg decode pipeline. Frames arrive as raw RGBA
// at the file's native rate.
func (s *FileSource) Start() {
	pipeReader, pipeWriter := io.Pipe()
	s.mu.Lock()
	s.pipe = pipeReader
	s.mu.Unlock()

	// -re paces the decode at the input's frame rate
	cmd := ffmpeg.Input(s.path, ffmpeg.KwArgs{"re": ""}).
		Output("pipe:", ffmpeg.KwArgs{"format": "rawvideo", "pix_fmt": "rgba"}).
		WithOutput(pipeWriter).ErrorToStdOut()
	if s.ffmpegPath != "" {
		cmd = cmd.SetFfmpegPath(s.ffmpegPath)
	}

	go func() {
		err := cmd.Run()
		pipeWriter.CloseWithError(err)
	}()

	go s.readFrames(pipeReader)
}

func (s *FileSource) readFrames(r *io.PipeReader) {
	frameSize := s.frameWidth * s.frameHeight * 4
	for {
		s.mu.Lock()
		for s.paused && !s.closed {
			s.cond.Wait()
		}
		closed := s.closed
		s.mu.Unlock()
		if closed {
			r.Close()
			s.done <- nil
			return
		}

		buf := make([]byte, frameSize)
		if _, err := io.ReadFull(r, buf); err != nil {
			s.mu.Lock()
			closed = s.closed
			s.mu.Unlock()
			if err == io.EOF || closed {
				err = nil
			}
			s.done <- err
			return
		}

		s.mu.Lock()
		s.pending = buf
		s.started = true
		s.mu.Unlock()

		select {
		case s.frameReady <- struct{}{}:
		default:
		}
	}
}

// FrameGeometry implements Source. For 360° content the displayed
// aspect ratio is the drawable's own, since the view is rendered under
// the screen-shaped frustum and must not be letterboxed again.
func (s *FileSource) FrameGeometry(screenWidth, screenHeight int) (FrameGeometry, bool) {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return FrameGeometry{}, false
	}

	g := geometryFor(s.layout, s.frameWidth, s.frameHeight, s.aspectRatio)
	g.ThreeSixty = s.threeSixty
	if s.threeSixty && screenHeight > 0 {
		g.DisplayAspectRatio = float32(screenWidth) / float32(screenHeight)
	}
	return g, true
}

// InitGL creates the frame texture, framebuffer, quad and view-pass
// programs. Must run on the rendering thread with a current context.
func (s *FileSource) InitGL(gles bool) error {
	gl.GenTextures(1, &s.frameTex)
	gl.BindTexture(gl.TEXTURE_2D, s.frameTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(s.frameWidth), int32(s.frameHeight), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	s.frameTexWidth = s.frameWidth
	s.frameTexHeight = s.frameHeight

	gl.GenFramebuffers(1, &s.fbo)

	s.quadVAO = newQuad()

	var err error
	s.blitProgram, err = shader.NewProgram(shader.DisplayVertexSource, shader.ViewBlitFragmentSource, gles)
	if err != nil {
		return fmt.Errorf("failed to create view blit program: %w", err)
	}
	s.blitFrameLoc = gl.GetUniformLocation(s.blitProgram, gl.Str("frame\x00"))
	s.blitOffsetLoc = gl.GetUniformLocation(s.blitProgram, gl.Str("regionOffset\x00"))
	s.blitScaleLoc = gl.GetUniformLocation(s.blitProgram, gl.Str("regionScale\x00"))

	s.equirectProgram, err = shader.NewProgram(shader.DisplayVertexSource, shader.ViewEquirectFragmentSource, gles)
	if err != nil {
		return fmt.Errorf("failed to create view equirect program: %w", err)
	}
	s.eqFrameLoc = gl.GetUniformLocation(s.equirectProgram, gl.Str("frame\x00"))
	s.eqMatrixLoc = gl.GetUniformLocation(s.equirectProgram, gl.Str("inverseViewProjection\x00"))
	s.eqOffsetLoc = gl.GetUniformLocation(s.equirectProgram, gl.Str("regionOffset\x00"))
	s.eqScaleLoc = gl.GetUniformLocation(s.equirectProgram, gl.Str("regionScale\x00"))

	return nil
}

// DestroyGL releases the source's GL resources.
func (s *FileSource) DestroyGL() {
	gl.DeleteProgram(s.blitProgram)
	gl.DeleteProgram(s.equirectProgram)
	gl.DeleteFramebuffers(1, &s.fbo)
	gl.DeleteTextures(1, &s.frameTex)
	gl.DeleteVertexArrays(1, &s.quadVAO)
}

// uploadPending moves the most recently decoded frame into the frame
// texture, if one is waiting.
func (s *FileSource) uploadPending() {
	s.mu.Lock()
	pixels := s.pending
	s.pending = nil
	s.mu.Unlock()
	if pixels == nil {
		return
	}

	gl.BindTexture(gl.TEXTURE_2D, s.frameTex)
	if s.frameTexWidth != s.frameWidth || s.frameTexHeight != s.frameHeight {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(s.frameWidth), int32(s.frameHeight), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		s.frameTexWidth = s.frameWidth
		s.frameTexHeight = s.frameHeight
	}
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(s.frameWidth), int32(s.frameHeight), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	s.haveFrame = true
}

// RenderView implements Source. The requested view of the current
// frame is drawn into the target texture: a flat region blit normally,
// or an equirectangular projection under the given camera transform
// for 360° content.
func (s *FileSource) RenderView(projection, view mgl32.Mat4, viewIndex, width, height int, texture uint32) error {
	s.uploadPending()
	if !s.haveFrame {
		return fmt.Errorf("no decoded frame available")
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)
	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return fmt.Errorf("view framebuffer is not complete")
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Disable(gl.DEPTH_TEST)

	offsetX, offsetY, scaleX, scaleY := viewRegion(s.layout, viewIndex)

	if s.threeSixty {
		gl.UseProgram(s.equirectProgram)
		inverse := projection.Mul4(view).Inv()
		gl.UniformMatrix4fv(s.eqMatrixLoc, 1, false, &inverse[0])
		gl.Uniform1i(s.eqFrameLoc, 0)
		gl.Uniform2f(s.eqOffsetLoc, offsetX, offsetY)
		gl.Uniform2f(s.eqScaleLoc, scaleX, scaleY)
	} else {
		gl.UseProgram(s.blitProgram)
		gl.Uniform1i(s.blitFrameLoc, 0)
		gl.Uniform2f(s.blitOffsetLoc, offsetX, offsetY)
		gl.Uniform2f(s.blitScaleLoc, scaleX, scaleY)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.frameTex)
	gl.BindVertexArray(s.quadVAO)
	gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// newQuad builds the two-triangle full-screen quad shared by the view
// passes: positions and texcoords in separate buffers, indexed draw.
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
