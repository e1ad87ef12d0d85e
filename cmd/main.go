package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/stereolab/stereoview/compositor"
	"github.com/stereolab/stereoview/media"
	"github.com/stereolab/stereoview/options"
	"github.com/stereolab/stereoview/stereo"
	"github.com/stereolab/stereoview/window"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.PlayerOptions{
		Input:      flag.String("input", "", "video file to play"),
		Mode:       flag.String("mode", "red-cyan-dubois", "stereo presentation mode"),
		Layout:     flag.String("layout", "mono", "input frame layout (mono, left-right, top-bottom)"),
		ThreeSixty: flag.Bool("360", false, "treat the input as 360° equirectangular video"),
		Width:      flag.Int("width", 0, "window width (0 for default)"),
		Height:     flag.Int("height", 0, "window height (0 for default)"),
		FFMPEGPath: flag.String("ffmpeg", "", "path to ffmpeg executable"),
	}
	var help = flag.Bool("help", false, "show help message")
	flag.Parse()

	if *help || *opts.Input == "" {
		fmt.Println("Stereoscopic video player")
		flag.PrintDefaults()
		return
	}

	mode, err := stereo.ParseMode(*opts.Mode)
	if err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}
	layout, err := media.ParseLayout(*opts.Layout)
	if err != nil {
		log.Fatalf("Invalid layout: %v", err)
	}

	src, err := media.Open(*opts.Input, layout, *opts.ThreeSixty, *opts.FFMPEGPath)
	if err != nil {
		log.Fatalf("Failed to open media: %v", err)
	}

	if err := window.Init(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer window.Terminate()

	width, height := *opts.Width, *opts.Height
	if width <= 0 || height <= 0 {
		width, height = window.SizeHint()
	}

	ctx, err := window.New(width, height, mode == stereo.OpenGLStereo)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer ctx.Destroy()

	comp, err := compositor.New(src, compositor.Config{
		Mode:         mode,
		OpenGLStereo: ctx.IsStereo(),
		GLES:         ctx.IsGLES(),
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer comp.Destroy()

	if err := src.InitGL(ctx.IsGLES()); err != nil {
		log.Fatalf("%v", err)
	}
	defer src.DestroyGL()
	defer src.Close()

	ctx.SetHandler(comp)
	ctx.SetKeyFunc(func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		if key == glfw.KeySpace {
			src.TogglePause()
		}
	})

	src.Start()
	log.Printf("Playing %s in %s mode", *opts.Input, mode)

	frameReady := src.FrameReady()
	done := src.Done()
	for !ctx.ShouldClose() {
		ctx.WaitEvents(0.01)

		select {
		case <-frameReady:
			comp.ScheduleRedraw()
		case err := <-done:
			if err != nil {
				log.Printf("Playback ended: %v", err)
			} else {
				log.Printf("Playback finished")
			}
			frameReady = nil
			done = nil
		default:
		}

		if comp.TakeRedraw() {
			comp.RenderFrame()
			ctx.SwapBuffers()
		}
	}
}
