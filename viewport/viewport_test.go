package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitScaleNarrowScreen(t *testing.T) {
	// screen 16:9, content 2:1 - screen is narrower, shrink height
	s := State{Width: 1920, Height: 1080}
	relWidth, relHeight := s.FitScale(2.0)
	assert.Equal(t, float32(1.0), relWidth)
	assert.InDelta(t, 0.889, relHeight, 0.001)
}

func TestFitScaleWideScreen(t *testing.T) {
	// screen 21:9, content 16:9 - screen is wider, shrink width
	s := State{Width: 2560, Height: 1080}
	relWidth, relHeight := s.FitScale(16.0 / 9.0)
	assert.InDelta(t, (16.0/9.0)/(2560.0/1080.0), relWidth, 0.001)
	assert.Equal(t, float32(1.0), relHeight)
}

func TestFitScaleExactMatch(t *testing.T) {
	s := State{Width: 1280, Height: 720}
	relWidth, relHeight := s.FitScale(16.0 / 9.0)
	assert.Equal(t, float32(1.0), relWidth)
	assert.Equal(t, float32(1.0), relHeight)
}

func TestResizeAndDegenerate(t *testing.T) {
	var s State
	assert.True(t, s.Degenerate())
	s.Resize(800, 600)
	assert.False(t, s.Degenerate())
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 600, s.Height)
	s.Resize(800, 0)
	assert.True(t, s.Degenerate())
}
