package compositor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stereolab/stereoview/stereo"
)

func TestViewTexturesReallocateOnlyOnSizeChange(t *testing.T) {
	tex := &viewTextures{}
	tex.allocate = func(handle uint32, width, height int, gles bool) {}

	tex.ensure(0, 1920, 1080)
	tex.ensure(1, 1920, 1080)
	assert.Equal(t, 2, tex.allocs)

	// identical dimensions reuse the storage
	tex.ensure(0, 1920, 1080)
	tex.ensure(1, 1920, 1080)
	assert.Equal(t, 2, tex.allocs)

	// a size change reallocates that view only
	tex.ensure(0, 1280, 720)
	assert.Equal(t, 3, tex.allocs)
	assert.Equal(t, 1280, tex.widths[0])
	assert.Equal(t, 1920, tex.widths[1])
}

func TestResolveAlternating(t *testing.T) {
	assert.Equal(t, stereo.Right, resolveAlternating(stereo.Alternating, 0))
	assert.Equal(t, stereo.Left, resolveAlternating(stereo.Alternating, 1))
	assert.Equal(t, stereo.RedCyanDubois, resolveAlternating(stereo.RedCyanDubois, 0))
}

func TestAlternatingParityFlip(t *testing.T) {
	c := &Compositor{mode: stereo.Alternating, alternatingLastView: 1}

	c.updateAlternating(true)
	assert.Equal(t, 0, c.alternatingLastView)
	assert.True(t, c.TakeRedraw())

	c.updateAlternating(true)
	assert.Equal(t, 1, c.alternatingLastView)
	assert.True(t, c.TakeRedraw())
}

func TestAlternatingParityFrozenForMono(t *testing.T) {
	c := &Compositor{mode: stereo.Alternating, alternatingLastView: 1}
	c.updateAlternating(false)
	assert.Equal(t, 1, c.alternatingLastView)
	assert.False(t, c.TakeRedraw())
}

func TestParityUntouchedInOtherModes(t *testing.T) {
	c := &Compositor{mode: stereo.RedCyanDubois, alternatingLastView: 1}
	c.updateAlternating(true)
	assert.Equal(t, 1, c.alternatingLastView)
	assert.False(t, c.TakeRedraw())
}

func TestTakeRedrawConsumes(t *testing.T) {
	c := &Compositor{}
	assert.False(t, c.TakeRedraw())
	c.ScheduleRedraw()
	assert.True(t, c.TakeRedraw())
	assert.False(t, c.TakeRedraw())
}

func TestResizeAndRefreshScheduleRedraw(t *testing.T) {
	c := &Compositor{}

	// resize must repaint even with no new frame arriving, e.g. while
	// playback is paused or after it finished
	c.Resize(1280, 720)
	assert.True(t, c.TakeRedraw())

	c.Refresh()
	assert.True(t, c.TakeRedraw())
}

func TestMoveSchedulesRedrawOnlyDuringGesture(t *testing.T) {
	c := &Compositor{}
	c.Resize(1000, 1000)
	c.TakeRedraw()

	c.Move(100, 100)
	assert.False(t, c.TakeRedraw())

	c.Press(0, 0)
	c.Move(100, 100)
	assert.True(t, c.TakeRedraw())
	c.Release()
}

func TestMediaChangedResetsSessionState(t *testing.T) {
	c := &Compositor{mode: stereo.Alternating, alternatingLastView: 1}
	c.Resize(1000, 1000)
	c.updateAlternating(true)
	c.Press(0, 0)
	c.Move(250, 0)

	c.MediaChanged()
	assert.Equal(t, 1, c.alternatingLastView)
	horizontal, vertical := c.orientation.Angles()
	assert.Zero(t, horizontal)
	assert.Zero(t, vertical)
	assert.False(t, c.orientation.Active())
}
