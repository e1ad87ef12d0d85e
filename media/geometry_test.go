package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryForMono(t *testing.T) {
	g := geometryFor(LayoutMono, 1920, 1080, 0)
	assert.Equal(t, 1, g.ViewCount)
	assert.Equal(t, 1920, g.ViewWidth)
	assert.Equal(t, 1080, g.ViewHeight)
	assert.InDelta(t, 16.0/9.0, g.DisplayAspectRatio, 0.001)
}

func TestGeometryForMonoHonorsContainerAspect(t *testing.T) {
	// anamorphic content: container declares a wider display ratio
	// than the pixel dimensions
	g := geometryFor(LayoutMono, 1440, 1080, 16.0/9.0)
	assert.InDelta(t, 16.0/9.0, g.DisplayAspectRatio, 0.001)
}

func TestGeometryForLeftRight(t *testing.T) {
	// full side-by-side: doubled width, halved per-view aspect
	g := geometryFor(LayoutLeftRight, 3840, 1080, 0)
	assert.Equal(t, 2, g.ViewCount)
	assert.Equal(t, 1920, g.ViewWidth)
	assert.Equal(t, 1080, g.ViewHeight)
	assert.InDelta(t, 16.0/9.0, g.DisplayAspectRatio, 0.001)
}

func TestGeometryForTopBottom(t *testing.T) {
	g := geometryFor(LayoutTopBottom, 1920, 2160, 0)
	assert.Equal(t, 2, g.ViewCount)
	assert.Equal(t, 1920, g.ViewWidth)
	assert.Equal(t, 1080, g.ViewHeight)
	assert.InDelta(t, 16.0/9.0, g.DisplayAspectRatio, 0.001)
}

func TestViewRegions(t *testing.T) {
	// vertical scales are negative: decoded frames are top row first
	ox, oy, sx, sy := viewRegion(LayoutMono, 0)
	assert.Equal(t, []float32{0, 1, 1, -1}, []float32{ox, oy, sx, sy})

	ox, oy, sx, sy = viewRegion(LayoutLeftRight, 0)
	assert.Equal(t, []float32{0, 1, 0.5, -1}, []float32{ox, oy, sx, sy})
	ox, oy, sx, sy = viewRegion(LayoutLeftRight, 1)
	assert.Equal(t, []float32{0.5, 1, 0.5, -1}, []float32{ox, oy, sx, sy})

	ox, oy, sx, sy = viewRegion(LayoutTopBottom, 0)
	assert.Equal(t, []float32{0, 0.5, 1, -0.5}, []float32{ox, oy, sx, sy})
	ox, oy, sx, sy = viewRegion(LayoutTopBottom, 1)
	assert.Equal(t, []float32{0, 1, 1, -0.5}, []float32{ox, oy, sx, sy})
}

func TestParseLayoutRoundTrip(t *testing.T) {
	for _, l := range []Layout{LayoutMono, LayoutLeftRight, LayoutTopBottom} {
		parsed, err := ParseLayout(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, parsed)
	}
	_, err := ParseLayout("checkerboard")
	assert.Error(t, err)
}

func TestParseRatio(t *testing.T) {
	assert.InDelta(t, 16.0/9.0, parseRatio("16:9"), 0.001)
	assert.Zero(t, parseRatio(""))
	assert.Zero(t, parseRatio("16:0"))
	assert.Zero(t, parseRatio("wide"))
}

func TestParseRate(t *testing.T) {
	assert.InDelta(t, 29.97, parseRate("30000/1001"), 0.001)
	assert.InDelta(t, 25.0, parseRate("25/1"), 0.001)
	assert.Zero(t, parseRate("0/0"))
	assert.Zero(t, parseRate(""))
}
