package stereo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMonoForcesLeft(t *testing.T) {
	for _, m := range Modes() {
		effective, needLeft, needRight := Resolve(m, false, 1)
		assert.Equal(t, Left, effective, "requested %s", m)
		assert.True(t, needLeft, "requested %s", m)
		assert.False(t, needRight, "requested %s", m)
	}
}

func TestResolveStereo(t *testing.T) {
	for _, m := range Modes() {
		effective, needLeft, needRight := Resolve(m, true, 1)
		assert.Equal(t, m, effective, "requested %s", m)
		switch m {
		case Left:
			assert.True(t, needLeft)
			assert.False(t, needRight)
		case Right:
			assert.False(t, needLeft)
			assert.True(t, needRight)
		case Alternating:
			// last shown was the right view, so only the left is due
			assert.True(t, needLeft)
			assert.False(t, needRight)
		default:
			assert.True(t, needLeft, "requested %s", m)
			assert.True(t, needRight, "requested %s", m)
		}
	}
}

func TestResolveAlternatingParity(t *testing.T) {
	_, needLeft, needRight := Resolve(Alternating, true, 0)
	assert.False(t, needLeft)
	assert.True(t, needRight)

	_, needLeft, needRight = Resolve(Alternating, true, 1)
	assert.True(t, needLeft)
	assert.False(t, needRight)
}

func TestParseModeRoundTrip(t *testing.T) {
	for _, m := range Modes() {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMode("pepper-ghost")
	assert.Error(t, err)
}

func TestModeOrdinalsMatchShader(t *testing.T) {
	// the shader's stereoMode uniform relies on these exact ordinals
	assert.Equal(t, 0, int(Left))
	assert.Equal(t, 1, int(Right))
	assert.Equal(t, 2, int(OpenGLStereo))
	assert.Equal(t, 3, int(Alternating))
	assert.Equal(t, 4, int(RedCyanDubois))
	assert.Equal(t, 17, int(RedBlueMonochrome))
}
