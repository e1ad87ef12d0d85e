package window

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateWindowErrorKeepsCause(t *testing.T) {
	cause := errors.New("GLX: no matching framebuffer config")

	err := createWindowError(false, cause)
	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.Error(), "left/right buffers")

	// with the stereo hint the cause still leads; the possible missing
	// quad-buffer support is mentioned, not asserted
	err = createWindowError(true, cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), cause.Error())
	assert.Contains(t, err.Error(), "may be unsupported")
}
