package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleToFitLimitedByWidth(t *testing.T) {
	// 4:3 monitor area: the 16:9 box is width-limited
	w, h := scaleToFit(16, 9, 1440, 1080)
	assert.Equal(t, 1440, w)
	assert.Equal(t, 810, h)
}

func TestScaleToFitLimitedByHeight(t *testing.T) {
	// ultrawide area: the 16:9 box is height-limited
	w, h := scaleToFit(16, 9, 2520, 810)
	assert.Equal(t, 1440, w)
	assert.Equal(t, 810, h)
}

func TestScaleToFitDegenerate(t *testing.T) {
	w, h := scaleToFit(16, 9, 0, 1080)
	assert.Equal(t, 16, w)
	assert.Equal(t, 9, h)
}
