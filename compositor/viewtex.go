package compositor

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// not exposed by the 4.1 core profile headers
const textureMaxAnisotropy = 0x84FE

// allocFunc reallocates a view texture's storage. Replaceable so the
// cache's reuse logic can be tested without a GL context.
type allocFunc func(handle uint32, width, height int, gles bool)

// viewTextures owns the two view textures, one per eye. Storage is
// reallocated only when the source view size changes; content is
// always written by the frame source before it is sampled.
type viewTextures struct {
	gles     bool
	handles  [2]uint32
	widths   [2]int
	heights  [2]int
	allocate allocFunc
	allocs   int
}

func newViewTextures(gles bool) *viewTextures {
	t := &viewTextures{gles: gles, allocate: allocateStorage}
	gl.GenTextures(2, &t.handles[0])
	for i := 0; i < 2; i++ {
		gl.BindTexture(gl.TEXTURE_2D, t.handles[i])
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameterf(gl.TEXTURE_2D, textureMaxAnisotropy, 4.0)
	}
	return t
}

// ensure returns the texture handle for a view, reallocating storage
// first if the requested dimensions differ from what is stored.
func (t *viewTextures) ensure(view, width, height int) uint32 {
	if t.widths[view] != width || t.heights[view] != height {
		t.allocate(t.handles[view], width, height, t.gles)
		t.widths[view] = width
		t.heights[view] = height
		t.allocs++
	}
	return t.handles[view]
}

func (t *viewTextures) handle(view int) uint32 {
	return t.handles[view]
}

func (t *viewTextures) destroy() {
	gl.DeleteTextures(2, &t.handles[0])
}

// allocateStorage picks the texture format by GPU profile: a packed
// 10-bit format on GLES, 16 bits per channel on desktop GL.
func allocateStorage(handle uint32, width, height int, gles bool) {
	gl.BindTexture(gl.TEXTURE_2D, handle)
	if gles {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB10_A2, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_INT_2_10_10_10_REV, nil)
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_SHORT, nil)
	}
}
