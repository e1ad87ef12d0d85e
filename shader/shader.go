// Package shader holds the GLSL sources for the display composite pass
// and the view render passes. Sources are written without a #version
// line; Prelude supplies the profile-appropriate preamble at compile
// time.
package shader

// Prelude returns the version/precision preamble to prepend to a
// shader source before compilation.
func Prelude(gles bool, fragment bool) string {
	if gles {
		if fragment {
			return "#version 320 es\nprecision mediump float;\n"
		}
		return "#version 320 es\n"
	}
	return "#version 410 core\n"
}

// ──────────────────────────── display pass ────────────────────────────

// DisplayVertexSource is the pass-through vertex stage for the
// full-screen display quad.
const DisplayVertexSource = `
layout(location = 0) in vec4 position;
layout(location = 1) in vec2 texcoord;

out vec2 vtexcoord;

void main(void)
{
    vtexcoord = texcoord;
    gl_Position = position;
}
`

// DisplayFragmentSource composites the two view textures according to
// the stereoMode uniform. The mode values match stereo.Mode ordinals.
// relativeWidth/relativeHeight remap the quad texcoords for aspect-fit;
// coordinates pushed outside [0,1] land in the textures' border color,
// producing the letterbox/pillarbox bars.
const DisplayFragmentSource = `
uniform sampler2D view0;
uniform sampler2D view1;
uniform int stereoMode;
uniform float relativeWidth;
uniform float relativeHeight;

const int mode_left = 0;
const int mode_right = 1;
const int mode_opengl_stereo = 2;
const int mode_alternating = 3;
const int mode_red_cyan_dubois = 4;
const int mode_red_cyan_fullcolor = 5;
const int mode_red_cyan_halfcolor = 6;
const int mode_red_cyan_monochrome = 7;
const int mode_green_magenta_dubois = 8;
const int mode_green_magenta_fullcolor = 9;
const int mode_green_magenta_halfcolor = 10;
const int mode_green_magenta_monochrome = 11;
const int mode_amber_blue_dubois = 12;
const int mode_amber_blue_fullcolor = 13;
const int mode_amber_blue_halfcolor = 14;
const int mode_amber_blue_monochrome = 15;
const int mode_red_green_monochrome = 16;
const int mode_red_blue_monochrome = 17;

in vec2 vtexcoord;

layout(location = 0) out vec4 fcolor;

float luminance(vec3 c)
{
    return dot(c, vec3(0.299, 0.587, 0.114));
}

void main(void)
{
    vec2 texcoord = vec2(
            (vtexcoord.x - 0.5) / relativeWidth + 0.5,
            (vtexcoord.y - 0.5) / relativeHeight + 0.5);

    vec3 l = texture(view0, texcoord).rgb;
    vec3 r = texture(view1, texcoord).rgb;
    vec3 c = l;

    if (stereoMode == mode_right) {
        c = r;
    } else if (stereoMode == mode_red_cyan_dubois) {
        // Dubois least-squares anaglyph matrices, given as columns
        mat3 ml = mat3(
                vec3(0.437, -0.062, -0.048),
                vec3(0.449, -0.062, -0.050),
                vec3(0.164, -0.024, -0.017));
        mat3 mr = mat3(
                vec3(-0.011, 0.377, -0.026),
                vec3(-0.032, 0.761, -0.093),
                vec3(-0.007, 0.009, 1.234));
        c = clamp(ml * l + mr * r, 0.0, 1.0);
    } else if (stereoMode == mode_red_cyan_fullcolor) {
        c = vec3(l.r, r.g, r.b);
    } else if (stereoMode == mode_red_cyan_halfcolor) {
        c = vec3(luminance(l), r.g, r.b);
    } else if (stereoMode == mode_red_cyan_monochrome) {
        c = vec3(luminance(l), luminance(r), luminance(r));
    } else if (stereoMode == mode_green_magenta_dubois) {
        mat3 ml = mat3(
                vec3(-0.062, 0.284, -0.015),
                vec3(-0.158, 0.668, -0.027),
                vec3(-0.039, 0.143, 0.021));
        mat3 mr = mat3(
                vec3(0.529, -0.016, 0.009),
                vec3(0.705, -0.015, 0.075),
                vec3(0.024, -0.065, 0.937));
        c = clamp(ml * l + mr * r, 0.0, 1.0);
    } else if (stereoMode == mode_green_magenta_fullcolor) {
        c = vec3(r.r, l.g, r.b);
    } else if (stereoMode == mode_green_magenta_halfcolor) {
        c = vec3(r.r, luminance(l), r.b);
    } else if (stereoMode == mode_green_magenta_monochrome) {
        c = vec3(luminance(r), luminance(l), luminance(r));
    } else if (stereoMode == mode_amber_blue_dubois) {
        mat3 ml = mat3(
                vec3(1.062, -0.026, -0.038),
                vec3(-0.205, 0.908, -0.173),
                vec3(0.299, 0.068, 0.022));
        mat3 mr = mat3(
                vec3(-0.016, 0.006, 0.094),
                vec3(-0.123, 0.062, 0.185),
                vec3(-0.017, -0.017, 0.911));
        c = clamp(ml * l + mr * r, 0.0, 1.0);
    } else if (stereoMode == mode_amber_blue_fullcolor) {
        c = vec3(l.r, l.g, r.b);
    } else if (stereoMode == mode_amber_blue_halfcolor) {
        c = vec3(luminance(l), luminance(l), r.b);
    } else if (stereoMode == mode_amber_blue_monochrome) {
        c = vec3(luminance(l), luminance(l), luminance(r));
    } else if (stereoMode == mode_red_green_monochrome) {
        c = vec3(luminance(l), luminance(r), 0.0);
    } else if (stereoMode == mode_red_blue_monochrome) {
        c = vec3(luminance(l), 0.0, luminance(r));
    }

    fcolor = vec4(c, 1.0);
}
`

// ───────────────────────────── view passes ─────────────────────────────

// ViewBlitFragmentSource copies one eye's region of the decoded frame
// into a view texture. regionOffset/regionScale select the
// sub-rectangle of the frame holding that eye.
const ViewBlitFragmentSource = `
uniform sampler2D frame;
uniform vec2 regionOffset;
uniform vec2 regionScale;

in vec2 vtexcoord;

layout(location = 0) out vec4 fcolor;

void main(void)
{
    fcolor = texture(frame, regionOffset + vtexcoord * regionScale);
}
`

// ViewEquirectFragmentSource renders one eye of an equirectangular 360°
// frame under the current camera orientation. Each fragment is turned
// back into a world-space ray via the inverse view-projection matrix
// and looked up in spherical coordinates.
const ViewEquirectFragmentSource = `
uniform sampler2D frame;
uniform mat4 inverseViewProjection;
uniform vec2 regionOffset;
uniform vec2 regionScale;

in vec2 vtexcoord;

layout(location = 0) out vec4 fcolor;

const float pi = 3.14159265358979;

void main(void)
{
    vec2 ndc = vtexcoord * 2.0 - 1.0;
    vec4 near = inverseViewProjection * vec4(ndc, -1.0, 1.0);
    vec4 far = inverseViewProjection * vec4(ndc, 1.0, 1.0);
    vec3 dir = normalize(far.xyz / far.w - near.xyz / near.w);

    float longitude = atan(dir.x, -dir.z);
    float latitude = asin(clamp(dir.y, -1.0, 1.0));
    vec2 uv = vec2(longitude / (2.0 * pi) + 0.5, latitude / pi + 0.5);

    fcolor = texture(frame, regionOffset + uv * regionScale);
}
`
