// Package options carries the player's command line configuration.
package options

// PlayerOptions holds pointers to the flag-backed settings so the
// command line package can bind them directly.
type PlayerOptions struct {
	Input      *string
	Mode       *string // stereo presentation mode name
	Layout     *string // input frame layout: mono, left-right, top-bottom
	ThreeSixty *bool   // treat the input as 360° equirectangular
	Width      *int    // window width, 0 for the default size hint
	Height     *int    // window height, 0 for the default size hint
	FFMPEGPath *string // explicit ffmpeg executable, empty for $PATH
}
