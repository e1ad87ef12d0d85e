package media

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type probeStream struct {
	CodecType          string `json:"codec_type"`
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	DisplayAspectRatio string `json:"display_aspect_ratio"`
	AvgFrameRate       string `json:"avg_frame_rate"`
}

type probeResult struct {
	Streams []probeStream `json:"streams"`
}

// probeVideo runs ffprobe on the input and returns the first video
// stream's dimensions, display aspect ratio (0 if unknown) and frame
// rate.
func probeVideo(path string) (width, height int, aspectRatio float32, frameRate float64, err error) {
	data, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to probe %s: %w", path, err)
	}

	var result probeResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to parse probe output: %w", err)
	}

	for _, stream := range result.Streams {
		if stream.CodecType != "video" {
			continue
		}
		if stream.Width <= 0 || stream.Height <= 0 {
			return 0, 0, 0, 0, fmt.Errorf("video stream has degenerate dimensions %dx%d", stream.Width, stream.Height)
		}
		aspectRatio = parseRatio(stream.DisplayAspectRatio)
		frameRate = parseRate(stream.AvgFrameRate)
		return stream.Width, stream.Height, aspectRatio, frameRate, nil
	}
	return 0, 0, 0, 0, fmt.Errorf("no video stream in %s", path)
}

// parseRatio parses an ffprobe "num:den" aspect ratio. Returns 0 for
// missing or degenerate values.
func parseRatio(s string) float32 {
	num, den, ok := splitPair(s, ":")
	if !ok || den == 0 {
		return 0
	}
	return float32(num / den)
}

// parseRate parses an ffprobe "num/den" rational frame rate. Returns 0
// for missing or degenerate values.
func parseRate(s string) float64 {
	num, den, ok := splitPair(s, "/")
	if !ok || den == 0 {
		return 0
	}
	return num / den
}

func splitPair(s, sep string) (num, den float64, ok bool) {
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return 0, 0, false
	}
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, false
	}
	den, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return num, den, true
}
