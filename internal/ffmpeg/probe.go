package ffmpeg

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// VideoInfo contains metadata about a video file
type VideoInfo struct {
	Duration   float64 `json:"duration"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
	Codec      string  `json:"codec"`
	Resolution string  `json:"resolution"`
}

// Probe retrieves metadata about a video file using ffprobe.
func (p *Processor) Probe(inputPath string) (*VideoInfo, error) {
	probe, err := p.probeFn(inputPath)
	if err != nil {
		return nil, &ProcessingError{Op: "probe", Path: inputPath, Err: err}
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return nil, &ProcessingError{Op: "probe", Path: inputPath, Err: err}
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, processingErrorf("probe", inputPath, "", "no streams found in video")
	}

	var videoStream map[string]interface{}
	for _, stream := range streams {
		s, ok := stream.(map[string]interface{})
		if !ok {
			continue
		}
		if codecType, _ := s["codec_type"].(string); codecType == "video" {
			videoStream = s
			break
		}
	}

	if videoStream == nil {
		return nil, processingErrorf("probe", inputPath, "", "no video stream found")
	}

	var duration float64

	// First try video stream duration
	if durationStr, ok := videoStream["duration"].(string); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
			duration = d
		}
	}

	// If stream duration is not available, try format duration
	if duration == 0 {
		if format, ok := data["format"].(map[string]interface{}); ok {
			if durationStr, ok := format["duration"].(string); ok {
				if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
					duration = d
				}
			}
		}
	}

	fps := parseFrameRate(videoStream)

	// If still no duration found, try calculating from frames and frame rate
	if duration == 0 {
		if nbFrames, ok := videoStream["nb_frames"].(string); ok {
			if frames, err := strconv.ParseFloat(nbFrames, 64); err == nil && fps > 0 {
				duration = frames / fps
			}
		}
	}

	if duration == 0 {
		return nil, processingErrorf("probe", inputPath, "", "could not determine video duration")
	}

	width, _ := videoStream["width"].(float64)
	height, _ := videoStream["height"].(float64)
	codec, _ := videoStream["codec_name"].(string)

	return &VideoInfo{
		Duration:   duration,
		Width:      int(width),
		Height:     int(height),
		FPS:        fps,
		Codec:      codec,
		Resolution: fmt.Sprintf("%dx%d", int(width), int(height)),
	}, nil
}

// parseFrameRate extracts the frame rate from ffprobe's rational r_frame_rate
// form ("30/1", "30000/1001"). A missing denominator defaults to 1.
func parseFrameRate(videoStream map[string]interface{}) float64 {
	rFrameRate, ok := videoStream["r_frame_rate"].(string)
	if !ok || rFrameRate == "" {
		return 0
	}

	parts := strings.Split(rFrameRate, "/")
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}

	den := 1.0
	if len(parts) == 2 {
		d, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || d == 0 {
			return 0
		}
		den = d
	}

	return num / den
}
