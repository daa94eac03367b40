package timeline

// Segment is a user-approved time range of the source video representing one
// exercise. Produced by the timeline editor; consumed once per pipeline run.
type Segment struct {
	Start   float64        `json:"start"`
	End     float64        `json:"end"`
	Details SegmentDetails `json:"details"`
}

// SegmentDetails carries the exercise metadata the user tagged a segment with.
type SegmentDetails struct {
	Name         string   `json:"name"`
	MuscleGroups []string `json:"muscleGroups"`
	Equipment    []string `json:"equipment"`
	RemoveAudio  bool     `json:"removeAudio"`
}

// Empty reports whether the segment was never tagged. Untagged segments are
// skipped without producing output or an error. A details object whose only
// content is removeAudio=true counts as tagged (the clip gets a defaulted
// name); removeAudio=false alone is indistinguishable from no details after
// decoding, so it is treated as untagged.
func (d SegmentDetails) Empty() bool {
	return d.Name == "" && len(d.MuscleGroups) == 0 && len(d.Equipment) == 0 && !d.RemoveAudio
}

// SegmentResult describes one successfully produced clip. The caller owns the
// subsequent upload and deletion of the files it points at.
type SegmentResult struct {
	SegmentIndex  int      `json:"segment_index"`
	VideoPath     string   `json:"video_path"`
	ThumbnailPath string   `json:"thumbnail_path"`
	StartTime     float64  `json:"start_time"`
	EndTime       float64  `json:"end_time"`
	Duration      float64  `json:"duration"`
	ExerciseName  string   `json:"exercise_name"`
	MuscleGroups  []string `json:"muscle_groups"`
	Equipment     []string `json:"equipment"`
	RemoveAudio   bool     `json:"remove_audio"`
	FileSize      int64    `json:"file_size"`
}
