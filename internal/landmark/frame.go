package landmark

// Landmark is a single tracked anatomical point. X and Y are normalized
// to the frame bounds ([0,1] typically); Z is a relative depth, not an
// absolute distance. Visibility is the detector's per-point confidence
// in [0,1]; detectors that do not score individual points leave it 0.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility,omitempty"`
}

// CapturedFrame is one capture tick from the landmark detector. Hand and
// Pose are nil on ticks where the detector lost the respective subject.
// Frames are created once per tick and treated as immutable afterwards.
type CapturedFrame struct {
	TimestampMs      int64      `json:"timestamp_ms"`
	Hand             *HandFrame `json:"hand,omitempty"`
	Pose             *PoseFrame `json:"pose,omitempty"`
	DetectionQuality float64    `json:"detection_quality"`
}

// Repetition is one recorded motion cycle: captured frames in
// capture-timestamp order plus the cycle duration.
type Repetition struct {
	Frames     []CapturedFrame `json:"frames"`
	DurationMs int64           `json:"duration_ms"`
}
