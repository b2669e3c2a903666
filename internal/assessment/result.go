package assessment

import (
	"encoding/json"

	"github.com/sahanad/mudra/internal/landmark"
)

// Measurement is an angle in degrees that may be unavailable. An
// invalid measurement marshals to JSON null so that "not measurable" is
// never confused with a measured 0°.
type Measurement struct {
	Value float64
	Valid bool
}

// Deg returns a valid measurement.
func Deg(v float64) Measurement {
	return Measurement{Value: v, Valid: true}
}

// MarshalJSON encodes the value, or null when unavailable.
func (m Measurement) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON decodes a JSON number or null.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Measurement{}
		return nil
	}
	if err := json.Unmarshal(data, &m.Value); err != nil {
		return err
	}
	m.Valid = true
	return nil
}

// FrameRef locates one frame within a session's repetitions, for replay
// tooling.
type FrameRef struct {
	Repetition int `json:"repetition"`
	Frame      int `json:"frame"`
}

// MotionExtent is the extreme values a metric reached over a session,
// with the frames they occurred at.
type MotionExtent struct {
	Max   Measurement `json:"max"`
	MaxAt *FrameRef   `json:"max_at,omitempty"`
	Min   Measurement `json:"min"`
	MinAt *FrameRef   `json:"min_at,omitempty"`
}

// FingerROM is one finger's session range of motion. The joint angles
// are the session maxima per joint; Total is the maximum total active
// motion, with the frames where the session extremes occurred.
type FingerROM struct {
	MCP           Measurement `json:"mcp_angle"`
	PIP           Measurement `json:"pip_angle"`
	DIP           Measurement `json:"dip_angle"`
	Total         Measurement `json:"total_active_rom"`
	MaxAt         *FrameRef   `json:"max_at,omitempty"`
	MinAt         *FrameRef   `json:"min_at,omitempty"`
	LowConfidence bool        `json:"low_confidence,omitempty"`
}

// TAMResult holds per-finger total active motion for one session.
type TAMResult struct {
	Fingers map[landmark.Finger]FingerROM `json:"fingers"`
}

// KapandjiResult is the session thumb-opposition score. ReachedLevels
// marks the targets whose proximity threshold was met at some frame;
// MaxScore is the highest of them, 0 when none was reached.
type KapandjiResult struct {
	MaxScore      int       `json:"max_score"`
	ReachedLevels [10]bool  `json:"reached_levels"`
	BestFrame     *FrameRef `json:"best_frame,omitempty"`
}

// WristFEResult is the session wrist flexion/extension range. Both
// maxima are ≥ 0 and independent: they need not come from the same
// frame. Confidence is the mean elbow/wrist visibility over the frames
// that contributed.
type WristFEResult struct {
	Hand         Handedness   `json:"hand"`
	MaxFlexion   Measurement  `json:"max_flexion"`
	MaxExtension Measurement  `json:"max_extension"`
	Flexion      MotionExtent `json:"flexion"`
	Extension    MotionExtent `json:"extension"`
	Confidence   float64      `json:"confidence"`
}

// DeviationResult is the session radial/ulnar deviation range, measured
// against the neutral orientation captured at assessment start.
type DeviationResult struct {
	Hand      Handedness   `json:"hand"`
	MaxRadial Measurement  `json:"max_radial"`
	MaxUlnar  Measurement  `json:"max_ulnar"`
	Radial    MotionExtent `json:"radial"`
	Ulnar     MotionExtent `json:"ulnar"`
}

// ConsistencyResult scores how reproducibly the motion was repeated.
// Each repetition's value trace is time-warp aligned against the
// reference repetition and scored in (0,1], 1 being an exact retrace.
// RepetitionScores is indexed by repetition; the reference scores 1 and
// repetitions too short to compare score 0. Score is the mean over the
// compared repetitions.
type ConsistencyResult struct {
	Score            float64   `json:"score"`
	Reference        int       `json:"reference"`
	RepetitionScores []float64 `json:"repetition_scores"`
}

// Result is the evaluated outcome of one assessment. Exactly one of the
// per-type fields is set, matching Type. Consistency is present for any
// type once at least two repetitions produced usable traces.
type Result struct {
	Type        Type               `json:"type"`
	Hand        Handedness         `json:"hand"`
	Repetitions int                `json:"repetitions"`
	DurationMs  int64              `json:"duration_ms"`
	TAM         *TAMResult         `json:"tam,omitempty"`
	Kapandji    *KapandjiResult    `json:"kapandji,omitempty"`
	WristFE     *WristFEResult     `json:"wrist_flexion_extension,omitempty"`
	Deviation   *DeviationResult   `json:"radial_ulnar_deviation,omitempty"`
	Consistency *ConsistencyResult `json:"consistency,omitempty"`
}
