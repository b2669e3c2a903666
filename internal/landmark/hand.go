// Package landmark defines the skeletal landmark model consumed by the
// motion calculators: single tracked points, fixed-size hand and body-pose
// frames, capture ticks, and repetitions of a recorded motion.
package landmark

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist            = 0
	ThumbCMC         = 1
	ThumbMCP         = 2
	ThumbIP          = 3
	ThumbTip         = 4
	IndexMCP         = 5
	IndexPIP         = 6
	IndexDIP         = 7
	IndexTip         = 8
	MiddleMCP        = 9
	MiddlePIP        = 10
	MiddleDIP        = 11
	MiddleTip        = 12
	RingMCP          = 13
	RingPIP          = 14
	RingDIP          = 15
	RingTip          = 16
	PinkyMCP         = 17
	PinkyPIP         = 18
	PinkyDIP         = 19
	PinkyTip         = 20
	NumHandLandmarks = 21
)

// HandFrame represents one detector observation of a single hand:
// exactly 21 landmarks in the fixed index order above.
type HandFrame struct {
	Points [NumHandLandmarks]Landmark `json:"points"`
}

// Finger identifies one of the four fingers measured for range of motion.
// The thumb is scored separately by the opposition calculator.
type Finger string

const (
	FingerIndex  Finger = "index"
	FingerMiddle Finger = "middle"
	FingerRing   Finger = "ring"
	FingerPinky  Finger = "pinky"
)

// Fingers lists the measured fingers in radial-to-ulnar order.
var Fingers = [4]Finger{FingerIndex, FingerMiddle, FingerRing, FingerPinky}

// Chain returns the finger's landmark indices from the knuckle to the tip.
func (f Finger) Chain() (mcp, pip, dip, tip int) {
	switch f {
	case FingerIndex:
		return IndexMCP, IndexPIP, IndexDIP, IndexTip
	case FingerMiddle:
		return MiddleMCP, MiddlePIP, MiddleDIP, MiddleTip
	case FingerRing:
		return RingMCP, RingPIP, RingDIP, RingTip
	case FingerPinky:
		return PinkyMCP, PinkyPIP, PinkyDIP, PinkyTip
	}
	return 0, 0, 0, 0
}
