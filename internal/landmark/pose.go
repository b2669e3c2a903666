package landmark

// Body pose landmark indices following the MediaPipe pose convention.
// A pose frame carries 33 points; the calculators consume only the
// upper-limb subset named here.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	LeftShoulder     = 11
	RightShoulder    = 12
	LeftElbow        = 13
	RightElbow       = 14
	LeftWrist        = 15
	RightWrist       = 16
	NumPoseLandmarks = 33
)

// PoseFrame represents one detector observation of the body pose:
// exactly 33 landmarks in the fixed MediaPipe index order. Pose
// landmarks carry a per-point visibility score.
type PoseFrame struct {
	Points [NumPoseLandmarks]Landmark `json:"points"`
}
