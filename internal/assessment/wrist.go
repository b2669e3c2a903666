package assessment

import (
	"gonum.org/v1/gonum/stat"

	"github.com/sahanad/mudra/internal/landmark"
)

// WristSample is one frame's elbow-referenced wrist measurement. The
// deflection from the neutral (colinear) position is assigned entirely
// to one direction; the other is always 0.
type WristSample struct {
	Flexion    float64
	Extension  float64
	Confidence float64
}

// MeasureWrist computes the wrist deflection for one frame.
//
// Algorithm:
//  1. Pick the pose elbow and wrist on the locked hand's side.
//  2. Build the forearm vector (pose elbow → hand wrist) and the hand
//     vector (hand wrist → middle MCP). The angle these span at the
//     wrist is 180° for a straight wrist; deflection is its complement,
//     so neutral reads 0° and any bend grows it.
//  3. Classify the bend by the Y sign of forearm × hand, mirrored
//     between left and right hands since camera coordinates mirror too.
//
// The boolean is false when the frame carries no sample: missing hand
// or pose landmarks, or an unresolved hand type (direction would be
// meaningless). Degenerate vectors yield a 0° sample with confidence 0.
func MeasureWrist(f landmark.CapturedFrame, hand Handedness) (WristSample, bool) {
	if f.Hand == nil || f.Pose == nil {
		return WristSample{}, false
	}

	var elbowIdx, poseWristIdx int
	switch hand {
	case HandLeft:
		elbowIdx, poseWristIdx = landmark.LeftElbow, landmark.LeftWrist
	case HandRight:
		elbowIdx, poseWristIdx = landmark.RightElbow, landmark.RightWrist
	default:
		return WristSample{}, false
	}

	elbow := f.Pose.Points[elbowIdx]
	poseWrist := f.Pose.Points[poseWristIdx]
	wrist := f.Hand.Points[landmark.Wrist]
	mcp := f.Hand.Points[landmark.MiddleMCP]

	confidence := elbow.Visibility
	if poseWrist.Visibility < confidence {
		confidence = poseWrist.Visibility
	}

	raw, ok := landmark.AngleBetween(
		landmark.Direction(wrist, elbow),
		landmark.Direction(wrist, mcp),
	)
	if !ok {
		return WristSample{Confidence: 0}, true
	}
	deflection := 180 - raw

	forearm := landmark.Direction(elbow, wrist)
	handVec := landmark.Direction(wrist, mcp)
	crossY := forearm.Cross(handVec).Y

	s := WristSample{Confidence: confidence}
	flexion := crossY > 0
	if hand == HandLeft {
		flexion = crossY < 0
	}
	if flexion {
		s.Flexion = deflection
	} else {
		s.Extension = deflection
	}
	return s, true
}

// wristRepetition measures one repetition as a signed series, flexion
// positive and extension negative, so direction flips surface as large
// frame-to-frame deltas.
func wristRepetition(rep landmark.Repetition, repIdx int, hand Handedness) []sample {
	var out []sample
	for i, f := range rep.Frames {
		ws, ok := MeasureWrist(f, hand)
		if !ok {
			continue
		}
		value := ws.Flexion
		if ws.Extension > 0 {
			value = -ws.Extension
		}
		out = append(out, sample{
			value:      value,
			visibility: ws.Confidence,
			rep:        repIdx,
			frame:      i,
		})
	}
	return out
}

// reduceWristFE folds accepted repetitions into the session result.
// Flexion and extension maxima are tracked independently; a session
// with no accepted frames reports both as unavailable.
func reduceWristFE(cfg Config, perRep [][]sample, hand Handedness) *WristFEResult {
	res := &WristFEResult{Hand: hand}
	if hand == HandUnknown {
		return res
	}

	var accepted []sample
	for _, series := range perRep {
		if ok, _ := acceptSeries(cfg, series); ok {
			accepted = append(accepted, series...)
		}
	}
	if len(accepted) == 0 {
		return res
	}

	var flex, ext []sample
	confidences := make([]float64, len(accepted))
	for i, s := range accepted {
		confidences[i] = s.visibility
		switch {
		case s.value > 0:
			flex = append(flex, s)
		case s.value < 0:
			ext = append(ext, sample{value: -s.value, visibility: s.visibility, rep: s.rep, frame: s.frame})
		}
	}

	res.Confidence = stat.Mean(confidences, nil)
	res.MaxFlexion = Deg(0)
	res.MaxExtension = Deg(0)
	res.Flexion = extentOf(flex)
	res.Extension = extentOf(ext)
	if res.Flexion.Max.Valid {
		res.MaxFlexion = res.Flexion.Max
	}
	if res.Extension.Max.Valid {
		res.MaxExtension = res.Extension.Max
	}
	return res
}
