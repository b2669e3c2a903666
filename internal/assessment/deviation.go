package assessment

import (
	"github.com/golang/geo/r3"

	"github.com/sahanad/mudra/internal/landmark"
)

// NeutralOrientation scans repetitions in order and returns the hand
// orientation vector (index MCP → pinky MCP) of the first frame where
// it is computable. This is the deviation baseline for the whole
// assessment, so recordings must start at a neutral wrist.
func NeutralOrientation(reps []landmark.Repetition) (r3.Vector, bool) {
	for _, rep := range reps {
		for _, f := range rep.Frames {
			if f.Hand == nil {
				continue
			}
			v := orientationVector(f.Hand)
			if !landmark.Degenerate(v) {
				return v, true
			}
		}
	}
	return r3.Vector{}, false
}

// MeasureDeviation computes one frame's signed deviation from the
// neutral orientation. The angular offset goes entirely to one side,
// radial or ulnar, classified by the Z sign of neutral × current with
// the sense mirrored between hands. A degenerate orientation vector
// yields 0° on both sides.
func MeasureDeviation(h *landmark.HandFrame, neutral r3.Vector, hand Handedness) (radial, ulnar float64, ok bool) {
	if h == nil || hand == HandUnknown {
		return 0, 0, false
	}

	current := orientationVector(h)
	offset, valid := landmark.AngleBetween(neutral, current)
	if !valid {
		return 0, 0, true
	}

	crossZ := neutral.Cross(current).Z
	toRadial := crossZ > 0
	if hand == HandLeft {
		toRadial = crossZ < 0
	}
	if toRadial {
		return offset, 0, true
	}
	return 0, offset, true
}

func orientationVector(h *landmark.HandFrame) r3.Vector {
	return landmark.Direction(h.Points[landmark.IndexMCP], h.Points[landmark.PinkyMCP])
}

// devRepetition measures one repetition as a signed series, radial
// positive and ulnar negative.
func devRepetition(rep landmark.Repetition, repIdx int, neutral r3.Vector, hand Handedness) []sample {
	var out []sample
	for i, f := range rep.Frames {
		if f.Hand == nil {
			continue
		}
		radial, ulnar, ok := MeasureDeviation(f.Hand, neutral, hand)
		if !ok {
			continue
		}
		value := radial
		if ulnar > 0 {
			value = -ulnar
		}
		out = append(out, sample{
			value:      value,
			visibility: orientationVisibility(f),
			rep:        repIdx,
			frame:      i,
		})
	}
	return out
}

// orientationVisibility is the weaker of the two MCP landmark
// visibilities, with the frame detection quality standing in when the
// detector reports none.
func orientationVisibility(f landmark.CapturedFrame) float64 {
	vis := f.Hand.Points[landmark.IndexMCP].Visibility
	if v := f.Hand.Points[landmark.PinkyMCP].Visibility; v < vis {
		vis = v
	}
	if vis == 0 {
		return f.DetectionQuality
	}
	return vis
}

// reduceDeviation folds accepted repetitions into the session result,
// keeping separate radial and ulnar maxima.
func reduceDeviation(cfg Config, perRep [][]sample, hand Handedness) *DeviationResult {
	res := &DeviationResult{Hand: hand}
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

	var radial, ulnar []sample
	for _, s := range accepted {
		switch {
		case s.value > 0:
			radial = append(radial, s)
		case s.value < 0:
			ulnar = append(ulnar, sample{value: -s.value, visibility: s.visibility, rep: s.rep, frame: s.frame})
		}
	}

	res.MaxRadial = Deg(0)
	res.MaxUlnar = Deg(0)
	res.Radial = extentOf(radial)
	res.Ulnar = extentOf(ulnar)
	if res.Radial.Max.Valid {
		res.MaxRadial = res.Radial.Max
	}
	if res.Ulnar.Max.Valid {
		res.MaxUlnar = res.Ulnar.Max
	}
	return res
}
