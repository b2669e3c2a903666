package assessment

import (
	"github.com/sahanad/mudra/internal/landmark"
)

// KapandjiLevels is the number of stations on the opposition scale.
const KapandjiLevels = 10

// OppositionTarget returns the point the thumb tip must reach for a
// Kapandji level. The stations walk the radial side of the index finger
// (1..3), across the fingertips (4..6) and down the little finger to
// the distal palmar crease (7..10), in increasing anatomical difficulty:
//
//	 1 index proximal phalanx    6 little fingertip
//	 2 index middle phalanx      7 little DIP crease
//	 3 index fingertip           8 little PIP crease
//	 4 middle fingertip          9 little MCP crease
//	 5 ring fingertip           10 distal palmar crease
//
// Phalanx and crease stations have no landmark of their own and are
// approximated by the midpoint of the joints enclosing them.
func OppositionTarget(h *landmark.HandFrame, level int) (landmark.Landmark, bool) {
	if h == nil || level < 1 || level > KapandjiLevels {
		return landmark.Landmark{}, false
	}

	p := &h.Points
	switch level {
	case 1:
		return landmark.Midpoint(p[landmark.IndexMCP], p[landmark.IndexPIP]), true
	case 2:
		return landmark.Midpoint(p[landmark.IndexPIP], p[landmark.IndexDIP]), true
	case 3:
		return p[landmark.IndexTip], true
	case 4:
		return p[landmark.MiddleTip], true
	case 5:
		return p[landmark.RingTip], true
	case 6:
		return p[landmark.PinkyTip], true
	case 7:
		return p[landmark.PinkyDIP], true
	case 8:
		return p[landmark.PinkyPIP], true
	case 9:
		return p[landmark.PinkyMCP], true
	default:
		return landmark.Midpoint(p[landmark.PinkyMCP], p[landmark.Wrist]), true
	}
}

// OppositionLevel scores one frame: met marks every station whose
// proximity threshold the thumb tip currently satisfies, and level is
// the highest of them (0 when none).
func OppositionLevel(cfg Config, h *landmark.HandFrame) (level int, met [KapandjiLevels]bool) {
	if h == nil {
		return 0, met
	}

	tip := h.Points[landmark.ThumbTip]
	for l := 1; l <= KapandjiLevels; l++ {
		target, ok := OppositionTarget(h, l)
		if !ok {
			continue
		}
		if landmark.Distance(tip, target) <= cfg.OppositionThresholds[l-1] {
			met[l-1] = true
			level = l
		}
	}
	return level, met
}

// kapandjiSample is one frame's opposition score.
type kapandjiSample struct {
	level int
	met   [KapandjiLevels]bool
	rep   int
	frame int
}

// kapandjiRepetition scores every frame of one repetition.
func kapandjiRepetition(cfg Config, rep landmark.Repetition, repIdx int) []kapandjiSample {
	var out []kapandjiSample
	for i, f := range rep.Frames {
		if f.Hand == nil {
			continue
		}
		level, met := OppositionLevel(cfg, f.Hand)
		out = append(out, kapandjiSample{level: level, met: met, rep: repIdx, frame: i})
	}
	return out
}

// reduceKapandji folds frame scores into the session result. The score
// is the best frame's level and the reached set is the union over
// frames, so adding frames can only raise it.
func reduceKapandji(perRep [][]kapandjiSample) *KapandjiResult {
	res := &KapandjiResult{}
	for _, samples := range perRep {
		for _, s := range samples {
			for l, hit := range s.met {
				if hit {
					res.ReachedLevels[l] = true
				}
			}
			if s.level > res.MaxScore {
				res.MaxScore = s.level
				res.BestFrame = &FrameRef{Repetition: s.rep, Frame: s.frame}
			}
		}
	}
	return res
}
