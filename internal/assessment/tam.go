package assessment

import (
	"github.com/sahanad/mudra/internal/landmark"
)

// FingerAngles holds one frame's flexion angles for a single finger, in
// the flexion-domain convention: 0° is fully extended, larger is more
// flexed. LowConfidence marks a frame where a degenerate bone vector
// forced a joint to 0° instead of producing NaN.
type FingerAngles struct {
	MCP, PIP, DIP float64
	Total         float64
	LowConfidence bool
}

// MeasureFinger computes one finger's joint flexion angles from a hand
// frame. Each joint angle is measured between the two bone segments
// meeting at it: wrist→MCP against MCP→PIP, MCP→PIP against PIP→DIP,
// and PIP→DIP against DIP→tip.
func MeasureFinger(h *landmark.HandFrame, f landmark.Finger) FingerAngles {
	mcp, pip, dip, tip := f.Chain()

	bones := [4]struct{ from, to int }{
		{landmark.Wrist, mcp},
		{mcp, pip},
		{pip, dip},
		{dip, tip},
	}

	var a FingerAngles
	angles := [3]*float64{&a.MCP, &a.PIP, &a.DIP}
	for i := range angles {
		u := landmark.Direction(h.Points[bones[i].from], h.Points[bones[i].to])
		v := landmark.Direction(h.Points[bones[i+1].from], h.Points[bones[i+1].to])
		deg, ok := landmark.AngleBetween(u, v)
		if !ok {
			a.LowConfidence = true
			continue
		}
		*angles[i] = deg
	}
	a.Total = a.MCP + a.PIP + a.DIP
	return a
}

// tamSample extends sample with the per-joint breakdown behind the
// total.
type tamSample struct {
	sample
	mcp, pip, dip float64
	lowConfidence bool
}

// tamRepetition measures every finger over one repetition. Frames
// without a hand are skipped for all fingers.
func tamRepetition(rep landmark.Repetition, repIdx int) map[landmark.Finger][]tamSample {
	out := make(map[landmark.Finger][]tamSample, len(landmark.Fingers))
	for i, f := range rep.Frames {
		if f.Hand == nil {
			continue
		}
		for _, finger := range landmark.Fingers {
			a := MeasureFinger(f.Hand, finger)
			out[finger] = append(out[finger], tamSample{
				sample: sample{
					value:      a.Total,
					visibility: fingerVisibility(f, finger),
					rep:        repIdx,
					frame:      i,
				},
				mcp:           a.MCP,
				pip:           a.PIP,
				dip:           a.DIP,
				lowConfidence: a.LowConfidence,
			})
		}
	}
	return out
}

// fingerVisibility is the weakest visibility among a finger's four
// landmarks. Hand detectors often report no per-landmark visibility at
// all; the frame's overall detection quality stands in then.
func fingerVisibility(f landmark.CapturedFrame, finger landmark.Finger) float64 {
	mcp, pip, dip, tip := finger.Chain()
	vis := f.Hand.Points[mcp].Visibility
	for _, i := range []int{pip, dip, tip} {
		if v := f.Hand.Points[i].Visibility; v < vis {
			vis = v
		}
	}
	if vis == 0 {
		return f.DetectionQuality
	}
	return vis
}

// reduceTAM validates each finger's series per repetition and folds the
// accepted samples into session results. A finger with no accepted
// repetition reports unavailable measurements.
func reduceTAM(cfg Config, perRep []map[landmark.Finger][]tamSample) *TAMResult {
	res := &TAMResult{Fingers: make(map[landmark.Finger]FingerROM, len(landmark.Fingers))}

	for _, finger := range landmark.Fingers {
		var accepted []tamSample
		for _, rep := range perRep {
			series := rep[finger]
			plain := make([]sample, len(series))
			for i, s := range series {
				plain[i] = s.sample
			}
			if ok, _ := acceptSeries(cfg, plain); ok {
				accepted = append(accepted, series...)
			}
		}
		res.Fingers[finger] = fingerROM(accepted)
	}
	return res
}

// fingerROM reduces accepted samples to one finger's session range of
// motion: maximum per joint, maximum total, and the frames where the
// total peaked and bottomed.
func fingerROM(accepted []tamSample) FingerROM {
	if len(accepted) == 0 {
		return FingerROM{}
	}

	var rom FingerROM
	plain := make([]sample, len(accepted))
	for i, s := range accepted {
		plain[i] = s.sample
		if s.mcp > rom.MCP.Value {
			rom.MCP.Value = s.mcp
		}
		if s.pip > rom.PIP.Value {
			rom.PIP.Value = s.pip
		}
		if s.dip > rom.DIP.Value {
			rom.DIP.Value = s.dip
		}
		if s.lowConfidence {
			rom.LowConfidence = true
		}
	}
	rom.MCP.Valid = true
	rom.PIP.Valid = true
	rom.DIP.Valid = true

	extent := extentOf(plain)
	rom.Total = extent.Max
	rom.MaxAt = extent.MaxAt
	rom.MinAt = extent.MinAt
	return rom
}
