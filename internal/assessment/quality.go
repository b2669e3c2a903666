package assessment

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// sample is one frame's contribution to a metric series: the measured
// value, the visibility backing it and the frame it came from.
type sample struct {
	value      float64
	visibility float64
	rep, frame int
}

// Relative weight of the smooth-delta share versus the mean jump size
// in the temporal-quality score.
const (
	smoothnessWeight = 0.7
	jitterWeight     = 0.3
)

// acceptSeries decides whether one repetition's metric series can be
// trusted, returning the verdict and the quality score that produced it.
//
// Algorithm:
//  1. If at least VisibilityBypassFraction of the samples are backed by
//     visibility ≥ LandmarkVisibility, the series is accepted as-is.
//     Well-tracked motion is taken at face value, so a genuinely fast
//     sweep is never discarded as a sudden change.
//  2. Otherwise score frame-to-frame smoothness in [0, 1] and accept
//     only when the score reaches TemporalQuality. A rejected series
//     yields no value at all rather than a clamped guess.
func acceptSeries(cfg Config, samples []sample) (ok bool, score float64) {
	if len(samples) == 0 {
		return false, 0
	}

	visible := 0
	for _, s := range samples {
		if s.visibility >= cfg.LandmarkVisibility {
			visible++
		}
	}
	if float64(visible) >= cfg.VisibilityBypassFraction*float64(len(samples)) {
		return true, 1
	}

	score = temporalQuality(cfg, samples)
	return score >= cfg.TemporalQuality, score
}

// temporalQuality scores a series' frame-to-frame smoothness: the share
// of consecutive deltas within MaxFrameDelta, blended with how small the
// mean delta is relative to MaxFrameDelta. A single sample has nothing
// to be inconsistent with and scores 1.
func temporalQuality(cfg Config, samples []sample) float64 {
	if len(samples) < 2 {
		return 1
	}

	deltas := make([]float64, len(samples)-1)
	smooth := 0
	for i := 1; i < len(samples); i++ {
		d := math.Abs(samples[i].value - samples[i-1].value)
		deltas[i-1] = d
		if d <= cfg.MaxFrameDelta {
			smooth++
		}
	}

	smoothFraction := float64(smooth) / float64(len(deltas))
	jitter := stat.Mean(deltas, nil) / cfg.MaxFrameDelta
	if jitter > 1 {
		jitter = 1
	}
	return smoothnessWeight*smoothFraction + jitterWeight*(1-jitter)
}

// extentOf reduces samples to their extreme values with frame
// references. Empty input yields unavailable measurements.
func extentOf(samples []sample) MotionExtent {
	if len(samples) == 0 {
		return MotionExtent{}
	}

	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.value
	}

	maxAt := samples[floats.MaxIdx(values)]
	minAt := samples[floats.MinIdx(values)]
	return MotionExtent{
		Max:   Deg(maxAt.value),
		MaxAt: &FrameRef{Repetition: maxAt.rep, Frame: maxAt.frame},
		Min:   Deg(minAt.value),
		MinAt: &FrameRef{Repetition: minAt.rep, Frame: minAt.frame},
	}
}
