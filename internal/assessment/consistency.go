package assessment

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sahanad/mudra/internal/landmark"
)

// repetitionConsistency scores how closely repetitions retrace the
// reference trace, the first repetition with at least two usable frames.
//
// Algorithm:
//  1. Min-max scale each trace to [0,1], so only the motion shape is
//     compared, not its amplitude.
//  2. Warp-align every other trace against the reference and score it
//     1/(1+d) over the aligned distance.
//  3. The session score is the mean over the compared repetitions.
//
// Traces too short to compare score 0 and are left out of the mean. The
// result is nil when fewer than two repetitions have usable traces.
func repetitionConsistency(traces [][]float64) *ConsistencyResult {
	ref := -1
	usable := 0
	for i, tr := range traces {
		if len(tr) < 2 {
			continue
		}
		usable++
		if ref < 0 {
			ref = i
		}
	}
	if usable < 2 {
		return nil
	}

	res := &ConsistencyResult{
		Reference:        ref,
		RepetitionScores: make([]float64, len(traces)),
	}
	refTrace := normalizeTrace(traces[ref])

	var compared []float64
	for i, tr := range traces {
		if i == ref {
			res.RepetitionScores[i] = 1
			continue
		}
		if len(tr) < 2 {
			continue
		}
		score := 1.0 / (1.0 + warpDistance(normalizeTrace(tr), refTrace))
		res.RepetitionScores[i] = score
		compared = append(compared, score)
	}
	res.Score = stat.Mean(compared, nil)
	return res
}

// warpDistance is the dynamic-time-warping distance between two value
// traces, normalized by the longer length. Empty traces are infinitely
// far apart.
func warpDistance(a, b []float64) float64 {
	n := len(a)
	m := len(b)
	if n == 0 || m == 0 {
		return math.Inf(1)
	}

	dtw := make([][]float64, n+1)
	for i := range dtw {
		dtw[i] = make([]float64, m+1)
		for j := range dtw[i] {
			dtw[i][j] = math.Inf(1)
		}
	}
	dtw[0][0] = 0

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := math.Abs(a[i-1] - b[j-1])
			dtw[i][j] = cost + min(dtw[i-1][j], dtw[i][j-1], dtw[i-1][j-1])
		}
	}

	return dtw[n][m] / float64(max(n, m))
}

// normalizeTrace scales a trace to the 0-1 range. A flat trace maps to
// all zeros.
func normalizeTrace(trace []float64) []float64 {
	if len(trace) == 0 {
		return nil
	}

	lo, hi := trace[0], trace[0]
	for _, v := range trace {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]float64, len(trace))
	if hi == lo {
		return out
	}
	for i, v := range trace {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}

// sampleTraces extracts each repetition's value series.
func sampleTraces(perRep [][]sample) [][]float64 {
	traces := make([][]float64, len(perRep))
	for i, series := range perRep {
		tr := make([]float64, len(series))
		for j, s := range series {
			tr[j] = s.value
		}
		traces[i] = tr
	}
	return traces
}

// tamTraces reduces each repetition to one whole-hand series: the sum of
// the four fingers' total flexion per frame. Finger series within a
// repetition are frame-aligned, frames without a hand are skipped for
// all fingers at once.
func tamTraces(perRep []map[landmark.Finger][]tamSample) [][]float64 {
	traces := make([][]float64, len(perRep))
	for i, rep := range perRep {
		n := len(rep[landmark.Fingers[0]])
		tr := make([]float64, n)
		for _, finger := range landmark.Fingers {
			for j, s := range rep[finger] {
				tr[j] += s.value
			}
		}
		traces[i] = tr
	}
	return traces
}

// kapandjiTraces extracts each repetition's opposition-level series.
func kapandjiTraces(perRep [][]kapandjiSample) [][]float64 {
	traces := make([][]float64, len(perRep))
	for i, series := range perRep {
		tr := make([]float64, len(series))
		for j, s := range series {
			tr[j] = float64(s.level)
		}
		traces[i] = tr
	}
	return traces
}
