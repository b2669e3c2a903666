package assessment

import (
	"math"
	"testing"

	"github.com/sahanad/mudra/internal/landmark"
)

func TestWarpDistance_IdenticalTraces(t *testing.T) {
	trace := []float64{0, 0.5, 1, 0.5, 0}

	if d := warpDistance(trace, trace); d != 0 {
		t.Errorf("distance = %f, want 0 for identical traces", d)
	}
}

func TestWarpDistance_DifferentTraces(t *testing.T) {
	up := []float64{0, 0.25, 0.5, 0.75, 1}
	down := []float64{1, 0.75, 0.5, 0.25, 0}

	if d := warpDistance(up, down); d <= 0 {
		t.Errorf("distance = %f, want > 0 for opposite traces", d)
	}
}

func TestWarpDistance_SpeedInvariant(t *testing.T) {
	// The same ramp recorded fast and slow should stay close after
	// warp alignment.
	fast := []float64{0, 0.5, 1}
	slow := []float64{0, 0.125, 0.25, 0.375, 0.5, 0.625, 0.75, 0.875, 1}

	if d := warpDistance(fast, slow); d > 0.1 {
		t.Errorf("distance = %f, want near 0 for the same trajectory", d)
	}
}

func TestWarpDistance_Empty(t *testing.T) {
	trace := []float64{0, 1}

	if d := warpDistance(nil, nil); !math.IsInf(d, 1) {
		t.Errorf("distance = %f, want +Inf for two empty traces", d)
	}
	if d := warpDistance(nil, trace); !math.IsInf(d, 1) {
		t.Errorf("distance = %f, want +Inf when the first trace is empty", d)
	}
	if d := warpDistance(trace, nil); !math.IsInf(d, 1) {
		t.Errorf("distance = %f, want +Inf when the second trace is empty", d)
	}
}

func TestNormalizeTrace(t *testing.T) {
	out := normalizeTrace([]float64{10, 20, 40})

	if out[0] != 0 || out[2] != 1 {
		t.Errorf("endpoints = %f, %f, want 0 and 1", out[0], out[2])
	}
	if math.Abs(out[1]-1.0/3.0) > 1e-9 {
		t.Errorf("midpoint = %f, want 1/3", out[1])
	}
}

func TestNormalizeTrace_Flat(t *testing.T) {
	out := normalizeTrace([]float64{5, 5, 5})

	for i, v := range out {
		if v != 0 {
			t.Errorf("value %d = %f, want 0 for a flat trace", i, v)
		}
	}
}

func TestNormalizeTrace_Empty(t *testing.T) {
	if out := normalizeTrace(nil); out != nil {
		t.Errorf("normalized = %v, want nil for empty input", out)
	}
}

func TestRepetitionConsistency_ExactRetrace(t *testing.T) {
	ramp := []float64{0, 20, 40, 60, 40, 20, 0}
	res := repetitionConsistency([][]float64{ramp, ramp, ramp})

	if res == nil {
		t.Fatal("result is nil for three usable repetitions")
	}
	if res.Reference != 0 {
		t.Errorf("reference = %d, want 0", res.Reference)
	}
	if res.Score < 0.999 {
		t.Errorf("score = %f, want 1 for exact retraces", res.Score)
	}
	for i, s := range res.RepetitionScores {
		if s < 0.999 {
			t.Errorf("repetition %d score = %f, want 1", i, s)
		}
	}
}

func TestRepetitionConsistency_AmplitudeInvariant(t *testing.T) {
	// Half the range of motion, same motion shape.
	full := []float64{0, 25, 50, 75, 100}
	half := []float64{0, 12.5, 25, 37.5, 50}

	res := repetitionConsistency([][]float64{full, half})
	if res == nil {
		t.Fatal("result is nil")
	}
	if res.Score < 0.999 {
		t.Errorf("score = %f, want 1 for the same shape at half amplitude", res.Score)
	}
}

func TestRepetitionConsistency_DissimilarScoresLower(t *testing.T) {
	ramp := []float64{0, 0.2, 0.4, 0.6, 0.8, 1}
	retrace := []float64{0, 0.2, 0.4, 0.6, 0.8, 1}
	zigzag := []float64{0, 1, 0, 1, 0, 1}

	res := repetitionConsistency([][]float64{ramp, retrace, zigzag})
	if res == nil {
		t.Fatal("result is nil")
	}
	if res.RepetitionScores[2] >= res.RepetitionScores[1] {
		t.Errorf("zigzag score %f not below retrace score %f",
			res.RepetitionScores[2], res.RepetitionScores[1])
	}
	if res.Score >= 1 {
		t.Errorf("score = %f, want < 1 with a dissimilar repetition", res.Score)
	}
}

func TestRepetitionConsistency_SingleRepetition(t *testing.T) {
	if res := repetitionConsistency([][]float64{{0, 1, 2}}); res != nil {
		t.Errorf("result = %+v, want nil with one repetition", res)
	}
}

func TestRepetitionConsistency_ShortTraceScoresZero(t *testing.T) {
	ramp := []float64{0, 1, 2, 3}
	res := repetitionConsistency([][]float64{ramp, {42}, ramp})

	if res == nil {
		t.Fatal("result is nil despite two usable repetitions")
	}
	if len(res.RepetitionScores) != 3 {
		t.Fatalf("scores = %v, want one per repetition", res.RepetitionScores)
	}
	if res.RepetitionScores[1] != 0 {
		t.Errorf("short repetition score = %f, want 0", res.RepetitionScores[1])
	}
	if res.Score < 0.999 {
		t.Errorf("score = %f, short trace must not drag the mean", res.Score)
	}
}

func TestRepetitionConsistency_ReferenceSkipsShortTrace(t *testing.T) {
	ramp := []float64{0, 1, 2, 3}
	res := repetitionConsistency([][]float64{{7}, ramp, ramp})

	if res == nil {
		t.Fatal("result is nil")
	}
	if res.Reference != 1 {
		t.Errorf("reference = %d, want the first usable repetition", res.Reference)
	}
	if res.RepetitionScores[0] != 0 {
		t.Errorf("unusable repetition score = %f, want 0", res.RepetitionScores[0])
	}
}

func TestTamTraces_SumsFingers(t *testing.T) {
	rep := make(map[landmark.Finger][]tamSample, len(landmark.Fingers))
	for _, f := range landmark.Fingers {
		rep[f] = []tamSample{
			{sample: sample{value: 10}},
			{sample: sample{value: 20}},
		}
	}

	traces := tamTraces([]map[landmark.Finger][]tamSample{rep})
	want := []float64{40, 80}
	if len(traces) != 1 || len(traces[0]) != 2 {
		t.Fatalf("traces = %v, want one trace of two frames", traces)
	}
	for i := range want {
		if traces[0][i] != want[i] {
			t.Errorf("trace[%d] = %f, want %f", i, traces[0][i], want[i])
		}
	}
}

func TestEvaluator_Consistency(t *testing.T) {
	e := NewEvaluator(DefaultConfig())
	pose := landmark.UpperBodyPose(true)

	reps := []landmark.Repetition{
		sweepRepetition(pose, 0, 6, 60),
		sweepRepetition(pose, 400, 6, 60),
	}
	res, err := e.Evaluate(NewSession(DefaultConfig()), TypeTAM, reps)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Consistency == nil {
		t.Fatal("consistency missing for a two-repetition assessment")
	}
	if res.Consistency.Score < 0.95 {
		t.Errorf("score = %f, want near 1 for identical sweeps", res.Consistency.Score)
	}
	if len(res.Consistency.RepetitionScores) != 2 {
		t.Errorf("scores = %v, want one per repetition", res.Consistency.RepetitionScores)
	}
}

func TestEvaluator_Consistency_SingleRepetition(t *testing.T) {
	e := NewEvaluator(DefaultConfig())
	pose := landmark.UpperBodyPose(true)

	res, err := e.Evaluate(NewSession(DefaultConfig()), TypeTAM,
		[]landmark.Repetition{sweepRepetition(pose, 0, 6, 60)})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Consistency != nil {
		t.Errorf("consistency = %+v, want nil with one repetition", res.Consistency)
	}
}
