package assessment

import (
	"math"
	"testing"
)

func series(visibility float64, values ...float64) []sample {
	out := make([]sample, len(values))
	for i, v := range values {
		out[i] = sample{value: v, visibility: visibility, rep: 0, frame: i}
	}
	return out
}

func TestAcceptSeries_VisibilityBypass(t *testing.T) {
	cfg := DefaultConfig()

	// Well-tracked landmarks bypass temporal filtering entirely, so a
	// genuine fast sweep from 40° to 240° survives.
	ok, score := acceptSeries(cfg, series(0.9, 40, 240))
	if !ok {
		t.Fatal("well-tracked series should be accepted")
	}
	if score != 1 {
		t.Errorf("bypass score = %v, want 1", score)
	}
}

func TestAcceptSeries_RejectsJumpyLowVisibility(t *testing.T) {
	cfg := DefaultConfig()

	// The same jump with poor visibility has no bypass and fails the
	// smoothness score.
	ok, score := acceptSeries(cfg, series(0.3, 40, 240))
	if ok {
		t.Fatal("poorly tracked jumpy series should be rejected")
	}
	if score >= cfg.TemporalQuality {
		t.Errorf("score = %v, want below %v", score, cfg.TemporalQuality)
	}
}

func TestAcceptSeries_SmoothLowVisibility(t *testing.T) {
	cfg := DefaultConfig()

	// Poor visibility alone does not reject: a smooth series still
	// scores high.
	ok, score := acceptSeries(cfg, series(0.3, 10, 20, 30, 40, 50))
	if !ok {
		t.Fatalf("smooth series rejected with score %v", score)
	}
}

func TestAcceptSeries_SingleSample(t *testing.T) {
	cfg := DefaultConfig()

	ok, score := acceptSeries(cfg, series(0.1, 75))
	if !ok || score != 1 {
		t.Errorf("single sample: ok=%v score=%v, want accepted with score 1", ok, score)
	}
}

func TestAcceptSeries_Empty(t *testing.T) {
	cfg := DefaultConfig()

	if ok, _ := acceptSeries(cfg, nil); ok {
		t.Error("empty series should not be accepted")
	}
}

func TestAcceptSeries_BypassFractionBoundary(t *testing.T) {
	cfg := DefaultConfig()

	// 4 of 5 frames well tracked is exactly the 0.8 bypass fraction.
	s := series(0.9, 0, 50, 100, 150, 200)
	s[4].visibility = 0.2
	if ok, _ := acceptSeries(cfg, s); !ok {
		t.Error("series at the bypass fraction boundary should be accepted")
	}

	// 3 of 5 falls below it, and the 50° steps keep the smoothness
	// score high enough to accept anyway.
	s[3].visibility = 0.2
	ok, score := acceptSeries(cfg, s)
	if !ok {
		t.Errorf("smooth series below bypass fraction rejected, score %v", score)
	}
	if score == 1 {
		t.Error("score 1 suggests the bypass applied below its fraction")
	}
}

func TestTemporalQuality_Range(t *testing.T) {
	cfg := DefaultConfig()

	cases := [][]sample{
		series(0.3, 5),
		series(0.3, 5, 6, 7),
		series(0.3, 0, 300),
		series(0.3, 0, 59, 0, 59, 0),
		series(0.3, 0, 61, 0, 61),
	}
	for i, s := range cases {
		q := temporalQuality(cfg, s)
		if math.IsNaN(q) || q < 0 || q > 1 {
			t.Errorf("case %d: quality %v outside [0, 1]", i, q)
		}
	}
}

func TestExtentOf(t *testing.T) {
	s := []sample{
		{value: 12, rep: 0, frame: 0},
		{value: 80, rep: 0, frame: 1},
		{value: 3, rep: 1, frame: 4},
		{value: 55, rep: 1, frame: 5},
	}

	ext := extentOf(s)
	if !ext.Max.Valid || ext.Max.Value != 80 {
		t.Errorf("Max = %+v, want 80", ext.Max)
	}
	if ext.MaxAt == nil || *ext.MaxAt != (FrameRef{Repetition: 0, Frame: 1}) {
		t.Errorf("MaxAt = %+v, want {0 1}", ext.MaxAt)
	}
	if !ext.Min.Valid || ext.Min.Value != 3 {
		t.Errorf("Min = %+v, want 3", ext.Min)
	}
	if ext.MinAt == nil || *ext.MinAt != (FrameRef{Repetition: 1, Frame: 4}) {
		t.Errorf("MinAt = %+v, want {1 4}", ext.MinAt)
	}
}

func TestExtentOf_Empty(t *testing.T) {
	ext := extentOf(nil)
	if ext.Max.Valid || ext.Min.Valid {
		t.Error("empty extent should be unavailable")
	}
	if ext.MaxAt != nil || ext.MinAt != nil {
		t.Error("empty extent should carry no frame references")
	}
}
