package assessment

import (
	"fmt"
	"sync"

	"github.com/sahanad/mudra/internal/landmark"
)

// Evaluator scores recorded repetitions. It is stateless apart from its
// configuration and safe for concurrent use; all per-session state
// lives in the Session passed to Evaluate.
type Evaluator struct {
	cfg Config
}

// NewEvaluator returns an evaluator with the given tuning.
func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Config returns the evaluator's tuning.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Evaluate scores one assessment over its recorded repetitions.
//
// Algorithm:
//  1. Feed frames in capture order to the session's handedness lock
//     until it resolves. Frames must already be timestamp-ordered, see
//     ValidateOrder.
//  2. Measure every repetition. Repetitions share no state, so they
//     are computed concurrently.
//  3. Validate each repetition's series and reduce the accepted ones
//     to session results.
//
// Bad frames never fail an assessment: frames missing the landmarks a
// calculator needs are skipped, and an assessment with no usable frames
// reports unavailable measurements.
func (e *Evaluator) Evaluate(sess *Session, typ Type, reps []landmark.Repetition) (*Result, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}

resolve:
	for _, rep := range reps {
		for _, f := range rep.Frames {
			if sess.Resolve(f) != HandUnknown {
				break resolve
			}
		}
	}
	hand := sess.Hand()

	res := &Result{
		Type:        typ,
		Hand:        hand,
		Repetitions: len(reps),
		DurationMs:  totalDuration(reps),
	}

	switch typ {
	case TypeTAM:
		perRep := make([]map[landmark.Finger][]tamSample, len(reps))
		eachRepetition(len(reps), func(i int) { perRep[i] = tamRepetition(reps[i], i) })
		res.TAM = reduceTAM(e.cfg, perRep)
		res.Consistency = repetitionConsistency(tamTraces(perRep))

	case TypeKapandji:
		perRep := make([][]kapandjiSample, len(reps))
		eachRepetition(len(reps), func(i int) { perRep[i] = kapandjiRepetition(e.cfg, reps[i], i) })
		res.Kapandji = reduceKapandji(perRep)
		res.Consistency = repetitionConsistency(kapandjiTraces(perRep))

	case TypeWristFlexExt:
		perRep := make([][]sample, len(reps))
		eachRepetition(len(reps), func(i int) { perRep[i] = wristRepetition(reps[i], i, hand) })
		res.WristFE = reduceWristFE(e.cfg, perRep, hand)
		res.Consistency = repetitionConsistency(sampleTraces(perRep))

	case TypeDeviation:
		neutral, ok := NeutralOrientation(reps)
		if !ok {
			res.Deviation = &DeviationResult{Hand: hand}
			break
		}
		perRep := make([][]sample, len(reps))
		eachRepetition(len(reps), func(i int) { perRep[i] = devRepetition(reps[i], i, neutral, hand) })
		res.Deviation = reduceDeviation(e.cfg, perRep, hand)
		res.Consistency = repetitionConsistency(sampleTraces(perRep))
	}
	return res, nil
}

// eachRepetition runs fn for every repetition index concurrently and
// waits for all of them.
func eachRepetition(n int, fn func(i int)) {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fn(i)
		}(i)
	}
	wg.Wait()
}

func totalDuration(reps []landmark.Repetition) int64 {
	var total int64
	for _, rep := range reps {
		total += rep.DurationMs
	}
	return total
}
