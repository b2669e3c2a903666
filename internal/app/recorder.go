package app

import (
	"errors"
	"fmt"

	"github.com/sahanad/mudra/internal/assessment"
	"github.com/sahanad/mudra/internal/landmark"
)

// RepetitionBufferSize is the maximum number of frames buffered for a
// single repetition.
const RepetitionBufferSize = 4096

// ErrBufferFull is returned when a repetition exceeds the frame buffer.
var ErrBufferFull = errors.New("repetition frame buffer full")

// Recorder assembles a streamed frame sequence into repetitions. It is
// not safe for concurrent use; each intake connection gets its own.
type Recorder struct {
	limit  int
	reps   []landmark.Repetition
	frames []landmark.CapturedFrame
}

// NewRecorder creates a Recorder with the default frame buffer size.
func NewRecorder() *Recorder {
	return &Recorder{limit: RepetitionBufferSize}
}

// AddFrame appends one captured frame to the repetition in progress.
// Frames must arrive in capture order: a timestamp earlier than the
// previous frame's is rejected with ErrOutOfOrder. A repetition holds
// at most RepetitionBufferSize frames.
func (r *Recorder) AddFrame(f landmark.CapturedFrame) error {
	if n := len(r.frames); n > 0 && f.TimestampMs < r.frames[n-1].TimestampMs {
		return fmt.Errorf("frame at %dms after frame at %dms: %w",
			f.TimestampMs, r.frames[n-1].TimestampMs, assessment.ErrOutOfOrder)
	}
	if len(r.frames) >= r.limit {
		return ErrBufferFull
	}
	r.frames = append(r.frames, f)
	return nil
}

// EndRepetition closes the repetition in progress. Its duration is the
// span between its first and last frame timestamps. Ending with no
// buffered frames is a no-op.
func (r *Recorder) EndRepetition() {
	if len(r.frames) == 0 {
		return
	}
	r.reps = append(r.reps, landmark.Repetition{
		Frames:     r.frames,
		DurationMs: r.frames[len(r.frames)-1].TimestampMs - r.frames[0].TimestampMs,
	})
	r.frames = nil
}

// Repetitions returns everything recorded so far, closing any
// repetition still in progress.
func (r *Recorder) Repetitions() []landmark.Repetition {
	r.EndRepetition()
	return r.reps
}

// FrameCount returns the number of frames in the repetition in progress.
func (r *Recorder) FrameCount() int {
	return len(r.frames)
}

// RepetitionCount returns the number of closed repetitions.
func (r *Recorder) RepetitionCount() int {
	return len(r.reps)
}
