package app

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sahanad/mudra/internal/assessment"
	"github.com/sahanad/mudra/internal/landmark"
	"github.com/sahanad/mudra/internal/store"
)

// newTestApp creates an App backed by a throwaway database.
func newTestApp(t *testing.T) *App {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return New(Config{Store: s, Assessment: assessment.DefaultConfig()})
}

// recordedSweep builds repetitions of a finger flexion sweep with the
// given arm in view.
func recordedSweep(reps, frames int, trackedRight bool) []landmark.Repetition {
	pose := landmark.UpperBodyPose(trackedRight)
	out := make([]landmark.Repetition, reps)
	for i := range out {
		rep := landmark.Repetition{Frames: make([]landmark.CapturedFrame, frames)}
		for j := range rep.Frames {
			deg := 50 * float64(j) / float64(frames-1)
			hand := landmark.FlexedHand(deg, 1.2*deg, 0.7*deg)
			rep.Frames[j] = landmark.CapturedFrame{
				TimestampMs:      int64(i*1000 + j*33),
				Hand:             &hand,
				Pose:             &pose,
				DetectionQuality: 0.9,
			}
		}
		rep.DurationMs = int64(33 * (frames - 1))
		out[i] = rep
	}
	return out
}

func TestApp_OpenSession(t *testing.T) {
	a := newTestApp(t)

	sess, err := a.OpenSession("patient-42", "", "post-op week 3")
	if err != nil {
		t.Fatalf("OpenSession error: %v", err)
	}

	if sess.ID == "" {
		t.Error("expected non-empty session ID")
	}
	if sess.Hand != "unknown" {
		t.Errorf("expected hand to default to 'unknown', got %q", sess.Hand)
	}

	// The session is persisted
	stored, err := a.Store().Sessions().GetByID(sess.ID)
	if err != nil {
		t.Fatalf("stored session not found: %v", err)
	}
	if stored.Subject != "patient-42" {
		t.Errorf("Subject mismatch: got %q", stored.Subject)
	}

	// A handedness lock is registered for the new session
	a.mu.Lock()
	_, registered := a.locks[sess.ID]
	a.mu.Unlock()
	if !registered {
		t.Error("expected a handedness lock for the new session")
	}
}

func TestApp_RecordAssessment(t *testing.T) {
	a := newTestApp(t)

	sess, err := a.OpenSession("patient-42", "", "")
	if err != nil {
		t.Fatalf("OpenSession error: %v", err)
	}

	rec, result, err := a.RecordAssessment(sess.ID, assessment.TypeTAM, recordedSweep(2, 6, true))
	if err != nil {
		t.Fatalf("RecordAssessment error: %v", err)
	}

	if rec.ID == "" {
		t.Error("expected non-empty assessment ID")
	}
	if rec.SessionID != sess.ID {
		t.Errorf("SessionID mismatch: got %q, want %q", rec.SessionID, sess.ID)
	}
	if rec.Type != "tam" {
		t.Errorf("Type mismatch: got %q, want %q", rec.Type, "tam")
	}
	if rec.Repetitions != 2 {
		t.Errorf("Repetitions mismatch: got %d, want 2", rec.Repetitions)
	}

	if result.TAM == nil {
		t.Fatal("expected a TAM payload in the result")
	}
	if result.Hand != assessment.HandRight {
		t.Errorf("expected hand to resolve right, got %q", result.Hand)
	}
	index := result.TAM.Fingers[landmark.FingerIndex]
	if !index.Total.Valid {
		t.Error("expected a valid index finger total")
	}

	// The stored payload decodes back into the same result shape
	stored, err := a.Store().Assessments().GetByID(rec.ID)
	if err != nil {
		t.Fatalf("stored assessment not found: %v", err)
	}
	var decoded assessment.Result
	if err := json.Unmarshal([]byte(stored.Result), &decoded); err != nil {
		t.Fatalf("stored result does not decode: %v", err)
	}
	if decoded.Type != assessment.TypeTAM {
		t.Errorf("decoded type mismatch: got %q", decoded.Type)
	}
	if decoded.TAM == nil {
		t.Error("decoded result missing TAM payload")
	}

	// The locked hand is recorded on the session row
	row, err := a.Store().Sessions().GetByID(sess.ID)
	if err != nil {
		t.Fatalf("session row not found: %v", err)
	}
	if row.Hand != "right" {
		t.Errorf("expected session row hand 'right', got %q", row.Hand)
	}
}

func TestApp_RecordAssessment_KeepsExplicitHand(t *testing.T) {
	a := newTestApp(t)

	sess, err := a.OpenSession("patient-42", "left", "")
	if err != nil {
		t.Fatalf("OpenSession error: %v", err)
	}

	// The frames track the right arm, but the clinician entered left
	if _, _, err := a.RecordAssessment(sess.ID, assessment.TypeTAM, recordedSweep(1, 6, true)); err != nil {
		t.Fatalf("RecordAssessment error: %v", err)
	}

	row, err := a.Store().Sessions().GetByID(sess.ID)
	if err != nil {
		t.Fatalf("session row not found: %v", err)
	}
	if row.Hand != "left" {
		t.Errorf("explicit hand should be kept as entered, got %q", row.Hand)
	}
}

func TestApp_RecordAssessment_HandLockPersists(t *testing.T) {
	a := newTestApp(t)

	sess, err := a.OpenSession("patient-42", "", "")
	if err != nil {
		t.Fatalf("OpenSession error: %v", err)
	}

	_, first, err := a.RecordAssessment(sess.ID, assessment.TypeTAM, recordedSweep(1, 6, true))
	if err != nil {
		t.Fatalf("first RecordAssessment error: %v", err)
	}
	if first.Hand != assessment.HandRight {
		t.Fatalf("expected first assessment to lock right, got %q", first.Hand)
	}

	// Later frames favoring the other side must not flip the lock
	_, second, err := a.RecordAssessment(sess.ID, assessment.TypeKapandji, recordedSweep(1, 6, false))
	if err != nil {
		t.Fatalf("second RecordAssessment error: %v", err)
	}
	if second.Hand != assessment.HandRight {
		t.Errorf("hand lock flipped to %q across assessments", second.Hand)
	}
}

func TestApp_RecordAssessment_SessionNotFound(t *testing.T) {
	a := newTestApp(t)

	_, _, err := a.RecordAssessment("no-such-session", assessment.TypeTAM, recordedSweep(1, 6, true))
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestApp_RecordAssessment_OutOfOrder(t *testing.T) {
	a := newTestApp(t)

	sess, err := a.OpenSession("patient-42", "", "")
	if err != nil {
		t.Fatalf("OpenSession error: %v", err)
	}

	reps := recordedSweep(1, 6, true)
	reps[0].Frames[3].TimestampMs = 0 // rewind mid-repetition

	_, _, err = a.RecordAssessment(sess.ID, assessment.TypeTAM, reps)
	if !errors.Is(err, assessment.ErrOutOfOrder) {
		t.Fatalf("expected ErrOutOfOrder, got: %v", err)
	}

	// Nothing was persisted for the rejected batch
	list, err := a.Store().Assessments().ListBySession(sess.ID)
	if err != nil {
		t.Fatalf("ListBySession error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no stored assessments after rejection, got %d", len(list))
	}
}

func TestApp_RecordAssessment_EndedSession(t *testing.T) {
	a := newTestApp(t)

	sess, err := a.OpenSession("patient-42", "", "")
	if err != nil {
		t.Fatalf("OpenSession error: %v", err)
	}
	if _, err := a.EndSession(sess.ID); err != nil {
		t.Fatalf("EndSession error: %v", err)
	}

	_, _, err = a.RecordAssessment(sess.ID, assessment.TypeTAM, recordedSweep(1, 6, true))
	if !errors.Is(err, ErrSessionEnded) {
		t.Errorf("expected ErrSessionEnded, got: %v", err)
	}
}

func TestApp_RecordAssessment_LazyLock(t *testing.T) {
	a := newTestApp(t)

	// A session created outside OpenSession, as after a process restart
	if err := a.Store().Sessions().Create(&store.Session{ID: "restarted", Subject: "patient-42"}); err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	_, result, err := a.RecordAssessment("restarted", assessment.TypeTAM, recordedSweep(1, 6, true))
	if err != nil {
		t.Fatalf("RecordAssessment error: %v", err)
	}
	if result.Hand != assessment.HandRight {
		t.Errorf("expected a fresh lock to resolve right, got %q", result.Hand)
	}
}

func TestApp_EndSession(t *testing.T) {
	a := newTestApp(t)

	sess, err := a.OpenSession("patient-42", "", "")
	if err != nil {
		t.Fatalf("OpenSession error: %v", err)
	}

	ended, err := a.EndSession(sess.ID)
	if err != nil {
		t.Fatalf("EndSession error: %v", err)
	}
	if ended.EndedAt == nil {
		t.Error("expected EndedAt to be stamped")
	}

	// The handedness lock is released
	a.mu.Lock()
	_, registered := a.locks[sess.ID]
	a.mu.Unlock()
	if registered {
		t.Error("expected the handedness lock to be released")
	}
}

func TestApp_EndSession_NotFound(t *testing.T) {
	a := newTestApp(t)

	_, err := a.EndSession("no-such-session")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestApp_DeleteSession(t *testing.T) {
	a := newTestApp(t)

	sess, err := a.OpenSession("patient-42", "", "")
	if err != nil {
		t.Fatalf("OpenSession error: %v", err)
	}

	if err := a.DeleteSession(sess.ID); err != nil {
		t.Fatalf("DeleteSession error: %v", err)
	}

	if _, err := a.Store().Sessions().GetByID(sess.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}
	if err := a.DeleteSession(sess.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got: %v", err)
	}
}
