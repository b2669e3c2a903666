package assessment

import (
	"sync"

	"github.com/sahanad/mudra/internal/landmark"
)

// Handedness identifies which of the subject's hands is being tracked.
type Handedness string

const (
	HandUnknown Handedness = "unknown"
	HandLeft    Handedness = "left"
	HandRight   Handedness = "right"
)

// Session holds the handedness lock for one recording session. The hand
// type is resolved from the opening frames and then locked for the rest
// of the session: later frames cannot change it, only an explicit Reset
// releases it. Safe for concurrent use.
type Session struct {
	cfg Config

	mu   sync.Mutex
	hand Handedness
}

// NewSession returns an unlocked session.
func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg, hand: HandUnknown}
}

// Resolve feeds one frame to the handedness lock and returns the
// session's hand type. The first frame that classifies as left or right
// locks the session; every later call returns the locked value without
// looking at the frame.
func (s *Session) Resolve(f landmark.CapturedFrame) Handedness {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hand != HandUnknown {
		return s.hand
	}
	if h := classifyHand(f, s.cfg.MinPoseVisibility); h != HandUnknown {
		s.hand = h
	}
	return s.hand
}

// Hand returns the resolved hand type, HandUnknown while unlocked.
func (s *Session) Hand() Handedness {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hand
}

// Locked reports whether the hand type has been resolved.
func (s *Session) Locked() bool {
	return s.Hand() != HandUnknown
}

// Reset releases the handedness lock. It is the only way back to an
// unresolved session and must accompany an explicit new-session signal
// from the caller.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hand = HandUnknown
}

// classifyHand matches the hand wrist against the two pose wrists by 3D
// distance. It refuses to guess: a missing hand or pose frame, a poorly
// visible pose wrist, or an exact tie all classify as unknown.
func classifyHand(f landmark.CapturedFrame, minVisibility float64) Handedness {
	if f.Hand == nil || f.Pose == nil {
		return HandUnknown
	}

	left := f.Pose.Points[landmark.LeftWrist]
	right := f.Pose.Points[landmark.RightWrist]
	if left.Visibility < minVisibility || right.Visibility < minVisibility {
		return HandUnknown
	}

	wrist := f.Hand.Points[landmark.Wrist]
	dl := landmark.Distance(wrist, left)
	dr := landmark.Distance(wrist, right)
	switch {
	case dl < dr:
		return HandLeft
	case dr < dl:
		return HandRight
	default:
		return HandUnknown
	}
}
