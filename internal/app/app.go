// Package app provides the recording workflow for the Mudra assessment service.
//
// An App ties the three layers together: it opens and ends recording
// sessions, keeps one handedness lock per open session, runs the
// evaluator over recorded repetitions, and persists results.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sahanad/mudra/internal/assessment"
	"github.com/sahanad/mudra/internal/landmark"
	"github.com/sahanad/mudra/internal/store"
)

// ErrSessionEnded is returned when recording into a session whose end
// time has already been stamped.
var ErrSessionEnded = errors.New("session ended")

// Config holds configuration options for the application.
type Config struct {
	Store      *store.Store
	Assessment assessment.Config
}

// App coordinates recording sessions. Sessions are independent: each
// open session carries its own handedness lock, and assessments in
// different sessions may record concurrently.
type App struct {
	config    Config
	evaluator *assessment.Evaluator

	mu    sync.Mutex
	locks map[string]*assessment.Session
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	return &App{
		config:    config,
		evaluator: assessment.NewEvaluator(config.Assessment),
		locks:     make(map[string]*assessment.Session),
	}
}

// Store returns the backing store.
func (a *App) Store() *store.Store {
	return a.config.Store
}

// Evaluator returns the shared evaluator.
func (a *App) Evaluator() *assessment.Evaluator {
	return a.evaluator
}

// OpenSession creates a recording session and registers a fresh
// handedness lock for it.
func (a *App) OpenSession(subject, hand, notes string) (*store.Session, error) {
	sess := &store.Session{
		ID:      uuid.New().String(),
		Subject: subject,
		Hand:    hand,
		Notes:   notes,
	}
	if err := a.config.Store.Sessions().Create(sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	a.mu.Lock()
	a.locks[sess.ID] = assessment.NewSession(a.config.Assessment)
	a.mu.Unlock()

	log.Printf("Opened session %s for subject %q", sess.ID, subject)
	return sess, nil
}

// RecordAssessment evaluates recorded repetitions against the session's
// handedness lock and persists the result. Frame timestamps must be
// non-decreasing within each repetition; violating batches are rejected
// before any evaluation runs.
func (a *App) RecordAssessment(sessionID string, typ assessment.Type, reps []landmark.Repetition) (*store.Assessment, *assessment.Result, error) {
	sess, err := a.config.Store.Sessions().GetByID(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess.EndedAt != nil {
		return nil, nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionEnded)
	}

	if err := assessment.ValidateOrder(reps); err != nil {
		return nil, nil, err
	}

	engine := a.engineSession(sessionID)
	result, err := a.evaluator.Evaluate(engine, typ, reps)
	if err != nil {
		return nil, nil, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}

	rec := &store.Assessment{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Type:        string(typ),
		Repetitions: result.Repetitions,
		DurationMs:  result.DurationMs,
		Result:      string(payload),
	}
	if err := a.config.Store.Assessments().Create(rec); err != nil {
		return nil, nil, fmt.Errorf("persist assessment: %w", err)
	}

	// Record the locked hand on the session row once it is known. A hand
	// set explicitly at session creation is kept as entered.
	if hand := engine.Hand(); hand != assessment.HandUnknown && sess.Hand == string(assessment.HandUnknown) {
		if err := a.config.Store.Sessions().SetHand(sessionID, string(hand)); err != nil {
			log.Printf("Failed to record hand for session %s: %v", sessionID, err)
		}
	}

	return rec, result, nil
}

// EndSession stamps the session's end time and releases its handedness
// lock. Further assessments in this session are rejected.
func (a *App) EndSession(id string) (*store.Session, error) {
	if err := a.config.Store.Sessions().End(id, time.Now()); err != nil {
		return nil, err
	}
	a.releaseLock(id)

	log.Printf("Ended session %s", id)
	return a.config.Store.Sessions().GetByID(id)
}

// DeleteSession removes a session together with its stored assessments.
func (a *App) DeleteSession(id string) error {
	if err := a.config.Store.Sessions().Delete(id); err != nil {
		return err
	}
	a.releaseLock(id)
	return nil
}

// engineSession returns the handedness lock for a session, creating one
// if the session predates this process.
func (a *App) engineSession(id string) *assessment.Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s, ok := a.locks[id]; ok {
		return s
	}
	s := assessment.NewSession(a.config.Assessment)
	a.locks[id] = s
	return s
}

func (a *App) releaseLock(id string) {
	a.mu.Lock()
	delete(a.locks, id)
	a.mu.Unlock()
}
