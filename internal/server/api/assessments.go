package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sahanad/mudra/internal/app"
	"github.com/sahanad/mudra/internal/assessment"
	"github.com/sahanad/mudra/internal/landmark"
	"github.com/sahanad/mudra/internal/store"
)

// AssessmentsHandler handles HTTP requests for assessment resources.
type AssessmentsHandler struct {
	app *app.App
}

// NewAssessmentsHandler creates a new AssessmentsHandler with the given application.
func NewAssessmentsHandler(a *app.App) *AssessmentsHandler {
	return &AssessmentsHandler{app: a}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/sessions/{id}/assessments and /api/assessments/{id}
func (h *AssessmentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/sessions/") {
		// Nested collection: /api/sessions/{id}/assessments
		path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
		parts := strings.Split(path, "/")

		if len(parts) != 2 || parts[1] != "assessments" {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}

		sessionID := parts[0]
		switch r.Method {
		case http.MethodGet:
			h.list(w, r, sessionID)
		case http.MethodPost:
			h.record(w, r, sessionID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/assessments/{id}
	id := strings.TrimPrefix(r.URL.Path, "/api/assessments")
	id = strings.TrimPrefix(id, "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type recordAssessmentRequest struct {
	Type        string                `json:"type"`
	Repetitions []landmark.Repetition `json:"repetitions"`
}

type assessmentResponse struct {
	ID          string          `json:"id"`
	SessionID   string          `json:"session_id"`
	Type        string          `json:"type"`
	Repetitions int             `json:"repetitions"`
	DurationMs  int64           `json:"duration_ms"`
	Result      json.RawMessage `json:"result"`
	CreatedAt   string          `json:"created_at"`
}

type listAssessmentsResponse struct {
	Assessments []assessmentResponse `json:"assessments"`
}

// toAssessmentResponse converts a store.Assessment to an assessmentResponse.
func toAssessmentResponse(a *store.Assessment) assessmentResponse {
	return assessmentResponse{
		ID:          a.ID,
		SessionID:   a.SessionID,
		Type:        a.Type,
		Repetitions: a.Repetitions,
		DurationMs:  a.DurationMs,
		Result:      json.RawMessage(a.Result),
		CreatedAt:   a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// record handles POST /api/sessions/{id}/assessments: it evaluates the
// submitted repetitions and persists the result.
func (h *AssessmentsHandler) record(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req recordAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	typ, err := assessment.ParseType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown assessment type")
		return
	}

	rec, _, err := h.app.RecordAssessment(sessionID, typ, req.Repetitions)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, assessment.ErrOutOfOrder):
			writeError(w, http.StatusBadRequest, "Frame timestamps out of order")
		case errors.Is(err, app.ErrSessionEnded):
			writeError(w, http.StatusConflict, "Session already ended")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to record assessment")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toAssessmentResponse(rec))
}

// list handles GET /api/sessions/{id}/assessments, oldest first.
func (h *AssessmentsHandler) list(w http.ResponseWriter, r *http.Request, sessionID string) {
	// Verify the session exists
	if _, err := h.app.Store().Sessions().GetByID(sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	assessments, err := h.app.Store().Assessments().ListBySession(sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assessments")
		return
	}

	response := listAssessmentsResponse{
		Assessments: make([]assessmentResponse, 0, len(assessments)),
	}

	for _, a := range assessments {
		response.Assessments = append(response.Assessments, toAssessmentResponse(a))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/assessments/{id} and returns a single stored result.
func (h *AssessmentsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	a, err := h.app.Store().Assessments().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Assessment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get assessment")
		return
	}

	writeJSON(w, http.StatusOK, toAssessmentResponse(a))
}

// delete handles DELETE /api/assessments/{id} and removes a stored result.
func (h *AssessmentsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.app.Store().Assessments().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Assessment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete assessment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
