// Package server provides the HTTP server for the Mudra assessment service.
package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/sahanad/mudra/internal/app"
	"github.com/sahanad/mudra/internal/assessment"
	"github.com/sahanad/mudra/internal/landmark"
	"github.com/sahanad/mudra/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// IntakeHandler records one assessment per WebSocket connection.
type IntakeHandler struct {
	app *app.App
}

// NewIntakeHandler creates a new IntakeHandler with the given application.
func NewIntakeHandler(a *app.App) *IntakeHandler {
	return &IntakeHandler{app: a}
}

// intakeMessage is one client message on the intake stream.
type intakeMessage struct {
	Kind  string                  `json:"kind"`
	Frame *landmark.CapturedFrame `json:"frame,omitempty"`
}

// intakeReply is one server message on the intake stream.
type intakeReply struct {
	Kind         string             `json:"kind"`
	AssessmentID string             `json:"assessment_id,omitempty"`
	Result       *assessment.Result `json:"result,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// ServeHTTP upgrades GET /ws/intake?session={id}&type={type} and records
// streamed frames until the client ends the session.
//
// The client sends JSON messages: "frame" carries one captured frame,
// "repetition_end" closes the repetition in progress, and "session_end"
// asks for evaluation. The server answers "session_end" with a "result"
// message. Out-of-order frames, buffer overflow, and unknown message
// kinds end the stream with an "error" message.
func (h *IntakeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	typ, err := assessment.ParseType(r.URL.Query().Get("type"))
	if err != nil {
		http.Error(w, "Unknown assessment type", http.StatusBadRequest)
		return
	}
	if _, err := h.app.Store().Sessions().GetByID(sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to get session", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	recorder := app.NewRecorder()

	for {
		var msg intakeMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Kind {
		case "frame":
			if msg.Frame == nil {
				h.fail(conn, "frame message without a frame")
				return
			}
			if err := recorder.AddFrame(*msg.Frame); err != nil {
				h.fail(conn, err.Error())
				return
			}

		case "repetition_end":
			recorder.EndRepetition()

		case "session_end":
			rec, result, err := h.app.RecordAssessment(sessionID, typ, recorder.Repetitions())
			if err != nil {
				h.fail(conn, err.Error())
				return
			}
			if err := conn.WriteJSON(intakeReply{Kind: "result", AssessmentID: rec.ID, Result: result}); err != nil {
				log.Printf("websocket write error: %v", err)
			}
			return

		default:
			h.fail(conn, fmt.Sprintf("unknown message kind %q", msg.Kind))
			return
		}
	}
}

// fail sends an error reply; the deferred close drops the stream.
func (h *IntakeHandler) fail(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(intakeReply{Kind: "error", Error: message}); err != nil {
		log.Printf("websocket write error: %v", err)
	}
}
