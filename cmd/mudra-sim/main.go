// Command mudra-sim streams a synthetic recording session against a
// running mudra server.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/sahanad/mudra/internal/landmark"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "mudra server base URL")
	subject := flag.String("subject", "sim-subject", "subject identifier")
	typ := flag.String("type", "tam", "assessment type to stream")
	reps := flag.Int("reps", 3, "repetitions to stream")
	frames := flag.Int("frames", 30, "frames per repetition")
	flag.Parse()

	if *frames < 2 {
		log.Fatal("need at least 2 frames per repetition")
	}

	sessionID, err := createSession(*serverURL, *subject)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	log.Printf("Opened session %s", sessionID)

	reply, err := streamAssessment(*serverURL, sessionID, *typ, *reps, *frames)
	if err != nil {
		log.Fatalf("Failed to stream assessment: %v", err)
	}
	log.Printf("Stored assessment %s", reply.AssessmentID)
	log.Printf("Result: %s", reply.Result)

	if err := endSession(*serverURL, sessionID); err != nil {
		log.Fatalf("Failed to end session: %v", err)
	}
	log.Printf("✓ Session %s complete", sessionID)
}

// Client copies of the intake stream message shapes.

type intakeMessage struct {
	Kind  string                  `json:"kind"`
	Frame *landmark.CapturedFrame `json:"frame,omitempty"`
}

type intakeReply struct {
	Kind         string          `json:"kind"`
	AssessmentID string          `json:"assessment_id,omitempty"`
	Result       json.RawMessage `json:"result,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// createSession opens a recording session over REST.
func createSession(serverURL, subject string) (string, error) {
	body, _ := json.Marshal(map[string]string{"subject": subject})

	resp, err := http.Post(serverURL+"/api/sessions", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.ID, nil
}

// streamAssessment plays synthetic frames over the intake WebSocket and
// returns the server's evaluation.
func streamAssessment(serverURL, sessionID, typ string, reps, frames int) (*intakeReply, error) {
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/ws/intake?session=" + sessionID + "&type=" + typ
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	pose := landmark.UpperBodyPose(true)
	ts := int64(0)
	for rep := 0; rep < reps; rep++ {
		for j := 0; j < frames; j++ {
			t := float64(j) / float64(frames-1)
			hand := frameFor(typ, t)
			frame := landmark.CapturedFrame{
				TimestampMs:      ts,
				Hand:             &hand,
				Pose:             &pose,
				DetectionQuality: 0.9,
			}
			if err := conn.WriteJSON(intakeMessage{Kind: "frame", Frame: &frame}); err != nil {
				return nil, fmt.Errorf("send frame: %w", err)
			}
			ts += 33
		}
		if err := conn.WriteJSON(intakeMessage{Kind: "repetition_end"}); err != nil {
			return nil, fmt.Errorf("end repetition: %w", err)
		}
		log.Printf("%d/%d repetitions", rep+1, reps)
	}

	if err := conn.WriteJSON(intakeMessage{Kind: "session_end"}); err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}

	var reply intakeReply
	if err := conn.ReadJSON(&reply); err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	if reply.Kind != "result" {
		return nil, fmt.Errorf("server error: %s", reply.Error)
	}
	return &reply, nil
}

// endSession stamps the session's end time over REST.
func endSession(serverURL, sessionID string) error {
	resp, err := http.Post(serverURL+"/api/sessions/"+sessionID+"/end", "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

// frameFor synthesizes a hand pose for the assessment type at motion
// phase t in [0,1].
func frameFor(typ string, t float64) landmark.HandFrame {
	switch typ {
	case "tam":
		// Sweep from open hand toward a fist
		return landmark.FlexedHand(70*t, 95*t, 60*t)
	case "kapandji":
		// Hold open, then bring the thumb to the little finger tip
		h := landmark.OpenHand()
		if t < 0.5 {
			return h
		}
		return landmark.ThumbReach(h, h.Points[landmark.PinkyTip])
	case "wrist_flexion_extension":
		// Swing the hand out of the capture plane in both directions
		return tiltHand(landmark.OpenHand(), 0.06*math.Sin(2*math.Pi*t))
	case "radial_ulnar_deviation":
		// Swing the hand sideways in the capture plane
		return swingHand(landmark.OpenHand(), 20*math.Sin(2*math.Pi*t))
	}
	return landmark.OpenHand()
}

// tiltHand pushes every landmark but the wrist out of the capture plane.
func tiltHand(h landmark.HandFrame, z float64) landmark.HandFrame {
	for i := range h.Points {
		if i == landmark.Wrist {
			continue
		}
		h.Points[i].Z += z
	}
	return h
}

// swingHand rotates every landmark about the wrist within the capture plane.
func swingHand(h landmark.HandFrame, deg float64) landmark.HandFrame {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	w := h.Points[landmark.Wrist]
	for i := range h.Points {
		if i == landmark.Wrist {
			continue
		}
		dx, dy := h.Points[i].X-w.X, h.Points[i].Y-w.Y
		h.Points[i].X = w.X + dx*cos - dy*sin
		h.Points[i].Y = w.Y + dx*sin + dy*cos
	}
	return h
}
