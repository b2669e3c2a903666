// Package assessment turns captured landmark frames into clinical hand
// and wrist motion metrics: per-finger total active motion, Kapandji
// thumb opposition, elbow-referenced wrist flexion/extension and
// radial/ulnar deviation. All calculators are pure functions of the
// frames and a Config; the only mutable state is the per-session
// handedness lock held by Session.
package assessment

import (
	"errors"
	"fmt"

	"github.com/sahanad/mudra/internal/landmark"
)

// Type identifies one assessment protocol.
type Type string

const (
	// TypeTAM measures per-finger MCP/PIP/DIP flexion and total
	// active motion.
	TypeTAM Type = "tam"

	// TypeKapandji scores thumb opposition on the 0..10 Kapandji
	// scale.
	TypeKapandji Type = "kapandji"

	// TypeWristFlexExt measures wrist flexion and extension against
	// the forearm.
	TypeWristFlexExt Type = "wrist_flexion_extension"

	// TypeDeviation measures radial and ulnar wrist deviation.
	TypeDeviation Type = "radial_ulnar_deviation"
)

// Types lists every supported assessment type.
var Types = []Type{TypeTAM, TypeKapandji, TypeWristFlexExt, TypeDeviation}

var (
	// ErrUnknownType is returned when an assessment type is not one
	// of the supported protocols.
	ErrUnknownType = errors.New("unknown assessment type")

	// ErrOutOfOrder is returned when frames within a repetition are
	// not in capture-timestamp order.
	ErrOutOfOrder = errors.New("frames out of timestamp order")
)

// ParseType validates a wire-format assessment type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// Valid reports whether t is a supported assessment type.
func (t Type) Valid() bool {
	switch t {
	case TypeTAM, TypeKapandji, TypeWristFlexExt, TypeDeviation:
		return true
	}
	return false
}

// ValidateOrder checks that every repetition's frames are in
// non-decreasing capture-timestamp order. Handedness resolution and
// neutral-reference capture are order-sensitive, so callers must reject
// unordered input before evaluation.
func ValidateOrder(reps []landmark.Repetition) error {
	for i, rep := range reps {
		for j := 1; j < len(rep.Frames); j++ {
			if rep.Frames[j].TimestampMs < rep.Frames[j-1].TimestampMs {
				return fmt.Errorf("%w: repetition %d frame %d", ErrOutOfOrder, i, j)
			}
		}
	}
	return nil
}
