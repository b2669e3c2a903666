package landmark

import (
	"math"

	"github.com/golang/geo/r3"
)

// zeroLength is the squared-norm floor below which a vector is treated
// as degenerate (duplicate or missing landmarks).
const zeroLength = 1e-10

// Vec returns the landmark position as an r3 vector.
func (l Landmark) Vec() r3.Vector {
	return r3.Vector{X: l.X, Y: l.Y, Z: l.Z}
}

// Direction returns the vector pointing from one landmark to another.
func Direction(from, to Landmark) r3.Vector {
	return to.Vec().Sub(from.Vec())
}

// Distance returns the Euclidean 3D distance between two landmarks.
func Distance(a, b Landmark) float64 {
	return Direction(a, b).Norm()
}

// Midpoint returns the point halfway between two landmarks. Visibility
// is the lower of the two, since reaching a midpoint target requires
// both of its anchors to be tracked.
func Midpoint(a, b Landmark) Landmark {
	return Landmark{
		X:          (a.X + b.X) / 2,
		Y:          (a.Y + b.Y) / 2,
		Z:          (a.Z + b.Z) / 2,
		Visibility: math.Min(a.Visibility, b.Visibility),
	}
}

// Degenerate reports whether a vector is too short to carry a
// direction, the same floor AngleBetween applies to its inputs.
func Degenerate(v r3.Vector) bool {
	return v.Norm2() < zeroLength
}

// AngleBetween returns the angle between two vectors in degrees.
// The cosine of the angle is clamped to [-1, 1] before the arccosine so
// floating-point overshoot can never produce a domain error; the result
// is therefore always within [0, 180]. ok is false when either vector
// has near-zero length, in which case callers report the joint as 0°
// rather than propagating NaN.
func AngleBetween(u, v r3.Vector) (deg float64, ok bool) {
	if u.Norm2() < zeroLength || v.Norm2() < zeroLength {
		return 0, false
	}
	cos := u.Dot(v) / (u.Norm() * v.Norm())
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi, true
}
