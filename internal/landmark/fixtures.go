package landmark

import "math"

// Synthetic frames for tests and the session simulator. Coordinates are
// camera-normalized with the wrist anchored at (0.50, 0.80); fingers
// point toward the top of the frame and curl toward +X.

// fixtureVisibility is applied to every synthetic landmark.
const fixtureVisibility = 0.95

// fingerRay describes one finger's direction from the wrist and its
// relative length.
type fingerRay struct {
	finger Finger
	dirX   float64
	dirY   float64
	scale  float64
}

var fixtureRays = []fingerRay{
	{FingerIndex, 0.22, -1, 1.00},
	{FingerMiddle, 0.04, -1, 1.05},
	{FingerRing, -0.10, -1, 0.98},
	{FingerPinky, -0.24, -1, 0.85},
}

// Segment lengths from the wrist along a finger: metacarpal, proximal,
// middle and distal phalanx.
const (
	segMeta     = 0.200
	segProximal = 0.085
	segMiddle   = 0.055
	segDistal   = 0.045
)

// FlexedHand returns a synthetic hand frame whose four fingers are bent
// by the given angles at the MCP, PIP and DIP joints. Zero angles yield
// a flat hand with every finger chain colinear from wrist to tip, so
// each joint measures exactly 0°.
func FlexedHand(mcpDeg, pipDeg, dipDeg float64) HandFrame {
	var h HandFrame

	wrist := Landmark{X: 0.50, Y: 0.80, Visibility: fixtureVisibility}
	h.Points[Wrist] = wrist

	for _, ray := range fixtureRays {
		norm := math.Hypot(ray.dirX, ray.dirY)
		dx, dy := ray.dirX/norm, ray.dirY/norm

		mcp, pip, dip, tip := ray.finger.Chain()

		x, y := wrist.X, wrist.Y
		x, y = x+dx*segMeta*ray.scale, y+dy*segMeta*ray.scale
		h.Points[mcp] = Landmark{X: x, Y: y, Visibility: fixtureVisibility}

		dx, dy = rotate(dx, dy, mcpDeg)
		x, y = x+dx*segProximal*ray.scale, y+dy*segProximal*ray.scale
		h.Points[pip] = Landmark{X: x, Y: y, Visibility: fixtureVisibility}

		dx, dy = rotate(dx, dy, pipDeg)
		x, y = x+dx*segMiddle*ray.scale, y+dy*segMiddle*ray.scale
		h.Points[dip] = Landmark{X: x, Y: y, Visibility: fixtureVisibility}

		dx, dy = rotate(dx, dy, dipDeg)
		x, y = x+dx*segDistal*ray.scale, y+dy*segDistal*ray.scale
		h.Points[tip] = Landmark{X: x, Y: y, Visibility: fixtureVisibility}
	}

	// Thumb along a fixed radial ray, never curled by the parameters.
	tn := math.Hypot(0.9, -0.45)
	tdx, tdy := 0.9/tn, -0.45/tn
	for i, dist := range []float64{0.07, 0.13, 0.18, 0.23} {
		h.Points[ThumbCMC+i] = Landmark{
			X:          wrist.X + tdx*dist,
			Y:          wrist.Y + tdy*dist,
			Visibility: fixtureVisibility,
		}
	}

	return h
}

// OpenHand returns a flat hand with all fingers fully extended.
func OpenHand() HandFrame {
	return FlexedHand(0, 0, 0)
}

// FistHand returns a tightly curled hand with large flexion at every
// joint.
func FistHand() HandFrame {
	return FlexedHand(70, 95, 60)
}

// ThumbReach returns a copy of the hand with the thumb tip moved onto
// the given target point, the thumb IP trailing halfway behind it.
func ThumbReach(h HandFrame, target Landmark) HandFrame {
	out := h
	out.Points[ThumbTip] = Landmark{
		X:          target.X,
		Y:          target.Y,
		Z:          target.Z,
		Visibility: fixtureVisibility,
	}
	out.Points[ThumbIP] = Midpoint(out.Points[ThumbMCP], out.Points[ThumbTip])
	return out
}

// MirrorHandX returns the hand reflected across the vertical axis of the
// frame. Joint angles are orientation-invariant, so calculators must
// report identical values for the mirrored hand.
func MirrorHandX(h HandFrame) HandFrame {
	out := h
	for i := range out.Points {
		out.Points[i].X = 1 - out.Points[i].X
	}
	return out
}

// UpperBodyPose returns a pose frame for a subject facing the camera
// with one forearm raised vertically. The tracked side's pose wrist
// coincides with the synthetic hand wrist at (0.50, 0.80) and its elbow
// sits directly below, so a flat upright hand reads as a neutral wrist.
func UpperBodyPose(trackedRight bool) PoseFrame {
	var p PoseFrame

	set := func(i int, x, y float64) {
		p.Points[i] = Landmark{X: x, Y: y, Visibility: 0.9}
	}

	// Subject left appears on the right of the image.
	set(LeftShoulder, 0.62, 0.42)
	set(RightShoulder, 0.38, 0.42)

	if trackedRight {
		set(RightWrist, 0.50, 0.80)
		set(RightElbow, 0.50, 0.95)
		set(LeftWrist, 0.10, 0.78)
		set(LeftElbow, 0.08, 0.95)
	} else {
		set(LeftWrist, 0.50, 0.80)
		set(LeftElbow, 0.50, 0.95)
		set(RightWrist, 0.90, 0.78)
		set(RightElbow, 0.92, 0.95)
	}

	return p
}

// rotate turns a unit direction by deg degrees in the image plane.
func rotate(dx, dy, deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	return dx*cos - dy*sin, dx*sin + dy*cos
}
