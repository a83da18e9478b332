package vmath

import "math"

// Angles in this file are degrees. 0° points along +Y and angles grow toward +X

// NormalizeDegrees wraps an angle into [0, 360)
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// TrimDegrees applies a single ±360 correction
// Valid only when a is within one turn of [0, 360), which holds after a bounded rotation step
func TrimDegrees(a float64) float64 {
	if a >= 360 {
		a -= 360
	}
	if a < 0 {
		a += 360
		if a >= 360 { // Tiny negatives round up to 360
			a = 0
		}
	}
	return a
}

// DirectionFromDegrees returns the unit vector for an aim angle
func DirectionFromDegrees(a float64) (float64, float64) {
	rad := a * math.Pi / 180
	return math.Sin(rad), math.Cos(rad)
}

// DegreesFromDirection returns the aim angle of a vector in [0, 360), zero vector returns 0
func DegreesFromDirection(x, y float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	return NormalizeDegrees(math.Atan2(x, y) * 180 / math.Pi)
}

// AngleBetween returns the unsigned angle between two vectors in [0, 180]
// Zero vectors yield 0
func AngleBetween(ax, ay, bx, by float64) float64 {
	la := math.Hypot(ax, ay)
	lb := math.Hypot(bx, by)
	if la < 1e-9 || lb < 1e-9 {
		return 0
	}
	cos := (ax*bx + ay*by) / (la * lb)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos) * 180 / math.Pi
}

// SignedAngle returns the rotation from a to b in (-180, 180], positive is clockwise
func SignedAngle(ax, ay, bx, by float64) float64 {
	unsigned := AngleBetween(ax, ay, bx, by)
	// Cross product sign in the x-right/y-down frame, clockwise positive
	cross := ay*bx - ax*by
	if cross < 0 {
		return -unsigned
	}
	return unsigned
}

// ShortestArc returns the signed delta from angle a to angle b in (-180, 180]
func ShortestArc(a, b float64) float64 {
	d := NormalizeDegrees(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}

// StepToward advances current by at most maxStep along the signed delta
// Returns the new (untrimmed) angle
func StepToward(current, delta, maxStep float64) float64 {
	if math.Abs(delta) > maxStep {
		if delta < 0 {
			return current - maxStep
		}
		return current + maxStep
	}
	return current + delta
}
