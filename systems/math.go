package systems

import "math"

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// ClampLevel maps negative or NaN levels to zero.
func ClampLevel(level float64) float64 {
	if !(level > 0) {
		return 0
	}
	return level
}

// normalizeAngle wraps an angle to (-Pi, Pi].
func normalizeAngle(angle float32) float32 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// NormalizeAngle wraps an angle to (-Pi, Pi].
func NormalizeAngle(angle float32) float32 {
	if math.IsNaN(float64(angle)) || math.IsInf(float64(angle), 0) {
		return 0
	}
	return normalizeAngle(angle)
}

// HeadingTo returns the heading that points along (dx, dy).
// Heading 0 is +Y, positive angles turn toward +X.
func HeadingTo(dx, dy float32) float32 {
	return float32(math.Atan2(float64(dx), float64(dy)))
}

// HeadingVector returns the unit direction for a heading.
func HeadingVector(heading float32) (dx, dy float32) {
	s, c := math.Sincos(float64(heading))
	return float32(s), float32(c)
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float32) float32 {
	return float32(math.Sqrt(float64(distanceSq(x1, y1, x2, y2))))
}

// lerp moves a toward b by factor t.
func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
