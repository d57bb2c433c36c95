package arena

import "math"

// Vec is a 2D vector in arena coordinates.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

func (v Vec) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns the unit vector, or the zero vector when the input has
// no length. The length pre-check guards the division.
func (v Vec) Normalized() Vec {
	length := v.Length()
	if length == 0 {
		return Vec{}
	}
	return Vec{X: v.X / length, Y: v.Y / length}
}

// Heading returns the angle of the vector in radians.
func (v Vec) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

// vecFromAngle builds a unit vector pointing along the given angle.
func vecFromAngle(angle float64) Vec {
	return Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// distanceSquared avoids the square root for overlap tests.
func distanceSquared(a, b Vec) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// circlesOverlap reports whether two circles intersect, comparing squared
// distances.
func circlesOverlap(a Vec, ra float64, b Vec, rb float64) bool {
	sum := ra + rb
	return distanceSquared(a, b) <= sum*sum
}

// angleDiff returns the signed smallest difference between two angles,
// normalized to (-pi, pi].
func angleDiff(from, to float64) float64 {
	diff := math.Mod(to-from, 2*math.Pi)
	if diff > math.Pi {
		diff -= 2 * math.Pi
	} else if diff <= -math.Pi {
		diff += 2 * math.Pi
	}
	return diff
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
