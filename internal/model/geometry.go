package model

import "math"

// Vec3 is a point or offset in host scene space, in metres. The host is Z-up;
// projectors throw along their local -Y axis.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the Euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Finite reports whether no component is NaN or infinite.
func (v Vec3) Finite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Rotation is an XYZ Euler rotation in radians. The planner only copies
// rotations between projectors; it never composes them.
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Finite reports whether no angle is NaN or infinite.
func (r Rotation) Finite() bool {
	return finite(r.X) && finite(r.Y) && finite(r.Z)
}

// AspectRatio is the width:height ratio of the projected image, e.g. 16:9.
type AspectRatio struct {
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

// DefaultAspect is 16:9.
var DefaultAspect = AspectRatio{W: 16, H: 9}

// Valid reports whether both components are at least 1.
func (a AspectRatio) Valid() bool {
	return a.W >= 1 && a.H >= 1
}

// Ratio returns height divided by width.
func (a AspectRatio) Ratio() float64 {
	if a.W == 0 {
		return 0
	}
	return float64(a.H) / float64(a.W)
}
