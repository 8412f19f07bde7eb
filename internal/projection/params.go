// Package projection keeps the three linked projection parameters of a
// projector consistent: throw distance, image width and throw ratio.
//
// The fields of ParameterSet are unexported. The only ways to change them are
// the validated constructors and Engine.ApplyEdit, so distance == ratio *
// width cannot be broken by an unrelated code path.
package projection

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/lumenrig/projplan/internal/model"
)

// Epsilon is the smallest denominator the engine divides by.
const Epsilon = 1e-6

// Tolerance is the accepted |distance - ratio*width| for a settled set.
const Tolerance = 1e-6

// Default parameter values for a freshly added projector.
const (
	DefaultThrowDistance = 4.0
	DefaultImageWidth    = 2.0
	DefaultThrowRatio    = 2.0
)

// Field names one of the three linked parameters.
type Field int

const (
	ThrowDistance Field = iota + 1
	ImageWidth
	ThrowRatio
)

func (f Field) String() string {
	switch f {
	case ThrowDistance:
		return "throw_distance"
	case ImageWidth:
		return "image_width"
	case ThrowRatio:
		return "throw_ratio"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

func (f Field) valid() bool {
	return f == ThrowDistance || f == ImageWidth || f == ThrowRatio
}

// ParseField accepts the canonical field names and the short forms used on
// the command line ("distance", "width", "ratio").
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "throw_distance", "distance", "d":
		return ThrowDistance, nil
	case "image_width", "width", "w":
		return ImageWidth, nil
	case "throw_ratio", "ratio", "tr":
		return ThrowRatio, nil
	}
	return 0, fmt.Errorf("%q: %w", s, model.ErrUnknownField)
}

// ParameterSet holds the linked scalars of one projector.
type ParameterSet struct {
	distance float64
	width    float64
	ratio    float64
}

// Default returns the parameter set of a newly added projector
// (distance 4.0, width 2.0, ratio 2.0).
func Default() ParameterSet {
	return ParameterSet{
		distance: DefaultThrowDistance,
		width:    DefaultImageWidth,
		ratio:    DefaultThrowRatio,
	}
}

// NewParameterSet validates and returns a settled parameter set. Every value
// must be positive and finite, and distance must equal ratio*width within
// Tolerance (scaled by the distance for large rooms).
func NewParameterSet(distance, width, ratio float64) (ParameterSet, error) {
	for _, v := range []float64{distance, width, ratio} {
		if !inDomain(v) {
			return ParameterSet{}, fmt.Errorf("parameter %v: %w", v, model.ErrOutOfDomain)
		}
	}
	if !settled(distance, width, ratio) {
		return ParameterSet{}, fmt.Errorf("distance %v != ratio %v * width %v: %w",
			distance, ratio, width, model.ErrOutOfDomain)
	}
	return ParameterSet{distance: distance, width: width, ratio: ratio}, nil
}

// Restore rebuilds a stored parameter set. It accepts every state Engine.ApplyEdit
// can leave behind: a settled set, or one whose recomputation was skipped
// because the width or the ratio is below Epsilon.
func Restore(distance, width, ratio float64) (ParameterSet, error) {
	for _, v := range []float64{distance, width, ratio} {
		if !inDomain(v) {
			return ParameterSet{}, fmt.Errorf("parameter %v: %w", v, model.ErrOutOfDomain)
		}
	}
	ps := ParameterSet{distance: distance, width: width, ratio: ratio}
	if !ps.Valid() {
		return ParameterSet{}, fmt.Errorf("distance %v != ratio %v * width %v: %w",
			distance, ratio, width, model.ErrOutOfDomain)
	}
	return ps, nil
}

// FromMeasurements builds a set from the two physical measurements, deriving
// the ratio.
func FromMeasurements(distance, width float64) (ParameterSet, error) {
	if !inDomain(distance) || !inDomain(width) {
		return ParameterSet{}, fmt.Errorf("distance %v, width %v: %w", distance, width, model.ErrOutOfDomain)
	}
	return ParameterSet{distance: distance, width: width, ratio: distance / width}, nil
}

// ThrowDistance returns the distance from the lens to the target surface.
func (p ParameterSet) ThrowDistance() float64 { return p.distance }

// ImageWidth returns the width of the image at the target surface.
func (p ParameterSet) ImageWidth() float64 { return p.width }

// ThrowRatio returns distance divided by width.
func (p ParameterSet) ThrowRatio() float64 { return p.ratio }

// Get returns the value of f, or 0 for an unknown field.
func (p ParameterSet) Get(f Field) float64 {
	switch f {
	case ThrowDistance:
		return p.distance
	case ImageWidth:
		return p.width
	case ThrowRatio:
		return p.ratio
	}
	return 0
}

// Settled reports whether distance equals ratio * width within Tolerance.
func (p ParameterSet) Settled() bool {
	return settled(p.distance, p.width, p.ratio)
}

// Valid reports whether every value is positive and finite and the set is
// either settled or unsettled only because a denominator is below Epsilon.
func (p ParameterSet) Valid() bool {
	if !inDomain(p.distance) || !inDomain(p.width) || !inDomain(p.ratio) {
		return false
	}
	return p.Settled() || p.width < Epsilon || p.ratio < Epsilon
}

type paramsJSON struct {
	ThrowDistance float64 `json:"throwDistance"`
	ImageWidth    float64 `json:"imageWidth"`
	ThrowRatio    float64 `json:"throwRatio"`
}

// MarshalJSON implements json.Marshaler.
func (p ParameterSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(paramsJSON{
		ThrowDistance: p.distance,
		ImageWidth:    p.width,
		ThrowRatio:    p.ratio,
	})
}

// UnmarshalJSON implements json.Unmarshaler. The decoded values go through
// Restore, so a stored set whose ratio does not match is rejected unless the
// engine could have produced it.
func (p *ParameterSet) UnmarshalJSON(data []byte) error {
	var raw paramsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ps, err := Restore(raw.ThrowDistance, raw.ImageWidth, raw.ThrowRatio)
	if err != nil {
		return err
	}
	*p = ps
	return nil
}

func inDomain(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func settled(distance, width, ratio float64) bool {
	return math.Abs(distance-ratio*width) <= Tolerance*math.Max(1, distance)
}
