package projection

import (
	"fmt"
	"math"
	"strings"

	"github.com/lumenrig/projplan/internal/model"
)

// ImageHeight returns the image height for a width and aspect ratio.
func ImageHeight(width float64, aspect model.AspectRatio) float64 {
	if aspect.W == 0 {
		return 0
	}
	return width * aspect.Ratio()
}

// HorizontalAngle returns the horizontal field of view in radians:
// 2*atan(W / 2D).
func HorizontalAngle(width, distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	return 2 * math.Atan(width/(2*distance))
}

// VerticalAngle returns the vertical field of view in radians for a
// horizontal angle and aspect ratio.
func VerticalAngle(horizontal float64, aspect model.AspectRatio) float64 {
	if aspect.W == 0 {
		return 0
	}
	return 2 * math.Atan(math.Tan(horizontal/2)*aspect.Ratio())
}

// Units is a display unit system.
type Units string

const (
	Metric      Units = "metric"
	Imperial    Units = "imperial"
	Millimeters Units = "millimeters"
)

// FeetPerMetre converts metres to feet.
const FeetPerMetre = 3.28084

// ParseUnits parses a unit system name; unknown names are metric.
func ParseUnits(s string) Units {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "imperial", "ft", "feet":
		return Imperial
	case "millimeters", "millimetres", "mm":
		return Millimeters
	default:
		return Metric
	}
}

// ConvertLength converts a length between metric and imperial units.
// Millimetres are treated as metric; formatting handles the scale.
func ConvertLength(value float64, from, to Units) float64 {
	if from == Millimeters {
		from = Metric
	}
	if to == Millimeters {
		to = Metric
	}
	switch {
	case from == to:
		return value
	case from == Metric && to == Imperial:
		return value * FeetPerMetre
	default:
		return value / FeetPerMetre
	}
}

// FormatLength formats a length given in metres for display.
func FormatLength(metres float64, u Units) string {
	switch u {
	case Imperial:
		return fmt.Sprintf("%.1f ft", metres*FeetPerMetre)
	case Millimeters:
		return fmt.Sprintf("%d mm", int64(math.Round(metres*1000)))
	default:
		return fmt.Sprintf("%.1f m", metres)
	}
}
