package session

import (
	"fmt"
	"math"

	"github.com/lumenrig/projplan/internal/projection"
	"github.com/lumenrig/projplan/internal/registry"
)

// View is the read-only parameter panel of a projector.
type View struct {
	Name          string  `json:"name"`
	ThrowDistance float64 `json:"throwDistance"`
	ImageWidth    float64 `json:"imageWidth"`
	ImageHeight   float64 `json:"imageHeight"`
	ThrowRatio    float64 `json:"throwRatio"`
	Aspect        string  `json:"aspect"`
	// HorizontalFOV and VerticalFOV are in degrees.
	HorizontalFOV float64 `json:"horizontalFov"`
	VerticalFOV   float64 `json:"verticalFov"`
	Collection    string  `json:"collection,omitempty"`
	OverlapsWith  string  `json:"overlapsWith,omitempty"`
	// Display holds the lengths formatted in the session units.
	Display map[string]string `json:"display"`
}

// Info returns the parameter view of projector id.
func (s *Session) Info(id string) (View, error) {
	p, err := s.reg.Get(id)
	if err != nil {
		return View{}, fmt.Errorf("info: %w", err)
	}
	return newView(p, s.cfg.Units), nil
}

func newView(p *registry.Projector, u projection.Units) View {
	d := p.Params.ThrowDistance()
	w := p.Params.ImageWidth()
	h := p.ImageHeight()
	hfov := projection.HorizontalAngle(w, d)
	return View{
		Name:          p.Name,
		ThrowDistance: d,
		ImageWidth:    w,
		ImageHeight:   h,
		ThrowRatio:    p.Params.ThrowRatio(),
		Aspect:        fmt.Sprintf("%d:%d", p.Aspect.W, p.Aspect.H),
		HorizontalFOV: degrees(hfov),
		VerticalFOV:   degrees(projection.VerticalAngle(hfov, p.Aspect)),
		Collection:    p.Collection,
		OverlapsWith:  p.OverlapsWith,
		Display: map[string]string{
			"throwDistance": projection.FormatLength(d, u),
			"imageWidth":    projection.FormatLength(w, u),
			"imageHeight":   projection.FormatLength(h, u),
		},
	}
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
