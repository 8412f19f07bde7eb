// Package blend computes the edge blending zone between two projector
// images on the wall plane.
//
// A projector's footprint is approximated by an axis-aligned rectangle of
// image width by image height centred on the lens X/Z position. Orientation
// is ignored, so for projectors that are not square to the wall the region
// is only indicative.
package blend

import (
	"fmt"
	"math"

	"github.com/lumenrig/projplan/internal/registry"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Region is the overlap of two footprints in wall coordinates (X horizontal,
// Z vertical), in metres.
type Region struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Top    float64 `json:"top"`
	Area   float64 `json:"area"`
}

// Width returns the horizontal extent of the blend zone.
func (r Region) Width() float64 {
	return r.Right - r.Left
}

// Footprint returns the wall-plane rectangle of p as a polygon.
func Footprint(p *registry.Projector) geom.Polygon {
	hw := p.Params.ImageWidth() / 2
	hh := p.ImageHeight() / 2
	x, z := p.Position.X, p.Position.Z
	seq := geom.NewSequence([]float64{
		x - hw, z - hh,
		x + hw, z - hh,
		x + hw, z + hh,
		x - hw, z + hh,
		x - hw, z - hh,
	}, geom.DimXY)
	return geom.NewPolygon([]geom.LineString{geom.NewLineString(seq)})
}

// Compute returns the overlap of the footprints of a and b. The bool is
// false when the footprints do not touch. Footprints that only share an
// edge count as overlapping with zero area.
func Compute(a, b *registry.Projector) (Region, bool, error) {
	fa, fb := Footprint(a).AsGeometry(), Footprint(b).AsGeometry()
	if !geom.Intersects(fa, fb) {
		return Region{}, false, nil
	}

	inter, err := geom.Intersection(fa, fb)
	if err != nil {
		return Region{}, false, fmt.Errorf("blend %q/%q: %w", a.Name, b.Name, err)
	}

	ahw, bhw := a.Params.ImageWidth()/2, b.Params.ImageWidth()/2
	ahh, bhh := a.ImageHeight()/2, b.ImageHeight()/2
	r := Region{
		Left:   math.Max(a.Position.X-ahw, b.Position.X-bhw),
		Right:  math.Min(a.Position.X+ahw, b.Position.X+bhw),
		Bottom: math.Max(a.Position.Z-ahh, b.Position.Z-bhh),
		Top:    math.Min(a.Position.Z+ahh, b.Position.Z+bhh),
	}
	if !inter.IsEmpty() {
		r.Area = inter.Area()
	}
	return r, true, nil
}

// Factor returns the brightness weight of the fading projector at pos in a
// blend zone running from start to end, using a cosine falloff:
// 1 before start, 0 after end, 0.5*(1+cos(pi*t)) in between.
func Factor(pos, start, end float64) float64 {
	if pos <= start {
		return 1
	}
	if pos >= end {
		return 0
	}
	t := (pos - start) / (end - start)
	return 0.5 * (1 + math.Cos(math.Pi*t))
}
