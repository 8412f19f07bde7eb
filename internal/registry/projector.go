package registry

import (
	"github.com/lumenrig/projplan/internal/model"
	"github.com/lumenrig/projplan/internal/projection"
)

// Projector is one projector entity. Position and Orientation mirror the
// host scene object; the host reads and writes them through the pointer
// returned by Registry.Get.
//
// Collection and OverlapsWith are back-references by name (empty means
// none). They are written by collection.Store and overlap.Detector; the
// projection parameters can only change through projection.Engine.
type Projector struct {
	Name         string                  `json:"name"`
	Position     model.Vec3              `json:"position"`
	Orientation  model.Rotation          `json:"orientation"`
	Params       projection.ParameterSet `json:"params"`
	Aspect       model.AspectRatio       `json:"aspect"`
	Collection   string                  `json:"collection,omitempty"`
	OverlapsWith string                  `json:"overlapsWith,omitempty"`
	EdgeBlend    float64                 `json:"edgeBlend"`
	Active       bool                    `json:"active"`
	ShowCone     bool                    `json:"showCone"`
}

// ImageHeight returns the projected image height from width and aspect.
func (p *Projector) ImageHeight() float64 {
	return projection.ImageHeight(p.Params.ImageWidth(), p.Aspect)
}

// InCollection reports whether p belongs to a collection.
func (p *Projector) InCollection() bool {
	return p.Collection != ""
}

// Defaults are the attribute values given to newly created projectors.
type Defaults struct {
	Params    projection.ParameterSet
	Aspect    model.AspectRatio
	EdgeBlend float64
}

// StandardDefaults returns distance 4.0, width 2.0, ratio 2.0, 16:9 and an
// edge blend of 0.2.
func StandardDefaults() Defaults {
	return Defaults{
		Params:    projection.Default(),
		Aspect:    model.DefaultAspect,
		EdgeBlend: DefaultEdgeBlend,
	}
}

// DefaultEdgeBlend is the edge blend amount of a new projector.
const DefaultEdgeBlend = 0.2

func (d Defaults) newProjector(name string) *Projector {
	return &Projector{
		Name:      name,
		Params:    d.Params,
		Aspect:    d.Aspect,
		EdgeBlend: d.EdgeBlend,
		Active:    true,
		ShowCone:  true,
	}
}
