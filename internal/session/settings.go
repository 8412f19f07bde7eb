package session

import (
	"fmt"

	"github.com/lumenrig/projplan/internal/config"
	"github.com/lumenrig/projplan/internal/model"
	"github.com/lumenrig/projplan/internal/overlap"
	"github.com/lumenrig/projplan/internal/projection"
	"github.com/lumenrig/projplan/internal/registry"
)

// ConfigFrom builds a session configuration from loaded settings. The
// default parameter triple must satisfy ratio = distance / width.
func ConfigFrom(d config.Defaults, o config.OverlapConfig, units string) (Config, error) {
	params, err := projection.NewParameterSet(d.ThrowDistance, d.ImageWidth, d.ThrowRatio)
	if err != nil {
		return Config{}, fmt.Errorf("default parameters: %w", err)
	}
	if d.AspectW < 1 || d.AspectH < 1 {
		return Config{}, fmt.Errorf("default aspect %d:%d: %w", d.AspectW, d.AspectH, model.ErrOutOfDomain)
	}
	if !(d.EdgeBlend >= 0 && d.EdgeBlend <= 1) {
		return Config{}, fmt.Errorf("default edge blend %v: %w", d.EdgeBlend, model.ErrOutOfDomain)
	}
	if !(d.AlignSpacing > 0) {
		return Config{}, fmt.Errorf("default align spacing %v: %w", d.AlignSpacing, model.ErrOutOfDomain)
	}
	if !(o.ThrowTolerance > 0) || !(o.ProximityFactor > 0) {
		return Config{}, fmt.Errorf("overlap thresholds %v/%v: %w", o.ThrowTolerance, o.ProximityFactor, model.ErrOutOfDomain)
	}

	return Config{
		Defaults: registry.Defaults{
			Params:    params,
			Aspect:    model.AspectRatio{W: uint32(d.AspectW), H: uint32(d.AspectH)},
			EdgeBlend: d.EdgeBlend,
		},
		Overlap: overlap.Config{
			ThrowTolerance:  o.ThrowTolerance,
			ProximityFactor: o.ProximityFactor,
		},
		Units:           projection.ParseUnits(units),
		DuplicateOffset: d.DuplicateOffset,
		AlignSpacing:    d.AlignSpacing,
	}, nil
}
