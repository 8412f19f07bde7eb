// Package overlap flags pairs of projectors whose images probably collide
// and may need edge blending.
//
// The test is a coarse proximity heuristic, not a frustum intersection: a
// flagged pair is a candidate for blending, not a proof of overlap. Every
// unordered pair is examined, so a pass is O(n²) in the number of
// projectors. That is fine for the handful to few dozen projectors of a
// venue; it becomes a scaling limit in the hundreds.
package overlap

import (
	"fmt"
	"math"

	"github.com/lumenrig/projplan/internal/collection"
	"github.com/lumenrig/projplan/internal/model"
	"github.com/lumenrig/projplan/internal/registry"
)

// Default thresholds.
const (
	DefaultThrowTolerance  = 0.2
	DefaultProximityFactor = 0.5
)

// Config holds the detection thresholds.
type Config struct {
	// ThrowTolerance is the largest relative throw distance difference,
	// |dA-dB| / max(dA,dB), still considered similar (exclusive).
	ThrowTolerance float64
	// ProximityFactor scales min(dA,dB) into the largest lens separation
	// still considered close (exclusive).
	ProximityFactor float64
}

// DefaultConfig returns a 20% throw tolerance and a 0.5 proximity factor.
func DefaultConfig() Config {
	return Config{
		ThrowTolerance:  DefaultThrowTolerance,
		ProximityFactor: DefaultProximityFactor,
	}
}

// Detector runs overlap passes over a registry.
type Detector struct {
	reg   *registry.Registry
	store *collection.Store
	cfg   Config
}

// New creates a detector.
func New(reg *registry.Registry, store *collection.Store, cfg Config) *Detector {
	return &Detector{reg: reg, store: store, cfg: cfg}
}

// Detect examines every unordered pair of projectors and flags the pairs
// that share a collection, have similar throw distances and sit close
// together. It returns the number of pairs flagged.
//
// Flags are only ever added by a pass: a projector that has moved out of
// range keeps its previous flag until Clear is called or a new pair
// replaces it. When a projector is flagged with a new partner its previous
// partner's back-pointer is cleared, so flags stay symmetric.
func (d *Detector) Detect() int {
	var ps []*registry.Projector
	for p := range d.reg.All() {
		ps = append(ps, p)
	}
	return d.pass(ps)
}

// DetectIn runs a pass restricted to the members of one collection.
func (d *Detector) DetectIn(id string) (int, error) {
	ps, err := d.store.Projectors(id)
	if err != nil {
		return 0, fmt.Errorf("detect overlaps: %w", err)
	}
	if len(ps) == 0 {
		return 0, fmt.Errorf("detect overlaps in %q: %w", id, model.ErrEmptyCollection)
	}
	return d.pass(ps), nil
}

// Clear removes the flag of id and of its partner.
func (d *Detector) Clear(id string) error {
	p, err := d.reg.Get(id)
	if err != nil {
		return err
	}
	unlink(d.reg, p)
	return nil
}

// Overlaps reports whether a and b pass all three conditions.
func (d *Detector) Overlaps(a, b *registry.Projector) bool {
	if a == b || a.Name == b.Name {
		return false
	}
	if a.Collection == "" || a.Collection != b.Collection {
		return false
	}
	da, db := a.Params.ThrowDistance(), b.Params.ThrowDistance()
	if math.Abs(da-db)/math.Max(da, db) >= d.cfg.ThrowTolerance {
		return false
	}
	return a.Position.Distance(b.Position) < d.cfg.ProximityFactor*math.Min(da, db)
}

func (d *Detector) pass(ps []*registry.Projector) int {
	found := 0
	for i, a := range ps {
		for _, b := range ps[i+1:] {
			if !d.Overlaps(a, b) {
				continue
			}
			link(d.reg, a, b)
			found++
		}
	}
	return found
}

func link(reg *registry.Registry, a, b *registry.Projector) {
	if a.OverlapsWith != b.Name {
		unlink(reg, a)
	}
	if b.OverlapsWith != a.Name {
		unlink(reg, b)
	}
	a.OverlapsWith = b.Name
	b.OverlapsWith = a.Name
}

func unlink(reg *registry.Registry, p *registry.Projector) {
	if p.OverlapsWith == "" {
		return
	}
	if partner, err := reg.Get(p.OverlapsWith); err == nil && partner.OverlapsWith == p.Name {
		partner.OverlapsWith = ""
	}
	p.OverlapsWith = ""
}
