// Package session ties the planner components together around one set of
// projectors, the way a host scene owns them.
package session

import (
	"fmt"
	"slices"

	"github.com/lumenrig/projplan/internal/blend"
	"github.com/lumenrig/projplan/internal/collection"
	"github.com/lumenrig/projplan/internal/layout"
	"github.com/lumenrig/projplan/internal/model"
	"github.com/lumenrig/projplan/internal/overlap"
	"github.com/lumenrig/projplan/internal/projection"
	"github.com/lumenrig/projplan/internal/registry"
	"github.com/lumenrig/projplan/internal/storage"
)

// Config holds the tunables of a session.
type Config struct {
	Defaults        registry.Defaults
	Overlap         overlap.Config
	Units           projection.Units
	DuplicateOffset float64
	AlignSpacing    float64
}

// DefaultConfig returns the standard projector defaults, the default overlap
// thresholds, metric units and a 1 m duplicate offset and align spacing.
func DefaultConfig() Config {
	return Config{
		Defaults:        registry.StandardDefaults(),
		Overlap:         overlap.DefaultConfig(),
		Units:           projection.Metric,
		DuplicateOffset: 1,
		AlignSpacing:    1,
	}
}

// Session is one editing session. It is not safe for concurrent use.
type Session struct {
	cfg      Config
	engine   *projection.Engine
	reg      *registry.Registry
	store    *collection.Store
	detector *overlap.Detector
	aligner  *layout.Aligner
}

// New creates an empty session. observer is passed to the constraint engine
// and may be nil.
func New(cfg Config, observer projection.Observer) *Session {
	s := &Session{
		cfg:    cfg,
		engine: projection.NewEngine(observer),
	}
	s.attach(registry.NewWithDefaults(cfg.Defaults), nil)
	return s
}

func (s *Session) attach(reg *registry.Registry, store *collection.Store) {
	if store == nil {
		store = collection.New(reg)
	}
	s.reg = reg
	s.store = store
	s.detector = overlap.New(reg, store, s.cfg.Overlap)
	s.aligner = layout.New(store)
}

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// Registry returns the projector registry.
func (s *Session) Registry() *registry.Registry { return s.reg }

// Collections returns the collection store.
func (s *Session) Collections() *collection.Store { return s.store }

// Detector returns the overlap detector.
func (s *Session) Detector() *overlap.Detector { return s.detector }

// Aligner returns the group aligner.
func (s *Session) Aligner() *layout.Aligner { return s.aligner }

// Create adds a projector; an empty name picks one automatically.
func (s *Session) Create(name string) (string, error) {
	if name == "" {
		return s.reg.Create()
	}
	return s.reg.CreateNamed(name)
}

// DuplicateDefault duplicates id offset by the configured distance on X.
func (s *Session) DuplicateDefault(id string) (string, error) {
	return s.reg.Duplicate(id, model.Vec3{X: s.cfg.DuplicateOffset})
}

// Edit changes one projection parameter of projector id and propagates it.
func (s *Session) Edit(id string, f projection.Field, value float64) error {
	p, err := s.reg.Get(id)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	if err := s.engine.ApplyEdit(&p.Params, f, value); err != nil {
		return fmt.Errorf("edit %q: %w", id, err)
	}
	return nil
}

// Move places projector id. A nil orientation keeps the current one.
func (s *Session) Move(id string, pos model.Vec3, rot *model.Rotation) error {
	p, err := s.reg.Get(id)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	if !pos.Finite() {
		return fmt.Errorf("move %q to %v: %w", id, pos, model.ErrOutOfDomain)
	}
	if rot != nil && !rot.Finite() {
		return fmt.Errorf("move %q rotation %v: %w", id, *rot, model.ErrOutOfDomain)
	}
	p.Position = pos
	if rot != nil {
		p.Orientation = *rot
	}
	return nil
}

// Align aligns collection id with the given spacing.
func (s *Session) Align(id string, spacing float64) (int, error) {
	return s.aligner.Align(id, spacing)
}

// AlignActive aligns the active collection.
func (s *Session) AlignActive(spacing float64) (string, int, error) {
	id, ok := s.store.Active()
	if !ok {
		return "", 0, fmt.Errorf("align: no active collection: %w", model.ErrIndexOutOfRange)
	}
	n, err := s.Align(id, spacing)
	return id, n, err
}

// Blend computes the edge-blend region between projectors a and b.
func (s *Session) Blend(a, b string) (blend.Region, bool, error) {
	pa, err := s.reg.Get(a)
	if err != nil {
		return blend.Region{}, false, fmt.Errorf("blend: %w", err)
	}
	pb, err := s.reg.Get(b)
	if err != nil {
		return blend.Region{}, false, fmt.Errorf("blend: %w", err)
	}
	return blend.Compute(pa, pb)
}

// Snapshot captures the complete session state. The snapshot is a deep
// copy; later edits do not affect it.
func (s *Session) Snapshot() *storage.Snapshot {
	snap := &storage.Snapshot{
		Projectors:       make([]registry.Projector, 0, s.reg.Len()),
		Collections:      s.store.Names(),
		ActiveCollection: s.store.ActiveIndex(),
	}
	for p := range s.reg.All() {
		snap.Projectors = append(snap.Projectors, *p)
	}
	return snap
}

// Restore replaces the session state with snap. Every projector and every
// reference is validated first; on any error the session is unchanged.
func (s *Session) Restore(snap *storage.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("restore: nil snapshot: %w", model.ErrNotFound)
	}
	reg := registry.NewWithDefaults(s.cfg.Defaults)
	for _, p := range snap.Projectors {
		if err := reg.Insert(p); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	}
	store := collection.New(reg)
	if err := store.Restore(snap.Collections, snap.ActiveCollection); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	for p := range reg.All() {
		if p.Collection != "" && !slices.Contains(snap.Collections, p.Collection) {
			return fmt.Errorf("restore projector %q collection %q: %w", p.Name, p.Collection, model.ErrNotFound)
		}
		if p.OverlapsWith == "" {
			continue
		}
		partner, err := reg.Get(p.OverlapsWith)
		if err != nil {
			return fmt.Errorf("restore projector %q overlap: %w", p.Name, err)
		}
		if partner.OverlapsWith != p.Name {
			return fmt.Errorf("restore projector %q overlap with %q is one-sided: %w", p.Name, partner.Name, model.ErrNotFound)
		}
	}
	s.attach(reg, store)
	return nil
}
