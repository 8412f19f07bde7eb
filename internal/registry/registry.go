// Package registry owns the set of projector entities of an editing session.
package registry

import (
	"fmt"
	"iter"
	"strings"

	"github.com/lumenrig/projplan/internal/model"
)

// BaseName is the name given to projectors created without one. Further
// projectors get numbered suffixes the way the host names objects:
// Projector, Projector.001, Projector.002, ...
const BaseName = "Projector"

// DuplicateSuffix is appended to the source name by Duplicate.
const DuplicateSuffix = "_duplicate"

// Registry holds projectors keyed by their unique name, in creation order.
// It is not safe for concurrent use.
type Registry struct {
	defaults Defaults
	byName   map[string]*Projector
	order    []string
}

// New creates an empty registry using StandardDefaults.
func New() *Registry {
	return NewWithDefaults(StandardDefaults())
}

// NewWithDefaults creates an empty registry whose new projectors start from d.
func NewWithDefaults(d Defaults) *Registry {
	return &Registry{
		defaults: d,
		byName:   make(map[string]*Projector),
	}
}

// Defaults returns the attribute values used for new projectors.
func (r *Registry) Defaults() Defaults {
	return r.defaults
}

// Create adds a projector with default attributes and an automatically
// chosen name, and returns that name.
func (r *Registry) Create() (string, error) {
	return r.CreateNamed(r.nextName())
}

// CreateNamed adds a projector with default attributes under name.
func (r *Registry) CreateNamed(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("create projector: %w", model.ErrInvalidName)
	}
	if _, ok := r.byName[name]; ok {
		return "", fmt.Errorf("create projector %q: %w", name, model.ErrDuplicateName)
	}
	r.insert(r.defaults.newProjector(name))
	return name, nil
}

// Duplicate copies the projection parameters, aspect ratio, edge blend,
// active flag and collection membership of id into a new projector named
// id+"_duplicate", placed at the source position plus offset with the same
// orientation. If that name is taken nothing is created and
// model.ErrDuplicateName is returned; picking another name is up to the
// caller. A non-finite offset fails with model.ErrOutOfDomain.
func (r *Registry) Duplicate(id string, offset model.Vec3) (string, error) {
	src, err := r.Get(id)
	if err != nil {
		return "", err
	}
	if !offset.Finite() {
		return "", fmt.Errorf("duplicate %q offset %v: %w", id, offset, model.ErrOutOfDomain)
	}
	name := src.Name + DuplicateSuffix
	if _, ok := r.byName[name]; ok {
		return "", fmt.Errorf("duplicate %q as %q: %w", id, name, model.ErrDuplicateName)
	}

	clone := r.defaults.newProjector(name)
	clone.Position = src.Position.Add(offset)
	clone.Orientation = src.Orientation
	clone.Params = src.Params
	clone.Aspect = src.Aspect
	clone.EdgeBlend = src.EdgeBlend
	clone.Active = src.Active
	clone.ShowCone = src.ShowCone
	clone.Collection = src.Collection
	r.insert(clone)
	return name, nil
}

// Remove deletes id. A partner whose overlap flag points at id is cleared
// so the flag stays symmetric.
func (r *Registry) Remove(id string) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	if p.OverlapsWith != "" {
		if partner, ok := r.byName[p.OverlapsWith]; ok && partner.OverlapsWith == id {
			partner.OverlapsWith = ""
		}
	}
	delete(r.byName, id)
	for i, name := range r.order {
		if name == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the projector named id.
func (r *Registry) Get(id string) (*Projector, error) {
	p, ok := r.byName[id]
	if !ok {
		return nil, fmt.Errorf("projector %q: %w", id, model.ErrNotFound)
	}
	return p, nil
}

// Has reports whether id exists.
func (r *Registry) Has(id string) bool {
	_, ok := r.byName[id]
	return ok
}

// Len returns the number of projectors.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns the projector names in creation order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// All yields every projector in creation order. The sequence can be ranged
// over any number of times; projectors removed while iterating are skipped.
func (r *Registry) All() iter.Seq[*Projector] {
	return func(yield func(*Projector) bool) {
		for _, name := range r.Names() {
			p, ok := r.byName[name]
			if !ok {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// SetEdgeBlend sets the edge blend amount of id, which must be in [0,1].
func (r *Registry) SetEdgeBlend(id string, amount float64) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	if !(amount >= 0 && amount <= 1) {
		return fmt.Errorf("edge blend %v: %w", amount, model.ErrOutOfDomain)
	}
	p.EdgeBlend = amount
	return nil
}

// SetActive toggles whether id is active in its group.
func (r *Registry) SetActive(id string, active bool) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	p.Active = active
	return nil
}

// SetAspect sets the aspect ratio of id; both components must be >= 1.
func (r *Registry) SetAspect(id string, a model.AspectRatio) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	if !a.Valid() {
		return fmt.Errorf("aspect %d:%d: %w", a.W, a.H, model.ErrOutOfDomain)
	}
	p.Aspect = a
	return nil
}

// Insert adds a fully specified projector, as read back from a snapshot.
func (r *Registry) Insert(p Projector) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("insert projector: %w", model.ErrInvalidName)
	}
	if _, ok := r.byName[p.Name]; ok {
		return fmt.Errorf("insert projector %q: %w", p.Name, model.ErrDuplicateName)
	}
	if err := Validate(&p); err != nil {
		return err
	}
	r.insert(&p)
	return nil
}

// Validate checks the attribute bounds of p. A parameter set left unsettled
// by a skipped recomputation is accepted, see projection.ParameterSet.Valid.
func Validate(p *Projector) error {
	if !p.Params.Valid() {
		return fmt.Errorf("projector %q parameters: %w", p.Name, model.ErrOutOfDomain)
	}
	if !p.Position.Finite() || !p.Orientation.Finite() {
		return fmt.Errorf("projector %q placement: %w", p.Name, model.ErrOutOfDomain)
	}
	if !p.Aspect.Valid() {
		return fmt.Errorf("projector %q aspect %d:%d: %w", p.Name, p.Aspect.W, p.Aspect.H, model.ErrOutOfDomain)
	}
	if !(p.EdgeBlend >= 0 && p.EdgeBlend <= 1) {
		return fmt.Errorf("projector %q edge blend %v: %w", p.Name, p.EdgeBlend, model.ErrOutOfDomain)
	}
	return nil
}

func (r *Registry) insert(p *Projector) {
	r.byName[p.Name] = p
	r.order = append(r.order, p.Name)
}

func (r *Registry) nextName() string {
	if !r.Has(BaseName) {
		return BaseName
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%03d", BaseName, i)
		if !r.Has(name) {
			return name
		}
	}
}
