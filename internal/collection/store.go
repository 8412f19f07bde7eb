// Package collection manages named projector collections.
//
// Membership is never stored on the collection. A projector belongs to a
// collection when its Collection field holds the collection name, so the
// member set is always derived from the registry.
package collection

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/lumenrig/projplan/internal/model"
	"github.com/lumenrig/projplan/internal/registry"
)

// Store holds the ordered list of collection names and the active index.
// It is not safe for concurrent use.
type Store struct {
	reg    *registry.Registry
	names  []string
	active int
}

// New creates an empty store over reg.
func New(reg *registry.Registry) *Store {
	return &Store{reg: reg}
}

// Create adds a collection and makes it active. Any members given are
// assigned to it; they are all checked first, so an unknown member leaves
// the store and registry unchanged.
func (s *Store) Create(name string, members ...string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("create collection: %w", model.ErrInvalidName)
	}
	if s.Has(name) {
		return "", fmt.Errorf("create collection %q: %w", name, model.ErrDuplicateName)
	}
	projectors, err := s.lookup(members)
	if err != nil {
		return "", fmt.Errorf("create collection %q: %w", name, err)
	}

	s.names = append(s.names, name)
	s.active = len(s.names) - 1
	for _, p := range projectors {
		p.Collection = name
	}
	return name, nil
}

// Delete removes a collection and clears the membership of every projector
// that referenced it. The active index is clamped back into range.
func (s *Store) Delete(id string) error {
	i := slices.Index(s.names, id)
	if i < 0 {
		return fmt.Errorf("collection %q: %w", id, model.ErrNotFound)
	}
	for p := range s.reg.All() {
		if p.Collection == id {
			p.Collection = ""
		}
	}
	s.names = slices.Delete(s.names, i, i+1)
	if s.active >= len(s.names) {
		s.active = max(0, len(s.names)-1)
	}
	return nil
}

// SetActive selects the active collection by index.
func (s *Store) SetActive(index int) error {
	if index < 0 || index >= len(s.names) {
		return fmt.Errorf("active collection %d of %d: %w", index, len(s.names), model.ErrIndexOutOfRange)
	}
	s.active = index
	return nil
}

// ActiveIndex returns the active index. It is 0 when the store is empty.
func (s *Store) ActiveIndex() int {
	return s.active
}

// Active returns the name of the active collection.
func (s *Store) Active() (string, bool) {
	if len(s.names) == 0 {
		return "", false
	}
	return s.names[s.active], true
}

// Has reports whether a collection named id exists.
func (s *Store) Has(id string) bool {
	return slices.Contains(s.names, id)
}

// Len returns the number of collections.
func (s *Store) Len() int {
	return len(s.names)
}

// Names returns the collection names in creation order.
func (s *Store) Names() []string {
	return slices.Clone(s.names)
}

// Members yields the names of the projectors in collection id, in registry
// order. The membership is recomputed on every iteration.
func (s *Store) Members(id string) (iter.Seq[string], error) {
	if !s.Has(id) {
		return nil, fmt.Errorf("collection %q: %w", id, model.ErrNotFound)
	}
	return func(yield func(string) bool) {
		for p := range s.reg.All() {
			if p.Collection != id {
				continue
			}
			if !yield(p.Name) {
				return
			}
		}
	}, nil
}

// Projectors is Members resolved to the projector entities.
func (s *Store) Projectors(id string) ([]*registry.Projector, error) {
	if !s.Has(id) {
		return nil, fmt.Errorf("collection %q: %w", id, model.ErrNotFound)
	}
	var out []*registry.Projector
	for p := range s.reg.All() {
		if p.Collection == id {
			out = append(out, p)
		}
	}
	return out, nil
}

// Assign moves projector into collection id.
func (s *Store) Assign(projector, id string) error {
	if !s.Has(id) {
		return fmt.Errorf("assign %q: collection %q: %w", projector, id, model.ErrNotFound)
	}
	p, err := s.reg.Get(projector)
	if err != nil {
		return fmt.Errorf("assign to %q: %w", id, err)
	}
	p.Collection = id
	return nil
}

// AssignToActive assigns every given projector to the active collection and
// returns its name. All projectors are checked before any is assigned.
func (s *Store) AssignToActive(projectors ...string) (string, error) {
	id, ok := s.Active()
	if !ok {
		return "", fmt.Errorf("no active collection: %w", model.ErrIndexOutOfRange)
	}
	resolved, err := s.lookup(projectors)
	if err != nil {
		return "", fmt.Errorf("assign to %q: %w", id, err)
	}
	for _, p := range resolved {
		p.Collection = id
	}
	return id, nil
}

// Unassign removes projector from its collection. It is a no-op for a
// projector that belongs to none.
func (s *Store) Unassign(projector string) error {
	p, err := s.reg.Get(projector)
	if err != nil {
		return fmt.Errorf("unassign: %w", err)
	}
	p.Collection = ""
	return nil
}

// Restore replaces the collection list, as read back from a snapshot.
// Projector back-references are left as they are.
func (s *Store) Restore(names []string, active int) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("restore collections: %w", model.ErrInvalidName)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("restore collection %q: %w", n, model.ErrDuplicateName)
		}
		seen[n] = struct{}{}
	}
	if len(names) == 0 {
		active = 0
	} else if active < 0 || active >= len(names) {
		return fmt.Errorf("restore active collection %d of %d: %w", active, len(names), model.ErrIndexOutOfRange)
	}
	s.names = slices.Clone(names)
	s.active = active
	return nil
}

func (s *Store) lookup(ids []string) ([]*registry.Projector, error) {
	out := make([]*registry.Projector, 0, len(ids))
	for _, id := range ids {
		p, err := s.reg.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
