// Package layout rewrites the positions of a collection's projectors.
package layout

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/lumenrig/projplan/internal/collection"
	"github.com/lumenrig/projplan/internal/model"
	"github.com/lumenrig/projplan/internal/registry"
)

// Aligner arranges collection members.
type Aligner struct {
	store *collection.Store
}

// New creates an aligner over store.
func New(store *collection.Store) *Aligner {
	return &Aligner{store: store}
}

// Align lines the members of collection id up in a row along X.
//
// Members are ordered by X position with a stable sort, so members sharing an
// X keep their registry order. The leftmost member is the anchor: member i
// moves to anchor + (i*spacing, 0, 0) and takes the anchor's orientation.
// The returned count includes the anchor itself. spacing must be positive
// and finite.
func (a *Aligner) Align(id string, spacing float64) (int, error) {
	if !validSpacing(spacing) {
		return 0, fmt.Errorf("align %q: spacing %v: %w", id, spacing, model.ErrOutOfDomain)
	}
	members, err := a.members(id)
	if err != nil {
		return 0, err
	}

	slices.SortStableFunc(members, func(p, q *registry.Projector) int {
		return cmp.Compare(p.Position.X, q.Position.X)
	})

	anchorPos := members[0].Position
	anchorRot := members[0].Orientation
	for i, p := range members {
		p.Position = anchorPos.Add(model.Vec3{X: float64(i) * spacing})
		p.Orientation = anchorRot
	}
	return len(members), nil
}

// Grid arranges the members of collection id row-major, in registry order,
// on a rows x columns grid centred on the origin of the XY plane at Z=0.
// Cells are spacing*(1-overlap) apart. Members beyond rows*columns are left
// where they are. It returns the number of members moved.
func (a *Aligner) Grid(id string, rows, columns int, spacing, overlap float64) (int, error) {
	if rows < 1 || columns < 1 {
		return 0, fmt.Errorf("grid %q: %dx%d: %w", id, rows, columns, model.ErrOutOfDomain)
	}
	if !validSpacing(spacing) {
		return 0, fmt.Errorf("grid %q: spacing %v: %w", id, spacing, model.ErrOutOfDomain)
	}
	if !(overlap >= 0 && overlap < 1) {
		return 0, fmt.Errorf("grid %q: overlap %v: %w", id, overlap, model.ErrOutOfDomain)
	}
	members, err := a.members(id)
	if err != nil {
		return 0, err
	}

	step := spacing * (1 - overlap)
	startX := -float64(columns) * step / 2
	startY := float64(rows) * step / 2

	moved := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			if moved == len(members) {
				return moved, nil
			}
			members[moved].Position = model.Vec3{
				X: startX + float64(col)*step,
				Y: startY - float64(row)*step,
			}
			moved++
		}
	}
	return moved, nil
}

func (a *Aligner) members(id string) ([]*registry.Projector, error) {
	members, err := a.store.Projectors(id)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("layout %q: %w", id, model.ErrEmptyCollection)
	}
	return members, nil
}

func validSpacing(spacing float64) bool {
	return spacing > 0 && !math.IsInf(spacing, 0)
}
