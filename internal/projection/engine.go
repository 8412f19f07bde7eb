package projection

import (
	"fmt"

	"github.com/lumenrig/projplan/internal/model"
)

// Observer is notified after every field write, including the dependent
// field written by propagation. Hosts use it to refresh displayed values.
type Observer func(p *ParameterSet, f Field, value float64)

// Engine applies single-field edits to parameter sets and recomputes the
// dependent field:
//
//	edited ThrowDistance -> ThrowRatio = distance / width
//	edited ImageWidth    -> ThrowRatio = distance / width
//	edited ThrowRatio    -> ImageWidth = distance / ratio
//
// When the ratio is edited the distance is the anchor: it models a throw
// position fixed by the room, so the width moves instead.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	observer Observer

	// editing marks parameter sets whose propagation step is running.
	// Entries live only for the duration of one ApplyEdit call.
	editing map[*ParameterSet]struct{}
}

// NewEngine returns an engine. observer may be nil.
func NewEngine(observer Observer) *Engine {
	return &Engine{
		observer: observer,
		editing:  make(map[*ParameterSet]struct{}),
	}
}

// ApplyEdit sets field f of p to value and performs exactly one propagation
// step. Out-of-domain values fail with model.ErrOutOfDomain and leave p
// untouched. If the denominator of the recomputation is below Epsilon the
// dependent field keeps its previous value.
//
// Calling ApplyEdit on p from the observer while p is being edited fails
// with model.ErrEditInProgress; the outer edit is not affected.
func (e *Engine) ApplyEdit(p *ParameterSet, f Field, value float64) error {
	if p == nil {
		return fmt.Errorf("apply %s: nil parameter set: %w", f, model.ErrNotFound)
	}
	if !f.valid() {
		return fmt.Errorf("apply %s: %w", f, model.ErrUnknownField)
	}
	if !inDomain(value) {
		return fmt.Errorf("apply %s=%v: %w", f, value, model.ErrOutOfDomain)
	}

	release, ok := e.begin(p)
	if !ok {
		return fmt.Errorf("apply %s: %w", f, model.ErrEditInProgress)
	}
	defer release()

	e.write(p, f, value)

	switch f {
	case ThrowDistance, ImageWidth:
		if p.width < Epsilon {
			return nil
		}
		e.write(p, ThrowRatio, p.distance/p.width)
	case ThrowRatio:
		if p.ratio < Epsilon {
			return nil
		}
		e.write(p, ImageWidth, p.distance/p.ratio)
	}
	return nil
}

// busy reports whether p is in the middle of an ApplyEdit call.
func (e *Engine) busy(p *ParameterSet) bool {
	_, ok := e.editing[p]
	return ok
}

func (e *Engine) begin(p *ParameterSet) (release func(), ok bool) {
	if e.editing == nil {
		e.editing = make(map[*ParameterSet]struct{})
	}
	if _, busy := e.editing[p]; busy {
		return nil, false
	}
	e.editing[p] = struct{}{}
	return func() { delete(e.editing, p) }, true
}

func (e *Engine) write(p *ParameterSet, f Field, value float64) {
	switch f {
	case ThrowDistance:
		p.distance = value
	case ImageWidth:
		p.width = value
	case ThrowRatio:
		p.ratio = value
	}
	if e.observer != nil {
		e.observer(p, f, value)
	}
}
