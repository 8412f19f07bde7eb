package handlers

import (
	"fmt"

	"github.com/lumenrig/projplan/internal/dispatcher"
	"github.com/lumenrig/projplan/internal/model"
	"github.com/lumenrig/projplan/internal/projection"
	"github.com/lumenrig/projplan/internal/util"
)

func (s *Service) createProjector(e dispatcher.Event) (any, error) {
	if len(e.Args) > 1 {
		return nil, argErr(e.Command, "[name]")
	}
	name := ""
	if len(e.Args) == 1 {
		name = util.CleanArg(e.Args[0])
	}
	id, err := s.deps.Session.Create(name)
	if err != nil {
		return nil, err
	}
	s.writeLog(e.Command, fmt.Sprintf("Created projector %s", id), "DEBUG")
	return id, nil
}

func (s *Service) duplicateProjector(e dispatcher.Event) (any, error) {
	switch len(e.Args) {
	case 1:
		return s.deps.Session.DuplicateDefault(util.CleanArg(e.Args[0]))
	case 4:
		v, err := util.ParseFloats(e.Args[1:], "dx", "dy", "dz")
		if err != nil {
			return nil, wrapArg(e.Command, err)
		}
		return s.deps.Session.Registry().Duplicate(util.CleanArg(e.Args[0]), model.Vec3{X: v[0], Y: v[1], Z: v[2]})
	}
	return nil, argErr(e.Command, "id [dx dy dz]")
}

func (s *Service) removeProjector(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, argErr(e.Command, "id")
	}
	id := util.CleanArg(e.Args[0])
	if err := s.deps.Session.Registry().Remove(id); err != nil {
		return nil, err
	}
	s.writeLog(e.Command, fmt.Sprintf("Removed projector %s", id), "DEBUG")
	return "ok", nil
}

func (s *Service) editProjector(e dispatcher.Event) (any, error) {
	if len(e.Args) != 3 {
		return nil, argErr(e.Command, "id field value")
	}
	id := util.CleanArg(e.Args[0])
	f, err := projection.ParseField(util.CleanArg(e.Args[1]))
	if err != nil {
		return nil, err
	}
	v, err := util.ParseFloat(f.String(), e.Args[2])
	if err != nil {
		return nil, wrapArg(e.Command, err)
	}
	if err := s.deps.Session.Edit(id, f, v); err != nil {
		return nil, err
	}
	return s.deps.Session.Info(id)
}

func (s *Service) moveProjector(e dispatcher.Event) (any, error) {
	if len(e.Args) != 4 && len(e.Args) != 7 {
		return nil, argErr(e.Command, "id x y z [rx ry rz]")
	}
	id := util.CleanArg(e.Args[0])
	v, err := util.ParseFloats(e.Args[1:4], "x", "y", "z")
	if err != nil {
		return nil, wrapArg(e.Command, err)
	}
	var rot *model.Rotation
	if len(e.Args) == 7 {
		r, err := util.ParseFloats(e.Args[4:], "rx", "ry", "rz")
		if err != nil {
			return nil, wrapArg(e.Command, err)
		}
		rot = &model.Rotation{X: r[0], Y: r[1], Z: r[2]}
	}
	if err := s.deps.Session.Move(id, model.Vec3{X: v[0], Y: v[1], Z: v[2]}, rot); err != nil {
		return nil, err
	}
	return "ok", nil
}

func (s *Service) setAspect(e dispatcher.Event) (any, error) {
	if len(e.Args) != 3 {
		return nil, argErr(e.Command, "id w h")
	}
	id := util.CleanArg(e.Args[0])
	w, err := util.ParseInt("w", e.Args[1])
	if err != nil {
		return nil, wrapArg(e.Command, err)
	}
	h, err := util.ParseInt("h", e.Args[2])
	if err != nil {
		return nil, wrapArg(e.Command, err)
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("aspect %d:%d: %w", w, h, model.ErrOutOfDomain)
	}
	if err := s.deps.Session.Registry().SetAspect(id, model.AspectRatio{W: uint32(w), H: uint32(h)}); err != nil {
		return nil, err
	}
	return s.deps.Session.Info(id)
}

func (s *Service) setEdgeBlend(e dispatcher.Event) (any, error) {
	if len(e.Args) != 2 {
		return nil, argErr(e.Command, "id amount")
	}
	id := util.CleanArg(e.Args[0])
	v, err := util.ParseFloat("amount", e.Args[1])
	if err != nil {
		return nil, wrapArg(e.Command, err)
	}
	if err := s.deps.Session.Registry().SetEdgeBlend(id, v); err != nil {
		return nil, err
	}
	return s.deps.Session.Info(id)
}

func (s *Service) projectorInfo(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, argErr(e.Command, "id")
	}
	return s.deps.Session.Info(util.CleanArg(e.Args[0]))
}

func (s *Service) listProjectors(e dispatcher.Event) (any, error) {
	return s.deps.Session.Registry().Names(), nil
}
