package handlers

import (
	"fmt"
	"slices"

	"github.com/lumenrig/projplan/internal/dispatcher"
	"github.com/lumenrig/projplan/internal/util"
)

func (s *Service) createCollection(e dispatcher.Event) (any, error) {
	if len(e.Args) < 1 {
		return nil, argErr(e.Command, "name [members...]")
	}
	args := util.CleanArgs(slices.Clone(e.Args))
	name, err := s.deps.Session.Collections().Create(args[0], args[1:]...)
	if err != nil {
		return nil, err
	}
	s.writeLog(e.Command, fmt.Sprintf("Created collection %s with %d members", name, len(args)-1), "DEBUG")
	return name, nil
}

func (s *Service) deleteCollection(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, argErr(e.Command, "name")
	}
	if err := s.deps.Session.Collections().Delete(util.CleanArg(e.Args[0])); err != nil {
		return nil, err
	}
	return "ok", nil
}

func (s *Service) setActiveCollection(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, argErr(e.Command, "index")
	}
	i, err := util.ParseInt("index", e.Args[0])
	if err != nil {
		return nil, wrapArg(e.Command, err)
	}
	store := s.deps.Session.Collections()
	if err := store.SetActive(i); err != nil {
		return nil, err
	}
	name, _ := store.Active()
	return name, nil
}

func (s *Service) assign(e dispatcher.Event) (any, error) {
	store := s.deps.Session.Collections()
	switch len(e.Args) {
	case 1:
		if _, err := store.AssignToActive(util.CleanArg(e.Args[0])); err != nil {
			return nil, err
		}
	case 2:
		if err := store.Assign(util.CleanArg(e.Args[0]), util.CleanArg(e.Args[1])); err != nil {
			return nil, err
		}
	default:
		return nil, argErr(e.Command, "projector [collection]")
	}
	return "ok", nil
}

func (s *Service) unassign(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, argErr(e.Command, "projector")
	}
	if err := s.deps.Session.Collections().Unassign(util.CleanArg(e.Args[0])); err != nil {
		return nil, err
	}
	return "ok", nil
}

func (s *Service) members(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, argErr(e.Command, "name")
	}
	seq, err := s.deps.Session.Collections().Members(util.CleanArg(e.Args[0]))
	if err != nil {
		return nil, err
	}
	out := []string{}
	for name := range seq {
		out = append(out, name)
	}
	return out, nil
}

func (s *Service) listCollections(e dispatcher.Event) (any, error) {
	return s.deps.Session.Collections().Names(), nil
}
