package handlers

import (
	"fmt"

	"github.com/lumenrig/projplan/internal/dispatcher"
	"github.com/lumenrig/projplan/internal/util"
)

func (s *Service) detectOverlaps(e dispatcher.Event) (any, error) {
	det := s.deps.Session.Detector()
	switch len(e.Args) {
	case 0:
		n := det.Detect()
		s.report("detect", "", n)
		return n, nil
	case 1:
		id := util.CleanArg(e.Args[0])
		n, err := det.DetectIn(id)
		if err != nil {
			return nil, err
		}
		s.report("detect", id, n)
		return n, nil
	}
	return nil, argErr(e.Command, "[collection]")
}

func (s *Service) clearOverlaps(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, argErr(e.Command, "id")
	}
	if err := s.deps.Session.Detector().Clear(util.CleanArg(e.Args[0])); err != nil {
		return nil, err
	}
	return "ok", nil
}

func (s *Service) blendRegion(e dispatcher.Event) (any, error) {
	if len(e.Args) != 2 {
		return nil, argErr(e.Command, "a b")
	}
	r, ok, err := s.deps.Session.Blend(util.CleanArg(e.Args[0]), util.CleanArg(e.Args[1]))
	if err != nil {
		return nil, err
	}
	return BlendResult{Overlaps: ok, Region: r, Width: r.Width()}, nil
}

func (s *Service) align(e dispatcher.Event) (any, error) {
	sess := s.deps.Session
	var (
		id      string
		spacing = sess.Config().AlignSpacing
		err     error
	)
	// The configured spacing applies only when none is given; an explicit
	// value, including 0, goes to the aligner as is.
	switch len(e.Args) {
	case 0:
	case 1:
		// A lone argument is a collection when one has that name, otherwise
		// a spacing for the active collection.
		arg := util.CleanArg(e.Args[0])
		if v, perr := util.ParseFloat("spacing", arg); perr == nil && !sess.Collections().Has(arg) {
			spacing = v
		} else {
			id = arg
		}
	case 2:
		id = util.CleanArg(e.Args[0])
		if spacing, err = util.ParseFloat("spacing", e.Args[1]); err != nil {
			return nil, wrapArg(e.Command, err)
		}
	default:
		return nil, argErr(e.Command, "[collection] [spacing]")
	}

	var n int
	if id == "" {
		id, n, err = sess.AlignActive(spacing)
	} else {
		n, err = sess.Align(id, spacing)
	}
	if err != nil {
		return nil, err
	}
	s.writeLog(e.Command, fmt.Sprintf("Aligned %d projectors in %s", n, id), "DEBUG")
	s.report("align", id, n)
	return n, nil
}

func (s *Service) grid(e dispatcher.Event) (any, error) {
	if len(e.Args) != 4 && len(e.Args) != 5 {
		return nil, argErr(e.Command, "collection rows cols spacing [overlap]")
	}
	id := util.CleanArg(e.Args[0])
	rows, err := util.ParseInt("rows", e.Args[1])
	if err != nil {
		return nil, wrapArg(e.Command, err)
	}
	cols, err := util.ParseInt("cols", e.Args[2])
	if err != nil {
		return nil, wrapArg(e.Command, err)
	}
	spacing, err := util.ParseFloat("spacing", e.Args[3])
	if err != nil {
		return nil, wrapArg(e.Command, err)
	}
	var ov float64
	if len(e.Args) == 5 {
		if ov, err = util.ParseFloat("overlap", e.Args[4]); err != nil {
			return nil, wrapArg(e.Command, err)
		}
	}
	n, err := s.deps.Session.Aligner().Grid(id, rows, cols, spacing, ov)
	if err != nil {
		return nil, err
	}
	s.report("grid", id, n)
	return n, nil
}
