package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/lumenrig/projplan/internal/blend"
	"github.com/lumenrig/projplan/internal/dispatcher"
	"github.com/lumenrig/projplan/internal/influx"
	"github.com/lumenrig/projplan/internal/logging"
	"github.com/lumenrig/projplan/internal/session"
	"github.com/lumenrig/projplan/internal/storage"
	"github.com/lumenrig/projplan/internal/util"
)

// ErrArguments is returned when a command gets the wrong number or kind of
// arguments.
var ErrArguments = errors.New("bad arguments")

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Session    *session.Session
	Backend    storage.Backend
	Reporter   *influx.Reporter
	LogManager *logging.SlogManager
}

// Service translates host commands into session operations.
type Service struct {
	deps         Dependencies
	writeLogFunc func(functionName, data, level string)
	now          func() time.Time
}

// NewService creates a new handler service
func NewService(deps Dependencies) *Service {
	s := &Service{
		deps: deps,
		now:  time.Now,
	}
	// Default writeLog function uses the logging manager
	s.writeLogFunc = func(functionName, data, level string) {
		if deps.LogManager != nil {
			deps.LogManager.WriteLog(functionName, data, level)
		}
	}
	return s
}

// Session returns the session the handlers operate on.
func (s *Service) Session() *session.Session {
	return s.deps.Session
}

func (s *Service) writeLog(functionName, data, level string) {
	s.writeLogFunc(functionName, data, level)
}

// RegisterHandlers registers every planner command with d.
func (s *Service) RegisterHandlers(d *dispatcher.Dispatcher) {
	handlers := map[string]dispatcher.HandlerFunc{
		CmdProjectorCreate:    s.createProjector,
		CmdProjectorDuplicate: s.duplicateProjector,
		CmdProjectorRemove:    s.removeProjector,
		CmdProjectorEdit:      s.editProjector,
		CmdProjectorMove:      s.moveProjector,
		CmdProjectorAspect:    s.setAspect,
		CmdProjectorBlend:     s.setEdgeBlend,
		CmdProjectorInfo:      s.projectorInfo,
		CmdProjectorList:      s.listProjectors,

		CmdCollectionCreate:   s.createCollection,
		CmdCollectionDelete:   s.deleteCollection,
		CmdCollectionActive:   s.setActiveCollection,
		CmdCollectionAssign:   s.assign,
		CmdCollectionUnassign: s.unassign,
		CmdCollectionMembers:  s.members,
		CmdCollectionList:     s.listCollections,

		CmdOverlapDetect: s.detectOverlaps,
		CmdOverlapClear:  s.clearOverlaps,
		CmdOverlapBlend:  s.blendRegion,

		CmdGroupAlign: s.align,
		CmdGroupGrid:  s.grid,

		CmdProjectSave:    s.save,
		CmdProjectLoad:    s.load,
		CmdProjectBackups: s.listBackups,
		CmdProjectRestore: s.restoreBackup,
	}
	for cmd, h := range handlers {
		d.Register(cmd, h, dispatcher.Logged())
	}
}

// BlendResult is the reply to an overlap blend query.
type BlendResult struct {
	Overlaps bool         `json:"overlaps"`
	Region   blend.Region `json:"region"`
	Width    float64      `json:"width"`
}

func (s *Service) save(e dispatcher.Event) (any, error) {
	if s.deps.Backend == nil {
		return nil, errors.New("no storage backend configured")
	}
	snap := s.deps.Session.Snapshot()
	if err := s.deps.Backend.Save(snap); err != nil {
		s.writeLog(e.Command, fmt.Sprintf("Error saving project: %v", err), "ERROR")
		return nil, err
	}
	s.writeLog(e.Command, fmt.Sprintf("Saved project %s with %d projectors", snap.ID, len(snap.Projectors)), "INFO")
	return "ok", nil
}

func (s *Service) load(e dispatcher.Event) (any, error) {
	if s.deps.Backend == nil {
		return nil, errors.New("no storage backend configured")
	}
	snap, err := s.deps.Backend.Load()
	if err != nil {
		return nil, err
	}
	if err := s.deps.Session.Restore(snap); err != nil {
		s.writeLog(e.Command, fmt.Sprintf("Rejected stored project: %v", err), "ERROR")
		return nil, err
	}
	s.writeLog(e.Command, fmt.Sprintf("Loaded project %s", snap.ID), "INFO")
	return "ok", nil
}

func (s *Service) backups() (storage.BackupStore, error) {
	if s.deps.Backend == nil {
		return nil, errors.New("no storage backend configured")
	}
	bs, ok := s.deps.Backend.(storage.BackupStore)
	if !ok {
		return nil, fmt.Errorf("storage backend keeps no backups: %w", errors.ErrUnsupported)
	}
	return bs, nil
}

func (s *Service) listBackups(e dispatcher.Event) (any, error) {
	bs, err := s.backups()
	if err != nil {
		return nil, err
	}
	names, err := bs.Backups()
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *Service) restoreBackup(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, argErr(e.Command, "backup")
	}
	bs, err := s.backups()
	if err != nil {
		return nil, err
	}
	name := util.CleanArg(e.Args[0])
	snap, err := bs.LoadBackup(name)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Session.Restore(snap); err != nil {
		s.writeLog(e.Command, fmt.Sprintf("Rejected backup %s: %v", name, err), "ERROR")
		return nil, err
	}
	s.writeLog(e.Command, fmt.Sprintf("Restored backup %s (project %s)", name, snap.ID), "INFO")
	return "ok", nil
}

func (s *Service) report(op, collection string, count int) {
	s.deps.Reporter.Report(influx.Run{
		Op:         op,
		Collection: collection,
		Count:      count,
		Projectors: s.deps.Session.Registry().Len(),
		At:         s.now(),
	})
}

func argErr(cmd, usage string) error {
	return fmt.Errorf("%s usage: %s %s: %w", cmd, cmd, usage, ErrArguments)
}

func wrapArg(cmd string, err error) error {
	return fmt.Errorf("%s: %w: %w", cmd, ErrArguments, err)
}
