// Package gormstore implements storage.Backend on a SQL database through
// GORM, on SQLite or PostgreSQL.
package gormstore

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumenrig/projplan/internal/database"
	"github.com/lumenrig/projplan/internal/model"
	"github.com/lumenrig/projplan/internal/projection"
	"github.com/lumenrig/projplan/internal/registry"
	"github.com/lumenrig/projplan/internal/storage"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Backend stores a single project across the projects, projector_rows and
// collection_rows tables.
type Backend struct {
	mgr *database.Manager
}

// New creates a backend on a connected manager.
func New(mgr *database.Manager) *Backend {
	return &Backend{mgr: mgr}
}

// Init migrates the schema.
func (b *Backend) Init() error {
	return b.mgr.Setup(Models...)
}

// Close closes the database connection.
func (b *Backend) Close() error {
	return b.mgr.Close()
}

// Save replaces the stored project with a stamped copy of s in one
// transaction. s takes the new ID and save time only if it commits.
func (b *Backend) Save(in *storage.Snapshot) error {
	if in == nil {
		return errors.New("save: nil snapshot")
	}
	s := in.Stamped(timeNow())

	project := Project{
		ID:               s.ID.String(),
		SavedAt:          s.SavedAt,
		ActiveCollection: s.ActiveCollection,
	}
	projectors := make([]ProjectorRow, len(s.Projectors))
	for i := range s.Projectors {
		projectors[i] = toRow(project.ID, i, &s.Projectors[i])
	}
	collections := make([]CollectionRow, len(s.Collections))
	for i, name := range s.Collections {
		collections[i] = CollectionRow{ProjectID: project.ID, Seq: i, Name: name}
	}

	err := b.mgr.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&CollectionRow{}, &ProjectorRow{}, &Project{}} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		if len(projectors) > 0 {
			if err := tx.CreateInBatches(projectors, 500).Error; err != nil {
				return err
			}
		}
		if len(collections) > 0 {
			if err := tx.Create(&collections).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving project: %w", err)
	}
	in.Adopt(s)
	return nil
}

// Load rebuilds the stored project.
func (b *Backend) Load() (*storage.Snapshot, error) {
	var project Project
	err := b.mgr.DB.Order("saved_at desc").First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	id, err := uuid.Parse(project.ID)
	if err != nil {
		return nil, fmt.Errorf("project id %q: %w", project.ID, err)
	}

	var rows []ProjectorRow
	if err := b.mgr.DB.Where("project_id = ?", project.ID).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading projectors: %w", err)
	}
	var colls []CollectionRow
	if err := b.mgr.DB.Where("project_id = ?", project.ID).Order("seq").Find(&colls).Error; err != nil {
		return nil, fmt.Errorf("loading collections: %w", err)
	}

	s := &storage.Snapshot{
		ID:               id,
		SavedAt:          project.SavedAt,
		ActiveCollection: project.ActiveCollection,
		Projectors:       make([]registry.Projector, 0, len(rows)),
		Collections:      make([]string, 0, len(colls)),
	}
	for i := range rows {
		p, err := fromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		s.Projectors = append(s.Projectors, p)
	}
	for _, c := range colls {
		s.Collections = append(s.Collections, c.Name)
	}
	return s, nil
}

func toRow(projectID string, seq int, p *registry.Projector) ProjectorRow {
	return ProjectorRow{
		ProjectID:     projectID,
		Seq:           seq,
		Name:          p.Name,
		Position:      datatypes.NewJSONType(p.Position),
		Orientation:   datatypes.NewJSONType(p.Orientation),
		ThrowDistance: p.Params.ThrowDistance(),
		ImageWidth:    p.Params.ImageWidth(),
		ThrowRatio:    p.Params.ThrowRatio(),
		AspectW:       p.Aspect.W,
		AspectH:       p.Aspect.H,
		Collection:    p.Collection,
		OverlapsWith:  p.OverlapsWith,
		EdgeBlend:     p.EdgeBlend,
		Active:        p.Active,
		ShowCone:      p.ShowCone,
	}
}

func fromRow(r *ProjectorRow) (registry.Projector, error) {
	params, err := projection.Restore(r.ThrowDistance, r.ImageWidth, r.ThrowRatio)
	if err != nil {
		return registry.Projector{}, fmt.Errorf("projector %q: %w", r.Name, err)
	}
	return registry.Projector{
		Name:         r.Name,
		Position:     r.Position.Data(),
		Orientation:  r.Orientation.Data(),
		Params:       params,
		Aspect:       model.AspectRatio{W: r.AspectW, H: r.AspectH},
		Collection:   r.Collection,
		OverlapsWith: r.OverlapsWith,
		EdgeBlend:    r.EdgeBlend,
		Active:       r.Active,
		ShowCone:     r.ShowCone,
	}, nil
}
