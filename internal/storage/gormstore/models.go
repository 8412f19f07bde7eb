package gormstore

import (
	"time"

	"github.com/lumenrig/projplan/internal/model"
	"gorm.io/datatypes"
)

// Project is the saved project header. There is at most one row.
type Project struct {
	ID               string    `json:"id" gorm:"primaryKey;size:36"`
	SavedAt          time.Time `json:"savedAt"`
	ActiveCollection int       `json:"activeCollection"`
}

func (*Project) TableName() string {
	return "projects"
}

// ProjectorRow is one projector of the saved project.
type ProjectorRow struct {
	ID            uint                               `json:"id" gorm:"primarykey;autoIncrement"`
	ProjectID     string                             `json:"projectId" gorm:"size:36;index"`
	Seq           int                                `json:"seq"`
	Name          string                             `json:"name" gorm:"size:255"`
	Position      datatypes.JSONType[model.Vec3]     `json:"position"`
	Orientation   datatypes.JSONType[model.Rotation] `json:"orientation"`
	ThrowDistance float64                            `json:"throwDistance"`
	ImageWidth    float64                            `json:"imageWidth"`
	ThrowRatio    float64                            `json:"throwRatio"`
	AspectW       uint32                             `json:"aspectW"`
	AspectH       uint32                             `json:"aspectH"`
	Collection    string                             `json:"collection" gorm:"size:255"`
	OverlapsWith  string                             `json:"overlapsWith" gorm:"size:255"`
	EdgeBlend     float64                            `json:"edgeBlend"`
	Active        bool                               `json:"active"`
	ShowCone      bool                               `json:"showCone"`
}

func (*ProjectorRow) TableName() string {
	return "projector_rows"
}

// CollectionRow is one entry of the saved collection list.
type CollectionRow struct {
	ID        uint   `json:"id" gorm:"primarykey;autoIncrement"`
	ProjectID string `json:"projectId" gorm:"size:36;index"`
	Seq       int    `json:"seq"`
	Name      string `json:"name" gorm:"size:255"`
}

func (*CollectionRow) TableName() string {
	return "collection_rows"
}

// Models lists the tables migrated by Init.
var Models = []any{
	&Project{},
	&ProjectorRow{},
	&CollectionRow{},
}
