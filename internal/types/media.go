package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image and Clip names encode a virtual folder path, e.g. "Shot_3/2.jpg" or
// "Characters/Aria/CU-MCU/1.png". The folder grouping in internal/versions
// relies on that convention.

type Image struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	ProjectID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	EpisodeID      *uuid.UUID `gorm:"type:uuid;index" json:"episode_id,omitempty"`
	PartID         *uuid.UUID `gorm:"type:uuid;index" json:"part_id,omitempty"`
	ShotID         *uuid.UUID `gorm:"type:uuid;index" json:"shot_id,omitempty"`
	Name           string     `gorm:"column:name" json:"name"`
	ImageURL       string     `gorm:"column:image_url;not null" json:"imageUrl"`
	Category       string     `gorm:"column:category;not null;default:shot" json:"category"` // shot|character|location|props
	VersionNo      int        `gorm:"column:version_no;not null;default:1" json:"-"`
	Edited         bool       `gorm:"column:edited;not null;default:false" json:"-"`
	Selected       bool       `gorm:"column:selected;not null;default:true" json:"-"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Image) TableName() string { return "image" }

func (i *Image) Metadata() VersionMetadata {
	return VersionMetadata{VersionNo: i.VersionNo, Edited: i.Edited, Selected: i.Selected}
}

type Clip struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	ProjectID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	EpisodeID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"episode_id"`
	PartID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"part_id"`
	ShotID         *uuid.UUID `gorm:"type:uuid;index" json:"shot_id,omitempty"`
	Name           string     `gorm:"column:name" json:"name"`
	ClipURL        string     `gorm:"column:clip_url;not null" json:"clipUrl"`
	VersionNo      int        `gorm:"column:version_no;not null;default:1" json:"-"`
	Edited         bool       `gorm:"column:edited;not null;default:false" json:"-"`
	Selected       bool       `gorm:"column:selected;not null;default:true" json:"-"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Clip) TableName() string { return "clip" }

func (c *Clip) Metadata() VersionMetadata {
	return VersionMetadata{VersionNo: c.VersionNo, Edited: c.Edited, Selected: c.Selected}
}
