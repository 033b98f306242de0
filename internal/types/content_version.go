package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ContentVersion is one generation pass of AI-produced content for a part.
// A single row carries ALL items of its kind (all beats, all shots, or all
// storyboard panels) as a JSON payload in Content. Kind is an explicit tag;
// the payload shape is never inferred from the content itself.
type ContentVersion struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	ProjectID      uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	EpisodeID      uuid.UUID `gorm:"type:uuid;not null;index" json:"episode_id"`
	PartID         uuid.UUID `gorm:"type:uuid;not null;index:idx_content_part_kind,priority:1" json:"part_id"`
	Part           *Part     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PartID;references:ID" json:"part,omitempty"`
	Kind           string    `gorm:"column:kind;not null;index:idx_content_part_kind,priority:2" json:"kind"` // beat|shot|storyboard
	Content        string    `gorm:"column:content;not null" json:"content"`
	VersionNo      int       `gorm:"column:version_no;not null;default:1" json:"-"`
	Edited         bool      `gorm:"column:edited;not null;default:false" json:"-"`
	Selected       bool      `gorm:"column:selected;not null;default:true" json:"-"`
	Extra          datatypes.JSON `gorm:"column:extra;type:jsonb" json:"extra,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ContentVersion) TableName() string { return "content_version" }

// VersionMetadata is the wire shape the frontend reads the version flags
// under. It lives in a nested "metadata" object rather than as top-level
// columns, so serialisers build it from the row explicitly.
type VersionMetadata struct {
	VersionNo int  `json:"versionNo"`
	Edited    bool `json:"edited"`
	Selected  bool `json:"selected"`
}

func (cv *ContentVersion) Metadata() VersionMetadata {
	return VersionMetadata{VersionNo: cv.VersionNo, Edited: cv.Edited, Selected: cv.Selected}
}
