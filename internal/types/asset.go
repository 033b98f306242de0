package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Asset is a character, location, or prop belonging to a project. Content is
// a JSON string with the full descriptive payload, the same convention the
// versioned content documents use.
type Asset struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	ProjectID      uuid.UUID `gorm:"type:uuid;not null;index:idx_asset_project_kind,priority:1" json:"project_id"`
	Kind           string    `gorm:"column:kind;not null;index:idx_asset_project_kind,priority:2" json:"kind"` // character|location|prop
	Name           string    `gorm:"column:name;not null" json:"name"`
	Category       string    `gorm:"column:category" json:"category,omitempty"` // props only, e.g. vehicle|weapon|furniture
	Content        string    `gorm:"column:content" json:"content"`
	ImageIDs       datatypes.JSON `gorm:"column:image_ids;type:jsonb" json:"image_ids,omitempty"`
	ScopeProject   bool           `gorm:"column:scope_project;not null;default:true" json:"scope_project"`
	ScopeEpisodes  datatypes.JSON `gorm:"column:scope_episodes;type:jsonb" json:"scope_episodes,omitempty"`
	ScopeParts     datatypes.JSON `gorm:"column:scope_parts;type:jsonb" json:"scope_parts,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Asset) TableName() string { return "asset" }
