package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Part struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	EpisodeID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"episode_id"`
	Episode    *Episode       `gorm:"constraint:OnDelete:CASCADE;foreignKey:EpisodeID;references:ID" json:"episode,omitempty"`
	PartNumber int            `gorm:"column:part_number;not null" json:"part_number"`
	Title      string         `gorm:"column:title;not null" json:"title"`
	ScriptText string         `gorm:"column:script_text" json:"script_text,omitempty"`
	CreatedBy  uuid.UUID      `gorm:"type:uuid;column:created_by" json:"created_by"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Part) TableName() string { return "part" }
