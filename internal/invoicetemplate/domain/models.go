package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Template is a user-authored invoice layout. StylingText is the raw
// markup-with-expressions source; it is untrusted-but-privileged free text
// and must only ever be evaluated against the renderer's allowlisted
// named-value set.
//
// Format is the stored template dialect ("plain" or "markup"). Empty means
// the row predates the column and the compiler falls back to content
// detection.
type Template struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"type:text;not null" json:"name"`
	StylingText string            `gorm:"type:text;not null" json:"styling_text"`
	Format      string            `gorm:"type:text;not null;default:''" json:"format"`
	Style       datatypes.JSONMap `gorm:"type:jsonb" json:"style"`
	IsDefault   bool              `gorm:"not null;default:false" json:"is_default"`
	CreatedAt   time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updated_at"`
}

func (Template) TableName() string { return "invoice_templates" }
