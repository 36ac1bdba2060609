package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type CreateRequest struct {
	Name        string         `json:"name"`
	StylingText string         `json:"styling_text"`
	Format      string         `json:"format"`
	Style       map[string]any `json:"style"`
	IsDefault   bool           `json:"is_default"`
}

type UpdateRequest struct {
	ID          string         `json:"id"`
	Name        *string        `json:"name"`
	StylingText *string        `json:"styling_text"`
	Format      *string        `json:"format"`
	Style       map[string]any `json:"style"`
}

type ListRequest struct {
	Name string `form:"name"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Template, error)
	Update(ctx context.Context, req UpdateRequest) (*Template, error)
	GetByID(ctx context.Context, id string) (*Template, error)
	GetDefault(ctx context.Context) (*Template, error)
	List(ctx context.Context, req ListRequest) ([]Template, error)
	SetDefault(ctx context.Context, id string) (*Template, error)
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tmpl *Template) error
	Update(ctx context.Context, db *gorm.DB, tmpl *Template) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Template, error)
	FindDefault(ctx context.Context, db *gorm.DB) (*Template, error)
	List(ctx context.Context, db *gorm.DB, req ListRequest) ([]Template, error)
	ClearDefault(ctx context.Context, db *gorm.DB) error
}

var (
	ErrInvalidID        = errors.New("invalid_template_id")
	ErrInvalidName      = errors.New("invalid_template_name")
	ErrInvalidFormat    = errors.New("invalid_template_format")
	ErrInvalidSource    = errors.New("invalid_template_source")
	ErrTemplateNotFound = errors.New("template_not_found")
)
