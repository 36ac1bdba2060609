package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/factura/internal/invoicetemplate/domain"
)

type repository struct{}

// Provide constructs the gorm-backed template repository.
func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, tmpl *domain.Template) error {
	return db.WithContext(ctx).Create(tmpl).Error
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, tmpl *domain.Template) error {
	return db.WithContext(ctx).Save(tmpl).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Template, error) {
	var tmpl domain.Template
	err := db.WithContext(ctx).First(&tmpl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *repository) FindDefault(ctx context.Context, db *gorm.DB) (*domain.Template, error) {
	var tmpl domain.Template
	err := db.WithContext(ctx).First(&tmpl, "is_default = ?", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *repository) List(ctx context.Context, db *gorm.DB, req domain.ListRequest) ([]domain.Template, error) {
	q := db.WithContext(ctx).Model(&domain.Template{})
	if req.Name != "" {
		q = q.Where("name LIKE ?", "%"+req.Name+"%")
	}
	var rows []domain.Template
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ClearDefault(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).
		Model(&domain.Template{}).
		Where("is_default = ?", true).
		Update("is_default", false).Error
}
