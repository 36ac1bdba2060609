package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/factura/internal/invoice/domain"
)

type repository struct{}

// Provide constructs the gorm-backed invoice repository.
func Provide() domain.Repository {
	return &repository{}
}

func (r *repository) Insert(ctx context.Context, db *gorm.DB, inv *domain.Invoice) error {
	return db.WithContext(ctx).Create(inv).Error
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, inv *domain.Invoice) error {
	return db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(inv).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&domain.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Invoice{}, "id = ?", id).Error
	})
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC, id ASC") }).
		First(&inv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindBundle loads the fully-populated invoice, its company and its currency
// in one call. This is the only read the renderer depends on.
func (r *repository) FindBundle(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Bundle, error) {
	inv, err := r.FindByID(ctx, db, id)
	if err != nil {
		return nil, err
	}

	var company domain.Company
	if err := db.WithContext(ctx).First(&company, "id = ?", inv.CompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}

	var currency domain.Currency
	if err := db.WithContext(ctx).First(&currency, "code = ?", inv.CurrencyCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCurrencyNotFound
		}
		return nil, err
	}

	return &domain.Bundle{Invoice: *inv, Company: company, Currency: currency}, nil
}

// List fetches one keyset page under (created_at DESC, id DESC) ordering.
// It returns up to q.Limit+1 rows so the caller can detect a next page, plus
// the exact filtered count for the envelope.
func (r *repository) List(ctx context.Context, db *gorm.DB, q domain.ListQuery) ([]domain.Invoice, int64, error) {
	base := db.WithContext(ctx).Model(&domain.Invoice{})

	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}
	if q.Number != "" {
		base = base.Where("invoice_number LIKE ?", "%"+q.Number+"%")
	}
	if q.CustomerName != "" {
		base = base.Where("customer_name LIKE ?", "%"+q.CustomerName+"%")
	}
	if q.IssuedFrom != nil {
		base = base.Where("issue_date >= ?", q.IssuedFrom)
	}
	if q.IssuedTo != nil {
		base = base.Where("issue_date <= ?", q.IssuedTo)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := base.Session(&gorm.Session{})
	if q.Cursor != nil {
		page = page.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			q.Cursor.CreatedAt, q.Cursor.CreatedAt, q.Cursor.ID,
		)
	}

	var rows []domain.Invoice
	err := page.
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC, id ASC") }).
		Order("created_at DESC, id DESC").
		Limit(q.Limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
