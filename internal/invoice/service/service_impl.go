package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/factura/internal/invoice/domain"
	"github.com/smallbiznis/factura/internal/pagination"
)

type service struct {
	db   *gorm.DB
	repo domain.Repository
	node *snowflake.Node
	log  *zap.Logger
}

func NewService(db *gorm.DB, repo domain.Repository, node *snowflake.Node, log *zap.Logger) domain.Service {
	return &service{db: db, repo: repo, node: node, log: log}
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Invoice, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return nil, domain.ErrInvalidNumber
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, domain.ErrInvalidCustomer
	}
	currency := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if currency == "" {
		return nil, domain.ErrInvalidCurrency
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrInvalidItems
	}

	var company domain.Company
	if err := s.db.WithContext(ctx).First(&company).Error; err != nil {
		return nil, domain.ErrCompanyNotFound
	}

	inv := &domain.Invoice{
		ID:              s.node.Generate(),
		Number:          number,
		Status:          domain.StatusDraft,
		CompanyID:       company.ID,
		CurrencyCode:    currency,
		IssueDate:       req.IssueDate,
		DueDate:         req.DueDate,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerAddress: req.CustomerAddress,
		CustomerCity:    req.CustomerCity,
		CustomerState:   req.CustomerState,
		CustomerPostal:  req.CustomerPostal,
		CustomerCountry: req.CustomerCountry,
		Notes:           req.Notes,
		Terms:           req.Terms,
		DiscountAmount:  req.DiscountAmount,
		TaxAmount:       req.TaxAmount,
		ShippingAmount:  req.ShippingAmount,
	}

	if req.TemplateID != nil {
		tid, err := snowflake.ParseString(strings.TrimSpace(*req.TemplateID))
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		inv.TemplateID = &tid
	}

	for pos, it := range req.Items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity < 0 {
			return nil, domain.ErrInvalidItems
		}
		inv.Items = append(inv.Items, domain.InvoiceItem{
			ID:        s.node.Generate(),
			InvoiceID: inv.ID,
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Position:  pos,
		})
	}

	domain.ComputeTotals(inv)

	if err := s.repo.Insert(ctx, s.db, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Invoice, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	inv, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		switch *req.Status {
		case domain.StatusDraft, domain.StatusSent, domain.StatusPaid, domain.StatusVoid:
			inv.Status = *req.Status
		default:
			return nil, domain.ErrInvalidStatus
		}
	}
	if req.TemplateID != nil {
		if strings.TrimSpace(*req.TemplateID) == "" {
			inv.TemplateID = nil
		} else {
			tid, err := snowflake.ParseString(strings.TrimSpace(*req.TemplateID))
			if err != nil {
				return nil, domain.ErrInvalidID
			}
			inv.TemplateID = &tid
		}
	}
	if req.IssueDate != nil {
		inv.IssueDate = req.IssueDate
	}
	if req.DueDate != nil {
		inv.DueDate = req.DueDate
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if req.Terms != nil {
		inv.Terms = *req.Terms
	}
	if req.DiscountAmount != nil {
		inv.DiscountAmount = req.DiscountAmount
	}
	if req.TaxAmount != nil {
		inv.TaxAmount = req.TaxAmount
	}
	if req.ShippingAmount != nil {
		inv.ShippingAmount = req.ShippingAmount
	}
	if req.Items != nil {
		if len(*req.Items) == 0 {
			return nil, domain.ErrInvalidItems
		}
		if err := s.db.WithContext(ctx).Where("invoice_id = ?", inv.ID).Delete(&domain.InvoiceItem{}).Error; err != nil {
			return nil, err
		}
		inv.Items = inv.Items[:0]
		for pos, it := range *req.Items {
			if strings.TrimSpace(it.Name) == "" || it.Quantity < 0 {
				return nil, domain.ErrInvalidItems
			}
			inv.Items = append(inv.Items, domain.InvoiceItem{
				ID:        s.node.Generate(),
				InvoiceID: inv.ID,
				Name:      strings.TrimSpace(it.Name),
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Position:  pos,
			})
		}
	}

	domain.ComputeTotals(inv)

	if err := s.repo.Update(ctx, s.db, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.ErrInvalidID
	}
	if _, err := s.repo.FindByID(ctx, s.db, parsed); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, parsed)
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, s.db, parsed)
}

func (s *service) GetBundle(ctx context.Context, id string) (*domain.Bundle, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindBundle(ctx, s.db, parsed)
}

func (s *service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	cursor, err := pagination.Decode(req.PageToken)
	if err != nil {
		return nil, err
	}

	limit := req.Limit()
	rows, total, err := s.repo.List(ctx, s.db, domain.ListQuery{
		Status:       req.Status,
		Number:       req.Number,
		CustomerName: req.CustomerName,
		IssuedFrom:   req.IssuedFrom,
		IssuedTo:     req.IssuedTo,
		Cursor:       cursor,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}

	resp := &domain.ListResponse{}
	if len(rows) > limit {
		rows = rows[:limit]
		resp.HasNext = true
		last := rows[len(rows)-1]
		resp.NextCursor = pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
	}
	resp.Invoices = rows
	resp.EstimatedTotal = total
	return resp, nil
}
