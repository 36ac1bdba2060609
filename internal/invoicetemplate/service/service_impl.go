package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/factura/internal/invoicetemplate/domain"
	"github.com/smallbiznis/factura/internal/templating"
)

type service struct {
	db   *gorm.DB
	repo domain.Repository
	node *snowflake.Node
}

func NewService(db *gorm.DB, repo domain.Repository, node *snowflake.Node) domain.Service {
	return &service{db: db, repo: repo, node: node}
}

// validateSource compiles the template source once at save time so authors
// get unbalanced-expression errors in the settings UI instead of at export.
func validateSource(src, format string) error {
	switch templating.Format(format) {
	case templating.FormatAuto, templating.FormatPlain, templating.FormatMarkup:
	default:
		return domain.ErrInvalidFormat
	}
	if strings.TrimSpace(src) == "" {
		return domain.ErrInvalidSource
	}
	if _, err := templating.Compile(src, templating.Format(format)); err != nil {
		return err
	}
	return nil
}

func (s *service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Template, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if err := validateSource(req.StylingText, req.Format); err != nil {
		return nil, err
	}

	tmpl := &domain.Template{
		ID:          s.node.Generate(),
		Name:        name,
		StylingText: req.StylingText,
		Format:      req.Format,
		Style:       req.Style,
		IsDefault:   req.IsDefault,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tmpl.IsDefault {
			if err := s.repo.ClearDefault(ctx, tx); err != nil {
				return err
			}
		}
		return s.repo.Insert(ctx, tx, tmpl)
	})
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Template, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	tmpl, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, domain.ErrInvalidName
		}
		tmpl.Name = strings.TrimSpace(*req.Name)
	}
	if req.Format != nil {
		tmpl.Format = *req.Format
	}
	if req.StylingText != nil {
		tmpl.StylingText = *req.StylingText
	}
	if req.StylingText != nil || req.Format != nil {
		if err := validateSource(tmpl.StylingText, tmpl.Format); err != nil {
			return nil, err
		}
	}
	if req.Style != nil {
		tmpl.Style = req.Style
	}

	if err := s.repo.Update(ctx, s.db, tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, s.db, parsed)
}

func (s *service) GetDefault(ctx context.Context) (*domain.Template, error) {
	return s.repo.FindDefault(ctx, s.db)
}

func (s *service) List(ctx context.Context, req domain.ListRequest) ([]domain.Template, error) {
	return s.repo.List(ctx, s.db, req)
}

func (s *service) SetDefault(ctx context.Context, id string) (*domain.Template, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var tmpl *domain.Template
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.repo.FindByID(ctx, tx, parsed)
		if err != nil {
			return err
		}
		if err := s.repo.ClearDefault(ctx, tx); err != nil {
			return err
		}
		t.IsDefault = true
		tmpl = t
		return s.repo.Update(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}
