package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/smallbiznis/factura/internal/cache"
	"github.com/smallbiznis/factura/internal/config"
	invoicedomain "github.com/smallbiznis/factura/internal/invoice/domain"
	tmpldomain "github.com/smallbiznis/factura/internal/invoicetemplate/domain"
	"github.com/smallbiznis/factura/internal/templating"
)

// InvoiceStore is the slice of the invoice service the exporter needs.
type InvoiceStore interface {
	GetBundle(ctx context.Context, id string) (*invoicedomain.Bundle, error)
}

// TemplateStore is the slice of the template service the exporter needs.
type TemplateStore interface {
	GetByID(ctx context.Context, id string) (*tmpldomain.Template, error)
	GetDefault(ctx context.Context) (*tmpldomain.Template, error)
}

// Service is the document export pipeline: fetch the invoice bundle, render
// it through its template (falling back to the built-in default on template
// errors), wrap the markup in the document shell, and drive the external
// converter with bounded retries.
type Service struct {
	invoices  InvoiceStore
	templates TemplateStore
	conv      Converter
	eval      *templating.Evaluator
	compiled  cache.Cache[string, string]
	cacheTTL  time.Duration
	timeout   time.Duration
	retries   int
	log       *zap.Logger
}

func NewService(cfg *config.Config, invoices InvoiceStore, templates TemplateStore, conv Converter, log *zap.Logger) *Service {
	eval := &templating.Evaluator{}
	if cfg.TemplateDumpPath != "" {
		eval.DumpFS = afero.NewOsFs()
		eval.DumpPath = cfg.TemplateDumpPath
	}
	return &Service{
		invoices:  invoices,
		templates: templates,
		conv:      conv,
		eval:      eval,
		compiled:  cache.NewTTLCache[string, string](),
		cacheTTL:  cfg.TemplateCacheTTL(),
		timeout:   cfg.ConvertTimeout(),
		retries:   cfg.ConvertRetries,
		log:       log,
	}
}

// ExportPDF renders the invoice and converts it to a binary document.
// It returns the document bytes and a download filename. Template failures
// never fail the export (the built-in template takes over); conversion
// failures are retried a bounded number of times and then surfaced with no
// partial output.
func (s *Service) ExportPDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	bundle, err := s.invoices.GetBundle(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}

	markup, err := s.renderWithFallback(ctx, bundle)
	if err != nil {
		return nil, "", err
	}

	doc := WrapDocument(markup)

	pdf, err := s.convertWithRetry(ctx, doc)
	if err != nil {
		return nil, "", err
	}

	return pdf, fmt.Sprintf("invoice-%s.pdf", bundle.Invoice.Number), nil
}

// Preview compiles and evaluates a stored template against a sample invoice
// and returns the markup. Unlike export, template errors propagate so the
// settings UI can show them.
func (s *Service) Preview(ctx context.Context, templateID string) (string, error) {
	tmpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return "", err
	}
	return s.render(tmpl.StylingText, templating.Format(tmpl.Format), sampleBundle())
}

// renderWithFallback picks the invoice's template (assigned, else stored
// default, else built-in) and renders it. Compilation and evaluation errors
// are recovered locally: the event is logged and the built-in template takes
// over, so a bad custom template never blocks an export.
func (s *Service) renderWithFallback(ctx context.Context, bundle *invoicedomain.Bundle) (string, error) {
	src, format := DefaultTemplate, DefaultTemplateFormat

	tmpl, err := s.lookupTemplate(ctx, bundle)
	if err != nil {
		return "", err
	}
	if tmpl != nil {
		src, format = tmpl.StylingText, templating.Format(tmpl.Format)
	}

	markup, err := s.render(src, format, bundle)
	if err == nil {
		return markup, nil
	}

	var ce *templating.CompileError
	var re *templating.RenderError
	if !errors.As(err, &ce) && !errors.As(err, &re) {
		return "", err
	}

	s.log.Warn("custom template failed, falling back to built-in template",
		zap.String("invoice_number", bundle.Invoice.Number),
		zap.Error(err),
	)
	return s.render(DefaultTemplate, DefaultTemplateFormat, bundle)
}

func (s *Service) lookupTemplate(ctx context.Context, bundle *invoicedomain.Bundle) (*tmpldomain.Template, error) {
	if bundle.Invoice.TemplateID != nil {
		tmpl, err := s.templates.GetByID(ctx, bundle.Invoice.TemplateID.String())
		if err == nil {
			return tmpl, nil
		}
		if !errors.Is(err, tmpldomain.ErrTemplateNotFound) {
			return nil, err
		}
		s.log.Warn("assigned template missing, using default",
			zap.String("invoice_number", bundle.Invoice.Number),
		)
	}

	tmpl, err := s.templates.GetDefault(ctx)
	if errors.Is(err, tmpldomain.ErrTemplateNotFound) {
		return nil, nil // built-in
	}
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// render compiles (through the cache; compilation is deterministic, so the
// source text is a sound key) and evaluates one template.
func (s *Service) render(src string, format templating.Format, bundle *invoicedomain.Bundle) (string, error) {
	key := string(format) + "\x00" + src
	compiled, ok := s.compiled.Get(key)
	if !ok {
		var err error
		compiled, err = templating.Compile(src, format)
		if err != nil {
			return "", err
		}
		s.compiled.Set(key, compiled, s.cacheTTL)
	}
	return s.eval.Evaluate(compiled, renderContextFrom(bundle).Env())
}

func (s *Service) convertWithRetry(ctx context.Context, doc string) ([]byte, error) {
	attempts := s.retries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		pdf, err := s.conv.Convert(attemptCtx, doc)
		cancel()
		if err == nil {
			return pdf, nil
		}

		var convErr *ConversionError
		if !errors.As(err, &convErr) {
			return nil, err
		}
		lastErr = err
		s.log.Error("document conversion attempt failed",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", attempts),
			zap.Error(err),
		)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

// renderContextFrom maps the stored bundle onto the renderer's read-only
// value objects.
func renderContextFrom(b *invoicedomain.Bundle) templating.RenderContext {
	inv := b.Invoice

	items := make([]templating.ItemData, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, templating.ItemData{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	return templating.RenderContext{
		Invoice: templating.InvoiceData{
			Number:          inv.Number,
			Status:          inv.Status,
			IssueDate:       inv.IssueDate,
			DueDate:         inv.DueDate,
			CustomerName:    inv.CustomerName,
			CustomerEmail:   inv.CustomerEmail,
			CustomerAddress: inv.CustomerAddress,
			CustomerCity:    inv.CustomerCity,
			CustomerState:   inv.CustomerState,
			CustomerPostal:  inv.CustomerPostal,
			CustomerCountry: inv.CustomerCountry,
			Notes:           inv.Notes,
			Terms:           inv.Terms,
			Subtotal:        inv.SubtotalAmount,
			Discount:        inv.DiscountAmount,
			Tax:             inv.TaxAmount,
			Shipping:        inv.ShippingAmount,
			Total:           inv.TotalAmount,
			Items:           items,
		},
		Company: templating.CompanyData{
			Name:    b.Company.Name,
			Email:   b.Company.Email,
			Phone:   b.Company.Phone,
			Address: b.Company.Address,
			City:    b.Company.City,
			State:   b.Company.State,
			Postal:  b.Company.Postal,
			Country: b.Company.Country,
			TaxID:   b.Company.TaxID,
			LogoURL: b.Company.LogoURL,
		},
		Currency: templating.CurrencyData{
			Code:   b.Currency.Code,
			Symbol: b.Currency.Symbol,
		},
	}
}

// sampleBundle is the fixture invoice used by template preview.
func sampleBundle() *invoicedomain.Bundle {
	issue := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	due := issue.AddDate(0, 0, 30)

	subtotal, tax, total := 340.0, 27.2, 367.2
	return &invoicedomain.Bundle{
		Invoice: invoicedomain.Invoice{
			Number:          "INV-SAMPLE",
			Status:          invoicedomain.StatusSent,
			IssueDate:       &issue,
			DueDate:         &due,
			CustomerName:    "Avery Fields",
			CustomerEmail:   "avery@example.com",
			CustomerAddress: "400 Market St",
			CustomerCity:    "Springfield",
			CustomerState:   "CA",
			CustomerPostal:  "94000",
			CustomerCountry: "US",
			Notes:           "Thank you for your business.",
			Terms:           "Net 30",
			SubtotalAmount:  &subtotal,
			TaxAmount:       &tax,
			TotalAmount:     &total,
			Items: []invoicedomain.InvoiceItem{
				{Name: "Design work", Quantity: 8, UnitPrice: 40},
				{Name: "Hosting", Quantity: 1, UnitPrice: 20},
			},
		},
		Company: invoicedomain.Company{
			Name:    "Factura Demo Co",
			Email:   "billing@example.com",
			Address: "1 Ledger Way",
			City:    "Springfield",
			State:   "CA",
			Postal:  "94000",
			Country: "US",
		},
		Currency: invoicedomain.Currency{Code: "USD", Symbol: "$"},
	}
}
