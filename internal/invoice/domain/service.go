package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/factura/internal/pagination"
)

type ItemInput struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type CreateRequest struct {
	Number          string      `json:"invoice_number"`
	CurrencyCode    string      `json:"currency_code"`
	TemplateID      *string     `json:"template_id"`
	IssueDate       *time.Time  `json:"issue_date"`
	DueDate         *time.Time  `json:"due_date"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerAddress string      `json:"customer_address"`
	CustomerCity    string      `json:"customer_city"`
	CustomerState   string      `json:"customer_state"`
	CustomerPostal  string      `json:"customer_postal"`
	CustomerCountry string      `json:"customer_country"`
	Notes           string      `json:"notes"`
	Terms           string      `json:"terms"`
	DiscountAmount  *float64    `json:"discount_amount"`
	TaxAmount       *float64    `json:"tax_amount"`
	ShippingAmount  *float64    `json:"shipping_amount"`
	Items           []ItemInput `json:"items"`
}

type UpdateRequest struct {
	ID             string       `json:"id"`
	Status         *string      `json:"status"`
	TemplateID     *string      `json:"template_id"`
	IssueDate      *time.Time   `json:"issue_date"`
	DueDate        *time.Time   `json:"due_date"`
	Notes          *string      `json:"notes"`
	Terms          *string      `json:"terms"`
	DiscountAmount *float64     `json:"discount_amount"`
	TaxAmount      *float64     `json:"tax_amount"`
	ShippingAmount *float64     `json:"shipping_amount"`
	Items          *[]ItemInput `json:"items"`
}

type ListRequest struct {
	pagination.Pagination
	Status       string
	Number       string
	CustomerName string
	IssuedFrom   *time.Time
	IssuedTo     *time.Time
}

type ListResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Invoice, error)
	Update(ctx context.Context, req UpdateRequest) (*Invoice, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Invoice, error)
	GetBundle(ctx context.Context, id string) (*Bundle, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
}

// ListQuery is the repository-level shape of a list request: filters plus a
// decoded keyset cursor.
type ListQuery struct {
	Status       string
	Number       string
	CustomerName string
	IssuedFrom   *time.Time
	IssuedTo     *time.Time
	Cursor       *pagination.Cursor
	Limit        int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, inv *Invoice) error
	Update(ctx context.Context, db *gorm.DB, inv *Invoice) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindBundle(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Bundle, error)
	List(ctx context.Context, db *gorm.DB, q ListQuery) ([]Invoice, int64, error)
}

var (
	ErrInvalidID        = errors.New("invalid_invoice_id")
	ErrInvalidNumber    = errors.New("invalid_invoice_number")
	ErrInvalidCustomer  = errors.New("invalid_customer_name")
	ErrInvalidCurrency  = errors.New("invalid_currency")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrInvalidItems     = errors.New("invalid_items")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrCompanyNotFound  = errors.New("company_not_found")
	ErrCurrencyNotFound = errors.New("currency_not_found")
)
