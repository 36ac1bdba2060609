package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Invoice statuses.
const (
	StatusDraft = "draft"
	StatusSent  = "sent"
	StatusPaid  = "paid"
	StatusVoid  = "void"
)

// Invoice is a stored invoice. Each amount component is independently
// nullable: a missing discount is not the same as a zero discount, and the
// renderer must never assume any of them are present.
type Invoice struct {
	ID           snowflake.ID  `gorm:"primaryKey" json:"id"`
	Number       string        `gorm:"column:invoice_number;type:text;not null;uniqueIndex" json:"invoice_number"`
	Status       string        `gorm:"type:text;not null;default:'draft'" json:"status"`
	TemplateID   *snowflake.ID `gorm:"index" json:"template_id,omitempty"`
	CompanyID    snowflake.ID  `gorm:"not null;index" json:"company_id"`
	CurrencyCode string        `gorm:"type:text;not null" json:"currency_code"`

	IssueDate *time.Time `json:"issue_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`

	CustomerName    string `gorm:"type:text;not null" json:"customer_name"`
	CustomerEmail   string `gorm:"type:text" json:"customer_email"`
	CustomerAddress string `gorm:"type:text" json:"customer_address"`
	CustomerCity    string `gorm:"type:text" json:"customer_city"`
	CustomerState   string `gorm:"type:text" json:"customer_state"`
	CustomerPostal  string `gorm:"type:text" json:"customer_postal"`
	CustomerCountry string `gorm:"type:text" json:"customer_country"`

	Notes string `gorm:"type:text" json:"notes"`
	Terms string `gorm:"type:text" json:"terms"`

	SubtotalAmount *float64 `gorm:"type:decimal(18,2)" json:"subtotal_amount,omitempty"`
	DiscountAmount *float64 `gorm:"type:decimal(18,2)" json:"discount_amount,omitempty"`
	TaxAmount      *float64 `gorm:"type:decimal(18,2)" json:"tax_amount,omitempty"`
	ShippingAmount *float64 `gorm:"type:decimal(18,2)" json:"shipping_amount,omitempty"`
	TotalAmount    *float64 `gorm:"type:decimal(18,2)" json:"total_amount,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `gorm:"not null;index:idx_invoices_keyset,priority:1" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one ordered line of an invoice.
type InvoiceItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Quantity  float64      `gorm:"not null;default:1" json:"quantity"`
	UnitPrice float64      `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	Position  int          `gorm:"not null;default:0" json:"position"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }

// Amount returns the line total.
func (i InvoiceItem) Amount() float64 { return i.Quantity * i.UnitPrice }

// Company is the issuing business identity.
type Company struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	Name    string       `gorm:"type:text;not null" json:"name"`
	Email   string       `gorm:"type:text" json:"email"`
	Phone   string       `gorm:"type:text" json:"phone"`
	Address string       `gorm:"type:text" json:"address"`
	City    string       `gorm:"type:text" json:"city"`
	State   string       `gorm:"type:text" json:"state"`
	Postal  string       `gorm:"type:text" json:"postal"`
	Country string       `gorm:"type:text" json:"country"`
	TaxID   string       `gorm:"type:text" json:"tax_id"`
	LogoURL string       `gorm:"type:text" json:"logo_url"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Company) TableName() string { return "companies" }

// Currency is used only for display formatting.
type Currency struct {
	Code   string `gorm:"primaryKey;type:text" json:"code"`
	Symbol string `gorm:"type:text;not null" json:"symbol"`
}

func (Currency) TableName() string { return "currencies" }

// Bundle is the fully-populated data set one render call consumes.
type Bundle struct {
	Invoice  Invoice
	Company  Company
	Currency Currency
}

// ComputeTotals recomputes the stored totals from the line items:
// subtotal is the sum of line amounts and
// total = subtotal - discount + tax + shipping, with absent components
// contributing zero while staying null in storage.
func ComputeTotals(inv *Invoice) {
	subtotal := 0.0
	for _, it := range inv.Items {
		subtotal += it.Amount()
	}
	inv.SubtotalAmount = &subtotal

	total := subtotal
	if inv.DiscountAmount != nil {
		total -= *inv.DiscountAmount
	}
	if inv.TaxAmount != nil {
		total += *inv.TaxAmount
	}
	if inv.ShippingAmount != nil {
		total += *inv.ShippingAmount
	}
	inv.TotalAmount = &total
}
