package templating

import (
	"time"
)

// dateLayout is the display format for invoice dates.
const dateLayout = "Jan 2, 2006"

// InvoiceData is the read-only invoice snapshot a render call consumes.
// Amount fields are pointers because each total component is independently
// nullable; the context builder substitutes zero for absent values.
type InvoiceData struct {
	Number          string
	Status          string
	IssueDate       *time.Time
	DueDate         *time.Time
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
	CustomerCity    string
	CustomerState   string
	CustomerPostal  string
	CustomerCountry string
	Notes           string
	Terms           string
	Subtotal        *float64
	Discount        *float64
	Tax             *float64
	Shipping        *float64
	Total           *float64
	Items           []ItemData
}

// ItemData is one invoice line.
type ItemData struct {
	Name      string
	Quantity  float64
	UnitPrice float64
}

// CompanyData is the issuer identity.
type CompanyData struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	Postal  string
	Country string
	TaxID   string
	LogoURL string
}

// CurrencyData is used only for display formatting.
type CurrencyData struct {
	Code   string
	Symbol string
}

// RenderContext is the immutable bundle of data for a single render call.
// It is created fresh per render and never shared between renders.
type RenderContext struct {
	Invoice  InvoiceData
	Company  CompanyData
	Currency CurrencyData
}

// Env builds the exact named-value set a compiled template may reference:
// the three entities as snake_case key maps, the derived totals (zero when
// the source field is null), the formatted issue and due dates (empty string
// when null), a null-tolerant date formatter and the when conditional helper.
// Nothing else is exposed; the evaluator adds only its own rewrite helpers.
func (rc RenderContext) Env() map[string]any {
	inv := rc.Invoice

	items := make([]any, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, map[string]any{
			"name":       it.Name,
			"quantity":   it.Quantity,
			"unit_price": it.UnitPrice,
			"amount":     it.Quantity * it.UnitPrice,
		})
	}

	invoiceMap := map[string]any{
		"invoice_number":   inv.Number,
		"status":           inv.Status,
		"issue_date":       formatDate(inv.IssueDate),
		"due_date":         formatDate(inv.DueDate),
		"customer_name":    inv.CustomerName,
		"customer_email":   inv.CustomerEmail,
		"customer_address": inv.CustomerAddress,
		"customer_city":    inv.CustomerCity,
		"customer_state":   inv.CustomerState,
		"customer_postal":  inv.CustomerPostal,
		"customer_country": inv.CustomerCountry,
		"notes":            nilIfEmpty(inv.Notes),
		"terms":            nilIfEmpty(inv.Terms),
		"subtotal_amount":  numOrNil(inv.Subtotal),
		"discount_amount":  numOrNil(inv.Discount),
		"tax_amount":       numOrNil(inv.Tax),
		"shipping_amount":  numOrNil(inv.Shipping),
		"total_amount":     numOrNil(inv.Total),
		"items":            items,
	}

	companyMap := map[string]any{
		"name":     rc.Company.Name,
		"email":    rc.Company.Email,
		"phone":    rc.Company.Phone,
		"address":  rc.Company.Address,
		"city":     rc.Company.City,
		"state":    rc.Company.State,
		"postal":   rc.Company.Postal,
		"country":  rc.Company.Country,
		"tax_id":   rc.Company.TaxID,
		"logo_url": nilIfEmpty(rc.Company.LogoURL),
	}

	currencyMap := map[string]any{
		"code":   rc.Currency.Code,
		"symbol": rc.Currency.Symbol,
	}

	return map[string]any{
		"invoice":        invoiceMap,
		"company":        companyMap,
		"currency":       currencyMap,
		"subtotal":       numOrZero(inv.Subtotal),
		"discountAmount": numOrZero(inv.Discount),
		"taxAmount":      numOrZero(inv.Tax),
		"shippingAmount": numOrZero(inv.Shipping),
		"total":          numOrZero(inv.Total),
		"issueDate":      formatDate(inv.IssueDate),
		"dueDate":        formatDate(inv.DueDate),
		"formatDate":     formatDate,
		"when":           whenHelper,
	}
}

// formatDate formats dates for display. It never fails: nil, zero and
// unparseable inputs all yield the empty string.
func formatDate(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(dateLayout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(dateLayout)
	case string:
		if t == "" {
			return ""
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02", dateLayout} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.Format(dateLayout)
			}
		}
		return ""
	default:
		return ""
	}
}

// whenHelper is the conditional helper: when(cond, truthyValue, falsyValue)
// with the falsy value defaulting to the empty string.
func whenHelper(cond any, truthyVal any, rest ...any) any {
	if isTruthy(cond) {
		return truthyVal
	}
	if len(rest) > 0 {
		return rest[0]
	}
	return ""
}

func numOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func numOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
