package seed

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	"github.com/smallbiznis/factura/internal/export"
	invoicedomain "github.com/smallbiznis/factura/internal/invoice/domain"
	tmpldomain "github.com/smallbiznis/factura/internal/invoicetemplate/domain"
)

const (
	defaultCompanyName  = "My Company"
	defaultCurrencyCode = "USD"
	defaultTemplateName = "Standard"
)

// EnsureDefaults seeds the issuer company, the USD currency and the built-in
// default template. It is idempotent and runs in one transaction at startup.
func EnsureDefaults(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var company invoicedomain.Company
		err := tx.First(&company).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			company = invoicedomain.Company{
				ID:   node.Generate(),
				Name: defaultCompanyName,
			}
			if err := tx.Create(&company).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var currency invoicedomain.Currency
		err = tx.First(&currency, "code = ?", defaultCurrencyCode).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			currency = invoicedomain.Currency{Code: defaultCurrencyCode, Symbol: "$"}
			if err := tx.Create(&currency).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&tmpldomain.Template{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			tmpl := tmpldomain.Template{
				ID:          node.Generate(),
				Name:        defaultTemplateName,
				StylingText: export.DefaultTemplate,
				Format:      string(export.DefaultTemplateFormat),
				IsDefault:   true,
			}
			if err := tx.Create(&tmpl).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
