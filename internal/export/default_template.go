package export

import "github.com/smallbiznis/factura/internal/templating"

// DefaultTemplateFormat is the dialect of the built-in template.
const DefaultTemplateFormat = templating.FormatMarkup

// DefaultTemplate is the built-in invoice layout. It is seeded as the
// initial default and is the fallback whenever a custom template fails to
// compile or render, so an export always produces a document.
const DefaultTemplate = `<div className="invoice">
  <div className="header">
    {company.logo_url && <img className="logo" src="{company.logo_url}" alt="logo" />}
    <div className="issuer">
      <h1>{company.name}</h1>
      <p>{company.address} {company.city} {company.state} {company.postal}</p>
      <p>{company.email} {company.phone}</p>
    </div>
    <div className="meta">
      <h2>Invoice #{invoice.invoice_number}</h2>
      <p>Status: {invoice.status}</p>
      <p>Issued: {issueDate}</p>
      <p>Due: {dueDate}</p>
    </div>
  </div>
  <div className="billto">
    <h3>Bill To</h3>
    <p>{invoice.customer_name}</p>
    <p>{invoice.customer_address}</p>
    <p>{invoice.customer_city} {invoice.customer_state} {invoice.customer_postal}</p>
    <p>{invoice.customer_country}</p>
  </div>
  <table className="items">
    <thead>
      <tr><th>Item</th><th>Qty</th><th>Unit Price</th><th>Amount</th></tr>
    </thead>
    <tbody>
      {invoice.items.map(item => (
        <tr>
          <td>{item.name}</td>
          <td>{item.quantity}</td>
          <td>{currency.symbol}{item.unit_price}</td>
          <td>{currency.symbol}{item.amount}</td>
        </tr>
      ))}
    </tbody>
  </table>
  <div className="totals">
    <p>Subtotal: {currency.symbol}{subtotal}</p>
    {invoice.discount_amount ? (<p>Discount: -{currency.symbol}{discountAmount}</p>) : ''}
    {invoice.tax_amount ? (<p>Tax: {currency.symbol}{taxAmount}</p>) : ''}
    {invoice.shipping_amount ? (<p>Shipping: {currency.symbol}{shippingAmount}</p>) : ''}
    <p className="total">Total: {currency.symbol}{total}</p>
  </div>
  {invoice.notes && <div className="notes"><h3>Notes</h3><p>{invoice.notes}</p></div>}
  {invoice.terms && <div className="terms"><h3>Terms</h3><p>{invoice.terms}</p></div>}
</div>`
