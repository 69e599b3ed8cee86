package clean

import (
	"github.com/shopspring/decimal"

	"fleximart/internal/model"
	"fleximart/internal/transformer"
	"fleximart/internal/transformer/builtin"
	"fleximart/pkg/records"
)

// Sales extract field names. customer_id and product_id here are natural
// keys referring to the other extracts, resolved later by the splitter.
const (
	FieldTransactionID = "transaction_id"
	FieldSaleCustomer  = "customer_id"
	FieldSaleProduct   = "product_id"
	FieldQuantity      = "quantity"
	FieldSaleUnitPrice = "unit_price"
	FieldSaleDate      = "transaction_date"
)

// SaleFields enumerates the expected sales extract columns.
var SaleFields = []string{
	FieldTransactionID, FieldSaleCustomer, FieldSaleProduct,
	FieldQuantity, FieldSaleUnitPrice, FieldSaleDate,
}

// Sales normalizes the raw sales extract into transient sale lines. Exact
// duplicates are dropped; transaction dates follow the same flexible parse
// policy as customer dates, with failures carried forward as absent (no row
// is dropped here). The line total is recomputed as quantity times
// unit_price, never trusted from the source, and is absent when either
// factor is.
func Sales(in []records.Record) ([]model.SaleLine, Stats) {
	var st Stats
	chain := transformer.Chain{
		builtin.Trim{},
		builtin.DeDup{},
	}
	recs := chain.Apply(in)
	st.settle(len(in), len(recs))

	out := make([]model.SaleLine, 0, len(recs))
	for _, r := range recs {
		var l model.SaleLine
		l.SourceID, _ = r.String(FieldTransactionID)
		l.CustomerRef, _ = r.String(FieldSaleCustomer)
		l.ProductRef, _ = r.String(FieldSaleProduct)
		if qty, ok := r.Int(FieldQuantity); ok {
			l.Quantity = &qty
		}
		if price, ok := r.Decimal(FieldSaleUnitPrice); ok {
			l.UnitPrice = &price
		}
		if l.Quantity != nil && l.UnitPrice != nil {
			total := l.UnitPrice.Mul(decimal.NewFromInt(*l.Quantity))
			l.Total = &total
		}
		if raw, ok := r.String(FieldSaleDate); ok {
			l.Date = parseDate(raw)
			if l.Date == nil {
				st.DegradedFields++
			}
		}
		out = append(out, l)
	}
	return out, st
}
