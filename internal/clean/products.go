package clean

import (
	"github.com/shopspring/decimal"

	"fleximart/internal/model"
	"fleximart/internal/transformer"
	"fleximart/internal/transformer/builtin"
	"fleximart/pkg/records"
)

// Product extract field names.
const (
	FieldProductID   = "product_id"
	FieldProductName = "product_name"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldStockQty    = "stock_quantity"
)

// ProductFields enumerates the expected product extract columns.
var ProductFields = []string{
	FieldProductID, FieldProductName, FieldCategory, FieldPrice, FieldStockQty,
}

// Products normalizes the raw product extract. Exact-duplicate rows are
// dropped; categories are title-cased; names are trimmed. A missing price is
// imputed in two tiers: first from the sales extract (first unit price seen
// per natural product id), then from the mean price of the product's
// category computed after the first tier. Missing stock defaults to 0.
// Surrogate product_id values are dense 1..N in post-dedup input order.
func Products(in, rawSales []records.Record) ([]model.Product, Stats) {
	var st Stats
	chain := transformer.Chain{
		builtin.Trim{},
		builtin.DeDup{},
	}
	recs := chain.Apply(in)
	st.settle(len(in), len(recs))

	priceBySource := salesPriceMap(rawSales)

	out := make([]model.Product, 0, len(recs))
	for i, r := range recs {
		p := model.Product{ProductID: int64(i + 1)}
		p.SourceID, _ = r.String(FieldProductID)
		p.ProductName, _ = r.String(FieldProductName)
		if cat, ok := r.String(FieldCategory); ok {
			titled := titleCase(cat)
			p.Category = &titled
		}
		if price, ok := r.Decimal(FieldPrice); ok {
			p.Price = &price
		} else if mapped, ok := priceBySource[p.SourceID]; ok {
			// Tier a: the price the product actually sold at.
			v := mapped
			p.Price = &v
		}
		if qty, ok := r.Int(FieldStockQty); ok && qty >= 0 {
			p.StockQuantity = qty
		}
		out = append(out, p)
	}

	// Tier b: rows still missing a price take the mean of their category,
	// computed over prices present after tier a. A category with no priced
	// rows (or a row with no category) stays absent and is reported.
	fillCategoryMeans(out, &st)
	return out, st
}

// salesPriceMap extracts the first non-absent unit price per natural product
// id from the raw sales extract, in input order.
func salesPriceMap(rawSales []records.Record) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal)
	for _, r := range rawSales {
		id, ok := r.String(FieldProductID)
		if !ok {
			continue
		}
		if _, seen := m[id]; seen {
			continue
		}
		if price, ok := r.Decimal(FieldSaleUnitPrice); ok {
			m[id] = price
		}
	}
	return m
}

func fillCategoryMeans(prods []model.Product, st *Stats) {
	sums := map[string]decimal.Decimal{}
	counts := map[string]int64{}
	for _, p := range prods {
		if p.Price == nil || p.Category == nil {
			continue
		}
		sums[*p.Category] = sums[*p.Category].Add(*p.Price)
		counts[*p.Category]++
	}
	for i := range prods {
		p := &prods[i]
		if p.Price != nil {
			continue
		}
		if p.Category != nil {
			if n := counts[*p.Category]; n > 0 {
				mean := sums[*p.Category].Div(decimal.NewFromInt(n))
				p.Price = &mean
				continue
			}
		}
		st.DegradedFields++
	}
}
