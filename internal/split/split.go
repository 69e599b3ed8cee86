// Package split resolves the sales lines' natural references through the
// customer and product key maps and derives the two dependent entities:
// order headers and order line items.
//
// The resolution policy is deliberately asymmetric. A sale whose customer
// cannot be resolved still happened; the order is kept with an absent
// customer so revenue history survives. A sale whose product cannot be
// resolved can produce no line item, so it is excluded from order_items
// while its order row remains.
package split

import (
	"sort"

	"fleximart/internal/keymap"
	"fleximart/internal/model"
)

// Result carries the derived entities and the splitter's counts.
type Result struct {
	Orders []model.Order
	Items  []model.OrderItem

	// UnresolvedCustomers counts orders created with an absent customer.
	UnresolvedCustomers int
	// DroppedItems counts sale lines excluded from order_items for an
	// unresolvable product.
	DroppedItems int
}

// Derive assigns order surrogates to every normalized sale line, resolves
// references, and splits the lines into orders and order items.
//
// order_id is dense 1..N in the lines' post-dedup order and is assigned
// before the product-resolution drop, so every line gets one. order_item_id
// is dense 1..M over the surviving lines after a stable sort by order date
// (absent dates last, ties keep line order), so an item's order_id
// reflects original sale order, not date order.
func Derive(lines []model.SaleLine, customers, products keymap.KeyMap) Result {
	var res Result

	type keyed struct {
		line    model.SaleLine
		orderID int64
	}

	res.Orders = make([]model.Order, 0, len(lines))
	kept := make([]keyed, 0, len(lines))
	for i, l := range lines {
		orderID := int64(i + 1)
		o := model.Order{
			OrderID:     orderID,
			OrderDate:   l.Date,
			TotalAmount: l.Total,
			Status:      model.OrderStatusPending,
		}
		if cid, ok := customers.Resolve(l.CustomerRef); ok {
			o.CustomerID = &cid
		} else {
			res.UnresolvedCustomers++
		}
		res.Orders = append(res.Orders, o)

		if _, ok := products.Resolve(l.ProductRef); ok {
			kept = append(kept, keyed{line: l, orderID: orderID})
		} else {
			res.DroppedItems++
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		di, dj := kept[i].line.Date, kept[j].line.Date
		switch {
		case di == nil && dj == nil:
			return false
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})

	res.Items = make([]model.OrderItem, 0, len(kept))
	for i, k := range kept {
		pid, _ := products.Resolve(k.line.ProductRef)
		res.Items = append(res.Items, model.OrderItem{
			OrderItemID: int64(i + 1),
			OrderID:     k.orderID,
			ProductID:   pid,
			Quantity:    k.line.Quantity,
			UnitPrice:   k.line.UnitPrice,
			Subtotal:    k.line.Total,
		})
	}
	return res
}
