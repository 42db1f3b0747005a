package billing

import (
	"github.com/ecuDickens/project-orders-backend/internal/domain/ordering"
)

// Assembly is the output of scanning an account's orders for billing: the
// unbilled orders that will be covered by the invoice and their net total.
type Assembly struct {
	Orders []*ordering.Order
	Total  int64
}

// AssembleInvoice collects the orders still in status NEW and sums their
// totals. It is a pure read: no order is mutated. The second return value is
// false when there is nothing to bill, in which case no invoice should be
// produced.
func AssembleInvoice(orders []*ordering.Order) (*Assembly, bool) {
	var unbilled []*ordering.Order
	var total int64
	for _, o := range orders {
		if !o.IsNew() {
			continue
		}
		unbilled = append(unbilled, o)
		total += o.Total
	}
	if len(unbilled) == 0 {
		return nil, false
	}
	return &Assembly{Orders: unbilled, Total: total}, true
}
