package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/models/m_order"
)

type OrderRepo struct{}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{}
}

// InsertMuts returns the orders row followed by one order_lines row per priced line.
func (r *OrderRepo) InsertMuts(o *domain.Order) []*spanner.Mutation {
	if o == nil {
		return nil
	}
	t := o.Totals()

	muts := make([]*spanner.Mutation, 0, len(t.Lines)+1)
	muts = append(muts, m_order.InsertOrderMutation(m_order.Order{
		OrderID:        o.ID(),
		CustomerEmail:  o.CustomerEmail(),
		CouponCode:     t.CouponCode,
		Subtotal:       t.Subtotal.Rat(),
		DiscountAmount: t.DiscountAmount.Rat(),
		ShippingCost:   t.ShippingCost.Rat(),
		FreeShipping:   t.FreeShipping,
		Total:          t.Total.Rat(),
		PlacedAt:       o.PlacedAt().UTC(),
	}))

	for i, l := range t.Lines {
		muts = append(muts, m_order.InsertLineMutation(o.ID(), m_order.Line{
			LineNo:       int64(i + 1),
			ProductID:    l.ProductID,
			Quantity:     int64(l.Quantity),
			UnitPrice:    l.UnitPrice.Rat(),
			BasePrice:    l.BasePrice.Rat(),
			IsDiscounted: l.IsDiscounted,
			LineTotal:    l.LineTotal.Rat(),
		}))
	}
	return muts
}
