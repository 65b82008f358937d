package m_order

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Order is the column-level shape of an orders row.
type Order struct {
	OrderID        string
	CustomerEmail  string
	CouponCode     string
	Subtotal       *big.Rat
	DiscountAmount *big.Rat
	ShippingCost   *big.Rat
	FreeShipping   bool
	Total          *big.Rat
	PlacedAt       time.Time
}

// Line is the column-level shape of an order_lines row.
type Line struct {
	LineNo       int64
	ProductID    string
	Quantity     int64
	UnitPrice    *big.Rat
	BasePrice    *big.Rat
	IsDiscounted bool
	LineTotal    *big.Rat
}

func numeric(r *big.Rat) spanner.NullNumeric {
	if r == nil {
		return spanner.NullNumeric{}
	}
	return spanner.NullNumeric{Numeric: *r, Valid: true}
}

// InsertOrderMutation builds the orders row insert.
func InsertOrderMutation(o Order) *spanner.Mutation {
	var coupon spanner.NullString
	if o.CouponCode != "" {
		coupon = spanner.NullString{StringVal: o.CouponCode, Valid: true}
	}
	return spanner.Insert(TableName,
		[]string{ColOrderID, ColCustomerEmail, ColCouponCode, ColSubtotal, ColDiscountAmount,
			ColShippingCost, ColFreeShipping, ColTotal, ColPlacedAt},
		[]interface{}{o.OrderID, o.CustomerEmail, coupon, numeric(o.Subtotal), numeric(o.DiscountAmount),
			numeric(o.ShippingCost), o.FreeShipping, numeric(o.Total), o.PlacedAt})
}

// InsertLineMutation builds one order_lines row insert.
func InsertLineMutation(orderID string, l Line) *spanner.Mutation {
	return spanner.Insert(LinesTableName,
		[]string{ColOrderID, ColLineNo, ColProductID, ColQuantity, ColUnitPrice, ColBasePrice,
			ColIsDiscounted, ColLineTotal},
		[]interface{}{orderID, l.LineNo, l.ProductID, l.Quantity, numeric(l.UnitPrice), numeric(l.BasePrice),
			l.IsDiscounted, numeric(l.LineTotal)})
}
