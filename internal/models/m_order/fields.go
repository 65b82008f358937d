package m_order

// Field constants for the orders table.
const (
	TableName = "orders"

	ColOrderID        = "order_id"
	ColCustomerEmail  = "customer_email"
	ColCouponCode     = "coupon_code"
	ColSubtotal       = "subtotal"
	ColDiscountAmount = "discount_amount"
	ColShippingCost   = "shipping_cost"
	ColFreeShipping   = "free_shipping"
	ColTotal          = "total"
	ColPlacedAt       = "placed_at"
)

// Field constants for the order_lines table (interleaved in orders).
const (
	LinesTableName = "order_lines"

	ColLineNo       = "line_no"
	ColProductID    = "product_id"
	ColQuantity     = "quantity"
	ColUnitPrice    = "unit_price"
	ColBasePrice    = "base_price"
	ColIsDiscounted = "is_discounted"
	ColLineTotal    = "line_total"
)
