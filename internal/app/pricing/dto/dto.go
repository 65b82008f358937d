// Package dto holds the JSON shapes shared by the HTTP and gRPC transports.
// Money goes in as a decimal (string or number) and comes out as a string
// with two decimal places.
package dto

import "github.com/shopspring/decimal"

type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type QuoteRequest struct {
	Items        []CartItem       `json:"items"`
	CouponCode   string           `json:"coupon_code,omitempty"`
	ShippingCost *decimal.Decimal `json:"shipping_cost,omitempty"`
}

type PlaceOrderRequest struct {
	CustomerEmail string           `json:"customer_email"`
	Items         []CartItem       `json:"items"`
	CouponCode    string           `json:"coupon_code,omitempty"`
	ShippingCost  *decimal.Decimal `json:"shipping_cost,omitempty"`
}

type ValidateCouponRequest struct {
	Code  string     `json:"code"`
	Items []CartItem `json:"items"`
}

// DiscountRequest sets or replaces a product discount.
// ExpiresAt is either YYYY-MM-DD (end of that day, UTC) or RFC3339.
type DiscountRequest struct {
	ProductID  string           `json:"product_id,omitempty"`
	Kind       string           `json:"kind"`
	Percentage int              `json:"percentage,omitempty"`
	FixedPrice *decimal.Decimal `json:"fixed_price,omitempty"`
	ExpiresAt  string           `json:"expires_at,omitempty"`
}

type RemoveDiscountRequest struct {
	ProductID string `json:"product_id"`
}

type UpdatePriceRequest struct {
	BasePrice *decimal.Decimal `json:"base_price"`
}

// CreateCouponRequest defines a coupon. AppliesTo is all_products, category
// or product; Target names the category or product id.
type CreateCouponRequest struct {
	Code            string           `json:"code"`
	Kind            string           `json:"kind"`
	Percentage      int              `json:"percentage,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	AppliesTo       string           `json:"applies_to"`
	Target          string           `json:"target,omitempty"`
	MinimumPurchase *decimal.Decimal `json:"minimum_purchase,omitempty"`
	UsesTotal       int              `json:"uses_total,omitempty"`
	ExpiresAt       string           `json:"expires_at,omitempty"`
}

type PricedLine struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	BasePrice    string `json:"base_price"`
	UnitPrice    string `json:"unit_price"`
	IsDiscounted bool   `json:"is_discounted"`
	LineTotal    string `json:"line_total"`
}

type Totals struct {
	Lines          []PricedLine `json:"lines"`
	Subtotal       string       `json:"subtotal"`
	DiscountAmount string       `json:"discount_amount"`
	ShippingCost   string       `json:"shipping_cost"`
	FreeShipping   bool         `json:"free_shipping"`
	CouponCode     string       `json:"coupon_code,omitempty"`
	Total          string       `json:"total"`
}

// CouponRejection explains why a submitted code was not applied.
type CouponRejection struct {
	Code    string `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type QuoteResponse struct {
	Totals          Totals           `json:"totals"`
	CouponRejection *CouponRejection `json:"coupon_rejection,omitempty"`
}

type PlaceOrderResponse struct {
	OrderID         string           `json:"order_id"`
	Totals          Totals           `json:"totals"`
	CouponRejection *CouponRejection `json:"coupon_rejection,omitempty"`
}

type ValidateCouponResponse struct {
	Code           string `json:"code"`
	Valid          bool   `json:"valid"`
	Reason         string `json:"reason,omitempty"`
	Message        string `json:"message,omitempty"`
	DiscountAmount string `json:"discount_amount"`
	FreeShipping   bool   `json:"free_shipping"`
	Subtotal       string `json:"subtotal"`
}

type CreateCouponResponse struct {
	Code      string `json:"code"`
	UsesTotal int    `json:"uses_total"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

type PurgeResponse struct {
	Purged     int      `json:"purged"`
	ProductIDs []string `json:"product_ids"`
}

// Empty is the reply of commands that return nothing.
type Empty struct{}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
