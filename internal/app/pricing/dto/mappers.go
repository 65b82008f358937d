package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/apply_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/create_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/place_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/quote_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/shared"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/update_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/update_price"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/validate_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/utils"
)

// ErrInvalidRequest marks malformed transport input.
var ErrInvalidRequest = errors.New("invalid request")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// ParseMoney converts an optional decimal into Money. Amounts below one cent
// are rejected rather than rounded.
func ParseMoney(field string, d *decimal.Decimal) (*domain.Money, error) {
	if d == nil {
		return nil, nil
	}
	if !d.Equal(d.Round(2)) {
		return nil, invalid("%s must have at most 2 decimal places", field)
	}
	return domain.NewMoneyFromRat(d.Rat()), nil
}

func cartItems(in []CartItem) []shared.CartItem {
	out := make([]shared.CartItem, 0, len(in))
	for _, it := range in {
		out = append(out, shared.CartItem{ProductID: strings.TrimSpace(it.ProductID), Quantity: it.Quantity})
	}
	return out
}

func (r QuoteRequest) ToUsecase() (quote_order.Request, error) {
	shipping, err := ParseMoney("shipping_cost", r.ShippingCost)
	if err != nil {
		return quote_order.Request{}, err
	}
	return quote_order.Request{Items: cartItems(r.Items), CouponCode: r.CouponCode, ShippingCost: shipping}, nil
}

func (r PlaceOrderRequest) ToUsecase() (place_order.Request, error) {
	shipping, err := ParseMoney("shipping_cost", r.ShippingCost)
	if err != nil {
		return place_order.Request{}, err
	}
	return place_order.Request{
		CustomerEmail: r.CustomerEmail,
		Items:         cartItems(r.Items),
		CouponCode:    r.CouponCode,
		ShippingCost:  shipping,
	}, nil
}

func (r ValidateCouponRequest) ToUsecase() (validate_coupon.Request, error) {
	if strings.TrimSpace(r.Code) == "" {
		return validate_coupon.Request{}, invalid("code is required")
	}
	return validate_coupon.Request{Code: r.Code, Items: cartItems(r.Items)}, nil
}

func (r DiscountRequest) spec() (shared.DiscountSpec, error) {
	fixed, err := ParseMoney("fixed_price", r.FixedPrice)
	if err != nil {
		return shared.DiscountSpec{}, err
	}
	exp, err := utils.ParseExpiry(r.ExpiresAt)
	if err != nil {
		return shared.DiscountSpec{}, err
	}
	return shared.DiscountSpec{
		Kind:       domain.DiscountKind(strings.ToLower(strings.TrimSpace(r.Kind))),
		Percentage: r.Percentage,
		FixedPrice: fixed,
		ExpiresAt:  exp,
	}, nil
}

func (r DiscountRequest) ToApply(productID string) (apply_discount.Request, error) {
	spec, err := r.spec()
	if err != nil {
		return apply_discount.Request{}, err
	}
	return apply_discount.Request{ProductID: productID, Discount: spec}, nil
}

func (r DiscountRequest) ToUpdate(productID string) (update_discount.Request, error) {
	spec, err := r.spec()
	if err != nil {
		return update_discount.Request{}, err
	}
	return update_discount.Request{ProductID: productID, Discount: spec}, nil
}

func (r UpdatePriceRequest) ToUsecase(productID string) (update_price.Request, error) {
	if r.BasePrice == nil {
		return update_price.Request{}, invalid("base_price is required")
	}
	price, err := ParseMoney("base_price", r.BasePrice)
	if err != nil {
		return update_price.Request{}, err
	}
	return update_price.Request{ProductID: productID, BasePrice: price}, nil
}

func (r CreateCouponRequest) ToUsecase() (create_coupon.Request, error) {
	amount, err := ParseMoney("amount", r.Amount)
	if err != nil {
		return create_coupon.Request{}, err
	}
	minimum, err := ParseMoney("minimum_purchase", r.MinimumPurchase)
	if err != nil {
		return create_coupon.Request{}, err
	}
	exp, err := utils.ParseExpiry(r.ExpiresAt)
	if err != nil {
		return create_coupon.Request{}, err
	}

	var benefit domain.Benefit
	switch domain.BenefitKind(strings.ToLower(strings.TrimSpace(r.Kind))) {
	case domain.BenefitPercentage:
		benefit = domain.PercentageBenefit(r.Percentage)
	case domain.BenefitFixedAmount:
		if amount == nil {
			return create_coupon.Request{}, domain.ErrInvalidCouponAmount
		}
		benefit = domain.FixedAmountBenefit(amount)
	case domain.BenefitFreeShipping:
		benefit = domain.FreeShippingBenefit()
	default:
		return create_coupon.Request{}, domain.ErrInvalidCouponKind
	}

	var scope domain.Scope
	switch domain.ScopeKind(strings.ToLower(strings.TrimSpace(r.AppliesTo))) {
	case domain.ScopeAllProducts, "":
		scope = domain.AllProducts()
	case domain.ScopeCategory:
		scope = domain.CategoryScope(r.Target)
	case domain.ScopeProduct:
		scope = domain.ProductScope(r.Target)
	default:
		return create_coupon.Request{}, domain.ErrInvalidCouponScope
	}

	return create_coupon.Request{Params: domain.CouponParams{
		Code:            r.Code,
		Benefit:         benefit,
		Scope:           scope,
		MinimumPurchase: minimum,
		UsesTotal:       r.UsesTotal,
		ExpiresAt:       exp,
	}}, nil
}

func FromTotals(t *domain.OrderTotals) Totals {
	out := Totals{
		Lines:          make([]PricedLine, 0, len(t.Lines)),
		Subtotal:       t.Subtotal.String(),
		DiscountAmount: t.DiscountAmount.String(),
		ShippingCost:   t.ShippingCost.String(),
		FreeShipping:   t.FreeShipping,
		CouponCode:     t.CouponCode,
		Total:          t.Total.String(),
	}
	for _, l := range t.Lines {
		out.Lines = append(out.Lines, PricedLine{
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			BasePrice:    l.BasePrice.String(),
			UnitPrice:    l.UnitPrice.String(),
			IsDiscounted: l.IsDiscounted,
			LineTotal:    l.LineTotal.String(),
		})
	}
	return out
}

func FromRejection(f *domain.ValidationFailure) *CouponRejection {
	if f == nil {
		return nil
	}
	return &CouponRejection{Code: f.Code, Reason: string(f.Reason), Message: f.Reason.Message()}
}

func FromQuote(r *quote_order.Response) QuoteResponse {
	return QuoteResponse{Totals: FromTotals(r.Totals), CouponRejection: FromRejection(r.CouponRejection)}
}

func FromPlaceOrder(r *place_order.Response) PlaceOrderResponse {
	return PlaceOrderResponse{
		OrderID:         r.OrderID,
		Totals:          FromTotals(r.Totals),
		CouponRejection: FromRejection(r.CouponRejection),
	}
}

func FromValidation(r *validate_coupon.Response) ValidateCouponResponse {
	out := ValidateCouponResponse{
		Code:           r.Result.Code(),
		Valid:          r.Result.IsValid(),
		DiscountAmount: r.Result.DiscountAmount().String(),
		FreeShipping:   r.Result.FreeShipping(),
		Subtotal:       r.Subtotal.String(),
	}
	if !out.Valid {
		out.Reason = string(r.Result.Reason())
		out.Message = r.Result.Reason().Message()
	}
	return out
}

func FromCoupon(c *domain.Coupon) CreateCouponResponse {
	return CreateCouponResponse{
		Code:      c.Code(),
		UsesTotal: c.UsesTotal(),
		ExpiresAt: utils.FormatTimePtr(c.ExpiresAt()),
	}
}
