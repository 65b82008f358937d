package pricing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/dto"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/place_order"
)

type errorRule struct {
	target error
	status int
	code   string
}

// First match wins, so specific errors come before their categories.
var errorRules = []errorRule{
	{dto.ErrInvalidRequest, http.StatusBadRequest, "invalid_request"},
	{place_order.ErrMissingCustomerEmail, http.StatusBadRequest, "invalid_request"},
	{domain.ErrEmptyCart, http.StatusBadRequest, "empty_cart"},
	{domain.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{domain.ErrNegativeShippingCost, http.StatusBadRequest, "invalid_shipping_cost"},
	{domain.ErrConfiguration, http.StatusBadRequest, "configuration_error"},

	{domain.ErrProductNotFound, http.StatusNotFound, "product_not_found"},
	{domain.ErrCouponNotFound, http.StatusNotFound, "coupon_not_found"},

	{domain.ErrDiscountAlreadyExists, http.StatusConflict, "discount_already_exists"},
	{domain.ErrCouponAlreadyExists, http.StatusConflict, "coupon_already_exists"},
	{domain.ErrConcurrencyConflict, http.StatusConflict, "concurrency_conflict"},

	{domain.ErrNoDiscount, http.StatusUnprocessableEntity, "no_discount"},
	{domain.ErrCouponAlreadyInactive, http.StatusUnprocessableEntity, "coupon_already_inactive"},
	{domain.ErrProductUnavailable, http.StatusUnprocessableEntity, "product_unavailable"},
	{domain.ErrInsufficientStock, http.StatusUnprocessableEntity, "insufficient_stock"},
}

// statusFor maps an application error to an HTTP status and error code.
// Unknown errors are internal.
func statusFor(err error) (int, string) {
	for _, r := range errorRules {
		if errors.Is(err, r.target) {
			return r.status, r.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Error: code, Message: msg})
}
