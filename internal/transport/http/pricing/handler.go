package pricing

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/dto"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/apply_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/create_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/deactivate_coupon"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/place_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/purge_expired_discounts"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/quote_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/remove_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/update_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/update_price"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/validate_coupon"
)

// Checkout groups the customer-facing interactors.
type Checkout struct {
	Quote    *quote_order.Interactor
	Place    *place_order.Interactor
	Validate *validate_coupon.Interactor
}

// Admin groups the back-office interactors.
type Admin struct {
	ApplyDiscount    *apply_discount.Interactor
	UpdateDiscount   *update_discount.Interactor
	RemoveDiscount   *remove_discount.Interactor
	UpdatePrice      *update_price.Interactor
	CreateCoupon     *create_coupon.Interactor
	DeactivateCoupon *deactivate_coupon.Interactor
	PurgeExpired     *purge_expired_discounts.Interactor
}

// Handler is a thin HTTP adapter: decode, map to the interactor request,
// execute, map back.
type Handler struct {
	checkout Checkout
	admin    Admin
	logger   *zap.Logger
}

func NewHandler(checkout Checkout, admin Admin, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{checkout: checkout, admin: admin, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) QuoteOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if !h.decode(w, r, &req) {
		return
	}
	appReq, err := req.ToUsecase()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp, err := h.checkout.Quote.Execute(r.Context(), appReq)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromQuote(resp))
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderRequest
	if !h.decode(w, r, &req) {
		return
	}
	appReq, err := req.ToUsecase()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp, err := h.checkout.Place.Execute(r.Context(), appReq)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromPlaceOrder(resp))
}

func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateCouponRequest
	if !h.decode(w, r, &req) {
		return
	}
	appReq, err := req.ToUsecase()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	resp, err := h.checkout.Validate.Execute(r.Context(), appReq)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.FromValidation(resp))
}

func (h *Handler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	var req dto.DiscountRequest
	if !h.decode(w, r, &req) {
		return
	}
	appReq, err := req.ToApply(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.admin.ApplyDiscount.Execute(r.Context(), appReq); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	var req dto.DiscountRequest
	if !h.decode(w, r, &req) {
		return
	}
	appReq, err := req.ToUpdate(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.admin.UpdateDiscount.Execute(r.Context(), appReq); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	req := remove_discount.Request{ProductID: chi.URLParam(r, "id")}
	if err := h.admin.RemoveDiscount.Execute(r.Context(), req); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePriceRequest
	if !h.decode(w, r, &req) {
		return
	}
	appReq, err := req.ToUsecase(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.admin.UpdatePrice.Execute(r.Context(), appReq); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCouponRequest
	if !h.decode(w, r, &req) {
		return
	}
	appReq, err := req.ToUsecase()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	coupon, err := h.admin.CreateCoupon.Execute(r.Context(), appReq)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.FromCoupon(coupon))
}

func (h *Handler) DeactivateCoupon(w http.ResponseWriter, r *http.Request) {
	req := deactivate_coupon.Request{Code: chi.URLParam(r, "code")}
	if err := h.admin.DeactivateCoupon.Execute(r.Context(), req); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PurgeExpiredDiscounts(w http.ResponseWriter, r *http.Request) {
	resp, err := h.admin.PurgeExpired.Execute(r.Context(), purge_expired_discounts.Request{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ids := resp.ProductIDs
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, dto.PurgeResponse{Purged: len(ids), ProductIDs: ids})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, status, code, "internal error")
		return
	}
	writeError(w, status, code, err.Error())
}
