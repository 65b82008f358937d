package pricing

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/dto"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/apply_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/place_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/quote_order"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/remove_discount"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/validate_coupon"
)

// Commands groups the interactors the gRPC surface exposes.
type Commands struct {
	Quote          *quote_order.Interactor
	Place          *place_order.Interactor
	Validate       *validate_coupon.Interactor
	ApplyDiscount  *apply_discount.Interactor
	RemoveDiscount *remove_discount.Interactor
}

// Handler is a thin gRPC transport adapter.
type Handler struct {
	commands Commands
}

var _ PricingServiceServer = (*Handler)(nil)

func NewHandler(cmd Commands) *Handler {
	return &Handler{commands: cmd}
}

func (h *Handler) QuoteOrder(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	appReq, err := req.ToUsecase()
	if err != nil {
		return nil, mapError(err)
	}
	resp, err := h.commands.Quote.Execute(ctx, appReq)
	if err != nil {
		return nil, mapError(err)
	}
	out := dto.FromQuote(resp)
	return &out, nil
}

func (h *Handler) PlaceOrder(ctx context.Context, req *dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error) {
	appReq, err := req.ToUsecase()
	if err != nil {
		return nil, mapError(err)
	}
	resp, err := h.commands.Place.Execute(ctx, appReq)
	if err != nil {
		return nil, mapError(err)
	}
	out := dto.FromPlaceOrder(resp)
	return &out, nil
}

func (h *Handler) ValidateCoupon(ctx context.Context, req *dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error) {
	appReq, err := req.ToUsecase()
	if err != nil {
		return nil, mapError(err)
	}
	resp, err := h.commands.Validate.Execute(ctx, appReq)
	if err != nil {
		return nil, mapError(err)
	}
	out := dto.FromValidation(resp)
	return &out, nil
}

func (h *Handler) ApplyDiscount(ctx context.Context, req *dto.DiscountRequest) (*dto.Empty, error) {
	if strings.TrimSpace(req.ProductID) == "" {
		return nil, status.Error(codes.InvalidArgument, "product_id is required")
	}
	appReq, err := req.ToApply(req.ProductID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := h.commands.ApplyDiscount.Execute(ctx, appReq); err != nil {
		return nil, mapError(err)
	}
	return &dto.Empty{}, nil
}

func (h *Handler) RemoveDiscount(ctx context.Context, req *dto.RemoveDiscountRequest) (*dto.Empty, error) {
	if strings.TrimSpace(req.ProductID) == "" {
		return nil, status.Error(codes.InvalidArgument, "product_id is required")
	}
	if err := h.commands.RemoveDiscount.Execute(ctx, remove_discount.Request{ProductID: req.ProductID}); err != nil {
		return nil, mapError(err)
	}
	return &dto.Empty{}, nil
}
