package pricing

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/dto"
	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/usecases/place_order"
)

// mapError translates domain sentinel errors into gRPC status codes.
// Unknown errors become codes.Internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Not found
	if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrCouponNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}

	// Invalid argument
	switch {
	case errors.Is(err, dto.ErrInvalidRequest),
		errors.Is(err, place_order.ErrMissingCustomerEmail),
		errors.Is(err, domain.ErrConfiguration),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrNegativeShippingCost):
		return status.Error(codes.InvalidArgument, err.Error())
	}

	// Conflicts
	switch {
	case errors.Is(err, domain.ErrDiscountAlreadyExists),
		errors.Is(err, domain.ErrCouponAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return status.Error(codes.Aborted, err.Error())
	}

	// Failed precondition
	switch {
	case errors.Is(err, domain.ErrNoDiscount),
		errors.Is(err, domain.ErrCouponAlreadyInactive),
		errors.Is(err, domain.ErrProductUnavailable),
		errors.Is(err, domain.ErrInsufficientStock):
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	return status.Error(codes.Internal, err.Error())
}
