package pricing

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/domain"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))

	tests := []struct {
		err  error
		want codes.Code
	}{
		{context.Canceled, codes.Canceled},
		{fmt.Errorf("product p1: %w", domain.ErrProductNotFound), codes.NotFound},
		{domain.ErrInvalidCouponPercentage, codes.InvalidArgument},
		{domain.ErrCouponExhausted, codes.Aborted},
		{fmt.Errorf("committer: apply 2 mutations: %w", fmt.Errorf("product p1: %w", domain.ErrProductChanged)), codes.Aborted},
		{domain.ErrCouponAlreadyExists, codes.AlreadyExists},
		{domain.ErrInsufficientStock, codes.FailedPrecondition},
		{errors.New("spanner down"), codes.Internal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, status.Code(mapError(tt.err)), tt.err.Error())
	}
}
