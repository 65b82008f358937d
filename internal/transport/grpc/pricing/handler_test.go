package pricing

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/dto"
	"github.com/murkotick/storefront-pricing-service/internal/transport/transporttest"
)

func newClient(t *testing.T) (*Client, *transporttest.App) {
	t.Helper()
	app := transporttest.NewApp(t)
	h := NewHandler(Commands{
		Quote:          app.Quote,
		Place:          app.Place,
		Validate:       app.Validate,
		ApplyDiscount:  app.ApplyDiscount,
		RemoveDiscount: app.RemoveDiscount,
	})

	lis := bufconn.Listen(1 << 20)
	srv := NewServer(h, nil)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn), app
}

func TestQuoteOrder(t *testing.T) {
	c, _ := newClient(t)

	resp, err := c.QuoteOrder(context.Background(), &dto.QuoteRequest{
		Items:      []dto.CartItem{{ProductID: "tee", Quantity: 2}},
		CouponCode: "VERANO20",
	})
	require.NoError(t, err)
	assert.Equal(t, "60.00", resp.Totals.Subtotal)
	assert.Equal(t, "12.00", resp.Totals.DiscountAmount)
	assert.Equal(t, "53.00", resp.Totals.Total)
	assert.Nil(t, resp.CouponRejection)
}

func TestPlaceOrder(t *testing.T) {
	c, app := newClient(t)

	resp, err := c.PlaceOrder(context.Background(), &dto.PlaceOrderRequest{
		CustomerEmail: "ana@example.com",
		Items:         []dto.CartItem{{ProductID: "tee", Quantity: 2}},
		CouponCode:    "verano20",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, "VERANO20", resp.Totals.CouponCode)

	coupon, err := app.Store.GetCouponByCode(context.Background(), "VERANO20")
	require.NoError(t, err)
	assert.Equal(t, 1, coupon.UsesConsumed())
	assert.Contains(t, app.Outbox.Types(), "order.placed")
}

func TestValidateCoupon(t *testing.T) {
	c, _ := newClient(t)

	resp, err := c.ValidateCoupon(context.Background(), &dto.ValidateCouponRequest{
		Code:  "VERANO20",
		Items: []dto.CartItem{{ProductID: "tee", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, "below_minimum", resp.Reason)
}

func TestDiscounts(t *testing.T) {
	c, app := newClient(t)
	ctx := context.Background()

	_, err := c.ApplyDiscount(ctx, &dto.DiscountRequest{ProductID: "tee", Kind: "percentage", Percentage: 10})
	require.NoError(t, err)

	_, err = c.RemoveDiscount(ctx, &dto.RemoveDiscountRequest{ProductID: "leggings"})
	require.NoError(t, err)

	assert.Equal(t, []string{"product.discount_applied", "product.discount_removed"}, app.Outbox.Types())
}

func TestErrorCodes(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{"unknown product", func() error {
			_, err := c.QuoteOrder(ctx, &dto.QuoteRequest{Items: []dto.CartItem{{ProductID: "ghost", Quantity: 1}}})
			return err
		}, codes.NotFound},
		{"empty cart", func() error {
			_, err := c.QuoteOrder(ctx, &dto.QuoteRequest{})
			return err
		}, codes.InvalidArgument},
		{"out of stock", func() error {
			_, err := c.QuoteOrder(ctx, &dto.QuoteRequest{Items: []dto.CartItem{{ProductID: "cap", Quantity: 1}}})
			return err
		}, codes.FailedPrecondition},
		{"missing email", func() error {
			_, err := c.PlaceOrder(ctx, &dto.PlaceOrderRequest{Items: []dto.CartItem{{ProductID: "tee", Quantity: 1}}})
			return err
		}, codes.InvalidArgument},
		{"bad percentage", func() error {
			_, err := c.ApplyDiscount(ctx, &dto.DiscountRequest{ProductID: "tee", Kind: "percentage", Percentage: 0})
			return err
		}, codes.InvalidArgument},
		{"discount exists", func() error {
			_, err := c.ApplyDiscount(ctx, &dto.DiscountRequest{ProductID: "leggings", Kind: "percentage", Percentage: 5})
			return err
		}, codes.AlreadyExists},
		{"missing product id", func() error {
			_, err := c.RemoveDiscount(ctx, &dto.RemoveDiscountRequest{})
			return err
		}, codes.InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, tt.want, status.Code(err))
		})
	}
}
