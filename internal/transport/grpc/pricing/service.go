package pricing

import (
	"context"

	"google.golang.org/grpc"

	"github.com/murkotick/storefront-pricing-service/internal/app/pricing/dto"
)

const ServiceName = "pricing.v1.PricingService"

// PricingServiceServer is the server API for pricing.v1.PricingService.
type PricingServiceServer interface {
	QuoteOrder(context.Context, *dto.QuoteRequest) (*dto.QuoteResponse, error)
	PlaceOrder(context.Context, *dto.PlaceOrderRequest) (*dto.PlaceOrderResponse, error)
	ValidateCoupon(context.Context, *dto.ValidateCouponRequest) (*dto.ValidateCouponResponse, error)
	ApplyDiscount(context.Context, *dto.DiscountRequest) (*dto.Empty, error)
	RemoveDiscount(context.Context, *dto.RemoveDiscountRequest) (*dto.Empty, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PricingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("QuoteOrder", PricingServiceServer.QuoteOrder),
		unary("PlaceOrder", PricingServiceServer.PlaceOrder),
		unary("ValidateCoupon", PricingServiceServer.ValidateCoupon),
		unary("ApplyDiscount", PricingServiceServer.ApplyDiscount),
		unary("RemoveDiscount", PricingServiceServer.RemoveDiscount),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pricing/v1/pricing_service",
}

func RegisterPricingServiceServer(s grpc.ServiceRegistrar, srv PricingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unary[Req, Resp any](method string, call func(PricingServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(PricingServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

// Client calls PricingService with the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) QuoteOrder(ctx context.Context, in *dto.QuoteRequest, opts ...grpc.CallOption) (*dto.QuoteResponse, error) {
	return invoke[dto.QuoteResponse](ctx, c.cc, "QuoteOrder", in, opts)
}

func (c *Client) PlaceOrder(ctx context.Context, in *dto.PlaceOrderRequest, opts ...grpc.CallOption) (*dto.PlaceOrderResponse, error) {
	return invoke[dto.PlaceOrderResponse](ctx, c.cc, "PlaceOrder", in, opts)
}

func (c *Client) ValidateCoupon(ctx context.Context, in *dto.ValidateCouponRequest, opts ...grpc.CallOption) (*dto.ValidateCouponResponse, error) {
	return invoke[dto.ValidateCouponResponse](ctx, c.cc, "ValidateCoupon", in, opts)
}

func (c *Client) ApplyDiscount(ctx context.Context, in *dto.DiscountRequest, opts ...grpc.CallOption) (*dto.Empty, error) {
	return invoke[dto.Empty](ctx, c.cc, "ApplyDiscount", in, opts)
}

func (c *Client) RemoveDiscount(ctx context.Context, in *dto.RemoveDiscountRequest, opts ...grpc.CallOption) (*dto.Empty, error) {
	return invoke[dto.Empty](ctx, c.cc, "RemoveDiscount", in, opts)
}
