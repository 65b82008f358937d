package domain

import "fmt"

// InvalidReason says why a coupon was not applied.
type InvalidReason string

// Reasons, in the order the validator checks them.
const (
	ReasonNotFound            InvalidReason = "not_found"
	ReasonInactive            InvalidReason = "inactive"
	ReasonExpired             InvalidReason = "expired"
	ReasonExhausted           InvalidReason = "exhausted"
	ReasonBelowMinimum        InvalidReason = "below_minimum"
	ReasonNotApplicableToCart InvalidReason = "not_applicable_to_cart"
)

// ReasonMisconfigured marks a stored coupon the validator cannot evaluate.
// The customer sees a generic message; the failure unwraps to ErrUnknownCouponBenefit.
const ReasonMisconfigured InvalidReason = "misconfigured"

// Message is the customer-facing text for the reason.
func (r InvalidReason) Message() string {
	switch r {
	case ReasonNotFound:
		return "This coupon code does not exist."
	case ReasonInactive:
		return "This coupon is no longer active."
	case ReasonExpired:
		return "This coupon has expired."
	case ReasonExhausted:
		return "This coupon is no longer available."
	case ReasonBelowMinimum:
		return "Your cart does not reach the minimum purchase for this coupon."
	case ReasonNotApplicableToCart:
		return "This coupon does not apply to any product in your cart."
	case ReasonMisconfigured:
		return "This coupon cannot be applied right now."
	}
	return "This coupon cannot be applied."
}

// ValidationFailure is a recoverable coupon rejection. The cart proceeds
// without the discount and the reason is shown to the customer.
type ValidationFailure struct {
	Code   string
	Reason InvalidReason
}

func (f *ValidationFailure) Error() string {
	return fmt.Sprintf("coupon %q not applied: %s", f.Code, f.Reason)
}

// Unwrap exposes the configuration error behind a misconfigured coupon.
// Customer-facing rejections unwrap to nil.
func (f *ValidationFailure) Unwrap() error {
	if f != nil && f.Reason == ReasonMisconfigured {
		return ErrUnknownCouponBenefit
	}
	return nil
}

// CouponResult is the terminal state of one validation attempt: Valid or Invalid(reason).
type CouponResult struct {
	code           string
	valid          bool
	reason         InvalidReason
	discountAmount *Money
	freeShipping   bool
}

// ValidCoupon builds a Valid result.
func ValidCoupon(code string, discountAmount *Money, freeShipping bool) *CouponResult {
	if discountAmount == nil {
		discountAmount = Zero()
	}
	return &CouponResult{
		code:           code,
		valid:          true,
		discountAmount: discountAmount,
		freeShipping:   freeShipping,
	}
}

// InvalidCoupon builds an Invalid result.
func InvalidCoupon(code string, reason InvalidReason) *CouponResult {
	return &CouponResult{
		code:           code,
		reason:         reason,
		discountAmount: Zero(),
	}
}

func (r *CouponResult) Code() string {
	return r.code
}

func (r *CouponResult) IsValid() bool {
	return r.valid
}

// Reason is empty for Valid results.
func (r *CouponResult) Reason() InvalidReason {
	return r.reason
}

func (r *CouponResult) DiscountAmount() *Money {
	return r.discountAmount
}

func (r *CouponResult) FreeShipping() bool {
	return r.freeShipping
}

// Failure returns the rejection for Invalid results and nil otherwise.
func (r *CouponResult) Failure() *ValidationFailure {
	if r == nil || r.valid {
		return nil
	}
	return &ValidationFailure{Code: r.code, Reason: r.reason}
}
