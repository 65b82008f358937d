package m_coupon

// Field constants for the coupons table.
const (
	TableName = "coupons"

	ColCode            = "code"
	ColBenefitKind     = "benefit_kind"
	ColBenefitPercent  = "benefit_percent"
	ColBenefitAmount   = "benefit_amount"
	ColScopeKind       = "scope_kind"
	ColScopeTarget     = "scope_target"
	ColMinimumPurchase = "minimum_purchase"
	ColUsesTotal       = "uses_total"
	ColUsesConsumed    = "uses_consumed"
	ColExpiresAt       = "expires_at"
	ColActive          = "active"
	ColCreatedAt       = "created_at"
	ColUpdatedAt       = "updated_at"
)

// AllColumns lists every column in read order.
var AllColumns = []string{
	ColCode, ColBenefitKind, ColBenefitPercent, ColBenefitAmount,
	ColScopeKind, ColScopeTarget, ColMinimumPurchase,
	ColUsesTotal, ColUsesConsumed, ColExpiresAt, ColActive,
	ColCreatedAt, ColUpdatedAt,
}
