package m_product

// Field constants for the products table.
const (
	TableName = "products"

	ColProductID          = "product_id"
	ColName               = "name"
	ColCategory           = "category"
	ColBasePrice          = "base_price"
	ColDiscountKind       = "discount_kind"
	ColDiscountPercent    = "discount_percent"
	ColDiscountFixedPrice = "discount_fixed_price"
	ColDiscountExpiresAt  = "discount_expires_at"
	ColActive             = "active"
	ColStock              = "stock"
	ColCreatedAt          = "created_at"
	ColUpdatedAt          = "updated_at"
)

// DiscountColumns are written together whenever the discount changes.
var DiscountColumns = []string{ColDiscountKind, ColDiscountPercent, ColDiscountFixedPrice, ColDiscountExpiresAt}
