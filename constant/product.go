package constant

// ProductStatus holds exactly one value at any time and is mutated only by
// the order lifecycle, never directly by the owner once an order exists.
type ProductStatus string

const (
	ProductAvailable ProductStatus = "AVAILABLE"
	ProductReserved  ProductStatus = "RESERVED"
	ProductSoldOut   ProductStatus = "SOLD_OUT"
	ProductReported  ProductStatus = "REPORTED"
)
