package model

import (
	"time"

	"github.com/cocomo/secondhand-market/constant"
)

// Product is the product table entity. UserID is the seller and never
// changes; Status is owned by the order lifecycle.
type Product struct {
	ID        uint64                 `db:"id"`
	PdNum     string                 `db:"pd_num"`
	UserID    uint64                 `db:"user_id"`
	Name      string                 `db:"name"`
	Image     string                 `db:"image"`
	Price     int64                  `db:"price"`
	Detail    string                 `db:"detail"`
	Place     string                 `db:"place"`
	Category  string                 `db:"category"`
	Status    constant.ProductStatus `db:"status"`
	CreatedAt time.Time              `db:"created_at"`
}

type ProductCreateRequest struct {
	UserID   uint64
	Name     string `json:"name" validate:"required"`
	Image    string `json:"image" validate:"required"`
	Price    int64  `json:"price" validate:"required,gt=0"`
	Detail   string `json:"detail"`
	Place    string `json:"place" validate:"required"`
	Category string `json:"category"`
}

type ProductCreateResponse struct {
	PdNum  string                 `json:"pd_num"`
	Name   string                 `json:"name"`
	Status constant.ProductStatus `json:"status"`
}
