package model

import (
	"time"

	"github.com/cocomo/secondhand-market/constant"
)

// Order is the order table entity. Seller, buyer and product references are
// immutable after creation; every other field changes only through the
// lifecycle transitions.
type Order struct {
	ID            uint64                       `db:"id"`
	OrderNum      string                       `db:"order_num"`
	SellerID      uint64                       `db:"seller_id"`
	BuyerID       uint64                       `db:"buyer_id"`
	ProductID     uint64                       `db:"product_id"`
	RequestOrder  constant.RequestOrderStatus  `db:"request_order"`
	RequestCancel constant.CancelRequestStatus `db:"request_cancel"`
	Payment       constant.PaymentStatus       `db:"payment"`
	Success       bool                         `db:"success"`
	Notified      bool                         `db:"notified"`
	Reported      bool                         `db:"reported"`
	SelectedTime  time.Time                    `db:"selected_time"`
	CreatedAt     time.Time                    `db:"created_at"`
}

// Terminal reports whether the order reached a terminal marker. Terminal
// orders are retained for history and never mutated again.
func (o *Order) Terminal() bool {
	return o.Success || o.Reported
}

type OrderRequest struct {
	BuyerID      uint64
	PdNum        string `json:"pd_num" validate:"required"`
	SelectedTime string `json:"selected_time" validate:"required"`
}

type OrderResponse struct {
	OrderNum     string    `json:"order_num"`
	SelectedTime time.Time `json:"selected_time"`
}

// OrderSummary is the denormalized per-user projection returned by the
// order listing.
type OrderSummary struct {
	OrderNum       string                      `db:"order_num" json:"order_num"`
	PdNum          string                      `db:"pd_num" json:"pd_num"`
	ProductName    string                      `db:"product_name" json:"product_name"`
	SellerNickname string                      `db:"seller_nickname" json:"seller_nickname"`
	BuyerNickname  string                      `db:"buyer_nickname" json:"buyer_nickname"`
	SelectedTime   time.Time                   `db:"selected_time" json:"selected_time"`
	Status         constant.RequestOrderStatus `db:"status" json:"status"`
}
