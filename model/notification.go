package model

import (
	"time"

	"github.com/cocomo/secondhand-market/constant"
)

// NotificationEvent is the payload published per lifecycle event. Delivery
// is best-effort; losing one never affects the committed transition.
type NotificationEvent struct {
	Kind            constant.NotificationKind `json:"kind"`
	RecipientEmail  string                    `json:"recipient_email"`
	RecipientName   string                    `json:"recipient_name"`
	CounterpartName string                    `json:"counterpart_name"`
	ProductName     string                    `json:"product_name"`
	OrderNum        string                    `json:"order_num"`
	SelectedTime    time.Time                 `json:"selected_time"`
}
