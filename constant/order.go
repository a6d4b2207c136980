package constant

// RequestOrderStatus tracks the request/approval handshake of an order.
type RequestOrderStatus string

const (
	RequestOrderNone      RequestOrderStatus = "NONE"
	RequestOrderRequested RequestOrderStatus = "REQUESTED"
	RequestOrderApproved  RequestOrderStatus = "APPROVED"
	RequestOrderRejected  RequestOrderStatus = "REJECTED"
)

// CancelRequestStatus tracks the cancellation handshake of an order.
type CancelRequestStatus string

const (
	CancelNone      CancelRequestStatus = "NONE"
	CancelRequested CancelRequestStatus = "REQUESTED"
	CancelApproved  CancelRequestStatus = "APPROVED"
	CancelRejected  CancelRequestStatus = "REJECTED"
)

// PaymentStatus is a logical payment flag, not a settlement protocol.
type PaymentStatus string

const (
	PaymentNone      PaymentStatus = "NONE"
	PaymentDeposited PaymentStatus = "DEPOSITED"
	PaymentRefund    PaymentStatus = "REFUND"
)

// SelectedTimeLayout is the wire format of the buyer-chosen transaction time.
const SelectedTimeLayout = "2006-01-02-15-04"
