package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrCredentialExists
	ErrInvalidPassword
	ErrForbidden
	ErrProductReserved
	ErrProductSoldOut
	ErrProductReported
	ErrInvalidOrderState
	ErrOrderNotFinalizable
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:             "success",
	ErrInternal:            "error internal",
	ErrNotFound:            "data not found",
	ErrInvalidRequest:      "invalid request",
	ErrUnauthorize:         "unauthorize request",
	ErrCredentialExists:    "email or phone already exists",
	ErrInvalidPassword:     "password invalid",
	ErrForbidden:           "not allowed for this user",
	ErrProductReserved:     "product is reserved",
	ErrProductSoldOut:      "product is sold out",
	ErrProductReported:     "product is blocked by a report",
	ErrInvalidOrderState:   "order is not in a valid state for this action",
	ErrOrderNotFinalizable: "order cannot be confirmed",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:             http.StatusOK,
	ErrInternal:            http.StatusInternalServerError,
	ErrNotFound:            http.StatusNotFound,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrUnauthorize:         http.StatusUnauthorized,
	ErrCredentialExists:    http.StatusBadRequest,
	ErrInvalidPassword:     http.StatusBadRequest,
	ErrForbidden:           http.StatusForbidden,
	ErrProductReserved:     http.StatusConflict,
	ErrProductSoldOut:      http.StatusConflict,
	ErrProductReported:     http.StatusConflict,
	ErrInvalidOrderState:   http.StatusConflict,
	ErrOrderNotFinalizable: http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:             "0000",
	ErrInternal:            "0001",
	ErrNotFound:            "0002",
	ErrInvalidRequest:      "0003",
	ErrUnauthorize:         "0004",
	ErrCredentialExists:    "0005",
	ErrInvalidPassword:     "0006",
	ErrForbidden:           "0007",
	ErrProductReserved:     "0008",
	ErrProductSoldOut:      "0009",
	ErrProductReported:     "0010",
	ErrInvalidOrderState:   "0011",
	ErrOrderNotFinalizable: "0012",
}
