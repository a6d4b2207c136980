package order

import (
	"time"

	"github.com/cocomo/secondhand-market/constant"
	"github.com/cocomo/secondhand-market/model"
	"github.com/cocomo/secondhand-market/utils/errors"
)

// The transition functions are pure: they take the freshly loaded order and
// product status, validate the precondition, and return the next state. The
// caller commits the result inside the transaction that loaded the rows, so
// a losing concurrent writer re-evaluates against fresh state instead of
// overwriting field by field.

// next carries the outcome of a transition.
type next struct {
	order         model.Order
	productStatus constant.ProductStatus
	updateProduct bool
}

func productUnavailable(status constant.ProductStatus) error {
	switch status {
	case constant.ProductReserved:
		return errors.SetCustomError(constant.ErrProductReserved)
	case constant.ProductSoldOut:
		return errors.SetCustomError(constant.ErrProductSoldOut)
	case constant.ProductReported:
		return errors.SetCustomError(constant.ErrProductReported)
	default:
		return errors.SetCustomError(constant.ErrInvalidOrderState)
	}
}

func applyApprove(o model.Order, productStatus constant.ProductStatus) (next, error) {
	if o.Terminal() || o.RequestOrder == constant.RequestOrderRejected {
		return next{}, errors.SetCustomError(constant.ErrInvalidOrderState)
	}
	if o.RequestOrder == constant.RequestOrderApproved {
		// Idempotent: the product hold already belongs to this order.
		return next{order: o}, nil
	}
	if productStatus != constant.ProductAvailable {
		return next{}, productUnavailable(productStatus)
	}

	o.RequestOrder = constant.RequestOrderApproved
	if o.RequestCancel == constant.CancelNone {
		o.Payment = constant.PaymentDeposited
	}
	return next{order: o, productStatus: constant.ProductReserved, updateProduct: true}, nil
}

func applyReject(o model.Order) (next, error) {
	if o.Terminal() || o.RequestOrder == constant.RequestOrderRejected {
		return next{}, errors.SetCustomError(constant.ErrInvalidOrderState)
	}

	// Only the reservation holder frees the product. A never-approved
	// order owns no hold, and the product may belong to another order.
	held := o.RequestOrder == constant.RequestOrderApproved
	o.RequestOrder = constant.RequestOrderRejected
	if o.Payment == constant.PaymentDeposited {
		o.Payment = constant.PaymentRefund
	}
	return next{order: o, productStatus: constant.ProductAvailable, updateProduct: held}, nil
}

func applyCancel(o model.Order) (next, error) {
	if o.Terminal() || o.RequestCancel == constant.CancelApproved ||
		o.RequestOrder == constant.RequestOrderRejected {
		return next{}, errors.SetCustomError(constant.ErrInvalidOrderState)
	}

	// Before settlement the buyer may withdraw without seller adjudication.
	if o.Payment == constant.PaymentNone {
		held := o.RequestOrder == constant.RequestOrderApproved
		o.RequestOrder = constant.RequestOrderNone
		o.RequestCancel = constant.CancelApproved
		o.Payment = constant.PaymentRefund
		return next{order: o, productStatus: constant.ProductAvailable, updateProduct: held}, nil
	}

	o.RequestCancel = constant.CancelRequested
	return next{order: o}, nil
}

func applyApproveCancel(o model.Order) (next, error) {
	if o.Terminal() || o.RequestCancel != constant.CancelRequested {
		return next{}, errors.SetCustomError(constant.ErrInvalidOrderState)
	}

	held := o.RequestOrder == constant.RequestOrderApproved
	o.RequestCancel = constant.CancelApproved
	o.RequestOrder = constant.RequestOrderNone
	o.Payment = constant.PaymentRefund
	return next{order: o, productStatus: constant.ProductAvailable, updateProduct: held}, nil
}

func applyRejectCancel(o model.Order) (next, error) {
	if o.Terminal() || o.RequestCancel != constant.CancelRequested {
		return next{}, errors.SetCustomError(constant.ErrInvalidOrderState)
	}

	o.RequestCancel = constant.CancelRejected
	return next{order: o}, nil
}

func applyConfirm(o model.Order) (next, error) {
	if o.Terminal() {
		return next{}, errors.SetCustomError(constant.ErrInvalidOrderState)
	}
	if o.RequestOrder != constant.RequestOrderApproved ||
		o.RequestCancel == constant.CancelApproved ||
		o.Payment != constant.PaymentDeposited {
		return next{}, errors.SetCustomError(constant.ErrOrderNotFinalizable)
	}

	o.Success = true
	return next{order: o, productStatus: constant.ProductSoldOut, updateProduct: true}, nil
}

func applyReport(o model.Order, now time.Time) (next, error) {
	if !o.Success || o.Reported || now.Before(o.SelectedTime) {
		return next{}, errors.SetCustomError(constant.ErrInvalidOrderState)
	}

	o.Reported = true
	o.Notified = true
	return next{order: o, productStatus: constant.ProductReported, updateProduct: true}, nil
}

func applyReminder(o model.Order) (next, error) {
	if o.Success || o.Notified {
		return next{}, errors.SetCustomError(constant.ErrInvalidOrderState)
	}

	o.Notified = true
	return next{order: o}, nil
}
