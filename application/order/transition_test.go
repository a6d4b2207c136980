package order

import (
	"errors"
	"testing"
	"time"

	"github.com/cocomo/secondhand-market/constant"
	"github.com/cocomo/secondhand-market/model"
	cerr "github.com/cocomo/secondhand-market/utils/errors"
)

func wantCode(t *testing.T, err error, code constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[code] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[code])
	}
}

func TestApplyApprove(t *testing.T) {
	base := model.Order{
		RequestOrder:  constant.RequestOrderNone,
		RequestCancel: constant.CancelNone,
		Payment:       constant.PaymentNone,
	}

	t.Run("fresh order on available product", func(t *testing.T) {
		res, err := applyApprove(base, constant.ProductAvailable)
		if err != nil {
			t.Fatalf("applyApprove() error = %v", err)
		}
		if res.order.RequestOrder != constant.RequestOrderApproved {
			t.Fatalf("RequestOrder = %s, want %s", res.order.RequestOrder, constant.RequestOrderApproved)
		}
		if res.order.Payment != constant.PaymentDeposited {
			t.Fatalf("Payment = %s, want %s", res.order.Payment, constant.PaymentDeposited)
		}
		if !res.updateProduct || res.productStatus != constant.ProductReserved {
			t.Fatalf("product transition = (%v, %s), want (true, %s)", res.updateProduct, res.productStatus, constant.ProductReserved)
		}
	})

	t.Run("pending cancel request blocks the deposit", func(t *testing.T) {
		o := base
		o.RequestCancel = constant.CancelRequested
		res, err := applyApprove(o, constant.ProductAvailable)
		if err != nil {
			t.Fatalf("applyApprove() error = %v", err)
		}
		if res.order.Payment != constant.PaymentNone {
			t.Fatalf("Payment = %s, want %s", res.order.Payment, constant.PaymentNone)
		}
	})

	t.Run("already approved is a no-op", func(t *testing.T) {
		o := base
		o.RequestOrder = constant.RequestOrderApproved
		o.Payment = constant.PaymentDeposited
		res, err := applyApprove(o, constant.ProductReserved)
		if err != nil {
			t.Fatalf("applyApprove() error = %v", err)
		}
		if res.updateProduct {
			t.Fatal("updateProduct = true, want false")
		}
		if res.order != o {
			t.Fatalf("order mutated: %+v", res.order)
		}
	})

	t.Run("reserved product loses the race", func(t *testing.T) {
		_, err := applyApprove(base, constant.ProductReserved)
		wantCode(t, err, constant.ErrProductReserved)
	})

	t.Run("sold out product", func(t *testing.T) {
		_, err := applyApprove(base, constant.ProductSoldOut)
		wantCode(t, err, constant.ErrProductSoldOut)
	})

	t.Run("rejected order cannot be revived", func(t *testing.T) {
		o := base
		o.RequestOrder = constant.RequestOrderRejected
		_, err := applyApprove(o, constant.ProductAvailable)
		wantCode(t, err, constant.ErrInvalidOrderState)
	})

	t.Run("terminal order", func(t *testing.T) {
		o := base
		o.Success = true
		_, err := applyApprove(o, constant.ProductAvailable)
		wantCode(t, err, constant.ErrInvalidOrderState)
	})
}

func TestApplyReject(t *testing.T) {
	t.Run("pending request leaves the product alone", func(t *testing.T) {
		o := model.Order{RequestOrder: constant.RequestOrderNone}
		res, err := applyReject(o)
		if err != nil {
			t.Fatalf("applyReject() error = %v", err)
		}
		if res.order.RequestOrder != constant.RequestOrderRejected {
			t.Fatalf("RequestOrder = %s, want %s", res.order.RequestOrder, constant.RequestOrderRejected)
		}
		if res.updateProduct {
			t.Fatal("updateProduct = true, want false")
		}
	})

	t.Run("approved order releases the product and refunds", func(t *testing.T) {
		o := model.Order{
			RequestOrder: constant.RequestOrderApproved,
			Payment:      constant.PaymentDeposited,
		}
		res, err := applyReject(o)
		if err != nil {
			t.Fatalf("applyReject() error = %v", err)
		}
		if res.order.RequestOrder != constant.RequestOrderRejected ||
			res.order.Payment != constant.PaymentRefund {
			t.Fatalf("order = %+v, want rejected and refunded", res.order)
		}
		if !res.updateProduct || res.productStatus != constant.ProductAvailable {
			t.Fatalf("product transition = (%v, %s), want (true, %s)", res.updateProduct, res.productStatus, constant.ProductAvailable)
		}
	})

	t.Run("rejecting a loser keeps the winner's hold", func(t *testing.T) {
		winner := model.Order{
			RequestOrder:  constant.RequestOrderNone,
			RequestCancel: constant.CancelNone,
			Payment:       constant.PaymentNone,
		}
		res, err := applyApprove(winner, constant.ProductAvailable)
		if err != nil {
			t.Fatalf("applyApprove() error = %v", err)
		}
		productStatus := res.productStatus

		loser := model.Order{RequestOrder: constant.RequestOrderNone}
		res, err = applyReject(loser)
		if err != nil {
			t.Fatalf("applyReject() error = %v", err)
		}
		if res.updateProduct {
			t.Fatal("reject of a losing request must not free the reservation")
		}

		third := model.Order{RequestOrder: constant.RequestOrderNone}
		_, err = applyApprove(third, productStatus)
		wantCode(t, err, constant.ErrProductReserved)
	})

	t.Run("already rejected", func(t *testing.T) {
		o := model.Order{RequestOrder: constant.RequestOrderRejected}
		_, err := applyReject(o)
		wantCode(t, err, constant.ErrInvalidOrderState)
	})

	t.Run("terminal order", func(t *testing.T) {
		o := model.Order{Success: true}
		_, err := applyReject(o)
		wantCode(t, err, constant.ErrInvalidOrderState)
	})
}

func TestApplyCancel(t *testing.T) {
	t.Run("before deposit resolves immediately", func(t *testing.T) {
		o := model.Order{Payment: constant.PaymentNone}
		res, err := applyCancel(o)
		if err != nil {
			t.Fatalf("applyCancel() error = %v", err)
		}
		if res.order.RequestCancel != constant.CancelApproved ||
			res.order.Payment != constant.PaymentRefund ||
			res.order.RequestOrder != constant.RequestOrderNone {
			t.Fatalf("order = %+v, want immediate cancel", res.order)
		}
		if res.updateProduct {
			t.Fatal("a never-approved order holds no reservation to free")
		}
	})

	t.Run("approved but undeposited order frees the product", func(t *testing.T) {
		// Approval with a pending cancel request holds the product
		// without taking the deposit.
		o := model.Order{
			RequestOrder:  constant.RequestOrderApproved,
			RequestCancel: constant.CancelRequested,
			Payment:       constant.PaymentNone,
		}
		res, err := applyCancel(o)
		if err != nil {
			t.Fatalf("applyCancel() error = %v", err)
		}
		if res.order.RequestCancel != constant.CancelApproved ||
			res.order.Payment != constant.PaymentRefund {
			t.Fatalf("order = %+v, want immediate cancel", res.order)
		}
		if !res.updateProduct || res.productStatus != constant.ProductAvailable {
			t.Fatalf("product transition = (%v, %s), want (true, %s)", res.updateProduct, res.productStatus, constant.ProductAvailable)
		}
	})

	t.Run("after deposit only records the request", func(t *testing.T) {
		o := model.Order{
			RequestOrder: constant.RequestOrderApproved,
			Payment:      constant.PaymentDeposited,
		}
		res, err := applyCancel(o)
		if err != nil {
			t.Fatalf("applyCancel() error = %v", err)
		}
		if res.order.RequestCancel != constant.CancelRequested {
			t.Fatalf("RequestCancel = %s, want %s", res.order.RequestCancel, constant.CancelRequested)
		}
		if res.order.Payment != constant.PaymentDeposited || res.updateProduct {
			t.Fatal("deposit and product hold must be untouched")
		}
	})

	t.Run("a rejected cancel may be asked again", func(t *testing.T) {
		o := model.Order{
			RequestOrder:  constant.RequestOrderApproved,
			RequestCancel: constant.CancelRejected,
			Payment:       constant.PaymentDeposited,
		}
		res, err := applyCancel(o)
		if err != nil {
			t.Fatalf("applyCancel() error = %v", err)
		}
		if res.order.RequestCancel != constant.CancelRequested {
			t.Fatalf("RequestCancel = %s, want %s", res.order.RequestCancel, constant.CancelRequested)
		}
	})

	t.Run("already cancelled", func(t *testing.T) {
		o := model.Order{RequestCancel: constant.CancelApproved}
		_, err := applyCancel(o)
		wantCode(t, err, constant.ErrInvalidOrderState)
	})

	t.Run("rejected order", func(t *testing.T) {
		o := model.Order{RequestOrder: constant.RequestOrderRejected}
		_, err := applyCancel(o)
		wantCode(t, err, constant.ErrInvalidOrderState)
	})

	t.Run("terminal order", func(t *testing.T) {
		o := model.Order{Success: true}
		_, err := applyCancel(o)
		wantCode(t, err, constant.ErrInvalidOrderState)
	})
}

func TestApplyApproveCancel(t *testing.T) {
	t.Run("refunds and releases the product", func(t *testing.T) {
		o := model.Order{
			RequestOrder:  constant.RequestOrderApproved,
			RequestCancel: constant.CancelRequested,
			Payment:       constant.PaymentDeposited,
		}
		res, err := applyApproveCancel(o)
		if err != nil {
			t.Fatalf("applyApproveCancel() error = %v", err)
		}
		if res.order.RequestCancel != constant.CancelApproved ||
			res.order.RequestOrder != constant.RequestOrderNone ||
			res.order.Payment != constant.PaymentRefund {
			t.Fatalf("order = %+v, want cancel granted", res.order)
		}
		if !res.updateProduct || res.productStatus != constant.ProductAvailable {
			t.Fatalf("product transition = (%v, %s), want (true, %s)", res.updateProduct, res.productStatus, constant.ProductAvailable)
		}
	})

	t.Run("stale request on a rejected order leaves the product alone", func(t *testing.T) {
		// The reject already released the hold; granting the leftover
		// cancel request must not free someone else's reservation.
		o := model.Order{
			RequestOrder:  constant.RequestOrderRejected,
			RequestCancel: constant.CancelRequested,
			Payment:       constant.PaymentRefund,
		}
		res, err := applyApproveCancel(o)
		if err != nil {
			t.Fatalf("applyApproveCancel() error = %v", err)
		}
		if res.updateProduct {
			t.Fatal("updateProduct = true, want false")
		}
	})

	t.Run("no pending request", func(t *testing.T) {
		o := model.Order{RequestCancel: constant.CancelNone}
		_, err := applyApproveCancel(o)
		wantCode(t, err, constant.ErrInvalidOrderState)
	})
}

func TestApplyConfirm(t *testing.T) {
	finalizable := model.Order{
		RequestOrder:  constant.RequestOrderApproved,
		RequestCancel: constant.CancelNone,
		Payment:       constant.PaymentDeposited,
	}

	t.Run("approved and deposited settles", func(t *testing.T) {
		res, err := applyConfirm(finalizable)
		if err != nil {
			t.Fatalf("applyConfirm() error = %v", err)
		}
		if !res.order.Success {
			t.Fatal("Success = false, want true")
		}
		if !res.updateProduct || res.productStatus != constant.ProductSoldOut {
			t.Fatalf("product transition = (%v, %s), want (true, %s)", res.updateProduct, res.productStatus, constant.ProductSoldOut)
		}
	})

	t.Run("pending cancel request does not block", func(t *testing.T) {
		o := finalizable
		o.RequestCancel = constant.CancelRequested
		res, err := applyConfirm(o)
		if err != nil {
			t.Fatalf("applyConfirm() error = %v", err)
		}
		if !res.order.Success {
			t.Fatal("Success = false, want true")
		}
	})

	t.Run("granted cancel blocks", func(t *testing.T) {
		o := finalizable
		o.RequestCancel = constant.CancelApproved
		o.Payment = constant.PaymentRefund
		_, err := applyConfirm(o)
		wantCode(t, err, constant.ErrOrderNotFinalizable)
	})

	t.Run("never approved", func(t *testing.T) {
		_, err := applyConfirm(model.Order{})
		wantCode(t, err, constant.ErrOrderNotFinalizable)
	})

	t.Run("already settled", func(t *testing.T) {
		o := finalizable
		o.Success = true
		_, err := applyConfirm(o)
		wantCode(t, err, constant.ErrInvalidOrderState)
	})
}

func TestApplyReport(t *testing.T) {
	selectedTime := time.Date(2026, 9, 5, 14, 30, 0, 0, time.UTC)
	settled := model.Order{
		Success:      true,
		SelectedTime: selectedTime,
	}

	t.Run("after the meeting time", func(t *testing.T) {
		res, err := applyReport(settled, selectedTime.Add(time.Hour))
		if err != nil {
			t.Fatalf("applyReport() error = %v", err)
		}
		if !res.order.Reported || !res.order.Notified {
			t.Fatalf("order = %+v, want reported and notified", res.order)
		}
		if res.productStatus != constant.ProductReported {
			t.Fatalf("productStatus = %s, want %s", res.productStatus, constant.ProductReported)
		}
	})

	t.Run("exactly at the meeting time", func(t *testing.T) {
		if _, err := applyReport(settled, selectedTime); err != nil {
			t.Fatalf("applyReport() error = %v", err)
		}
	})

	t.Run("before the meeting time", func(t *testing.T) {
		_, err := applyReport(settled, selectedTime.Add(-time.Minute))
		wantCode(t, err, constant.ErrInvalidOrderState)
	})

	t.Run("unsettled order", func(t *testing.T) {
		o := settled
		o.Success = false
		_, err := applyReport(o, selectedTime.Add(time.Hour))
		wantCode(t, err, constant.ErrInvalidOrderState)
	})

	t.Run("already reported", func(t *testing.T) {
		o := settled
		o.Reported = true
		_, err := applyReport(o, selectedTime.Add(time.Hour))
		wantCode(t, err, constant.ErrInvalidOrderState)
	})
}

func TestApplyReminder(t *testing.T) {
	t.Run("pending order gets flagged", func(t *testing.T) {
		res, err := applyReminder(model.Order{})
		if err != nil {
			t.Fatalf("applyReminder() error = %v", err)
		}
		if !res.order.Notified {
			t.Fatal("Notified = false, want true")
		}
		if res.updateProduct {
			t.Fatal("updateProduct = true, want false")
		}
	})

	t.Run("already notified", func(t *testing.T) {
		_, err := applyReminder(model.Order{Notified: true})
		wantCode(t, err, constant.ErrInvalidOrderState)
	})

	t.Run("already settled", func(t *testing.T) {
		_, err := applyReminder(model.Order{Success: true})
		wantCode(t, err, constant.ErrInvalidOrderState)
	})
}
