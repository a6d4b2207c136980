package order

import (
	"context"
	"time"

	"github.com/cocomo/secondhand-market/constant"
	"github.com/cocomo/secondhand-market/model"
	"github.com/cocomo/secondhand-market/utils/logger"
	"go.uber.org/zap"
)

// ProcessDeadlines runs the two deadline scans: a confirmation reminder
// once an order is ReminderAfter past its selected time, and an automatic
// confirmation once it is AutoConfirmAfter past. It is safe to invoke from
// any scheduler and safe to run concurrently with live user actions; each
// candidate is re-read under a row lock in its own transaction, so a pass
// never double-fires and a failing order never aborts the scan.
func (s *orderAppImpl) ProcessDeadlines(ctx context.Context) error {
	now := s.clock.Now()

	s.runReminderScan(ctx, now)
	s.runAutoConfirmScan(ctx, now)
	return nil
}

func (s *orderAppImpl) runReminderScan(ctx context.Context, now time.Time) {
	candidates, err := s.orderRepo.ListPendingReminder(ctx)
	if err != nil {
		logger.Error("[ReminderScan] list candidates", zap.String("error", err.Error()))
		return
	}

	for i := range candidates {
		o := &candidates[i]
		if now.Sub(o.SelectedTime) < s.config.Order.ReminderAfter {
			continue
		}
		if err := s.remindOne(ctx, now, o.OrderNum); err != nil {
			logger.Error("[ReminderScan] process order", zap.String("order_num", o.OrderNum), zap.String("error", err.Error()))
		}
	}
}

func (s *orderAppImpl) remindOne(ctx context.Context, now time.Time, orderNum string) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	// Re-read under lock: a buyer confirm or an earlier pass may have won.
	order, err := s.orderRepo.GetByOrderNumTx(ctx, tx, orderNum)
	if err != nil {
		return err
	}
	if order == nil || now.Sub(order.SelectedTime) < s.config.Order.ReminderAfter {
		return nil
	}

	res, err := applyReminder(*order)
	if err != nil {
		// Already notified or already successful; nothing to do.
		return nil
	}

	if err := s.orderRepo.UpdateOrderTx(ctx, tx, &res.order); err != nil {
		return err
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		return err
	}
	committed = true

	s.sendEvent(ctx, constant.NotifyReminder3Day, order.BuyerID, order.SellerID, order)
	return nil
}

func (s *orderAppImpl) runAutoConfirmScan(ctx context.Context, now time.Time) {
	candidates, err := s.orderRepo.ListPendingAutoConfirm(ctx)
	if err != nil {
		logger.Error("[AutoConfirmScan] list candidates", zap.String("error", err.Error()))
		return
	}

	for i := range candidates {
		o := &candidates[i]
		if now.Sub(o.SelectedTime) < s.config.Order.AutoConfirmAfter {
			continue
		}
		if err := s.autoConfirmOne(ctx, now, o.OrderNum); err != nil {
			logger.Error("[AutoConfirmScan] process order", zap.String("order_num", o.OrderNum), zap.String("error", err.Error()))
		}
	}
}

func (s *orderAppImpl) autoConfirmOne(ctx context.Context, now time.Time, orderNum string) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetByOrderNumTx(ctx, tx, orderNum)
	if err != nil {
		return err
	}
	if order == nil || !s.autoConfirmable(order, now) {
		return nil
	}

	// Auto-confirm mirrors the manual confirmation in full: same
	// preconditions, same product transition. Stale orders that are no
	// longer finalizable (for example an approved cancellation still
	// matching the scan predicate) are skipped, not force-confirmed.
	res, err := applyConfirm(*order)
	if err != nil {
		logger.Info("[AutoConfirmScan] order not finalizable, skipping", zap.String("order_num", order.OrderNum))
		return nil
	}

	if err := s.persist(ctx, tx, "AutoConfirmScan", &res, order.ProductID); err != nil {
		return err
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		return err
	}
	committed = true

	s.sendEvent(ctx, constant.NotifyAutoConfirm7Day, order.BuyerID, order.SellerID, order)
	return nil
}

func (s *orderAppImpl) autoConfirmable(order *model.Order, now time.Time) bool {
	return !order.Reported && !order.Success && order.Notified &&
		now.Sub(order.SelectedTime) >= s.config.Order.AutoConfirmAfter
}
