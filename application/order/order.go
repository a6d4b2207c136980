package order

import (
	"context"
	"strings"
	"time"

	"github.com/cocomo/secondhand-market/cmd/config"
	"github.com/cocomo/secondhand-market/constant"
	"github.com/cocomo/secondhand-market/model"
	orderrepo "github.com/cocomo/secondhand-market/repository/order"
	productrepo "github.com/cocomo/secondhand-market/repository/product"
	txrepo "github.com/cocomo/secondhand-market/repository/tx"
	userrepo "github.com/cocomo/secondhand-market/repository/user"
	"github.com/cocomo/secondhand-market/utils/clock"
	"github.com/cocomo/secondhand-market/utils/errors"
	"github.com/cocomo/secondhand-market/utils/logger"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Notifier delivers lifecycle events. Delivery happens after the state
// change commits and is best-effort: a failure is logged, never surfaced.
type Notifier interface {
	Notify(ctx context.Context, event *model.NotificationEvent) error
}

type OrderApp interface {
	RequestOrder(ctx context.Context, buyerID uint64, req *model.OrderRequest) (*model.OrderResponse, error)
	ApproveOrder(ctx context.Context, sellerID uint64, orderNum string) error
	RejectOrder(ctx context.Context, sellerID uint64, orderNum string) error
	CancelOrder(ctx context.Context, buyerID uint64, orderNum string) error
	ApproveCancel(ctx context.Context, sellerID uint64, orderNum string) error
	RejectCancel(ctx context.Context, sellerID uint64, orderNum string) error
	ConfirmOrder(ctx context.Context, buyerID uint64, orderNum string) error
	ReportOrder(ctx context.Context, buyerID uint64, orderNum string) error
	GetMyOrders(ctx context.Context, userID uint64) ([]model.OrderSummary, error)
	ProcessDeadlines(ctx context.Context) error
}

type orderAppImpl struct {
	config      *config.Config
	txRepo      txrepo.TxRepository
	orderRepo   orderrepo.OrderRepository
	productRepo productrepo.ProductRepository
	userRepo    userrepo.UserRepository
	notifier    Notifier
	clock       clock.Clock
}

func NewOrderApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, productRepo productrepo.ProductRepository, userRepo userrepo.UserRepository, notifier Notifier, clk clock.Clock) OrderApp {
	return &orderAppImpl{
		config:      config,
		txRepo:      txRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		clock:       clk,
	}
}

// generateOrderNumber returns an opaque, collision-free order number.
func generateOrderNumber() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func (s *orderAppImpl) RequestOrder(ctx context.Context, buyerID uint64, req *model.OrderRequest) (*model.OrderResponse, error) {
	selectedTime, err := time.Parse(constant.SelectedTimeLayout, req.SelectedTime)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[RequestOrder] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	// Lock the product row so two simultaneous requests serialize.
	product, err := s.productRepo.GetByPdNumTx(ctx, tx, req.PdNum)
	if err != nil {
		logger.Error("[RequestOrder] get product", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	if product.Status != constant.ProductAvailable {
		return nil, productUnavailable(product.Status)
	}
	if product.UserID == buyerID {
		return nil, errors.SetCustomError(constant.ErrForbidden)
	}

	order := &model.Order{
		OrderNum:      generateOrderNumber(),
		SellerID:      product.UserID,
		BuyerID:       buyerID,
		ProductID:     product.ID,
		RequestOrder:  constant.RequestOrderNone,
		RequestCancel: constant.CancelNone,
		Payment:       constant.PaymentNone,
		SelectedTime:  selectedTime,
	}
	if _, err := s.orderRepo.InsertOrderTx(ctx, tx, order); err != nil {
		logger.Error("[RequestOrder] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[RequestOrder] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.sendEvent(ctx, constant.NotifyRequested, order.SellerID, order.BuyerID, order)

	return &model.OrderResponse{
		OrderNum:     order.OrderNum,
		SelectedTime: selectedTime,
	}, nil
}

func (s *orderAppImpl) ApproveOrder(ctx context.Context, sellerID uint64, orderNum string) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ApproveOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetByOrderNumTx(ctx, tx, orderNum)
	if err != nil {
		logger.Error("[ApproveOrder] get order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if order.SellerID != sellerID {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	product, err := s.productRepo.GetByIDTx(ctx, tx, order.ProductID)
	if err != nil {
		logger.Error("[ApproveOrder] get product", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	res, err := applyApprove(*order, product.Status)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, tx, "ApproveOrder", &res, product.ID); err != nil {
		return err
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ApproveOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	// Both parties get the approval notice with each other's contact.
	s.sendEvent(ctx, constant.NotifyApproved, order.BuyerID, order.SellerID, order)
	s.sendEvent(ctx, constant.NotifyApproved, order.SellerID, order.BuyerID, order)
	return nil
}

func (s *orderAppImpl) RejectOrder(ctx context.Context, sellerID uint64, orderNum string) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[RejectOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetByOrderNumTx(ctx, tx, orderNum)
	if err != nil {
		logger.Error("[RejectOrder] get order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if order.SellerID != sellerID {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	res, err := applyReject(*order)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, tx, "RejectOrder", &res, order.ProductID); err != nil {
		return err
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[RejectOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.sendEvent(ctx, constant.NotifyRejected, order.BuyerID, order.SellerID, order)
	return nil
}

func (s *orderAppImpl) CancelOrder(ctx context.Context, buyerID uint64, orderNum string) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CancelOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetByOrderNumTx(ctx, tx, orderNum)
	if err != nil {
		logger.Error("[CancelOrder] get order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if order.BuyerID != buyerID {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	res, err := applyCancel(*order)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, tx, "CancelOrder", &res, order.ProductID); err != nil {
		return err
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CancelOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if res.order.RequestCancel == constant.CancelApproved {
		// Pre-settlement cancel needs no seller adjudication.
		s.sendEvent(ctx, constant.NotifyCancelApproved, order.BuyerID, order.SellerID, order)
	} else {
		s.sendEvent(ctx, constant.NotifyCancelRequested, order.SellerID, order.BuyerID, order)
	}
	return nil
}

func (s *orderAppImpl) ApproveCancel(ctx context.Context, sellerID uint64, orderNum string) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ApproveCancel] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetByOrderNumTx(ctx, tx, orderNum)
	if err != nil {
		logger.Error("[ApproveCancel] get order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if order.SellerID != sellerID {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	res, err := applyApproveCancel(*order)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, tx, "ApproveCancel", &res, order.ProductID); err != nil {
		return err
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ApproveCancel] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.sendEvent(ctx, constant.NotifyCancelApproved, order.BuyerID, order.SellerID, order)
	return nil
}

func (s *orderAppImpl) RejectCancel(ctx context.Context, sellerID uint64, orderNum string) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[RejectCancel] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetByOrderNumTx(ctx, tx, orderNum)
	if err != nil {
		logger.Error("[RejectCancel] get order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if order.SellerID != sellerID {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	res, err := applyRejectCancel(*order)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, tx, "RejectCancel", &res, order.ProductID); err != nil {
		return err
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[RejectCancel] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.sendEvent(ctx, constant.NotifyCancelRejected, order.BuyerID, order.SellerID, order)
	return nil
}

func (s *orderAppImpl) ConfirmOrder(ctx context.Context, buyerID uint64, orderNum string) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ConfirmOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetByOrderNumTx(ctx, tx, orderNum)
	if err != nil {
		logger.Error("[ConfirmOrder] get order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if order.BuyerID != buyerID {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	res, err := applyConfirm(*order)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, tx, "ConfirmOrder", &res, order.ProductID); err != nil {
		return err
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ConfirmOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.sendEvent(ctx, constant.NotifyConfirmed, order.BuyerID, order.SellerID, order)
	s.sendEvent(ctx, constant.NotifyConfirmed, order.SellerID, order.BuyerID, order)
	return nil
}

func (s *orderAppImpl) ReportOrder(ctx context.Context, buyerID uint64, orderNum string) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReportOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetByOrderNumTx(ctx, tx, orderNum)
	if err != nil {
		logger.Error("[ReportOrder] get order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}
	if order.BuyerID != buyerID {
		return errors.SetCustomError(constant.ErrForbidden)
	}

	res, err := applyReport(*order, s.clock.Now())
	if err != nil {
		return err
	}

	if err := s.persist(ctx, tx, "ReportOrder", &res, order.ProductID); err != nil {
		return err
	}
	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReportOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

func (s *orderAppImpl) GetMyOrders(ctx context.Context, userID uint64) ([]model.OrderSummary, error) {
	summaries, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("[GetMyOrders] list orders", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return summaries, nil
}

// persist writes the transition outcome inside the open transaction.
func (s *orderAppImpl) persist(ctx context.Context, tx *sqlx.Tx, op string, res *next, productID uint64) error {
	if err := s.orderRepo.UpdateOrderTx(ctx, tx, &res.order); err != nil {
		logger.Error("["+op+"] update order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if res.updateProduct {
		if err := s.productRepo.UpdateStatusTx(ctx, tx, productID, res.productStatus); err != nil {
			logger.Error("["+op+"] update product status", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}
	return nil
}

// sendEvent publishes a lifecycle notification after the transition
// committed. Lookup or delivery failures are logged and swallowed.
func (s *orderAppImpl) sendEvent(ctx context.Context, kind constant.NotificationKind, recipientID, counterpartID uint64, order *model.Order) {
	if s.notifier == nil {
		return
	}

	recipient, err := s.userRepo.Get(ctx, &model.UserFilter{ID: recipientID})
	if err != nil || recipient == nil {
		logger.Error("[sendEvent] get recipient", zap.Uint64("user_id", recipientID), zap.Error(err))
		return
	}
	counterpart, err := s.userRepo.Get(ctx, &model.UserFilter{ID: counterpartID})
	if err != nil || counterpart == nil {
		logger.Error("[sendEvent] get counterpart", zap.Uint64("user_id", counterpartID), zap.Error(err))
		return
	}
	product, err := s.productRepo.GetByID(ctx, order.ProductID)
	if err != nil || product == nil {
		logger.Error("[sendEvent] get product", zap.Uint64("product_id", order.ProductID), zap.Error(err))
		return
	}

	event := &model.NotificationEvent{
		Kind:            kind,
		RecipientEmail:  recipient.Email,
		RecipientName:   recipient.Nickname,
		CounterpartName: counterpart.Nickname,
		ProductName:     product.Name,
		OrderNum:        order.OrderNum,
		SelectedTime:    order.SelectedTime,
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		logger.Error("[sendEvent] notify", zap.String("kind", string(kind)), zap.String("error", err.Error()))
	}
}
