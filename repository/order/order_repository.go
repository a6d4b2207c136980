package order

import (
	"context"
	"database/sql"

	"github.com/cocomo/secondhand-market/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, o *model.Order) (uint64, error)
	GetByOrderNumTx(ctx context.Context, tx *sqlx.Tx, orderNum string) (*model.Order, error)
	UpdateOrderTx(ctx context.Context, tx *sqlx.Tx, o *model.Order) error
	ListPendingReminder(ctx context.Context) ([]model.Order, error)
	ListPendingAutoConfirm(ctx context.Context) ([]model.Order, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.OrderSummary, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	orderColumns = "id, order_num, seller_id, buyer_id, product_id, request_order, request_cancel, payment, success, notified, reported, selected_time, created_at"

	insertOrderQuery = "INSERT INTO `order` (order_num, seller_id, buyer_id, product_id, request_order, request_cancel, payment, success, notified, reported, selected_time, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())"

	// Row lock so concurrent transitions on one order serialize.
	getOrderForUpdate = "SELECT " + orderColumns + " FROM `order` WHERE order_num = ? FOR UPDATE"

	updateOrderQuery = "UPDATE `order` SET request_order = ?, request_cancel = ?, payment = ?, success = ?, notified = ?, reported = ? WHERE id = ?"

	pendingReminderQuery    = "SELECT " + orderColumns + " FROM `order` WHERE success = false AND notified = false"
	pendingAutoConfirmQuery = "SELECT " + orderColumns + " FROM `order` WHERE reported = false AND success = false AND notified = true"

	listByUserQuery = `SELECT o.order_num, p.pd_num, p.name AS product_name, s.nickname AS seller_nickname, b.nickname AS buyer_nickname, o.selected_time, o.request_order AS status
FROM ` + "`order`" + ` o
JOIN product p ON o.product_id = p.id
JOIN user s ON o.seller_id = s.id
JOIN user b ON o.buyer_id = b.id
WHERE o.seller_id = ? OR o.buyer_id = ?
ORDER BY o.created_at DESC`
)

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, o *model.Order) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertOrderQuery,
		o.OrderNum, o.SellerID, o.BuyerID, o.ProductID,
		o.RequestOrder, o.RequestCancel, o.Payment,
		o.Success, o.Notified, o.Reported, o.SelectedTime)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) GetByOrderNumTx(ctx context.Context, tx *sqlx.Tx, orderNum string) (*model.Order, error) {
	var o model.Order
	if err := tx.QueryRowxContext(ctx, getOrderForUpdate, orderNum).StructScan(&o); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *SQL) UpdateOrderTx(ctx context.Context, tx *sqlx.Tx, o *model.Order) error {
	_, err := tx.ExecContext(ctx, updateOrderQuery,
		o.RequestOrder, o.RequestCancel, o.Payment,
		o.Success, o.Notified, o.Reported, o.ID)
	return err
}

func (r *SQL) ListPendingReminder(ctx context.Context) ([]model.Order, error) {
	return r.listOrders(ctx, pendingReminderQuery)
}

func (r *SQL) ListPendingAutoConfirm(ctx context.Context) ([]model.Order, error) {
	return r.listOrders(ctx, pendingAutoConfirmQuery)
}

func (r *SQL) listOrders(ctx context.Context, query string) ([]model.Order, error) {
	rows, err := r.conn.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.StructScan(&o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *SQL) ListByUser(ctx context.Context, userID uint64) ([]model.OrderSummary, error) {
	rows, err := r.conn.QueryxContext(ctx, listByUserQuery, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]model.OrderSummary, 0)
	for rows.Next() {
		var s model.OrderSummary
		if err := rows.StructScan(&s); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
