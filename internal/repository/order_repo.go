package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// CreateWithItems inserts a PendingPayment order and its item snapshots in
// one transaction and returns the new orderid.
func (r *OrderRepository) CreateWithItems(ctx context.Context, userID string, total int64, promoCode string, items []model.OrderItem) (int64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderID int64
	query := `
		INSERT INTO orders (userid, orderstatus, totalprice, promocode, created_at)
		VALUES ($1, 'PendingPayment', $2, $3, $4)
		RETURNING orderid
	`
	if err := tx.QueryRow(ctx, query, userID, total, promoCode, time.Now()).Scan(&orderID); err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	if len(items) > 0 {
		var sb strings.Builder
		args := make([]interface{}, 0, len(items)*4)
		sb.WriteString("INSERT INTO orderitems (orderid, courseid, title, priceatpurchase) VALUES ")
		for i, it := range items {
			if i > 0 {
				sb.WriteString(",")
			}
			pi := i*4 + 1
			sb.WriteString(fmt.Sprintf("($%d,$%d,$%d,$%d)", pi, pi+1, pi+2, pi+3))
			args = append(args, orderID, it.CourseID, it.Title, it.PriceAtPurchase)
		}
		if _, err := tx.Exec(ctx, sb.String(), args...); err != nil {
			return 0, fmt.Errorf("insert order items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return orderID, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	var o model.Order
	query := `
		SELECT orderid, userid, orderstatus, totalprice, COALESCE(promocode, ''), orderdate, created_at
		FROM orders
		WHERE orderid=$1
	`
	if err := r.DB.
		QueryRow(ctx, query, orderID).
		Scan(&o.OrderID, &o.UserID, &o.OrderStatus, &o.TotalPrice, &o.PromoCode, &o.OrderDate, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	query := `
		SELECT orderitemid, orderid, courseid, title, priceatpurchase
		FROM orderitems
		WHERE orderid=$1
	`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.OrderID, &it.CourseID, &it.Title, &it.PriceAtPurchase); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// MarkPaidTx flips the order to Paid and stamps the order date inside the
// provided tx.
func (r *OrderRepository) MarkPaidTx(ctx context.Context, tx pgx.Tx, orderID int64) error {
	query := `UPDATE orders SET orderstatus='Paid', orderdate=$2 WHERE orderid=$1 AND orderstatus='PendingPayment'`
	_, err := tx.Exec(ctx, query, orderID, time.Now())
	return err
}

// ListByUser returns finalized orders for a user, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	query := `
		SELECT orderid, userid, orderstatus, totalprice, COALESCE(promocode, ''), orderdate, created_at
		FROM orders
		WHERE userid=$1
		ORDER BY orderid DESC
	`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.OrderStatus, &o.TotalPrice, &o.PromoCode, &o.OrderDate, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
