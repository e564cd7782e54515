package order

import (
	"context"
	"database/sql"
	"errors"

	"sushi-be/internal/logger"
	"sushi-be/internal/product"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetProductForCheckout(ctx context.Context, productID uint) (*checkoutProduct, error)
	CreateOrderTx(ctx context.Context, order *Order) error
	GetOrders(ctx context.Context) ([]*Order, error)
	GetOrdersByUser(ctx context.Context, userID uint) ([]*Order, error)
	GetOrderStatus(ctx context.Context, orderID uint) (OrderStatus, error)
	UpdateStatus(ctx context.Context, orderID uint, from, to OrderStatus) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetProductForCheckout returns the live row a cart line is priced from.
// Disabled products are not orderable.
func (r *repository) GetProductForCheckout(ctx context.Context, productID uint) (*checkoutProduct, error) {
	var p checkoutProduct
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name_ru, price
		FROM products
		WHERE id = $1 AND status = $2
	`, productID, product.StatusActive).
		Scan(&p.ID, &p.NameRu, &p.Price)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductUnavailable
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreateOrderTx persists the order and all its items in one transaction.
// Either every row exists afterwards or none do.
func (r *repository) CreateOrderTx(ctx context.Context, order *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Int("item_count", len(order.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, status, total_price,
			customer_name, phone, address, payment_method, comment
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at
	`,
		order.UserID,
		order.Status,
		order.TotalPrice,
		order.CustomerName,
		order.Phone,
		order.Address,
		order.PaymentMethod,
		order.Comment,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.Price,
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.Uint("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order transaction committed", zap.Uint("order_id", order.ID))

	return nil
}

const orderColumns = `
	id, user_id, status, total_price,
	customer_name, phone, address, payment_method, comment, created_at
`

func scanOrder(rows *sql.Rows) (*Order, error) {
	var o Order
	var comment sql.NullString
	err := rows.Scan(
		&o.ID, &o.UserID, &o.Status, &o.TotalPrice,
		&o.CustomerName, &o.Phone, &o.Address, &o.PaymentMethod,
		&comment, &o.CreatedAt,
	)
	o.Comment = comment.String
	return &o, err
}

func (r *repository) queryOrders(ctx context.Context, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("db: failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("db: failed to scan order row", zap.Error(err))
			return nil, err
		}
		o.Items = []OrderItem{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachItems loads the items for a page of orders with a single query.
func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(orders))
	byID := make(map[uint]*Order, len(orders))
	for _, o := range orders {
		ids = append(ids, int64(o.ID))
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC
	`, pq.Array(ids))
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to query order items", zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.ProductName, &item.Quantity, &item.Price,
		); err != nil {
			return err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	return rows.Err()
}

func (r *repository) GetOrders(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC
	`)
}

func (r *repository) GetOrdersByUser(ctx context.Context, userID uint) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

func (r *repository) GetOrderStatus(ctx context.Context, orderID uint) (OrderStatus, error) {
	var status OrderStatus
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1`, orderID,
	).Scan(&status)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrOrderNotFound
	}

	return status, err
}

// UpdateStatus moves an order from one status to another. The WHERE clause
// pins the previous status, so a concurrent admin edit loses cleanly
// instead of skipping a state.
func (r *repository) UpdateStatus(ctx context.Context, orderID uint, from, to OrderStatus) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	var o Order
	var comment sql.NullString
	err := r.db.QueryRowContext(ctx, `
		UPDATE orders SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING `+orderColumns+`
	`, to, orderID, from).Scan(
		&o.ID, &o.UserID, &o.Status, &o.TotalPrice,
		&o.CustomerName, &o.Phone, &o.Address, &o.PaymentMethod,
		&comment, &o.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		// Raced with another update or the id never existed.
		return nil, ErrOrderNotFound
	}
	if err != nil {
		log.Error("db: failed to update order status", zap.Error(err))
		return nil, err
	}

	o.Comment = comment.String
	o.Items = []OrderItem{}
	if err := r.attachItems(ctx, []*Order{&o}); err != nil {
		return nil, err
	}

	log.Info("order status updated")
	return &o, nil
}
