package order

import (
	"context"
	"fmt"
	"time"

	"sushi-be/internal/logger"
	"sushi-be/internal/metrics"
	"sushi-be/internal/notify"

	"go.uber.org/zap"
)

const notifyTimeout = 5 * time.Second

type Service interface {
	Create(ctx context.Context, lines []CartLine, customer CustomerInfo, userID *uint) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	ListForUser(ctx context.Context, userID uint) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status OrderStatus) (*Order, error)
}

type service struct {
	repo     Repository
	notifier notify.Notifier
}

func NewService(repo Repository, notifier notify.Notifier) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
	}
}

// Create prices the cart against live product rows, persists the order
// atomically and pushes the staff notification after commit.
func (s *service) Create(ctx context.Context, lines []CartLine, customer CustomerInfo, userID *uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.Int("line_count", len(lines)),
	)

	if len(lines) == 0 {
		log.Warn("checkout with empty cart")
		return nil, ErrEmptyCart
	}

	switch customer.PaymentMethod {
	case PaymentCash, PaymentCard:
	case "":
		customer.PaymentMethod = PaymentCash
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, customer.PaymentMethod)
	}

	// Unit prices come from the store, never from the payload. A client
	// lying about prices buys at the real ones.
	items := make([]OrderItem, 0, len(lines))
	total := 0.0

	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
		}

		p, err := s.repo.GetProductForCheckout(ctx, line.ProductID)
		if err != nil {
			log.Warn("cart line rejected",
				zap.Int("index", i),
				zap.Uint("product_id", line.ProductID),
				zap.Error(err),
			)
			return nil, err
		}

		items = append(items, OrderItem{
			ProductID:   p.ID,
			ProductName: p.NameRu,
			Quantity:    line.Quantity,
			Price:       p.Price,
		})
		total += p.Price * float64(line.Quantity)
	}

	order := &Order{
		UserID:        userID,
		Status:        StatusPending,
		TotalPrice:    total,
		CustomerName:  customer.Name,
		Phone:         customer.Phone,
		Address:       customer.Address,
		PaymentMethod: customer.PaymentMethod,
		Comment:       customer.Comment,
		Items:         items,
	}

	if err := s.repo.CreateOrderTx(ctx, order); err != nil {
		metrics.RecordOrderOperation("create", false)
		return nil, err
	}

	metrics.RecordOrderOperation("create", true)
	log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Float64("total_price", order.TotalPrice),
	)

	s.notifyAsync(ctx, order)

	return order, nil
}

// notifyAsync fires the staff notification after the transaction has
// committed. Detached from the request context so a hung endpoint cannot
// hold the handler, bounded so the goroutine always exits.
func (s *service) notifyAsync(ctx context.Context, order *Order) {
	info := notify.NewOrderInfo{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		Phone:         order.Phone,
		Address:       order.Address,
		PaymentMethod: string(order.PaymentMethod),
		Comment:       order.Comment,
		TotalPrice:    order.TotalPrice,
	}
	for _, item := range order.Items {
		info.Items = append(info.Items, notify.ItemLine{
			Name:     item.ProductName,
			Quantity: item.Quantity,
		})
	}

	reqID := logger.RequestIDFrom(ctx)
	go func() {
		notifyCtx := context.Background()
		if reqID != "" {
			notifyCtx = logger.WithRequestID(notifyCtx, reqID)
		}
		notifyCtx, cancel := context.WithTimeout(notifyCtx, notifyTimeout)
		defer cancel()

		s.notifier.NotifyNewOrder(notifyCtx, info)
	}()
}

func (s *service) List(ctx context.Context) ([]*Order, error) {
	return s.repo.GetOrders(ctx)
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.GetOrdersByUser(ctx, userID)
}

// UpdateStatus enforces the state machine: PENDING→COOKING|CANCELLED,
// COOKING→DELIVERED|CANCELLED, terminal states stay terminal.
func (s *service) UpdateStatus(ctx context.Context, orderID uint, status OrderStatus) (*Order, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	current, err := s.repo.GetOrderStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(current, status) {
		metrics.RecordOrderOperation("status_update", false)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	updated, err := s.repo.UpdateStatus(ctx, orderID, current, status)
	if err != nil {
		metrics.RecordOrderOperation("status_update", false)
		return nil, err
	}

	metrics.RecordOrderOperation("status_update", true)
	return updated, nil
}
