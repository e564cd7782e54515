package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"sushi-be/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProductForCheckout(ctx context.Context, productID uint) (*checkoutProduct, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkoutProduct), args.Error(1)
}

func (m *MockRepository) CreateOrderTx(ctx context.Context, order *Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockRepository) GetOrders(ctx context.Context) ([]*Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetOrdersByUser(ctx context.Context, userID uint) ([]*Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetOrderStatus(ctx context.Context, orderID uint) (OrderStatus, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(OrderStatus), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, orderID uint, from, to OrderStatus) (*Order, error) {
	args := m.Called(ctx, orderID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

// recordingNotifier captures the async notification for assertions.
type recordingNotifier struct {
	ch chan notify.NewOrderInfo
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan notify.NewOrderInfo, 1)}
}

func (n *recordingNotifier) NotifyNewOrder(_ context.Context, info notify.NewOrderInfo) {
	n.ch <- info
}

func (n *recordingNotifier) wait(t *testing.T) notify.NewOrderInfo {
	t.Helper()
	select {
	case info := <-n.ch:
		return info
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never sent")
		return notify.NewOrderInfo{}
	}
}

func (n *recordingNotifier) assertNotCalled(t *testing.T) {
	t.Helper()
	select {
	case <-n.ch:
		t.Fatal("notification sent for a failed order")
	case <-time.After(100 * time.Millisecond):
	}
}

// --- Tests ---

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	customer := CustomerInfo{
		Name:    "A",
		Phone:   "+1",
		Address: "Street 1",
	}

	t.Run("EmptyCart", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := newRecordingNotifier()
		svc := NewService(repo, notifier)

		_, err := svc.Create(ctx, nil, customer, nil)
		assert.ErrorIs(t, err, ErrEmptyCart)
		repo.AssertNotCalled(t, "CreateOrderTx")
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, newRecordingNotifier())

		_, err := svc.Create(ctx, []CartLine{{ProductID: 1, Quantity: 0}}, customer, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("UnknownPaymentMethod", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, newRecordingNotifier())

		bad := customer
		bad.PaymentMethod = "CRYPTO"
		_, err := svc.Create(ctx, []CartLine{{ProductID: 1, Quantity: 1}}, bad, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("RepricesFromCatalog", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := newRecordingNotifier()
		svc := NewService(repo, notifier)

		repo.On("GetProductForCheckout", ctx, uint(1)).
			Return(&checkoutProduct{ID: 1, NameRu: "Филадельфия Классик", Price: 450}, nil)
		repo.On("GetProductForCheckout", ctx, uint(2)).
			Return(&checkoutProduct{ID: 2, NameRu: "Кола 0.5", Price: 45}, nil)
		repo.On("CreateOrderTx", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*Order).ID = 5
			}).
			Return(nil)

		userID := uint(7)
		o, err := svc.Create(ctx, []CartLine{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		}, customer, &userID)
		require.NoError(t, err)

		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, 945.0, o.TotalPrice)
		require.Len(t, o.Items, 2)
		assert.Equal(t, 450.0, o.Items[0].Price)
		assert.Equal(t, 2, o.Items[0].Quantity)
		assert.Equal(t, PaymentCash, o.PaymentMethod)
		require.NotNil(t, o.UserID)
		assert.Equal(t, uint(7), *o.UserID)

		info := notifier.wait(t)
		assert.Equal(t, uint(5), info.OrderID)
		assert.Equal(t, 945.0, info.TotalPrice)
		require.Len(t, info.Items, 2)
		assert.Equal(t, "Филадельфия Классик", info.Items[0].Name)
	})

	t.Run("ProductUnavailable", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := newRecordingNotifier()
		svc := NewService(repo, notifier)

		repo.On("GetProductForCheckout", ctx, uint(99)).
			Return(nil, ErrProductUnavailable)

		_, err := svc.Create(ctx, []CartLine{{ProductID: 99, Quantity: 1}}, customer, nil)
		assert.ErrorIs(t, err, ErrProductUnavailable)
		repo.AssertNotCalled(t, "CreateOrderTx")
		notifier.assertNotCalled(t)
	})

	t.Run("TxFailureSkipsNotification", func(t *testing.T) {
		repo := new(MockRepository)
		notifier := newRecordingNotifier()
		svc := NewService(repo, notifier)

		repo.On("GetProductForCheckout", ctx, uint(1)).
			Return(&checkoutProduct{ID: 1, NameRu: "X", Price: 100}, nil)
		repo.On("CreateOrderTx", ctx, mock.Anything).
			Return(errors.New("db down"))

		_, err := svc.Create(ctx, []CartLine{{ProductID: 1, Quantity: 1}}, customer, nil)
		assert.Error(t, err)
		notifier.assertNotCalled(t)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingToCooking", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, newRecordingNotifier())

		repo.On("GetOrderStatus", ctx, uint(5)).Return(StatusPending, nil)
		repo.On("UpdateStatus", ctx, uint(5), StatusPending, StatusCooking).
			Return(&Order{ID: 5, Status: StatusCooking}, nil)

		o, err := svc.UpdateStatus(ctx, 5, StatusCooking)
		require.NoError(t, err)
		assert.Equal(t, StatusCooking, o.Status)
	})

	t.Run("UnknownStatusValue", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, newRecordingNotifier())

		_, err := svc.UpdateStatus(ctx, 5, "SHIPPED")
		assert.ErrorIs(t, err, ErrInvalidStatus)
		repo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, newRecordingNotifier())

		repo.On("GetOrderStatus", ctx, uint(99)).Return(OrderStatus(""), ErrOrderNotFound)

		_, err := svc.UpdateStatus(ctx, 99, StatusCooking)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("TerminalStatesAreFinal", func(t *testing.T) {
		for _, terminal := range []OrderStatus{StatusDelivered, StatusCancelled} {
			repo := new(MockRepository)
			svc := NewService(repo, newRecordingNotifier())

			repo.On("GetOrderStatus", ctx, uint(5)).Return(terminal, nil)

			_, err := svc.UpdateStatus(ctx, 5, StatusPending)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			repo.AssertNotCalled(t, "UpdateStatus")
		}
	})

	t.Run("PendingCannotSkipToDelivered", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, newRecordingNotifier())

		repo.On("GetOrderStatus", ctx, uint(5)).Return(StatusPending, nil)

		_, err := svc.UpdateStatus(ctx, 5, StatusDelivered)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestTransitionTable(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusCooking))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusCooking, StatusDelivered))
	assert.True(t, CanTransition(StatusCooking, StatusCancelled))

	assert.False(t, CanTransition(StatusPending, StatusDelivered))
	assert.False(t, CanTransition(StatusDelivered, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusPending))
	assert.False(t, CanTransition(StatusCooking, StatusCooking))
}
