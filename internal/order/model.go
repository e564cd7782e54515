package order

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCooking   OrderStatus = "COOKING"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// allowedTransitions is the order state machine. DELIVERED and CANCELLED
// are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending: {StatusCooking, StatusCancelled},
	StatusCooking: {StatusDelivered, StatusCancelled},
}

func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusCooking, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func CanTransition(from, to OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

type Order struct {
	ID            uint          `json:"id"`
	UserID        *uint         `json:"userId,omitempty"`
	Status        OrderStatus   `json:"status"`
	TotalPrice    float64       `json:"totalPrice"`
	CustomerName  string        `json:"customerName"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Comment       string        `json:"comment,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	Items         []OrderItem   `json:"items"`
}

// OrderItem freezes the unit price and product name at order time.
// Product price edits never touch historical orders.
type OrderItem struct {
	ID          uint    `json:"id"`
	OrderID     uint    `json:"orderId"`
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// CartLine is one checkout line as sent by a client. Only the product id
// and quantity are taken from the payload, pricing comes from the store.
type CartLine struct {
	ProductID uint
	Quantity  int
}

type CustomerInfo struct {
	Name          string
	Phone         string
	Address       string
	PaymentMethod PaymentMethod
	Comment       string
}

// checkoutProduct is the live product row a cart line is priced from.
type checkoutProduct struct {
	ID     uint
	NameRu string
	Price  float64
}
