package transport

import (
	"net/http"

	"sushi-be/internal/order"
	"sushi-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type orderHandler struct {
	orders order.Service
}

// Create is the checkout endpoint. Guests may order; when the caller
// presented a valid token the order is linked to that account and any
// client-sent userId is ignored.
func (h *orderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	lines := make([]order.CartLine, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		lines = append(lines, order.CartLine{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		})
	}

	customerName := req.Customer.Name
	if customerName == "" {
		customerName = "Гость"
	}

	customer := order.CustomerInfo{
		Name:          customerName,
		Phone:         req.Customer.Phone,
		Address:       req.Customer.Address,
		PaymentMethod: order.PaymentMethod(req.Customer.PaymentMethod),
		Comment:       req.Customer.Comment,
	}

	var userID *uint
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		userID = &id
	}

	o, err := h.orders.Create(r.Context(), lines, customer, userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, o)
}

// List returns every order, newest first. Admin only.
func (h *orderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *orderHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.ToUint(chi.URLParam(r, "userId"))
	if err != nil || userID == 0 {
		writeError(w, "invalid user id", http.StatusBadRequest)
		return
	}

	orders, err := h.orders.ListForUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *orderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), id, order.OrderStatus(req.Status))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}
