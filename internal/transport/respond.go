package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"sushi-be/internal/category"
	"sushi-be/internal/logger"
	"sushi-be/internal/order"
	"sushi-be/internal/product"
	"sushi-be/internal/user"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"message": message})
}

// writeDomainError maps domain sentinels onto the HTTP taxonomy. Anything
// unrecognized is a 500 with the detail kept server-side.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrEmailExists):
		writeError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrProductUnavailable),
		errors.Is(err, order.ErrValidation),
		errors.Is(err, product.ErrValidation),
		errors.Is(err, category.ErrValidation):
		writeError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, product.ErrCategoryNotFound),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		writeError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, category.ErrInUse),
		errors.Is(err, category.ErrSlugExists):
		writeError(w, err.Error(), http.StatusConflict)

	default:
		logger.FromCtx(r.Context()).Error("unhandled error",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, "internal server error", http.StatusInternalServerError)
	}
}
