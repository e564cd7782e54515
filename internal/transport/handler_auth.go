package transport

import (
	"net/http"

	"sushi-be/internal/user"
)

type authHandler struct {
	users user.Service
}

// Register creates a USER-role account and logs it straight in.
func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, u, err := h.users.Register(r.Context(), req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: u.Public()})
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, u, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: u.Public()})
}
