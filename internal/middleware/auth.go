package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"sushi-be/internal/auth"
	"sushi-be/internal/logger"
	"sushi-be/internal/user"
	"sushi-be/internal/utils"

	"go.uber.org/zap"
)

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// Authenticate resolves an optional bearer identity and puts it in the
// context. A missing or invalid token is NOT an error here: public
// endpoints and guest checkout pass through anonymously, protected
// handlers fail closed via RequireAuth / RequireAdmin.
func Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractBearer(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := user.ParseJWT(tokenStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth fails closed when the request carries no verified identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			writeError(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin is the gate in front of every mutating admin endpoint.
// The role claim alone is not trusted: the stored account is re-resolved
// so a deleted user with a stale token gets 401, and a non-admin 403.
func RequireAdmin(repo user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractBearer(r)
			if tokenStr == "" {
				writeError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			claims, err := user.ParseJWT(tokenStr)
			if err != nil {
				writeError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			u, err := repo.FindByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, user.ErrNotFound) {
					writeError(w, "user not found", http.StatusUnauthorized)
					return
				}
				logger.FromCtx(r.Context()).Error("admin gate lookup failed", zap.Error(err))
				writeError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			if u.Role != user.RoleAdmin {
				writeError(w, "admin access required", http.StatusForbidden)
				return
			}

			ctx := utils.SetUserContext(r.Context(), u.ID, u.Email, string(u.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
