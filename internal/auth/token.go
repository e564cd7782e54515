package auth

import (
	"net/http"
	"strings"
)

// ExtractBearer pulls the token out of the Authorization header.
// Empty string means no credential was presented.
func ExtractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
