package middleware

import (
	"net/http"
	"strings"
)

// RequireRole exige claims con alguno de los roles dados.
// Admin pasa siempre: el admin entra por cualquier puerta.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaims(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if strings.EqualFold(claims.Role, "Admin") {
				next.ServeHTTP(w, r)
				return
			}

			for _, role := range roles {
				if strings.EqualFold(claims.Role, role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Error(w, "forbidden", http.StatusForbidden)
		})
	}
}
