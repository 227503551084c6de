package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	apperrors "utsavia/internal/errors"
)

const authCookieName = "auth_token"

// AdminAuthMiddleware verifies the HS256 JWT issued at login and gates the
// admin routes on the admin role. The token is read from the Authorization
// bearer header, falling back to the auth cookie set by the frontend.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			apperrors.WriteJSON(w, apperrors.ErrUnauthorized("missing authentication token"))
			return
		}

		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			apperrors.WriteJSON(w, apperrors.ErrInternal("authentication is not configured"))
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			apperrors.WriteJSON(w, apperrors.ErrUnauthorized("invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != "admin" {
			apperrors.WriteJSON(w, apperrors.ErrUnauthorized("admin role required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(authCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
