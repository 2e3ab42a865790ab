package middlewares

import (
	"context"
	"net/http"
	"strings"

	"ekinerja/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claims is the token payload issued by the identity service. SubPerangkatDaerahID
// is the acting unit used by ownership checks; it is empty for admin and
// reviewer tokens that act across units.
type Claims struct {
	Username             string `json:"username"`
	Role                 string `json:"role"`
	SubPerangkatDaerahID string `json:"sub_perangkat_daerah_id"`
	jwt.RegisteredClaims
}

type contextKey string

const (
	UserContextKey contextKey = "user"
	UnitContextKey contextKey = "unit"
	RoleContextKey contextKey = "role"
)

func JWTMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.HandleMessageResponse(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				utils.HandleMessageResponse(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})

			if err != nil {
				utils.HandleMessageResponse(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			if claims, ok := token.Claims.(*Claims); ok && token.Valid {
				ctx := context.WithValue(r.Context(), UserContextKey, claims.Username)
				ctx = context.WithValue(ctx, UnitContextKey, claims.SubPerangkatDaerahID)
				ctx = context.WithValue(ctx, RoleContextKey, claims.Role)
				next.ServeHTTP(w, r.WithContext(ctx))
			} else {
				utils.HandleMessageResponse(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}
		})
	}
}

func GetUsernameFromContext(ctx context.Context) string {
	if username, ok := ctx.Value(UserContextKey).(string); ok {
		return username
	}
	return ""
}

func GetRoleFromContext(ctx context.Context) string {
	if role, ok := ctx.Value(RoleContextKey).(string); ok {
		return role
	}
	return ""
}

// GetUnitFromContext returns the acting unit id, or the nil ObjectID when
// the token carries none.
func GetUnitFromContext(ctx context.Context) primitive.ObjectID {
	raw, ok := ctx.Value(UnitContextKey).(string)
	if !ok || raw == "" {
		return primitive.NilObjectID
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}
