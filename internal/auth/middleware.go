package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/hackdesk/hackdesk/config"
	"github.com/hackdesk/hackdesk/internal/dto"
	"github.com/rs/zerolog/log"
)

const identityKey = "auth_identity"

type Middleware struct {
	secret              []byte
	legacyNullRoleAdmin bool
}

func NewMiddleware(cfg *config.Config) *Middleware {
	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; all authenticated requests will be rejected")
	}
	return &Middleware{
		secret:              []byte(cfg.Auth.JWTSecret),
		legacyNullRoleAdmin: cfg.Auth.LegacyNullRoleAdmin,
	}
}

// RequireAuth validates the bearer token and stores the resolved Identity on
// the request context. Missing or invalid tokens are rejected with 401.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ident, err := m.resolve(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.Set(identityKey, ident)
		ctx.Next()
	}
}

// RequireAdmin must be mounted after RequireAuth.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ident, ok := FromContext(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}
		if !ident.Admin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin access required"})
			return
		}
		ctx.Next()
	}
}

// FromContext returns the Identity stored by RequireAuth.
func FromContext(ctx *gin.Context) (Identity, bool) {
	v, ok := ctx.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}

func (m *Middleware) resolve(ctx *gin.Context) (Identity, error) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return Identity{}, errAuth("Missing Authorization header")
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if tokenString == "" {
		return Identity{}, errAuth("Missing bearer token")
	}
	if len(m.secret) == 0 {
		return Identity{}, errAuth("Authentication unavailable")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errAuth("Unexpected signing method")
		}
		return m.secret, nil
	}); err != nil {
		log.Debug().Err(err).Msg("Token parse failed")
		return Identity{}, errAuth("Invalid or expired token")
	}

	userID, ok := extractUserID(claims)
	if !ok {
		return Identity{}, errAuth("Token missing user id")
	}
	role, _ := claims["role"].(string)

	return Identity{
		UserID: userID,
		Role:   role,
		Admin:  ResolveAdmin(role, m.legacyNullRoleAdmin),
	}, nil
}

func extractUserID(claims jwt.MapClaims) (uint, bool) {
	switch v := claims["user_id"].(type) {
	case float64:
		if v <= 0 {
			return 0, false
		}
		return uint(v), true
	case string:
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil || id == 0 {
			return 0, false
		}
		return uint(id), true
	default:
		return 0, false
	}
}

type authError string

func (e authError) Error() string { return string(e) }

func errAuth(msg string) error { return authError(msg) }
