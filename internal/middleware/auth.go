package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"wenje/internal/config"
	"wenje/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserLoader fetches the authenticated user so handlers can rely on a fully
// loaded caller. Returns a NOT_FOUND AppError when the account is gone.
type UserLoader func(ctx context.Context, id uint) (*models.User, error)

var (
	cfg      *config.Config
	loadUser UserLoader
)

// InitMiddleware initializes authentication middleware with the given config
// and user loader.
func InitMiddleware(c *config.Config, loader UserLoader) {
	cfg = c
	loadUser = loader
}

// AuthRequired is a middleware that enforces authentication for protected routes.
// It validates the Bearer token, loads the caller and rejects tokens issued
// before the account's last password change.
func AuthRequired(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Please sign in to access this route."))
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid authorization header format."))
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid token. Please sign out and sign in again."))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid token claims."))
	}

	userID, issuedAt, err := parseIdentityClaims(claims)
	if err != nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Invalid token. Please sign out and sign in again."))
	}

	user, err := loadUser(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Please sign in to access this route."))
	}

	if user.PasswordChangedAfter(issuedAt) {
		return models.RespondWithError(c,
			models.NewUnauthorizedError("Password has been changed recently, please sign out and sign in again."))
	}

	c.Locals("userID", user.ID)
	c.Locals("authUser", user)
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, user.ID))

	return c.Next()
}

// parseIdentityClaims extracts the user id ("sub", RFC 7519 subject) and
// issue time from the token claims.
func parseIdentityClaims(claims jwt.MapClaims) (uint, time.Time, error) {
	subStr, err := claims.GetSubject()
	if err != nil || subStr == "" {
		return 0, time.Time{}, jwt.ErrTokenInvalidSubject
	}

	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, time.Time{}, jwt.ErrTokenInvalidSubject
	}

	issuedAt, err := claims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return 0, time.Time{}, jwt.ErrTokenInvalidClaims
	}

	return uint(userID), issuedAt.Time, nil
}

// AuthUser returns the authenticated user stored by AuthRequired.
func AuthUser(c *fiber.Ctx) *models.User {
	if u, ok := c.Locals("authUser").(*models.User); ok {
		return u
	}
	return nil
}

// AuthUserID returns the authenticated user id stored by AuthRequired.
func AuthUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}
