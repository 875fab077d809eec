// Package middleware provides authentication, logging and rate limiting middleware.
package middleware

import (
	"context"
	"strconv"
	"strings"

	"quill/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LoginPath is where unauthenticated requests to guarded routes are sent.
const LoginPath = "/auth/login"

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// userIDFromToken validates an HMAC JWT and extracts the subject user ID.
func userIDFromToken(tokenString string) (uint, bool) {
	if cfg == nil || tokenString == "" {
		return 0, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "quill-api" {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return 0, false
	}
	return uint(userID), true
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func storeUserID(c *fiber.Ctx, userID uint) {
	c.Locals("userID", userID)
	// Sync to UserContext so the context-aware logger and services see it.
	ctx := context.WithValue(c.UserContext(), UserIDKey, userID)
	c.SetUserContext(ctx)
}

// AuthRequired guards a route. An unauthenticated caller is redirected to
// the login route with 302, never answered with 401.
func AuthRequired(c *fiber.Ctx) error {
	userID, ok := userIDFromToken(bearerToken(c))
	if !ok {
		return c.Redirect(LoginPath, fiber.StatusFound)
	}
	storeUserID(c, userID)
	return c.Next()
}

// OptionalUser resolves the caller's identity when a valid token is present
// but lets anonymous requests through untouched. Used by public views that
// vary on the viewer (the profile "following" flag).
func OptionalUser(c *fiber.Ctx) error {
	if userID, ok := userIDFromToken(bearerToken(c)); ok {
		storeUserID(c, userID)
	}
	return c.Next()
}

// CurrentUserID returns the authenticated caller's ID, or zero for
// anonymous requests.
func CurrentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
