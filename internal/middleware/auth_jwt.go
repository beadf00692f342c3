package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const localUserID = "user_id"

type MyClaims struct {
	UID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// JWTUidOnly verifies the bearer token and stores its user id in Locals.
// Requests without a token pass through; RequireActor rejects them later.
func JWTUidOnly(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Next()
		}

		var claims MyClaims
		token, err := jwt.ParseWithClaims(
			strings.TrimSpace(auth[7:]),
			&claims,
			func(*jwt.Token) (any, error) { return []byte(secret), nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		uid := claims.UID
		if uid == "" {
			uid = claims.Subject
		}
		if uid == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing uid")
		}
		c.Locals(localUserID, uid)
		return c.Next()
	}
}

// UIDFromLocals returns the user id set by JWTUidOnly.
func UIDFromLocals(c *fiber.Ctx) (string, error) {
	uid, _ := c.Locals(localUserID).(string)
	if uid == "" {
		return "", fiber.ErrUnauthorized
	}
	return uid, nil
}
