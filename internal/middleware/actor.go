package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	m "github.com/krisnabayu-afk/Flux-version-0.4/internal/models"
)

const localActor = "actor"

type UserLookup interface {
	Get(ctx context.Context, id string) (*m.User, error)
}

// RequireActor loads the token's user and stores it as an m.Actor. Only
// approved accounts get through.
func RequireActor(users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := UIDFromLocals(c)
		if err != nil {
			return apperr.Unauthorized("missing bearer token")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()
		u, err := users.Get(ctx, uid)
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.Unauthorized("user no longer exists")
		}
		if err != nil {
			return err
		}
		if u.AccountStatus != m.AccountApproved {
			return apperr.Forbidden("account_"+string(u.AccountStatus), "account is not approved")
		}

		c.Locals(localActor, m.ActorFromUser(u))
		return c.Next()
	}
}

// ActorFrom returns the actor stored by RequireActor.
func ActorFrom(c *fiber.Ctx) (m.Actor, bool) {
	a, ok := c.Locals(localActor).(m.Actor)
	return a, ok
}
