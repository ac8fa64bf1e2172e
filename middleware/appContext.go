package middleware

import (
	"context"
	"voter-registration-backend/token"

	"github.com/redis/go-redis/v9"
)

// AppContext bundles the auth dependencies shared by protected routes.
type AppContext struct {
	PasetoMaker token.Maker
	Ctx         context.Context
	RedisClient *redis.Client
}
