package app

import (
	"vagas-rmc/config"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Application holds core application dependencies. It is built once in main
// and passed down explicitly.
type Application struct {
	Config      *config.Config
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client // nil when the cache is disabled
	Validator   *validator.Validate
}
