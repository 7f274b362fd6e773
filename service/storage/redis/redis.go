package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

var rdb *goredis.Client

// InitRedis connects the package-level client. The presence mirror is
// optional: when InitRedis is never called (or fails) all mirror writes
// are silent no-ops.
func InitRedis(ctx context.Context, c Config) error {
	cli := goredis.NewClient(&goredis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB})
	if err := cli.Ping(ctx).Err(); err != nil {
		return err
	}
	rdb = cli
	return nil
}

// Client returns the shared client, or nil when redis is not configured.
func Client() *goredis.Client {
	return rdb
}
