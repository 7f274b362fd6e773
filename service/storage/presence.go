package storage

import (
	"context"
	"time"

	redisstore "github.com/Sourasish01/MERN-ChatApp/service/storage/redis"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

// Presence mirror in redis, so ops tooling can observe online state from
// outside the process. The in-memory registry stays the source of truth;
// every call here is best-effort.
//
// key: chat:presence:<user>  value: node id  TTL bounds staleness.

const presenceTTL = 2 * time.Minute

func presenceKey(user string) string { return "chat:presence:" + user }

// PresenceOnline marks the user online on the given node and renews the TTL.
func PresenceOnline(ctx context.Context, user, nodeID string) error {
	rdb := redisstore.Client()
	if rdb == nil {
		return nil
	}
	return rdb.Set(ctx, presenceKey(user), nodeID, presenceTTL).Err()
}

// PresenceOffline removes the user's presence key.
func PresenceOffline(ctx context.Context, user string) error {
	rdb := redisstore.Client()
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, presenceKey(user)).Err()
}

// PresenceLookup reports whether the user has a live presence key and on
// which node.
func PresenceLookup(ctx context.Context, user string) (nodeID string, online bool, err error) {
	rdb := redisstore.Client()
	if rdb == nil {
		return "", false, nil
	}
	val, err := rdb.Get(ctx, presenceKey(user)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}
