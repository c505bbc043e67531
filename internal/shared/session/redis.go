package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "session:"
	userKeyPrefix = "user_sessions:"
)

// RedisStore keeps sessions as expiring keys mapping session id -> user id,
// plus a per-user set of session ids for revoking them all at once.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func (s *RedisStore) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	sid := uuid.NewString()
	uid := strconv.FormatInt(userID, 10)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, keyPrefix+sid, uid, ttl)
		pipe.SAdd(ctx, userKeyPrefix+uid, sid)
		// The index lives as long as the newest session; older members expire first.
		pipe.Expire(ctx, userKeyPrefix+uid, ttl)
		return nil
	})
	if err != nil {
		return "", err
	}
	return sid, nil
}

func (s *RedisStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	uid, err := s.rdb.Get(ctx, keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keyPrefix+sessionID)
		pipe.SRem(ctx, userKeyPrefix+uid, sessionID)
		return nil
	})
	return err
}

func (s *RedisStore) DeleteByUser(ctx context.Context, userID int64) error {
	userKey := userKeyPrefix + strconv.FormatInt(userID, 10)
	sids, err := s.rdb.SMembers(ctx, userKey).Result()
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(sids)+1)
	for _, sid := range sids {
		keys = append(keys, keyPrefix+sid)
	}
	keys = append(keys, userKey)
	return s.rdb.Del(ctx, keys...).Err()
}

var _ Store = (*RedisStore)(nil)
