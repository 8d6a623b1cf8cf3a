package lib

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotAcquired = errors.New("lock not acquired")

const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

func GetRedisClient(redisHost string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil, err
	}
	return redis.NewClient(opt), nil
}

// RedisLocker is a SET NX PX lock shared by every API instance. Release only deletes the key
// when it still holds this holder's token.
type RedisLocker struct {
	rdb        redis.Cmdable
	ttl        time.Duration
	retryEvery time.Duration
	token      func() string
}

func NewRedisLocker(rdb redis.Cmdable, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		rdb:        rdb,
		ttl:        ttl,
		retryEvery: 50 * time.Millisecond,
		token:      uuid.NewString,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := l.token()
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			log.Printf("[redis] Error acquiring lock %s: %s\n", key, err.Error())
			return nil, err
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrLockNotAcquired, ctx.Err())
		case <-time.After(l.retryEvery):
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.rdb.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil {
		log.Printf("[redis] Error releasing lock %s: %s\n", key, err.Error())
	}
}
