package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const loginAttemptsPrefix = "salon:login_attempts:"

// Limiter conta tentativas de login com falha por chave (e-mail) dentro
// de uma janela fixa.
type Limiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewLimiter(client *redis.Client, maxAttempts int, window time.Duration) *Limiter {
	return &Limiter{client: client, maxAttempts: maxAttempts, window: window}
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Get(ctx, loginAttemptsPrefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read login attempts: %w", err)
	}
	return n < l.maxAttempts, nil
}

func (l *Limiter) Fail(ctx context.Context, key string) error {
	k := loginAttemptsPrefix + key
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("count login attempt: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("expire login attempts: %w", err)
		}
	}
	return nil
}

func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, loginAttemptsPrefix+key).Err()
}
