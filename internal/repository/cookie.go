package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-client/pkg/cookie"
)

var (
	ErrCookieNotFound     = errors.New("cookie not found")
	ErrInvalidCookieValue = errors.New("cookie value must not contain ';'")
)

// CookieRepository is the client's cookie jar.
type CookieRepository interface {
	Set(ctx context.Context, name, value string) error
	Get(ctx context.Context, name string) (string, error)
	Header(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type dbCookie struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewCookieRepository keeps one hash per profile; every write refreshes its TTL.
func NewCookieRepository(client *redis.Client, profile string, ttl time.Duration) CookieRepository {
	return &dbCookie{
		client: client,
		key:    "cookies:" + profile,
		ttl:    ttl,
	}
}

// Set rejects values with ';', since cookie.Get splits the decoded header on it.
func (that *dbCookie) Set(ctx context.Context, name, value string) error {
	if strings.Contains(value, ";") {
		return fmt.Errorf("%w: %s", ErrInvalidCookieValue, name)
	}

	if err := that.client.HSet(ctx, that.key, name, value).Err(); err != nil {
		return fmt.Errorf("failed to set cookie %s: %w", name, err)
	}

	if that.ttl <= 0 {
		return nil
	}

	if err := that.client.Expire(ctx, that.key, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cookie expiration: %w", err)
	}

	return nil
}

func (that *dbCookie) Get(ctx context.Context, name string) (string, error) {
	value, err := that.client.HGet(ctx, that.key, name).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCookieNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to get cookie %s: %w", name, err)
	}

	return value, nil
}

// Header renders the jar as a cookie string.
func (that *dbCookie) Header(ctx context.Context) (string, error) {
	values, err := that.client.HGetAll(ctx, that.key).Result()
	if err != nil {
		return "", fmt.Errorf("failed to read cookies: %w", err)
	}

	return cookie.Join(values), nil
}

func (that *dbCookie) Clear(ctx context.Context) error {
	if err := that.client.Del(ctx, that.key).Err(); err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}

	return nil
}
