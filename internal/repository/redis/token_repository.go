package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepository keeps one active session token per user plus a reverse
// lookup keyed by the token itself, both expiring on the same TTL. Logout
// deletes both keys, so a token stops validating the moment the session
// ends even though the JWT itself is still unexpired.
type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func userKey(userID string) string {
	return fmt.Sprintf("session:user:%s", userID)
}

func lookupKey(token string) string {
	return fmt.Sprintf("session:lookup:%s", token)
}

func (r *TokenRepository) StoreToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, userKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session token: %w", err)
	}

	if err := r.client.Set(ctx, lookupKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token lookup: %w", err)
	}

	return nil
}

// ValidateToken returns the user ID a token belongs to, or an error when
// the token is unknown or its session expired.
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, lookupKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errors.New("token not found or expired")
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}

func (r *TokenRepository) DeleteToken(ctx context.Context, userID, token string) error {
	if err := r.client.Del(ctx, userKey(userID), lookupKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session token: %w", err)
	}

	return nil
}
