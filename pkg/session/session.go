package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a token does not resolve to a live session,
// either because it never existed or because the inactivity window elapsed.
var ErrNotFound = errors.New("session not found")

// Scopes keep user and admin sessions apart; a token issued for one scope is
// useless in the other.
const (
	ScopeUser  = "user"
	ScopeAdmin = "admin"
)

// Data is what the server remembers about an authenticated caller. The client
// only ever holds the opaque token.
type Data struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// Store is a server-side session store keyed by opaque tokens. Get refreshes
// the inactivity window on every successful lookup.
type Store interface {
	Create(ctx context.Context, scope string, data Data, ttl time.Duration) (string, error)
	Get(ctx context.Context, scope, token string, ttl time.Duration) (*Data, error)
	Destroy(ctx context.Context, scope, token string) error
}

// RedisStore keeps sessions in redis with the inactivity timeout enforced by
// key TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(scope, token string) string {
	return fmt.Sprintf("session:%s:%s", scope, token)
}

func (s *RedisStore) Create(ctx context.Context, scope string, data Data, ttl time.Duration) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, sessionKey(scope, token), payload, ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, scope, token string, ttl time.Duration) (*Data, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	key := sessionKey(scope, token)
	payload, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var data Data
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, err
	}

	// Sliding expiration: activity pushes the deadline out
	s.client.Expire(ctx, key, ttl)

	return &data, nil
}

func (s *RedisStore) Destroy(ctx context.Context, scope, token string) error {
	return s.client.Del(ctx, sessionKey(scope, token)).Err()
}

// NewToken returns a 64-character hex token from 32 random bytes.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Cookie names for the two session scopes.
const (
	UserCookie  = "vr_session"
	AdminCookie = "vr_admin_session"
)

// WriteCookie sets an http-only session cookie on the response.
func WriteCookie(w http.ResponseWriter, name, token string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires a session cookie.
func ClearCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
