package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// CookieName is the name of the session cookie
const CookieName = "session"

const keyPrefix = "server_dashboard:sess:"

// ErrNoSession is returned when the request carries no valid session
var ErrNoSession = errors.New("no valid session")

// Data is the server-side session state bound to a token. Authorization
// decisions must not trust it; the user row is re-read per request.
type Data struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// Store keeps session state in Redis, referenced by a token carried in a
// signed cookie. The signature prevents token tampering; expiry is enforced
// by the Redis TTL.
type Store struct {
	rdb      *redis.Client
	codec    *securecookie.SecureCookie
	lifetime time.Duration
}

// NewStore creates a session store signing cookies with the given secret
func NewStore(rdb *redis.Client, secret string, lifetime time.Duration) *Store {
	return &Store{
		rdb:      rdb,
		codec:    securecookie.New([]byte(secret), nil),
		lifetime: lifetime,
	}
}

// Create establishes a new session for the given identity and sets the
// session cookie on the response.
func (s *Store) Create(c *gin.Context, data Data) error {
	token := uuid.NewString()

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode session data: %w", err)
	}
	if err := s.rdb.Set(c.Request.Context(), keyPrefix+token, payload, s.lifetime).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	encoded, err := s.codec.Encode(CookieName, token)
	if err != nil {
		return fmt.Errorf("failed to sign session cookie: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, encoded, int(s.lifetime.Seconds()), "/", "", false, true)
	return nil
}

// Get resolves the request's session. Returns ErrNoSession if the cookie is
// missing, the signature is invalid, or the session has expired.
func (s *Store) Get(c *gin.Context) (*Data, error) {
	token, err := s.token(c)
	if err != nil {
		return nil, err
	}

	raw, err := s.rdb.Get(c.Request.Context(), keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode session data: %w", err)
	}
	return &data, nil
}

// Update rewrites the session state in place, keeping the remaining TTL
func (s *Store) Update(c *gin.Context, data Data) error {
	token, err := s.token(c)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode session data: %w", err)
	}
	if err := s.rdb.Set(c.Request.Context(), keyPrefix+token, payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// Destroy removes the session server-side and clears the cookie. Destroying
// an absent session is not an error.
func (s *Store) Destroy(c *gin.Context) error {
	if token, err := s.token(c); err == nil {
		if err := s.rdb.Del(c.Request.Context(), keyPrefix+token).Err(); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	return nil
}

// token extracts and verifies the session token from the request cookie
func (s *Store) token(c *gin.Context) (string, error) {
	encoded, err := c.Cookie(CookieName)
	if err != nil {
		return "", ErrNoSession
	}

	var token string
	if err := s.codec.Decode(CookieName, encoded, &token); err != nil {
		return "", ErrNoSession
	}
	return token, nil
}
