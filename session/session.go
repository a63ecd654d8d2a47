// Package session keeps server-side login sessions in Redis. The browser
// only holds a signed token naming the session id.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "session"

var ErrNoSession = errors.New("no session")

type Session struct {
	ID     string `json:"-"`
	UserID uint   `json:"user_id"`
	Flash  string `json:"flash,omitempty"`
}

type Store struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	newID  func() string
}

func NewStore(rdb *redis.Client, secret []byte, ttl time.Duration) *Store {
	return &Store{rdb: rdb, secret: secret, ttl: ttl, now: time.Now, newID: uuid.NewString}
}

func key(id string) string {
	return "session:" + id
}

// Create starts a session for userID and returns it with the signed token
// for the cookie.
func (s *Store) Create(ctx context.Context, userID uint, flash string) (*Session, string, error) {
	sess := &Session{ID: s.newID(), UserID: userID, Flash: flash}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, "", err
	}
	if err := s.rdb.Set(ctx, key(sess.ID), string(data), s.ttl).Err(); err != nil {
		return nil, "", fmt.Errorf("store session: %w", err)
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, "", fmt.Errorf("sign session token: %w", err)
	}
	return sess, signed, nil
}

// Load verifies the token and fetches its session. Any invalid, expired or
// revoked token yields ErrNoSession.
func (s *Store) Load(ctx context.Context, token string) (*Session, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrNoSession
	}

	data, err := s.rdb.Get(ctx, key(claims.ID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, ErrNoSession
	}
	sess.ID = claims.ID
	return &sess, nil
}

// Save writes the session back without extending its lifetime.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, key(sess.ID), string(data), redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Store) Destroy(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
