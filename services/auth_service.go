package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"stocks-simulator/models"
)

type AuthService struct {
	store        Store
	startingCash decimal.Decimal
	cost         int
	log          log.FieldLogger
}

func NewAuthService(store Store, startingCash decimal.Decimal, cost int, logger log.FieldLogger) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{store: store, startingCash: startingCash, cost: cost, log: logger}
}

// Register creates a user holding the starting cash.
func (s *AuthService) Register(ctx context.Context, username, password, confirmation string) (*models.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}

	existing, err := s.store.FindUsersByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrUsernameTaken
	}

	if password == "" {
		return nil, ErrPasswordRequired
	}
	if password != confirmation {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Hash:     string(hash),
		Cash:     s.startingCash,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.log.WithFields(log.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return user, nil
}

// Login returns the user when exactly one account matches username and the
// password verifies against its hash.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	users, err := s.store.FindUsersByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(users) != 1 {
		return nil, ErrInvalidCredentials
	}

	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(password)); err != nil {
		s.log.WithField("username", username).Info("failed login")
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
