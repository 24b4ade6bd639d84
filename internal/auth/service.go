package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"mounti/internal/store"
	apperrors "mounti/pkg/errors"
	"mounti/pkg/logger"
	"mounti/pkg/model"

	"github.com/google/uuid"
)

// Session is the result of a successful identity exchange. ExpiresAt is
// enforced by the session store, not just reported.
type Session struct {
	Token     string      `json:"session_token"`
	User      *model.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type Service interface {
	CreateSession(ctx context.Context, sessionID string) (*Session, error)
	Resolve(ctx context.Context, token string) (*model.User, error)
	EndSession(ctx context.Context, token string) error
}

type authService struct {
	users    store.UserRepository
	sessions SessionStore
	identity IdentityClient
	ttl      time.Duration
	log      *logger.Logger
}

func NewService(
	users store.UserRepository,
	sessions SessionStore,
	identity IdentityClient,
	ttl time.Duration,
	log *logger.Logger,
) Service {
	return &authService{
		users:    users,
		sessions: sessions,
		identity: identity,
		ttl:      ttl,
		log:      log,
	}
}

func (s *authService) CreateSession(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session_id is required")
	}

	identity, err := s.identity.Exchange(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.findOrCreateUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	token := newToken()
	expiresAt := time.Now().Add(s.ttl)
	if err := s.sessions.Put(ctx, token, user.ID, s.ttl); err != nil {
		return nil, apperrors.Internal("Failed to store session", err)
	}

	s.log.Info("Session created", "user_id", user.ID)
	return &Session{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}

// findOrCreateUser keys identity on email: the first-seen email becomes
// the permanent local user record.
func (s *authService) findOrCreateUser(ctx context.Context, identity *Identity) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	user = &model.User{
		ID:      uuid.New().String(),
		Email:   identity.Email,
		Name:    identity.Name,
		Picture: identity.Picture,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.Internal("Failed to create user", err)
	}

	s.log.Info("User created", "user_id", user.ID)
	return user, nil
}

func (s *authService) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperrors.Unauthenticated("Missing session token")
	}

	userID, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperrors.Unauthenticated("Invalid or expired session token")
		}
		return nil, apperrors.Internal("Failed to look up session", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.Unauthenticated("Session user no longer exists")
		}
		return nil, apperrors.Internal("Failed to look up user", err)
	}

	return user, nil
}

// EndSession is idempotent: ending an unknown token succeeds.
func (s *authService) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return apperrors.Internal("Failed to delete session", err)
	}
	return nil
}

func newToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
