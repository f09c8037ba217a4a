// Package session holds the signed-in user and bearer token for one client.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/logger"
	"github.com/ghaniswara/workmatch/internal/tokenstore"
)

type AuthAPI interface {
	SignIn(ctx context.Context, username, password string) (*entity.AuthResponse, error)
	SignUp(ctx context.Context, req entity.SignUpRequest) (*entity.SignUpResponse, error)
}

type ProfileAPI interface {
	GetProfile(ctx context.Context) (*entity.User, error)
}

type Session struct {
	auth  AuthAPI
	users ProfileAPI
	store tokenstore.Store

	mu      sync.RWMutex
	user    *entity.User
	token   string
	loading bool

	readyOnce sync.Once
	ready     chan struct{}
}

func New(auth AuthAPI, users ProfileAPI, store tokenstore.Store) *Session {
	return &Session{
		auth:    auth,
		users:   users,
		store:   store,
		loading: true,
		ready:   make(chan struct{}),
	}
}

// Initialize restores a persisted token and validates it by fetching the
// profile. An invalid token is removed and the session stays signed out.
// Loading reports true until Initialize returns.
func (s *Session) Initialize(ctx context.Context) error {
	defer s.markReady()

	token, err := s.store.Get(ctx)
	if errors.Is(err, tokenstore.ErrNoToken) {
		return nil
	}
	if err != nil {
		logger.Warn("stored token unreadable, signing out", "error", err)
		s.discard(ctx)
		return nil
	}

	user, err := s.users.GetProfile(ctx)
	if err != nil {
		logger.Info("stored token rejected, signing out", "error", err)
		s.discard(ctx)
		return nil
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	return nil
}

func (s *Session) discard(ctx context.Context) {
	if err := s.store.Remove(ctx); err != nil {
		logger.Warn("remove stale token", "error", err)
	}
	s.clear()
}

func (s *Session) markReady() {
	s.readyOnce.Do(func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		close(s.ready)
	})
}

// Ready is closed once Initialize has completed.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Login exchanges credentials for a token, persists it, then loads the full
// profile. Errors are returned as-is for display; nothing is retried.
func (s *Session) Login(ctx context.Context, username, password string) error {
	auth, err := s.auth.SignIn(ctx, username, password)
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, auth.AccessToken); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.mu.Lock()
	s.token = auth.AccessToken
	s.mu.Unlock()

	user, err := s.users.GetProfile(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	logger.Info("signed in", "user_id", user.ID, "username", user.Username)
	return nil
}

// Register creates an account. It does not sign the user in.
func (s *Session) Register(ctx context.Context, req entity.SignUpRequest) error {
	_, err := s.auth.SignUp(ctx, req)
	return err
}

// Logout forgets the token locally. There is no server round-trip.
func (s *Session) Logout(ctx context.Context) error {
	err := s.store.Remove(ctx)
	s.clear()
	return err
}

func (s *Session) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
}

func (s *Session) User() (entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return entity.User{}, false
	}
	return *s.user, true
}

// UserID returns 0 when signed out.
func (s *Session) UserID() uint {
	u, _ := s.User()
	return u.ID
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) SignedIn() bool {
	_, ok := s.User()
	return ok
}
