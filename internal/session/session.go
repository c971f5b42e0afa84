// Package session owns the current authenticated identity. All other
// components read identity from the store and observe changes through
// Subscribe; nothing else holds auth state.
package session

import (
	"context"
	"sync"

	"codeberg.org/voiceai/client/internal/api"
	"codeberg.org/voiceai/client/internal/logger"
)

// Identity is the signed-in user. A nil Identity means anonymous.
type Identity struct {
	ID        string
	Name      string
	Email     string
	IsPremium bool
}

// AuthClient is the slice of the backend the store depends on.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*api.User, error)
	Register(ctx context.Context, name, email, password string) (*api.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*api.User, error)
}

// Store holds the identity and notifies subscribers on every change.
type Store struct {
	mu       sync.RWMutex
	identity *Identity
	auth     AuthClient
	subs     []func(*Identity)
}

func NewStore(auth AuthClient) *Store {
	return &Store{auth: auth}
}

// returns the current identity, nil when anonymous
func (s *Store) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// reports whether a user is signed in
func (s *Store) Authenticated() bool {
	return s.Identity() != nil
}

// registers a callback invoked after every identity change
func (s *Store) Subscribe(fn func(*Identity)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) Login(ctx context.Context, email, password string) (*Identity, error) {
	user, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	id := fromUser(user)
	s.set(id)
	logger.Info("signed in", "user_id", id.ID)
	return id, nil
}

func (s *Store) Register(ctx context.Context, name, email, password string) (*Identity, error) {
	user, err := s.auth.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	id := fromUser(user)
	s.set(id)
	logger.Info("account created", "user_id", id.ID)
	return id, nil
}

func (s *Store) Logout(ctx context.Context) error {
	err := s.auth.Logout(ctx)
	// the local identity is dropped even if the server call failed; a
	// dangling server session expires on its own
	s.set(nil)
	if err != nil {
		logger.ErrorErr(err, "logout request failed")
	}
	return err
}

// re-fetches the identity bound to the session cookie, picking up
// server-side changes such as a new premium flag
func (s *Store) Refresh(ctx context.Context) (*Identity, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	id := fromUser(user)
	s.set(id)
	return id, nil
}

func (s *Store) set(id *Identity) {
	s.mu.Lock()
	s.identity = id
	subs := make([]func(*Identity), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}

func fromUser(u *api.User) *Identity {
	return &Identity{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsPremium: u.IsPremium,
	}
}
