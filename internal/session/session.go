// Package session tracks who is signed in on this terminal and which
// restaurant every scoped store must query.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/restaurant-floor/internal/apperr"
	"github.com/BruksfildServices01/restaurant-floor/internal/auth"
	"github.com/BruksfildServices01/restaurant-floor/internal/models"
	"github.com/BruksfildServices01/restaurant-floor/internal/securestore"
)

type State int

const (
	Uninitialized State = iota
	Loading
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	}
	return "uninitialized"
}

// DefaultKey is the secure-store key holding the persisted session.
const DefaultKey = "floor.session"

type Provider interface {
	SignIn(ctx context.Context, email, password string) (auth.Token, error)
	SignUp(ctx context.Context, in auth.SignUpInput) (auth.Token, error)
	Verify(ctx context.Context, token string) (auth.Claims, error)
}

type Profiles interface {
	Get(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
}

// persisted is the only value written to the secure store.
type persisted struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Snapshot struct {
	State   State
	User    *models.User
	ScopeID string
}

type Store struct {
	provider Provider
	profiles Profiles
	kv       securestore.Store
	key      string
	log      logrus.FieldLogger

	mu    sync.RWMutex
	state State
	user  *models.User
	token string
	hooks []func()
}

func New(provider Provider, profiles Profiles, kv securestore.Store, key string, log logrus.FieldLogger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		provider: provider,
		profiles: profiles,
		kv:       kv,
		key:      key,
		log:      log.WithField("component", "session"),
	}
}

// ======================================================
// LIFECYCLE
// ======================================================

// LoadSession recovers the persisted session. A missing, malformed or
// expired value leaves the store anonymous and is never an error; only a
// failing secure store or profile lookup is reported.
func (s *Store) LoadSession(ctx context.Context) error {
	s.setState(Loading)

	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, securestore.ErrNotFound) {
		s.becomeAnonymous()
		return nil
	}
	if err != nil {
		s.becomeAnonymous()
		return apperr.Remote("session_read_failed", err)
	}

	saved, err := decode(raw)
	if err != nil {
		s.log.WithError(err).Warn("discarding corrupted session")
		s.forget(ctx)
		s.becomeAnonymous()
		return nil
	}

	claims, err := s.provider.Verify(ctx, saved.AccessToken)
	if err != nil {
		s.log.WithError(err).Info("persisted session no longer valid")
		s.forget(ctx)
		s.becomeAnonymous()
		return nil
	}

	user, err := s.profiles.Get(ctx, claims.UserID)
	if err != nil {
		s.becomeAnonymous()
		return err
	}

	s.becomeAuthenticated(saved.AccessToken, user)
	return nil
}

func (s *Store) SignIn(ctx context.Context, email, password string) error {
	s.setState(Loading)

	tok, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.becomeAnonymous()
		return err
	}
	return s.establish(ctx, tok)
}

func (s *Store) SignUp(ctx context.Context, in auth.SignUpInput) error {
	s.setState(Loading)

	tok, err := s.provider.SignUp(ctx, in)
	if err != nil {
		s.becomeAnonymous()
		return err
	}
	return s.establish(ctx, tok)
}

// SignOut drops the persisted token and runs every OnSignOut hook. A
// failure to delete the token is logged; the terminal is signed out
// regardless.
func (s *Store) SignOut(ctx context.Context) error {
	s.forget(ctx)

	s.mu.Lock()
	s.state = Anonymous
	s.user = nil
	s.token = ""
	hooks := append([]func(){}, s.hooks...)
	s.mu.Unlock()

	runHooks(hooks)
	return nil
}

// OnSignOut registers fn to run after every sign-out, and whenever the
// signed-in restaurant changes or the session drops to anonymous.
func (s *Store) OnSignOut(fn func()) {
	s.mu.Lock()
	s.hooks = append(s.hooks, fn)
	s.mu.Unlock()
}

// UpdateProfile writes patch remotely and merges it locally on success.
func (s *Store) UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	current, ok := s.User()
	if !ok {
		return nil, apperr.Session("not_authenticated", nil)
	}

	stored, err := s.profiles.UpdateProfile(ctx, current.ID, patch)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.user.ID != current.ID {
		return nil, apperr.Session("session_changed", nil)
	}
	next := *s.user
	if stored != nil {
		next = *stored
	} else {
		patch.Apply(&next)
	}
	s.user = &next

	out := next
	return &out, nil
}

// ======================================================
// READERS
// ======================================================

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// ScopeID is the signed-in user's restaurant. It is only available while
// authenticated.
func (s *Store) ScopeID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Authenticated || s.user == nil || s.user.RestaurantID == "" {
		return "", false
	}
	return s.user.RestaurantID, true
}

func (s *Store) User() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Authenticated || s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{State: s.state}
	if s.state == Authenticated && s.user != nil {
		u := *s.user
		snap.User = &u
		snap.ScopeID = u.RestaurantID
	}
	return snap
}

// ======================================================
// INTERNALS
// ======================================================

func (s *Store) establish(ctx context.Context, tok auth.Token) error {
	user, err := s.profiles.Get(ctx, tok.UserID)
	if err != nil {
		s.becomeAnonymous()
		return err
	}

	b, err := json.Marshal(persisted{
		AccessToken: tok.AccessToken,
		UserID:      tok.UserID,
		ExpiresAt:   tok.ExpiresAt,
	})
	if err != nil {
		s.becomeAnonymous()
		return apperr.Remote("session_encode_failed", err)
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		s.becomeAnonymous()
		return apperr.Remote("session_write_failed", err)
	}

	s.becomeAuthenticated(tok.AccessToken, user)
	return nil
}

// decode accepts only a JSON object carrying a token.
func decode(raw string) (persisted, error) {
	var p persisted
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return p, apperr.Session("session_corrupted", err)
	}
	if p.AccessToken == "" {
		return p, apperr.Session("session_corrupted", errors.New("missing access token"))
	}
	return p, nil
}

func (s *Store) forget(ctx context.Context) {
	if err := s.kv.Delete(ctx, s.key); err != nil && !errors.Is(err, securestore.ErrNotFound) {
		s.log.WithError(err).Warn("failed to delete persisted session")
	}
}

func (s *Store) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Store) becomeAnonymous() {
	s.mu.Lock()
	hooks := s.resetHooksLocked("")
	s.state = Anonymous
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	runHooks(hooks)
}

func (s *Store) becomeAuthenticated(token string, user *models.User) {
	u := *user
	s.mu.Lock()
	hooks := s.resetHooksLocked(u.RestaurantID)
	s.state = Authenticated
	s.user = &u
	s.token = token
	s.mu.Unlock()

	runHooks(hooks)

	s.log.WithFields(logrus.Fields{"user": u.ID, "scope": u.RestaurantID}).Info("session authenticated")
}

// resetHooksLocked returns the hooks to run when the session moves to
// scope next. Rows cached for the previous restaurant must not survive
// into another one. The user is kept while Loading, so it still names the
// previous scope here.
func (s *Store) resetHooksLocked(next string) []func() {
	if s.user == nil || s.user.RestaurantID == next {
		return nil
	}
	return append([]func(){}, s.hooks...)
}

func runHooks(hooks []func()) {
	for _, fn := range hooks {
		fn()
	}
}
