// Package auth holds the client's login session.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/justsurfingit/job-board/internal/apiclient"
	"github.com/justsurfingit/job-board/internal/dtos"
)

// Storage keys of the persisted session.
const (
	TokenKey = "authToken"
	UserKey  = "userData"
)

// ErrUnauthenticated is returned by protected operations when no session is held.
var ErrUnauthenticated = errors.New("not logged in")

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Authenticator is the part of the API a session talks to.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*dtos.Envelope[dtos.LoginResponse], error)
	Logout(ctx context.Context) (*dtos.Envelope[json.RawMessage], error)
}

// Session is the current user and token, persisted in Storage. It implements
// oauth2.TokenSource so an API client can attach the token to its requests.
type Session struct {
	storage Storage
	api     Authenticator

	mu    sync.RWMutex
	token string
	user  *dtos.User
}

var _ oauth2.TokenSource = (*Session)(nil)

// NewSession restores the persisted session. A missing token or user, or a user
// record that does not parse, leaves the session unauthenticated and clears
// whatever was stored.
func NewSession(storage Storage, api Authenticator) *Session {
	s := &Session{storage: storage, api: api}
	s.hydrate()
	return s
}

func (s *Session) hydrate() {
	token, hasToken, err := s.storage.Get(TokenKey)
	if err != nil {
		log.Warn().Err(err).Msg("discarding unreadable session")
		s.clearStorage()
		return
	}
	rawUser, hasUser, err := s.storage.Get(UserKey)
	if err != nil {
		log.Warn().Err(err).Msg("discarding unreadable session")
		s.clearStorage()
		return
	}
	if !hasToken && !hasUser {
		return
	}
	if !hasToken || token == "" || !hasUser {
		log.Warn().Msg("discarding partial session")
		s.clearStorage()
		return
	}
	var user dtos.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		log.Warn().Err(err).Msg("discarding corrupt session user")
		s.clearStorage()
		return
	}
	s.token = token
	s.user = &user
}

// Login authenticates against the API. On success the token and user are
// persisted and the session becomes authenticated. It never fails with an error:
// the returned message explains a failed attempt, and a failed attempt changes
// nothing.
func (s *Session) Login(ctx context.Context, username, password string) (bool, string) {
	env, err := s.api.Login(ctx, username, password)
	resp, err := apiclient.Result(env, err, "Login failed")
	if err != nil {
		log.Debug().Err(err).Str("username", username).Msg("login rejected")
		return false, apiclient.UserMessage(err)
	}
	if resp.Token == "" {
		return false, "Login failed"
	}
	b, err := json.Marshal(resp.User)
	if err != nil {
		return false, "Login failed"
	}
	if err := s.storage.Set(TokenKey, resp.Token); err != nil {
		log.Error().Err(err).Msg("could not persist session token")
		s.clearStorage()
		return false, "Could not save the session"
	}
	if err := s.storage.Set(UserKey, string(b)); err != nil {
		log.Error().Err(err).Msg("could not persist session user")
		s.clearStorage()
		return false, "Could not save the session"
	}

	s.mu.Lock()
	s.token = resp.Token
	user := resp.User
	s.user = &user
	s.mu.Unlock()
	return true, "Login successful"
}

// Logout tells the API to revoke the token, ignoring any failure, then always
// clears the session.
func (s *Session) Logout(ctx context.Context) {
	if s.IsAuthenticated() {
		env, err := s.api.Logout(ctx)
		if _, err := apiclient.Result(env, err, "Logout failed"); err != nil {
			log.Warn().Err(err).Msg("remote logout failed")
		}
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	s.clearStorage()
}

func (s *Session) clearStorage() {
	if err := s.storage.Remove(TokenKey, UserKey); err != nil {
		log.Warn().Err(err).Msg("could not clear stored session")
	}
}

func (s *Session) State() State {
	if s.IsAuthenticated() {
		return Authenticated
	}
	return Unauthenticated
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// User returns the logged in user.
func (s *Session) User() (dtos.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return dtos.User{}, false
	}
	return *s.user, true
}

func (s *Session) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.IsAdmin()
}

// Require returns ErrUnauthenticated unless a session is held. It reads local
// state only.
func (s *Session) Require() error {
	if !s.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// Token returns the held bearer token.
func (s *Session) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return nil, ErrUnauthenticated
	}
	return &oauth2.Token{AccessToken: s.token, TokenType: "Bearer"}, nil
}
