// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session holds the per-client application state.

It replaces module-level mutable variables with an injectable [State] that
is safe for concurrent use and can notify watchers on change.

Fields:

  - Username: Empty while signed out.
  - ModProfileName: Moderation profile in use, "default" until set.
  - IsAuthenticated / IsLoadingAuth: Sign-in status flags.
  - Theme: UI theme, "dark" unless configured.
*/
package session

import (
	"sync"

	"github.com/taibuivan/agora/internal/platform/constants"
	"github.com/taibuivan/agora/internal/platform/sec"
)

// Snapshot is an immutable copy of a [State].
type Snapshot struct {
	Username        string `json:"username"`
	ModProfileName  string `json:"modProfileName"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoadingAuth   bool   `json:"isLoadingAuth"`
	Theme           string `json:"theme"`
}

// State is the mutable session state of one client.
type State struct {
	mu      sync.RWMutex
	current Snapshot
}

// Option configures a new [State].
type Option func(*Snapshot)

// WithTheme sets the initial theme. An empty theme keeps the default.
func WithTheme(theme string) Option {
	return func(snapshot *Snapshot) {
		if theme != "" {
			snapshot.Theme = theme
		}
	}
}

// New returns a signed-out state with the default profile and theme.
func New(opts ...Option) *State {
	initial := Snapshot{
		ModProfileName: constants.DefaultModProfileName,
		Theme:          constants.DefaultTheme,
	}
	for _, opt := range opts {
		opt(&initial)
	}
	return &State{current: initial}
}

// FromClaims returns an authenticated state for verified token claims.
func FromClaims(claims *sec.AuthClaims, opts ...Option) *State {
	state := New(opts...)
	if claims == nil {
		return state
	}

	state.current.Username = claims.Username
	state.current.IsAuthenticated = true
	if claims.ModProfileName != "" {
		state.current.ModProfileName = claims.ModProfileName
	}
	return state
}

// # Accessors

func (s *State) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Username
}

func (s *State) ModProfileName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.ModProfileName
}

func (s *State) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsAuthenticated
}

func (s *State) IsLoadingAuth() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsLoadingAuth
}

func (s *State) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Theme
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// # Mutators

func (s *State) SetUsername(username string) {
	s.update(func(snapshot *Snapshot) { snapshot.Username = username })
}

func (s *State) SetModProfileName(name string) {
	s.update(func(snapshot *Snapshot) { snapshot.ModProfileName = name })
}

func (s *State) SetIsAuthenticated(status bool) {
	s.update(func(snapshot *Snapshot) { snapshot.IsAuthenticated = status })
}

func (s *State) SetIsLoadingAuth(status bool) {
	s.update(func(snapshot *Snapshot) { snapshot.IsLoadingAuth = status })
}

func (s *State) SetTheme(theme string) {
	s.update(func(snapshot *Snapshot) { snapshot.Theme = theme })
}

func (s *State) update(change func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	change(&s.current)
}
