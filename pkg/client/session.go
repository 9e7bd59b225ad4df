package client

import (
	"sync"

	"staybook/pkg/api"
)

// Session holds the bearer token and the signed-in user. It is shared by
// every request made through a Client and is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *api.User
}

func (s *Session) Set(token string, u *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if u != nil {
		cp := *u
		s.user = &cp
	}
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

func (s *Session) LoggedIn() bool { return s.Token() != "" }

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == "admin"
}
