package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password
var ErrInvalidCredentials = errors.New("incorrect email or password")

// DefaultAccounts are the demo storefront's shoppers, keyed by email
func DefaultAccounts() map[string]string {
	return map[string]string{
		"shetty@gmail.com":  "Iamking@000",
		"anshika@gmail.com": "Iamking@000",
	}
}

// AccountService authenticates shoppers and tracks their sessions
type AccountService struct {
	mu       sync.RWMutex
	accounts map[string]string
	sessions map[string]string
}

// NewAccountService creates a service for the given email to password map
func NewAccountService(accounts map[string]string) *AccountService {
	s := &AccountService{
		accounts: make(map[string]string, len(accounts)),
		sessions: map[string]string{},
	}
	for email, password := range accounts {
		s.accounts[normalizeEmail(email)] = password
	}
	return s
}

// Login checks the credentials and opens a session
func (s *AccountService) Login(email, password string) (string, error) {
	email = normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	want, ok := s.accounts[email]
	if !ok || want != password {
		return "", ErrInvalidCredentials
	}
	token := uuid.NewString()
	s.sessions[token] = email
	return token, nil
}

// UserFor returns the email signed in with token
func (s *AccountService) UserFor(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.sessions[token]
	return email, ok
}

// Logout ends a session; unknown tokens are ignored
func (s *AccountService) Logout(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
