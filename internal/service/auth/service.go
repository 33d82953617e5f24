// Package auth is a static credential gate. It issues no tokens or sessions.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"

	"magazine-crm/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// LoginAction is the acknowledgment returned on a successful login.
type LoginAction struct {
	Username string `json:"username"`
}

// Service compares credentials against a single configured identity.
type Service struct {
	username string

	mu   sync.RWMutex
	hash []byte
	cost int
}

// New hashes password and returns the gate for username.
func New(username, password string) (*Service, error) {
	return newWithCost(username, password, bcrypt.DefaultCost)
}

func newWithCost(username, password string, cost int) (*Service, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("auth: username and password must be configured")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	return &Service{username: username, hash: hash, cost: cost}, nil
}

// Login checks both fields against the configured identity.
func (s *Service) Login(username, password string) (*LoginAction, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: Please Enter Username and Password", domain.ErrValidation)
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := s.matches(password)
	if !userOK || !passOK {
		return nil, fmt.Errorf("%w: Invalid Username or Password", domain.ErrUnauthorized)
	}
	return &LoginAction{Username: s.username}, nil
}

// ChangePassword replaces the in-process password. It is not persisted and
// resets to the configured value on restart.
func (s *Service) ChangePassword(current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("%w: Please Provide current password, and new password", domain.ErrValidation)
	}
	if !s.matches(current) {
		return fmt.Errorf("%w: Current password is incorrect", domain.ErrUnauthorized)
	}
	if len(next) < minPasswordLength {
		return fmt.Errorf("%w: New password must be at least %d characters long", domain.ErrValidation, minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.cost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	s.mu.Lock()
	s.hash = hash
	s.mu.Unlock()
	return nil
}

func (s *Service) matches(password string) bool {
	s.mu.RLock()
	hash := s.hash
	s.mu.RUnlock()
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
