package auth

import (
	"strings"
	"sync"
)

// Token is the session credential held after a successful login.
type Token struct {
	TokenType   string
	AccessToken string
}

// Valid reports whether the token can authenticate a request.
func (t *Token) Valid() bool {
	return t != nil && t.AccessToken != ""
}

// AuthorizationValue renders the Authorization header value, with the token
// type capitalized the way the backend expects ("Bearer abc123").
func (t *Token) AuthorizationValue() string {
	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = "bearer"
	}

	return capitalize(tokenType) + " " + t.AccessToken
}

// TokenProvider exposes the current session token to the transport layer.
type TokenProvider interface {
	Token() *Token
}

// SessionManager holds the instance-scoped session state. Reads and writes
// are a critical section so concurrent adopters stay correct; a request in
// flight keeps whatever header value it already captured.
type SessionManager struct {
	mu    sync.RWMutex
	token *Token
}

// NewSessionManager creates an unauthenticated session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// Token returns the current token, or nil before login.
func (m *SessionManager) Token() *Token {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token
}

// SetToken installs a new session token.
func (m *SessionManager) SetToken(token *Token) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

// Clear drops the session.
func (m *SessionManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = nil
}

// Authenticated reports whether a usable session exists.
func (m *SessionManager) Authenticated() bool {
	return m.Token().Valid()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
