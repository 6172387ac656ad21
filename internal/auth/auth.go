// Package auth supplies API key credentials to the HTTP layer.
package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
)

// Static errors for err113 compliance.
var (
	ErrNoAPIKey       = errors.New("no API key available")
	ErrEnvVarNotSet   = errors.New("environment variable not set or empty")
	ErrEnvVarRequired = errors.New("environment variable name is required")
)

// CredentialSource yields the API key attached to every request. The
// Hostbridge API has no token exchange: the key is static per account, so
// sources only differ in where the key comes from.
type CredentialSource interface {
	APIKey(ctx context.Context) (string, error)
}

// StaticKeySource holds a key provided programmatically. The key can be
// swapped or cleared, which the session layer does on login/logout.
type StaticKeySource struct {
	mu  sync.RWMutex
	key string
}

// NewStaticKeySource creates a source around a fixed key.
func NewStaticKeySource(key string) *StaticKeySource {
	return &StaticKeySource{key: key}
}

// APIKey implements CredentialSource.
func (s *StaticKeySource) APIKey(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.key == "" {
		return "", ErrNoAPIKey
	}

	return s.key, nil
}

// SetKey replaces the stored key.
func (s *StaticKeySource) SetKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.key = key
}

// Clear drops the stored key.
func (s *StaticKeySource) Clear() {
	s.SetKey("")
}

// EnvKeySource reads the key from an environment variable on every call, so
// rotated keys are picked up without restarting.
type EnvKeySource struct {
	Var string
}

// NewEnvKeySource creates a source reading the named environment variable.
func NewEnvKeySource(name string) (*EnvKeySource, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEnvVarRequired
	}

	return &EnvKeySource{Var: name}, nil
}

// APIKey implements CredentialSource.
func (s *EnvKeySource) APIKey(ctx context.Context) (string, error) {
	key := strings.TrimSpace(os.Getenv(s.Var))
	if key == "" {
		return "", ErrEnvVarNotSet
	}

	return key, nil
}
