package session

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "jobpilot"
	// Single process-wide token slot; writes are last-write-wins.
	KeyringAccount = "jobpilot:api-token"
)

// TokenStore is the persisted token slot. Load returns "" without error when
// no token has ever been saved.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// KeyringTokens keeps the bearer token in the OS keychain.
type KeyringTokens struct{}

func (KeyringTokens) Load() (string, error) {
	tok, err := keyring.Get(KeyringService, KeyringAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(tok), nil
}

func (KeyringTokens) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, KeyringAccount, token)
}

func (KeyringTokens) Clear() error {
	err := keyring.Delete(KeyringService, KeyringAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
