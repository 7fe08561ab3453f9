//go:build darwin

package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

type darwinKeyring struct{}

func newPlatformKeyring() Keyring {
	return &darwinKeyring{}
}

// GetKey reads the journal key from the macOS Keychain
func (k *darwinKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", fmt.Errorf("%w in keychain", ErrKeyNotFound)
	case err != nil:
		return "", fmt.Errorf("failed to read keychain: %w", err)
	case key == "":
		return "", fmt.Errorf("%w: keychain entry is empty", ErrKeyNotFound)
	}
	return key, nil
}

// SetKey writes the journal key to the macOS Keychain
func (k *darwinKeyring) SetKey(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to write keychain: %w", err)
	}
	return nil
}

// DeleteKey removes the journal key from the macOS Keychain
func (k *darwinKeyring) DeleteKey() error {
	err := keyring.Delete(ServiceName, KeyName)
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w in keychain", ErrKeyNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete from keychain: %w", err)
	}
	return nil
}

// IsAvailable probes the keychain with a throwaway entry
func (k *darwinKeyring) IsAvailable() bool {
	probe := "__countdown_probe__"
	if err := keyring.Set(ServiceName, probe, "probe"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, probe)
	return true
}
