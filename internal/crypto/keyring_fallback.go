//go:build !darwin

package crypto

import (
	"fmt"
	"os"
)

// envKeyring keeps the key in the COUNTDOWN_DB_KEY environment variable
type envKeyring struct{}

func newPlatformKeyring() Keyring {
	return &envKeyring{}
}

func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrKeyNotFound, EnvKey)
	}
	return key, nil
}

// SetKey exports the key for this process only. Callers should tell the
// user to set the variable for later runs.
func (k *envKeyring) SetKey(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if err := os.Setenv(EnvKey, password); err != nil {
		return fmt.Errorf("failed to set %s: %w", EnvKey, err)
	}
	return nil
}

func (k *envKeyring) DeleteKey() error {
	if err := os.Unsetenv(EnvKey); err != nil {
		return fmt.Errorf("failed to unset %s: %w", EnvKey, err)
	}
	return nil
}

func (k *envKeyring) IsAvailable() bool {
	return os.Getenv(EnvKey) != ""
}
