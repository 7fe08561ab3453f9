package crypto

import "errors"

// Keyring stores the journal encryption password
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "countdown"
	KeyName     = "journal-encryption-key"

	// EnvKey holds the password where no system keyring exists
	EnvKey = "COUNTDOWN_DB_KEY"
)

var (
	ErrKeyNotFound   = errors.New("journal key not found")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// NewKeyring returns the best available keyring implementation
func NewKeyring() Keyring {
	return newPlatformKeyring()
}
