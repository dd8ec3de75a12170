package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService is the OS keychain service secrets are stored under.
const KeyringService = "job-finder"

// ErrNotConfigured is returned when no source holds the secret.
var ErrNotConfigured = errors.New("secret is not configured")

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or flags.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
	// KeyringAccount is looked up in the OS keychain when neither File nor
	// Value is set.
	KeyringAccount string
}

// Load returns the resolved secret value from the provided source. File wins
// over Value, and the keychain is only consulted when both are empty. The
// returned secret is always trimmed.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	account := strings.TrimSpace(src.KeyringAccount)
	if account == "" {
		return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
	}

	secret, err := keyring.Get(KeyringService, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s from keyring: %w", name, err)
	}

	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
	}
	return secret, nil
}

// Store saves a secret in the OS keychain under account.
func Store(account, secret string) error {
	account = strings.TrimSpace(account)
	secret = strings.TrimSpace(secret)
	if account == "" || secret == "" {
		return errors.New("account and secret are required")
	}
	if err := keyring.Set(KeyringService, account, secret); err != nil {
		return fmt.Errorf("storing %s in keyring: %w", account, err)
	}
	return nil
}
