package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the scraper's secrets in the OS keychain.
	KeyringService = "jobscrape"

	EnvUsername = "LINKEDIN_USERNAME"
	EnvPassword = "LINKEDIN_PASSWORD"
)

var ErrNoCredentials = errors.New("credentials not found (set LINKEDIN_PASSWORD or store it in the keychain)")

// Credentials for the job site login form.
type Credentials struct {
	Username string
	Password string
}

// String never prints the password.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Username:%q}", c.Username)
}

// Load resolves the login: env first, keychain second. username is the
// configured value and is used when LINKEDIN_USERNAME is unset.
func Load(username string) (Credentials, error) {
	return load(username, os.Getenv)
}

func load(username string, getenv func(string) string) (Credentials, error) {
	c := Credentials{Username: strings.TrimSpace(username)}
	if u := strings.TrimSpace(getenv(EnvUsername)); u != "" {
		c.Username = u
	}
	if c.Username == "" {
		return Credentials{}, fmt.Errorf("%w: username is empty", ErrNoCredentials)
	}

	// 1) Env
	if pw := getenv(EnvPassword); strings.TrimSpace(pw) != "" {
		c.Password = pw
		return c, nil
	}

	// 2) Keyring
	pw, err := keyring.Get(KeyringService, c.Username)
	if err == nil && strings.TrimSpace(pw) != "" {
		c.Password = pw
		return c, nil
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return Credentials{}, fmt.Errorf("%w: keyring: %v", ErrNoCredentials, err)
	}
	return Credentials{}, ErrNoCredentials
}

func SetPassword(username string, password string) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, username, password)
}

func DeletePassword(username string) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, username)
}
