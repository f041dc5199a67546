package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_EnvWins(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, SetPassword("me@example.com", "from-keychain"))

	c, err := load("me@example.com", envOf(map[string]string{EnvPassword: "from-env"}))
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", c.Username)
	assert.Equal(t, "from-env", c.Password)
}

func TestLoad_KeychainFallback(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, SetPassword("me@example.com", "s3cret"))

	c, err := load("me@example.com", envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", c.Password)
}

func TestLoad_EnvUsernameOverridesConfig(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, SetPassword("env@example.com", "pw"))

	c, err := load("cfg@example.com", envOf(map[string]string{EnvUsername: "env@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, "env@example.com", c.Username)
	assert.Equal(t, "pw", c.Password)
}

func TestLoad_Missing(t *testing.T) {
	keyring.MockInit()

	_, err := load("nobody@example.com", envOf(nil))
	assert.ErrorIs(t, err, ErrNoCredentials)

	_, err = load("", envOf(nil))
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestDeletePassword(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, SetPassword("me@example.com", "pw"))
	require.NoError(t, DeletePassword("me@example.com"))

	_, err := load("me@example.com", envOf(nil))
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestSetPassword_Rejects(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, SetPassword("", "pw"))
	assert.Error(t, SetPassword("me", " "))
}

func TestCredentials_StringHidesPassword(t *testing.T) {
	c := Credentials{Username: "me", Password: "hunter2"}
	assert.NotContains(t, c.String(), "hunter2")
}
