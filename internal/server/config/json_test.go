package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"database_dsn":                   "postgres://u:p@host:5432/auth",
		"secret_key":                     "my_secret_key",
		"token_issuer":                   "issuer-x",
		"token_audience":                 "audience-y",
		"access_token_validity_duration": "30m",
		"password_salt_size":             24,
		"password_hash_size":             48,
		"password_iterations":            50000,
		"require_email_verification":     false,
		"max_failed_attempts":            3,
		"lockout_duration":               "5m",
		"s3_root_user":                   "user",
		"s3_root_password":               "password",
		"s3_bucket":                      "bucket",
		"s3_region":                      "region",
		"s3_base_endpoint":               "base_endpoint",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "postgres://u:p@host:5432/auth", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, "issuer-x", cfg.TokenIssuer)
		assert.Equal(t, "audience-y", cfg.TokenAudience)
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 24, cfg.PasswordSaltSize)
		assert.Equal(t, 48, cfg.PasswordHashSize)
		assert.Equal(t, 50000, cfg.PasswordIterations)
		assert.False(t, cfg.RequireEmailVerification)
		assert.Equal(t, 3, cfg.MaxFailedAttempts)
		assert.Equal(t, 5*time.Minute, cfg.LockoutDuration)
		assert.Equal(t, "user", cfg.S3RootUser)
		assert.Equal(t, "password", cfg.S3RootPassword)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			DatabaseDSN:                 "keep-dsn",
			SecretKey:                   "keep-key",
			TokenIssuer:                 "keep-issuer",
			TokenAudience:               "keep-audience",
			AccessTokenValidityDuration: 2 * time.Minute,
			PasswordIterations:          1234,
		}
		parseJson(cfg)

		assert.Equal(t, "keep-dsn", cfg.DatabaseDSN)
		assert.Equal(t, "keep-key", cfg.SecretKey)
		assert.Equal(t, "keep-issuer", cfg.TokenIssuer)
		assert.Equal(t, "keep-audience", cfg.TokenAudience)
		assert.Equal(t, 2*time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 1234, cfg.PasswordIterations)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}
