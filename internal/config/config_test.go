package config

import (
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setNextcloudEnv(t *testing.T) {
	t.Setenv("NEXTCLOUD_HOST", "http://nextcloud-nginx")
	t.Setenv("NEXTCLOUD_USER", "moodle")
	t.Setenv("NEXTCLOUD_PASSWORD", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setNextcloudEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.Nextcloud.Timeout)
	assert.Equal(t, "CarpetaDelCurs", cfg.Nextcloud.RootFolder)
	assert.Equal(t, "http://nextcloud-nginx", cfg.Nextcloud.URL, "public URL falls back to host")
	assert.Equal(t, "http://nextcloud-nginx", cfg.Nextcloud.Domain)
	assert.False(t, cfg.Nextcloud.AutoCreate)
	assert.Equal(t, uint(3), cfg.ProvisionAttempts)

	creds := cfg.Credentials()
	assert.Equal(t, "moodle", creds.User)
	assert.Equal(t, "secret", creds.Password)
}

func TestLoad_Overrides(t *testing.T) {
	setNextcloudEnv(t)
	t.Setenv("NEXTCLOUD_URL", "https://cloud.example.org")
	t.Setenv("NEXTCLOUD_TIMEOUT", "30")
	t.Setenv("NEXTCLOUD_AUTOCREATE", "true")
	t.Setenv("NEXTCLOUD_RESTRICT_DOMAIN", "1")
	t.Setenv("NEXTCLOUD_DOMAIN", "cloud.example.org")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://cloud.example.org", cfg.Nextcloud.URL)
	assert.Equal(t, 30*time.Second, cfg.Nextcloud.Timeout)
	assert.True(t, cfg.Nextcloud.AutoCreate)
	assert.True(t, cfg.Nextcloud.RestrictDomain)
	assert.Equal(t, "cloud.example.org", cfg.Nextcloud.Domain)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := &Config{
		AppEnv:    "production",
		JWTSecret: "change_me_in_production",
		Nextcloud: Nextcloud{Host: "nextcloud-nginx", RestrictDomain: true},
	}

	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 7)
	assert.Contains(t, err.Error(), "NEXTCLOUD_HOST \"nextcloud-nginx\" is not an absolute URL")
	assert.Contains(t, err.Error(), "NEXTCLOUD_PASSWORD is required")
	assert.Contains(t, err.Error(), "JWT_SECRET must be set in production")
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{
		ProvisionAttempts: 1,
		Nextcloud: Nextcloud{
			Host:     "https://cloud.example.org",
			User:     "moodle",
			Password: "secret",
			Timeout:  time.Second,
		},
	}
	assert.NoError(t, cfg.Validate())
}
