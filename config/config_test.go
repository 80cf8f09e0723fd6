package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SUPPORT_PAGE_SIZE", "")
	t.Setenv("SMS_TIMEOUT_SECONDS", "")

	LoadConfig()

	assert.Equal(t, "3000", AppConfig.Port)
	assert.Equal(t, "postgres", AppConfig.DB.Driver)
	assert.Equal(t, 20, AppConfig.SupportPageSize)
	assert.Equal(t, "0 9 * * *", AppConfig.SupportDigestCron)
	assert.Equal(t, 10*time.Second, AppConfig.SMSTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", "file:support.db")
	t.Setenv("SUPPORT_PAGE_SIZE", "50")
	t.Setenv("SMS_TIMEOUT_SECONDS", "3")

	LoadConfig()

	assert.Equal(t, "sqlite", AppConfig.DB.Driver)
	assert.Equal(t, "file:support.db", AppConfig.DB.DSN)
	assert.Equal(t, 50, AppConfig.SupportPageSize)
	assert.Equal(t, 3*time.Second, AppConfig.SMSTimeout)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SUPPORT_PAGE_SIZE", "twenty")
	assert.Equal(t, 20, getEnvInt("SUPPORT_PAGE_SIZE", 20))
}
