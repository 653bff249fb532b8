package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 50, cfg.Chat.HistoryLimit)
	assert.Equal(t, 1000, cfg.Chat.MaxMessageLength)
	assert.True(t, cfg.Chat.PurgeOnCollegeChange)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxResumeBytes)
	assert.Equal(t, 15*time.Minute, cfg.Storage.SignedURLTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 1, cfg.Jobs.CleanupWorkers)
	assert.Equal(t, 5, cfg.Jobs.CleanupMaxAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_DRIVER", " PGX ")
	v.Set("CHAT_PURGE_ON_COLLEGE_CHANGE", false)
	v.Set("CHAT_HISTORY_LIMIT", 0)
	v.Set("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	v.Set("JWT_EXPIRATION", "not-a-duration")

	cfg := fromViper(v)

	assert.Equal(t, DriverPgx, cfg.Database.Driver)
	assert.False(t, cfg.Chat.PurgeOnCollegeChange)
	assert.Equal(t, 50, cfg.Chat.HistoryLimit)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
}

func TestUnknownDriverFallsBackToPostgres(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_DRIVER", "sqlite3")

	assert.Equal(t, DriverPostgres, fromViper(v).Database.Driver)
}

func TestValidateProductionSecrets(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ENV", EnvProduction)

	err := fromViper(v).Validate()
	assert.ErrorContains(t, err, "JWT_SECRET")
	assert.ErrorContains(t, err, "STORAGE_SIGNED_URL_SECRET")

	v.Set("JWT_SECRET", strings.Repeat("j", 32))
	v.Set("STORAGE_SIGNED_URL_SECRET", strings.Repeat("s", 40))
	assert.NoError(t, fromViper(v).Validate())
}

func TestValidateRejectsBadBasics(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("PORT", 0)
	v.Set("API_PREFIX", "api")

	err := fromViper(v).Validate()
	assert.ErrorContains(t, err, "PORT 0 out of range")
	assert.ErrorContains(t, err, "API_PREFIX")
}
