package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvInt(t *testing.T) {
	t.Setenv("BOOKLINE_TEST_INT", "42")
	assert.Equal(t, 42, GetEnvInt("BOOKLINE_TEST_INT", 7))

	t.Setenv("BOOKLINE_TEST_INT", "not-a-number")
	assert.Equal(t, 7, GetEnvInt("BOOKLINE_TEST_INT", 7))

	assert.Equal(t, 7, GetEnvInt("BOOKLINE_TEST_INT_UNSET", 7))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REMINDER_CRON", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0 * * * *", cfg.ReminderCron)
}
