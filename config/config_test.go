package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("FLOWSYNC_TEST_INT", "42")
	t.Setenv("FLOWSYNC_TEST_BAD_INT", "forty-two")
	t.Setenv("FLOWSYNC_TEST_DURATION", "1500ms")
	t.Setenv("FLOWSYNC_TEST_SLICE", " a, ,b ,c")

	assert.Equal(t, 42, GetEnvAsInt("FLOWSYNC_TEST_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("FLOWSYNC_TEST_BAD_INT", 1))
	assert.Equal(t, int64(42), GetEnvAsInt64("FLOWSYNC_TEST_INT", 0))
	assert.Equal(t, 1500*time.Millisecond, GetEnvAsDuration("FLOWSYNC_TEST_DURATION", time.Second))
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvAsSlice("FLOWSYNC_TEST_SLICE", nil))
	assert.Equal(t, "fallback", GetEnvAsString("FLOWSYNC_TEST_MISSING", "fallback"))
	assert.Equal(t, []string{"x"}, GetEnvAsSlice("FLOWSYNC_TEST_MISSING", []string{"x"}))
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "POSTGRES_URL", "DATABASE_URL", "DB_NAME", "DB_MAX_OPEN_CONNS", "MAX_BODY_BYTES", "JWT_SECRET", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "todo_app", cfg.DBName)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 30*time.Second, cfg.DBConnMaxIdleTime)
	assert.Equal(t, 5*time.Second, cfg.DBConnectTimeout)
	assert.Equal(t, int64(100<<20), cfg.MaxBodyBytes)
	assert.Equal(t, DefaultCORSOrigins, cfg.CORSOrigins)
	assert.False(t, cfg.AuthEnabled())
}

func TestDSNFromParts(t *testing.T) {
	cfg := Config{
		DBHost:           "db.internal",
		DBPort:           5433,
		DBUser:           "flow",
		DBPassword:       "s3cret",
		DBName:           "todo_app",
		DBSSLMode:        "require",
		DBConnectTimeout: 5 * time.Second,
	}

	dsn, err := cfg.DSN()
	require.NoError(t, err)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.internal:5433", u.Host)
	assert.Equal(t, "/todo_app", u.Path)
	pass, _ := u.User.Password()
	assert.Equal(t, "s3cret", pass)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
	assert.Equal(t, "5", u.Query().Get("connect_timeout"))
}

func TestDSNKeepsURLSettings(t *testing.T) {
	cfg := Config{
		DatabaseURL:      "postgres://u:p@host:5432/app?sslmode=disable",
		DBSSLMode:        "require",
		DBConnectTimeout: 5 * time.Second,
	}

	dsn, err := cfg.DSN()
	require.NoError(t, err)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "5", u.Query().Get("connect_timeout"))
}
