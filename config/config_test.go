package config

import (
	"testing"
	"time"

	"skillsharehub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_URL", "PORT", "JWT_SECRET", "JWT_EXPIRY", "CORS_ALLOWED_ORIGINS",
		"CONTEXT_TIMEOUT", "ANONYMOUS_ANNOTATIONS", "AUTO_MIGRATE", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := fromEnv("development")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Contains(t, cfg.DBUrl, "skillsharehub")
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Second, cfg.ContextTimeout)
	assert.Equal(t, domain.AnonymousAnnotationsFalse, cfg.AnonymousAnnotations)
	assert.True(t, cfg.AutoMigrate)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("CONTEXT_TIMEOUT", "250ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("ANONYMOUS_ANNOTATIONS", "OMIT")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg, err := fromEnv("production")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 250*time.Millisecond, cfg.ContextTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, domain.AnonymousAnnotationsOmit, cfg.AnonymousAnnotations)
	assert.False(t, cfg.AutoMigrate)
	assert.True(t, cfg.IsProduction())
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		vars    map[string]string
		wantErr string
	}{
		{name: "production needs secret", env: "production", wantErr: "JWT_SECRET is required"},
		{name: "bad expiry", env: "development", vars: map[string]string{"JWT_EXPIRY": "soon"}, wantErr: "JWT_EXPIRY"},
		{name: "non-positive timeout", env: "development", vars: map[string]string{"CONTEXT_TIMEOUT": "0s"}, wantErr: "CONTEXT_TIMEOUT must be positive"},
		{name: "unknown annotation mode", env: "development", vars: map[string]string{"ANONYMOUS_ANNOTATIONS": "null"}, wantErr: "ANONYMOUS_ANNOTATIONS"},
		{name: "bad auto migrate", env: "development", vars: map[string]string{"AUTO_MIGRATE": "maybe"}, wantErr: "AUTO_MIGRATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.vars {
				t.Setenv(k, v)
			}
			_, err := fromEnv(tt.env)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
