package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/finance")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 60*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, "", cfg.RoutePrefix())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9925")
	t.Setenv("JWT_ALGORITHM", "hs512")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://financemirror.icu, https://www.financemirror.icu,")
	t.Setenv("USE_API_PREFIX", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://financemirror.icu", "https://www.financemirror.icu"}, cfg.CORSOrigins)
	assert.Equal(t, APIPrefix, cfg.RoutePrefix())
}

func TestLoad_InvalidTTLFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TTL_MINUTES", "-5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Minute, cfg.JWTTTL)
}

func TestLoad_DBMaxConns(t *testing.T) {
	tests := []struct {
		raw  string
		want int32
	}{
		{"25", 25},
		{"2147483647", 2147483647},
		{"2147483648", 10},
		{"4294967306", 10},
		{"0", 10},
		{"many", 10},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			setRequired(t)
			t.Setenv("DB_MAX_CONNS", tt.raw)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.DBMaxConns)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing database url", env: map[string]string{"DATABASE_URL": "", "JWT_SECRET": "s"}},
		{name: "missing secret", env: map[string]string{"DATABASE_URL": "postgres://x", "JWT_SECRET": ""}},
		{name: "asymmetric algorithm", env: map[string]string{"DATABASE_URL": "postgres://x", "JWT_SECRET": "s", "JWT_ALGORITHM": "RS256"}},
		{name: "none algorithm", env: map[string]string{"DATABASE_URL": "postgres://x", "JWT_SECRET": "s", "JWT_ALGORITHM": "none"}},
		{name: "unknown storage", env: map[string]string{"JWT_SECRET": "s", "STORAGE": "bolt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MemoryStorageNeedsNoDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
}
