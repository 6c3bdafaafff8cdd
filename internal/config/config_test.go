package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/gis")
		for _, k := range []string{"DB_SSL_INSECURE", "DB_MAX_OPEN_CONNS", "DB_CONN_MAX_LIFETIME", "DB_AUTO_MIGRATE", "AUTH_JWT_SECRET"} {
			t.Setenv(k, "")
		}
		for _, k := range []string{"PORT", "ROUTES_TABLE"} {
			t.Setenv(k, "")
			require.NoError(t, os.Unsetenv(k))
		}

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
		assert.Equal(t, "routes", cfg.RoutesTable)
		assert.True(t, cfg.SSLInsecure)
		assert.False(t, cfg.AutoMigrate)
		assert.Equal(t, 10, cfg.MaxOpenConns)
		assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
		assert.Empty(t, cfg.JWTSecret)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://u:p@db/gis")
		t.Setenv("PORT", "3000")
		t.Setenv("DB_SSL_INSECURE", "false")
		t.Setenv("DB_MAX_OPEN_CONNS", "25")
		t.Setenv("DB_CONN_MAX_LIFETIME", "5m")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "3000", cfg.Port)
		assert.False(t, cfg.SSLInsecure)
		assert.Equal(t, 25, cfg.MaxOpenConns)
		assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	})

	t.Run("database url required", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		_, err := FromEnv()
		assert.ErrorIs(t, err, ErrMissingDatabaseURL)
	})

	t.Run("bad values rejected", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://u:p@db/gis")
		t.Setenv("PORT", "eighty")

		_, err := FromEnv()
		assert.Error(t, err)

		t.Setenv("PORT", "8080")
		t.Setenv("DB_MAX_IDLE_CONNS", "many")

		_, err = FromEnv()
		assert.Error(t, err)
	})
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad(t *testing.T) {
	t.Run("without .env file", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("DATABASE_URL", "postgres://u:p@db/gis")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Error(t, cfg.DotEnvErr)
		assert.Equal(t, "postgres://u:p@db/gis", cfg.DatabaseURL)
	})

	t.Run("with .env file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_URL=postgres://u:p@dotenv/gis\n"), 0o600))
		chdir(t, dir)
		t.Setenv("DATABASE_URL", "")
		require.NoError(t, os.Unsetenv("DATABASE_URL"))

		cfg, err := Load()
		require.NoError(t, err)
		assert.NoError(t, cfg.DotEnvErr)
		assert.Equal(t, "postgres://u:p@dotenv/gis", cfg.DatabaseURL)
	})
}

func TestConnConfig(t *testing.T) {
	t.Run("insecure skips verification", func(t *testing.T) {
		cfg := &Config{DatabaseURL: "postgres://u:p@db.example.com:5432/gis?sslmode=verify-full", SSLInsecure: true}

		connCfg, err := ConnConfig(cfg)
		require.NoError(t, err)
		require.NotNil(t, connCfg.TLSConfig)
		assert.True(t, connCfg.TLSConfig.InsecureSkipVerify)
		assert.Nil(t, connCfg.TLSConfig.VerifyPeerCertificate)
	})

	t.Run("secure keeps verification", func(t *testing.T) {
		cfg := &Config{DatabaseURL: "postgres://u:p@db.example.com:5432/gis?sslmode=verify-full"}

		connCfg, err := ConnConfig(cfg)
		require.NoError(t, err)
		require.NotNil(t, connCfg.TLSConfig)
		assert.False(t, connCfg.TLSConfig.InsecureSkipVerify)
		assert.Equal(t, "db.example.com", connCfg.TLSConfig.ServerName)
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := ConnConfig(&Config{DatabaseURL: "postgres://u:p@db:notaport/gis"})
		assert.Error(t, err)
	})
}
