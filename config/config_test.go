package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5001, cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "chatapp", cfg.MongoDB)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.True(t, cfg.WSRequireAuth)
	assert.Empty(t, cfg.RedisAddr, "redis is opt-in")
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-secret")
	t.Setenv("PORT", "6001")
	t.Setenv("NODE_ID", "7")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("WS_REQUIRE_AUTH", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6001, cfg.Port)
	assert.Equal(t, int64(7), cfg.NodeID)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.False(t, cfg.WSRequireAuth)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
