package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("server:\n  dsn: host=db\n  redisAddr: redis:6379\n"), 0o600)
	assert.NoError(t, err)

	t.Setenv("PURSE_REDIS_ADDR", "cache:6380")

	config := DefaultConfig()
	err = config.Load(path)
	if assert.NoError(t, err) {
		assert.Equal(t, "host=db", config.Server.Dsn)
		assert.Equal(t, "cache:6380", config.Server.RedisAddr)
		assert.Equal(t, ":8000", config.Server.Listen)
	}
}

func TestConfigLoadMissingFile(t *testing.T) {
	config := DefaultConfig()
	err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, "localhost:11211", config.Server.MemcachedAddr)
}
