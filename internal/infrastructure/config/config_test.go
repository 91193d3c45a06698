package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverMongo, cfg.Storage.Driver)
	assert.Equal(t, 5*time.Second, cfg.Storage.Timeout)
	assert.Equal(t, uint32(5), cfg.Storage.Breaker.Failures)
	assert.Equal(t, 30*time.Second, cfg.Storage.Breaker.OpenTimeout)
	assert.Equal(t, "books", cfg.Mongo.Collection)
	assert.Equal(t, "catalog.events", cfg.Events.Exchange)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BOOKCATALOG_STORAGE_DRIVER", "memory")
	t.Setenv("BOOKCATALOG_STORAGE_TIMEOUT", "250ms")
	t.Setenv("BOOKCATALOG_MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("BOOKCATALOG_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 250*time.Millisecond, cfg.Storage.Timeout)
	assert.Equal(t, "mongodb://mongo:27017", cfg.Mongo.URI)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("未知存储驱动", func(t *testing.T) {
		t.Setenv("BOOKCATALOG_STORAGE_DRIVER", "postgres")
		_, err := Load()
		assert.ErrorContains(t, err, "不支持的存储驱动")
	})

	t.Run("生产环境使用默认密钥", func(t *testing.T) {
		t.Setenv("BOOKCATALOG_SERVER_MODE", "release")
		_, err := Load()
		assert.ErrorContains(t, err, "JWT密钥")
	})

	t.Run("端口越界", func(t *testing.T) {
		t.Setenv("BOOKCATALOG_SERVER_PORT", "70000")
		_, err := Load()
		assert.ErrorContains(t, err, "无效的服务端口")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "127.0.0.1", Port: 3306, User: "root", Password: "pw",
		DBName: "bookcatalog", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:pw@tcp(127.0.0.1:3306)/bookcatalog?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN())
}
