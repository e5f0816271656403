package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	// 1. 写一个最小配置文件
	content := `
server:
  address: ":9090"
ollama:
  model: "llama3"
  enabled: true
mysql:
  host: "db.internal"
  database: "resumes"
logger:
  level: "debug"
  format: "pretty"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// 2. 加载并验证显式配置
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "llama3", cfg.Ollama.Model)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
	assert.Equal(t, "debug", cfg.Logger.Level)

	// 3. 未配置的字段被默认值补齐
	assert.Equal(t, 120, cfg.Ollama.TimeoutSeconds)
	assert.Equal(t, 10, cfg.Matcher.DefaultTopK)
	assert.Equal(t, "2.0", cfg.ActiveParserVersion)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mysql:\n  password: \"from_file\"\n"), 0644))

	t.Setenv("MYSQL_PASSWORD", "from_env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.MySQL.Password)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := createDefaultConfig()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "phi4:latest", cfg.Ollama.Model)
	assert.NotEmpty(t, cfg.RabbitMQ.RawTextQueue)
	assert.NotEmpty(t, cfg.MinIO.RawTextBucket)
}
