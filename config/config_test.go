package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, "shopmind", cfg.System.Appid)
	assert.Equal(t, 8700, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "memory", cfg.Semantic.Type)
}

func TestLoadConfigReadsYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shopmind.yml")
	content := `
system:
  appid: shopmind
  location: UTC
web:
  host: 127.0.0.1
  port: 9000
database:
  type: postgres
  host: db.internal
  name: shop
semantic:
  type: qdrant
  url: http://qdrant:6333
  collection: catalog
ai:
  chat_model: gpt-4o
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := LoadConfig(path)
	assert.Equal(t, 9000, cfg.Web.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "qdrant", cfg.Semantic.Type)
	assert.Equal(t, "catalog", cfg.Semantic.Collection)
	assert.Equal(t, "gpt-4o", cfg.AI.ChatModel)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SHOPMIND_DB_HOST", "env-db")
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg := LoadConfig("")
	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, "sk-env", cfg.AI.APIKey)
}
