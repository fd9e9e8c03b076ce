package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "openai", cfg.Embedder.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, "localhost", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, DefaultCollection, cfg.Qdrant.Collection)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Catalog.ManageGlossaries)
}

func TestConfigDir(t *testing.T) {
	result := ConfigDir("/home/user/project")
	assert.Equal(t, "/home/user/project/.catalog", result)
}

func TestConfigFilePath(t *testing.T) {
	result := ConfigFilePath("/home/user/project")
	assert.Equal(t, "/home/user/project/.catalog/config.yaml", result)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog init")
}

func TestWriteDefaultThenLoad(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("CATALOG_LOG_LEVEL", "")
	t.Setenv("CATALOG_ACTOR", "")
	dir := t.TempDir()

	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".catalog", "catalog.db"), cfg.SQLite.Path)
	assert.Equal(t, "urn:li:corpuser:datahub", cfg.Catalog.Actor)

	err = WriteDefault(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("CATALOG_LOG_LEVEL", "DEBUG")
	t.Setenv("CATALOG_ACTOR", "urn:li:corpuser:jdoe")
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.Embedder.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "urn:li:corpuser:jdoe", cfg.Catalog.Actor)
}

func TestLoad_FileKeyWinsOverEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	dir := t.TempDir()

	cfg := Default()
	cfg.Embedder.APIKey = "sk-file"
	require.NoError(t, Write(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "sk-file", loaded.Embedder.APIKey)
}

func TestLoad_EnvFile(t *testing.T) {
	// Setenv registers a restore; unset so godotenv can fill the value.
	t.Setenv("QDRANT_API_KEY", "")
	require.NoError(t, os.Unsetenv("QDRANT_API_KEY"))
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))
	require.NoError(t, os.WriteFile(EnvFilePath(dir), []byte("QDRANT_API_KEY=qd-dotenv\n"), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "qd-dotenv", cfg.Qdrant.APIKey)
}

func TestLoad_AbsoluteSQLitePathKept(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.SQLite.Path = "/var/lib/catalog/catalog.db"
	require.NoError(t, Write(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/catalog/catalog.db", loaded.SQLite.Path)
}
