package config

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("Helping Hands e.V.")
	assert.Equal(t, "Helping Hands e.V.", cfg.Organization.Name)
	assert.Equal(t, "books", cfg.Books.Dir)
	assert.True(t, cfg.Git.AutoCommit)

	id, err := cfg.OrganizationID()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	cfg := Default("Helping Hands e.V.")
	cfg.Logging.Level = "debug"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestOrganizationID_Invalid(t *testing.T) {
	cfg := Default("x")
	cfg.Organization.ID = "not-a-uuid"
	_, err := cfg.OrganizationID()
	assert.Error(t, err)
}
