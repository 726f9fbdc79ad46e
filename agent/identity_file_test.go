package agent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadIdentityRoundTrip(t *testing.T) {
	original, err := New("alice")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "alice.json")
	require.NoError(t, SaveIdentity(original, path))

	loaded, err := LoadIdentity(path)
	require.NoError(t, err)

	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.SigningSeed, loaded.SigningSeed)
	assert.Equal(t, original.SigningKey, loaded.SigningKey)
	assert.Equal(t, original.ExchangeSecret, loaded.ExchangeSecret)
	assert.Equal(t, original.ExchangeKey, loaded.ExchangeKey)
}

func TestLoadIdentityRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"x","signing_seed":"zz","exchange_secret":"zz"}`), 0o600))

	_, err := LoadIdentity(path)
	assert.Error(t, err)
}
