package agent

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadGroupRoundTrip(t *testing.T) {
	creator, err := New("alice")
	require.NoError(t, err)
	defer creator.Zeroize()

	bob, err := New("bob")
	require.NoError(t, err)
	defer bob.Zeroize()

	group := NewGroup(creator, "book-club", bob.Public())

	path := filepath.Join(t.TempDir(), "group.json")
	require.NoError(t, SaveGroup(group, path))

	loaded, err := LoadGroup(path)
	require.NoError(t, err)

	assert.Equal(t, group.Name, loaded.Name)
	assert.Equal(t, group.Key, loaded.Key)
	require.Len(t, loaded.Members, 1)
	assert.Equal(t, bob.Public().Fingerprint(), loaded.Members[0].Fingerprint())
}
