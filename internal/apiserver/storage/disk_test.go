package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gestimo/gestimo/internal/common/config"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	s, err := NewDiskStore(&config.StorageConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return s
}

func TestDiskStore_SaveOpenRemove(t *testing.T) {
	s := newTestStore(t)

	key := s.NewKey("contract.pdf")
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	n, err := s.Save(key, strings.NewReader("hello"))
	assert.NoError(t, err)
	assert.Equal(t, int64(5), n)

	r, err := s.Open(key)
	assert.NoError(t, err)
	data, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.NoError(t, r.Close())
	assert.Equal(t, "hello", string(data))

	path, err := s.Path(key)
	assert.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)

	assert.NoError(t, s.Remove(key))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// removing again is fine
	assert.NoError(t, s.Remove(key))
}

func TestDiskStore_RejectsEscapingKeys(t *testing.T) {
	s := newTestStore(t)

	for _, key := range []string{"", "../evil", "a/b", `a\b`, "..", "x..y/../z"} {
		_, err := s.Save(key, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestDiskStore_KeysAreUnique(t *testing.T) {
	s := newTestStore(t)
	k1 := s.NewKey("a.png")
	k2 := s.NewKey("a.png")
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, filepath.Ext(k1), filepath.Ext(k2))
}
