package cam

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/rythmn1111/final-cam/domain/errors"
	"github.com/rythmn1111/final-cam/lib/random"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*ArtifactStore, afero.Fs) {
	assert := require.New(t)
	fs := afero.NewMemMapFs()
	store, err := NewArtifactStore(slog.Default(), fs, "/var/lib/cam/photos", "latest.webp")
	assert.NoError(err)
	return store, fs
}

func TestArtifactStoreWriteAndList(t *testing.T) {
	assert := require.New(t)
	store, fs := newTestStore(t)

	first := random.ByteSlice(4 * 1024)
	a1, err := store.WriteArtifact("20240101_120000.webp", first)
	assert.NoError(err)
	assert.Equal("20240101_120000.webp", a1.Name)
	assert.Equal("/img/20240101_120000.webp", a1.URL)

	// latest pointer carries the same content
	latest, err := afero.ReadFile(fs, filepath.Join(store.Dir(), store.LatestName()))
	assert.NoError(err)
	assert.Equal(first, latest)

	second := random.ByteSlice(4 * 1024)
	// mem fs mtime resolution is coarse - force distinct stamps
	time.Sleep(10 * time.Millisecond)
	_, err = store.WriteArtifact("20240101_120005.webp", second)
	assert.NoError(err)

	artifacts, err := store.List()
	assert.NoError(err)

	// every written artifact present, newest first, latest pointer
	// itself is part of the listing as a plain file
	names := []string{}
	for _, a := range artifacts {
		names = append(names, a.Name)
	}
	assert.Contains(names, "20240101_120000.webp")
	assert.Contains(names, "20240101_120005.webp")
	for i := 1; i < len(artifacts); i++ {
		assert.GreaterOrEqual(artifacts[i-1].MTimeMs, artifacts[i].MTimeMs)
	}

	latestContent, err := afero.ReadFile(fs, filepath.Join(store.Dir(), store.LatestName()))
	assert.NoError(err)
	assert.Equal(second, latestContent)
}

func TestArtifactStoreListSkipsForeignFiles(t *testing.T) {
	assert := require.New(t)
	store, fs := newTestStore(t)

	_, err := store.WriteArtifact("20240101_120000.webp", random.ByteSlice(1024))
	assert.NoError(err)
	// hidden temp leftovers and non-image files stay out of the gallery
	assert.NoError(afero.WriteFile(fs, filepath.Join(store.Dir(), ".01ABCDEF.tmp"), []byte("x"), 0o644))
	assert.NoError(afero.WriteFile(fs, filepath.Join(store.Dir(), "wallet.json"), []byte("{}"), 0o644))
	assert.NoError(afero.WriteFile(fs, filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0o644))

	artifacts, err := store.List()
	assert.NoError(err)
	for _, a := range artifacts {
		assert.True(IsArtifactName(a.Name), a.Name)
		assert.NotEqual(".", a.Name[:1])
	}
}

func TestArtifactStoreRejectsUnsecureNames(t *testing.T) {
	assert := require.New(t)
	store, _ := newTestStore(t)

	for _, name := range []string{"../escape.webp", "a/b.webp", ".hidden.webp", "plain.txt"} {
		_, err := store.WriteArtifact(name, []byte("x"))
		assert.Error(err, name)
	}

	_, err := store.Open("../../etc/passwd")
	assert.ErrorIs(err, errors.ErrUnsecureFileName)
	_, err = store.Open("no-such.webp")
	assert.ErrorIs(err, errors.ErrArtifactNotFound)
}

func TestArtifactStoreLatest(t *testing.T) {
	assert := require.New(t)
	store, _ := newTestStore(t)

	_, err := store.LatestPath()
	assert.ErrorIs(err, errors.ErrNoLatestArtifact)
	_, err = store.Latest()
	assert.ErrorIs(err, errors.ErrNoLatestArtifact)

	_, err = store.WriteArtifact("20240101_120000.webp", random.ByteSliceN(512))
	assert.NoError(err)

	path, err := store.LatestPath()
	assert.NoError(err)
	assert.Equal(filepath.Join(store.Dir(), store.LatestName()), path)

	fi, err := store.Latest()
	assert.NoError(err)
	assert.EqualValues(512, fi.Size())
}
