package disk

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
)

var keyPattern = regexp.MustCompile(`^image-\d+-[0-9a-f-]+\.png$`)

func newTestStore(t *testing.T) (*ImageStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewImageStore(&cfg.StorageCfg{
		Mode:         cfg.StorageModeDisk,
		UploadDir:    dir,
		PublicPrefix: "/uploads",
	}), dir
}

func pngImage(data []byte) *domain.Image {
	return domain.NewImage(data, "image/png", int64(len(data)), "photo.png")
}

func TestStore_WritesFileAndReturnsKey(t *testing.T) {
	store, dir := newTestStore(t)
	data := []byte{0x89, 0x50, 0x4e, 0x47}

	ref, err := store.Store(context.Background(), pngImage(data))
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Regexp(t, keyPattern, ref.Key)
	assert.False(t, ref.IsInline())

	written, err := os.ReadFile(filepath.Join(dir, ref.Key))
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestStore_DistinctKeysPerCall(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Store(context.Background(), pngImage([]byte("a")))
	require.NoError(t, err)
	second, err := store.Store(context.Background(), pngImage([]byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
}

func TestStore_InvalidMIMERejectedBeforeWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")
	store := NewImageStore(&cfg.StorageCfg{
		Mode:         cfg.StorageModeDisk,
		UploadDir:    dir,
		PublicPrefix: "/uploads",
	})

	image := domain.NewImage([]byte("data"), "application/pdf", 4, "doc.pdf")
	_, err := store.Store(context.Background(), image)
	assert.ErrorIs(t, err, e.ErrInvalidFileType)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "upload dir must not be created for rejected files")
}

func TestRemove_DeletesFile(t *testing.T) {
	store, dir := newTestStore(t)

	ref, err := store.Store(context.Background(), pngImage([]byte("data")))
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), ref))

	_, statErr := os.Stat(filepath.Join(dir, ref.Key))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExists(t *testing.T) {
	store, _ := newTestStore(t)

	ref, err := store.Store(context.Background(), pngImage([]byte("data")))
	require.NoError(t, err)

	exists, err := store.Exists(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(context.Background(), &domain.ImageRef{Key: "image-0-missing.png"})
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestResolve_JoinsPublicPrefix(t *testing.T) {
	store, _ := newTestStore(t)

	url := store.Resolve(&domain.ImageRef{Key: "image-1-abc.png"})
	assert.Equal(t, "/uploads/image-1-abc.png", url)
}
