package inline

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
)

func TestStore_KeepsBytesInline(t *testing.T) {
	store := NewImageStore()
	data := []byte{0xff, 0xd8, 0xff, 0xe0}

	ref, err := store.Store(context.Background(), domain.NewImage(data, "image/jpeg", 4, "photo.jpg"))
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.True(t, ref.IsInline())
	assert.Empty(t, ref.Key)
	assert.Equal(t, data, ref.Data)
}

func TestStore_InvalidMIME(t *testing.T) {
	store := NewImageStore()

	image := domain.NewImage([]byte("text"), "text/plain", 4, "note.txt")
	_, err := store.Store(context.Background(), image)
	assert.ErrorIs(t, err, e.ErrInvalidFileType)
}

func TestResolve_Base64Roundtrip(t *testing.T) {
	store := NewImageStore()
	data := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}

	encoded := store.Resolve(&domain.ImageRef{Data: data})
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestRemove_NoOp(t *testing.T) {
	store := NewImageStore()
	assert.NoError(t, store.Remove(context.Background(), &domain.ImageRef{Data: []byte("x")}))
}

func TestExists(t *testing.T) {
	store := NewImageStore()

	exists, err := store.Exists(context.Background(), &domain.ImageRef{Data: []byte("x")})
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(context.Background(), &domain.ImageRef{})
	require.NoError(t, err)
	assert.False(t, exists)
}
