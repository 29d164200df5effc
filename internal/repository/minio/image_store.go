package minio

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/infrastructure"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// Имя поля формы, от которого образуются ключи объектов.
const fieldName = "image"

// ImageStore реализует хранилище изображений поверх MinIO.
type ImageStore struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewImageStore(mc *minio.Client, cfg *cfg.MinIOCfg) *ImageStore {
	return &ImageStore{
		mc:  mc,
		cfg: cfg,
	}
}

// Store загружает изображение в бакет и возвращает ключ объекта.
func (s *ImageStore) Store(ctx context.Context, image *domain.Image) (*domain.ImageRef, error) {
	ext, err := infrastructure.ExtensionFromMIME(image.MimeType)
	if err != nil {
		return nil, err
	}

	objKey := fmt.Sprintf("%s-%d-%s.%s", fieldName, time.Now().UnixMilli(), uuid.NewString(), ext)

	info, err := s.mc.PutObject(ctx, s.cfg.BucketName, objKey, bytes.NewReader(image.Data), image.Size,
		minio.PutObjectOptions{ContentType: image.MimeType})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &domain.ImageRef{Key: info.Key}, nil
}

// Remove удаляет объект из бакета по указанному ключу.
func (s *ImageStore) Remove(ctx context.Context, ref *domain.ImageRef) error {
	if err := s.mc.RemoveObject(ctx, s.cfg.BucketName, ref.Key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Resolve строит внешний URL объекта. Наличие объекта не проверяется.
func (s *ImageStore) Resolve(ref *domain.ImageRef) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.PublicURL, "/"), s.cfg.BucketName, ref.Key)
}

// Exists проверяет наличие объекта в бакете.
func (s *ImageStore) Exists(ctx context.Context, ref *domain.ImageRef) (bool, error) {
	_, err := s.mc.StatObject(ctx, s.cfg.BucketName, ref.Key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return true, nil
}
