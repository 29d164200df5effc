package disk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/infrastructure"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
)

// Имя поля формы, от которого образуются имена файлов.
const fieldName = "image"

// ImageStore сохраняет изображения в каталоге на локальном диске.
// Имена файлов вида image-<unix millis>-<uuid>.<ext> уникальны с
// подавляющей вероятностью; проверка коллизий не выполняется.
type ImageStore struct {
	cfg     *cfg.StorageCfg
	dirOnce sync.Once
	dirErr  error
}

func NewImageStore(cfg *cfg.StorageCfg) *ImageStore {
	return &ImageStore{cfg: cfg}
}

// Store записывает байты изображения в каталог загрузок и возвращает
// сгенерированное имя файла. Каталог создаётся при первом обращении.
// Недопустимый MIME-тип отклоняется до какой-либо записи на диск.
func (s *ImageStore) Store(ctx context.Context, image *domain.Image) (*domain.ImageRef, error) {
	ext, err := infrastructure.ExtensionFromMIME(image.MimeType)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	s.dirOnce.Do(func() {
		s.dirErr = os.MkdirAll(s.cfg.UploadDir, 0o755)
	})
	if s.dirErr != nil {
		return nil, e.Wrap(whereami.WhereAmI(), s.dirErr)
	}

	name := fmt.Sprintf("%s-%d-%s.%s", fieldName, time.Now().UnixMilli(), uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.cfg.UploadDir, name), image.Data, 0o644); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &domain.ImageRef{Key: name}, nil
}

// Remove удаляет файл изображения с диска.
func (s *ImageStore) Remove(_ context.Context, ref *domain.ImageRef) error {
	if err := os.Remove(filepath.Join(s.cfg.UploadDir, ref.Key)); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Resolve отображает имя файла в клиентский URL под статическим префиксом.
// Наличие файла не проверяется.
func (s *ImageStore) Resolve(ref *domain.ImageRef) string {
	return path.Join(s.cfg.PublicPrefix, ref.Key)
}

// Exists проверяет наличие файла в каталоге загрузок.
func (s *ImageStore) Exists(_ context.Context, ref *domain.ImageRef) (bool, error) {
	_, err := os.Stat(filepath.Join(s.cfg.UploadDir, ref.Key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return true, nil
}
