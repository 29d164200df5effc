package inline

import (
	"context"
	"encoding/base64"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/infrastructure"
)

// ImageStore хранит изображение внутри строки продукта: байты проходят
// через допуск по MIME-типу и без изменений попадают в колонку image_data.
type ImageStore struct{}

func NewImageStore() *ImageStore {
	return &ImageStore{}
}

func (s *ImageStore) Store(_ context.Context, image *domain.Image) (*domain.ImageRef, error) {
	if _, err := infrastructure.ExtensionFromMIME(image.MimeType); err != nil {
		return nil, err
	}

	return &domain.ImageRef{Data: image.Data}, nil
}

// Remove в режиме inline — no-op: байты живут и умирают вместе со строкой.
func (s *ImageStore) Remove(_ context.Context, _ *domain.ImageRef) error {
	return nil
}

// Resolve возвращает base64-представление байтов для выдачи клиенту.
func (s *ImageStore) Resolve(ref *domain.ImageRef) string {
	return base64.StdEncoding.EncodeToString(ref.Data)
}

func (s *ImageStore) Exists(_ context.Context, ref *domain.ImageRef) (bool, error) {
	return ref.IsInline(), nil
}
