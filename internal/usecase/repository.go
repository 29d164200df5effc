package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

type ProductRepository interface {
	ListAll(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
}

// ImageStore — единая абстракция хранилища изображений.
// Реализации: repository/inline, repository/disk, repository/minio.
type ImageStore interface {
	Store(ctx context.Context, image *domain.Image) (*domain.ImageRef, error)
	Remove(ctx context.Context, ref *domain.ImageRef) error
	// Resolve детерминированно отображает ссылку в клиентский URL (или
	// base64-представление в режиме inline), не обращаясь к хранилищу.
	Resolve(ref *domain.ImageRef) string
	Exists(ctx context.Context, ref *domain.ImageRef) (bool, error)
}

type CacheRepository interface {
	// GetProduct возвращает (nil, nil) при промахе кэша.
	GetProduct(ctx context.Context, id int64) (*ProductInfo, error)
	SetProduct(ctx context.Context, info *ProductInfo) error
	DeleteProduct(ctx context.Context, id int64) error
}
