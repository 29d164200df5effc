package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-service/internal/domain"
)

type ImagesInfra interface {
	StoreImage(ctx context.Context, image *domain.Image) (*domain.ImageRef, error)
	// CleanupImage запускает фоновое удаление осиротевшей ссылки (best effort).
	CleanupImage(ref *domain.ImageRef)
	ResolveImage(ref *domain.ImageRef) string
	ImageExists(ctx context.Context, ref *domain.ImageRef) (bool, error)
	WaitForCleanup(ctx context.Context) error
}

type EventProducer interface {
	ProductCreated(ctx context.Context, event *ProductCreatedEvent) error
}
