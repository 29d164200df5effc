package images

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/jitter"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
)

// ImagesInfra оборачивает активное хранилище изображений и берёт на себя
// фоновую очистку осиротевших объектов: изображение, записанное до
// неудачной вставки строки, удаляется повторными попытками с отступлением.
type ImagesInfra struct {
	store  usecase.ImageStore
	logger logger.Logger
	wg     sync.WaitGroup
}

func NewImagesInfra(store usecase.ImageStore, logger logger.Logger) *ImagesInfra {
	return &ImagesInfra{
		store:  store,
		logger: logger,
	}
}

// StoreImage сохраняет изображение в активном хранилище.
func (m *ImagesInfra) StoreImage(ctx context.Context, image *domain.Image) (*domain.ImageRef, error) {
	return m.store.Store(ctx, image)
}

// CleanupImage запускает фоновое удаление ссылки. Для inline-ссылок — no-op:
// байты не были записаны ни в какое внешнее хранилище.
func (m *ImagesInfra) CleanupImage(ref *domain.ImageRef) {
	if ref == nil || ref.IsInline() {
		return
	}

	m.wg.Add(1)
	go m.cleanupStoredRef(ref)
}

// ResolveImage отображает ссылку в клиентское представление.
func (m *ImagesInfra) ResolveImage(ref *domain.ImageRef) string {
	return m.store.Resolve(ref)
}

// ImageExists проверяет наличие содержимого по ссылке.
func (m *ImagesInfra) ImageExists(ctx context.Context, ref *domain.ImageRef) (bool, error) {
	return m.store.Exists(ctx, ref)
}

// WaitForCleanup дожидается завершения всех фоновых удалений или отмены контекста.
func (m *ImagesInfra) WaitForCleanup(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cleanupStoredRef удаляет объект с экспоненциальной задержкой и jitter.
func (m *ImagesInfra) cleanupStoredRef(ref *domain.ImageRef) {
	defer m.wg.Done()

	const (
		maxAttempts    = 5
		baseBackoff    = time.Second
		maxBackoff     = 30 * time.Second
		removalTimeout = 5 * time.Second
	)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), removalTimeout)
		err := m.store.Remove(ctx, ref)
		cancel()

		if err == nil {
			m.logger.Infof("Orphaned image removed: %s", ref.Key)
			return
		}

		m.logger.Warnf("Failed to remove orphaned image %s (attempt %d/%d): %v",
			ref.Key, attempt+1, maxAttempts, err)

		if attempt < maxAttempts-1 {
			time.Sleep(jitter.ExponentialBackoff(baseBackoff, maxBackoff, attempt, jitter.DefaultJitter))
		}
	}

	m.logger.Errorf(nil, "Giving up on orphaned image %s after %d attempts", ref.Key, maxAttempts)
}
