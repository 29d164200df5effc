package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
)

// ProductUseCase реализует бизнес-логику каталога продуктов.
// cacheRepo и producer могут быть nil — кэш и события опциональны.
type ProductUseCase struct {
	productRepo  ProductRepository
	imagesInfra  ImagesInfra
	cacheRepo    CacheRepository
	producer     EventProducer
	logger       logger.Logger
	queryTimeout time.Duration
}

func NewProductUC(
	productRepo ProductRepository,
	imagesInfra ImagesInfra,
	cacheRepo CacheRepository,
	producer EventProducer,
	logger logger.Logger,
	queryTimeout time.Duration,
) *ProductUseCase {
	const defaultQueryTimeout = 5 * time.Second

	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}

	return &ProductUseCase{
		productRepo:  productRepo,
		imagesInfra:  imagesInfra,
		cacheRepo:    cacheRepo,
		producer:     producer,
		logger:       logger,
		queryTimeout: queryTimeout,
	}
}

// ListProducts возвращает все продукты каталога в порядке хранения.
func (p *ProductUseCase) ListProducts(ctx context.Context) ([]ProductInfo, error) {
	const op = "ProductUseCase.ListProducts"

	ctx, cancel := context.WithTimeout(ctx, p.queryTimeout)
	defer cancel()

	products, err := p.productRepo.ListAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]ProductInfo, 0, len(products))
	for _, product := range products {
		result = append(result, *p.toProductInfo(product))
	}

	return result, nil
}

// GetProduct возвращает продукт по идентификатору, сначала проверяя кэш.
func (p *ProductUseCase) GetProduct(ctx context.Context, id int64) (*ProductInfo, error) {
	const op = "ProductUseCase.GetProduct"

	if p.cacheRepo != nil {
		cached, err := p.cacheRepo.GetProduct(ctx, id)
		if err != nil {
			p.logger.Warnf("Cache lookup failed: %v", e.Wrap(op, err))
		} else if cached != nil {
			return cached, nil
		}
	}

	qCtx, cancel := context.WithTimeout(ctx, p.queryTimeout)
	defer cancel()

	product, err := p.productRepo.GetByID(qCtx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	info := p.toProductInfo(product)

	if p.cacheRepo != nil {
		// Фоновое добавление продукта в кэш
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := p.cacheRepo.SetProduct(bgCtx, info); err != nil {
				p.logger.Warnf("Failed to cache product in background: %v", e.Wrap(op, err))
			}
		}()
	}

	return info, nil
}

// CreateProduct валидирует запрос, сохраняет изображение (если есть) и
// вставляет строку продукта. При ошибке вставки уже сохранённое изображение
// удаляется в фоне, чтобы не копить осиротевшие файлы.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductInfo, error) {
	const op = "ProductUseCase.CreateProduct"

	if err := p.validateProduct(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	var ref *domain.ImageRef
	if req.Image != nil {
		var err error
		ref, err = p.imagesInfra.StoreImage(ctx, req.Image)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	qCtx, cancel := context.WithTimeout(ctx, p.queryTimeout)
	defer cancel()

	product, err := p.productRepo.Create(qCtx, domain.NewProduct(req.Name, req.Description, req.PriceCents, ref))
	if err != nil {
		if ref != nil && !ref.IsInline() {
			p.logger.Warnf("Cleaning up orphaned image after insert failure. product_name: %s, error: %v",
				req.Name, e.Wrap(op, err))
			p.imagesInfra.CleanupImage(ref)
		}

		return nil, e.Wrap(op, err)
	}

	info := p.toProductInfo(product)

	if p.cacheRepo != nil {
		if err := p.cacheRepo.DeleteProduct(ctx, info.ID); err != nil {
			p.logger.Warnf("Failed to invalidate product cache: %v", e.Wrap(op, err))
		}
	}

	if p.producer != nil {
		// Публикация события не влияет на результат запроса
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), p.queryTimeout)
			defer cancel()

			if err := p.producer.ProductCreated(bgCtx, NewProductCreatedEvent(info)); err != nil {
				p.logger.Warnf("Failed to publish ProductCreated event: %v", e.Wrap(op, err))
			}
		}()
	}

	return info, nil
}

// CheckImage проверяет наличие файла изображения в активном хранилище.
func (p *ProductUseCase) CheckImage(ctx context.Context, filename string) (bool, error) {
	const op = "ProductUseCase.CheckImage"

	ctx, cancel := context.WithTimeout(ctx, p.queryTimeout)
	defer cancel()

	exists, err := p.imagesInfra.ImageExists(ctx, &domain.ImageRef{Key: filename})
	if err != nil {
		return false, e.Wrap(op, err)
	}

	return exists, nil
}

func (p *ProductUseCase) toProductInfo(product *domain.Product) *ProductInfo {
	var image *string
	if product.Image != nil {
		resolved := p.imagesInfra.ResolveImage(product.Image)
		image = &resolved
	}

	return NewProductInfo(product.ID, product.Name, product.Description, product.PriceCents, image)
}

// validateProduct проверяет корректность входных данных запроса на создание продукта.
func (p *ProductUseCase) validateProduct(req *CreateProductReq) error {
	if strings.TrimSpace(req.Name) == "" {
		return e.ErrProductNameRequired
	}

	if req.PriceCents < 0 {
		return e.ErrInvalidPrice
	}

	return nil
}
