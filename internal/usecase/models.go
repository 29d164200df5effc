package usecase

import "github.com/DRSN-tech/catalog-service/internal/domain"

// PRODUCT USECASE

// CreateProductReq — запрос на создание продукта.
type CreateProductReq struct {
	Name        string
	Description *string
	PriceCents  int64
	Image       *domain.Image // nil, если файл не загружен
}

// ProductInfo — DTO продукта для внешнего использования.
// Image — уже разрешённое представление: URL в режимах disk/s3,
// base64 в режиме inline, nil при отсутствии изображения.
type ProductInfo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	PriceCents  int64   `json:"price_cents"`
	Image       *string `json:"image"`
}

// INFRASTRUCTURE

// ProductCreatedEvent публикуется в Kafka после успешного создания продукта.
type ProductCreatedEvent struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	PriceCents int64   `json:"price_cents"`
	Image      *string `json:"image,omitempty"`
}

// MAPPERS

func NewCreateProductReq(name string, description *string, priceCents int64, image *domain.Image) *CreateProductReq {
	return &CreateProductReq{
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
		Image:       image,
	}
}

func NewProductInfo(id int64, name string, description *string, priceCents int64, image *string) *ProductInfo {
	return &ProductInfo{
		ID:          id,
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
		Image:       image,
	}
}

func NewProductCreatedEvent(info *ProductInfo) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		ID:         info.ID,
		Name:       info.Name,
		PriceCents: info.PriceCents,
		Image:      info.Image,
	}
}
