package usecase

import "context"

type ProductUC interface {
	ListProducts(ctx context.Context) ([]ProductInfo, error)
	GetProduct(ctx context.Context, id int64) (*ProductInfo, error)
	CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductInfo, error)
	CheckImage(ctx context.Context, filename string) (bool, error)
}
