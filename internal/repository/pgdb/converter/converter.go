package converter

import "github.com/DRSN-tech/catalog-service/internal/domain"

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

type ProductConverterImpl struct{}

func NewProductConverter() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	model := &ProductModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		Price:       entity.PriceCents,
	}

	if ref := entity.Image; ref != nil {
		if ref.IsInline() {
			model.ImageData = ref.Data
		} else {
			key := ref.Key
			model.ImageKey = &key
		}
	}

	return model
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	entity := &domain.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		PriceCents:  model.Price,
	}

	switch {
	case len(model.ImageData) > 0:
		entity.Image = &domain.ImageRef{Data: model.ImageData}
	case model.ImageKey != nil && *model.ImageKey != "":
		entity.Image = &domain.ImageRef{Key: *model.ImageKey}
	}

	return entity
}
