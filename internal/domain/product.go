package domain

// Product описывает товар каталога
type Product struct {
	ID          int64
	Name        string
	Description *string
	PriceCents  int64 // Цена хранится в центах
	Image       *ImageRef
}

func NewProduct(name string, description *string, priceCents int64, image *ImageRef) *Product {
	return &Product{
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
		Image:       image,
	}
}
