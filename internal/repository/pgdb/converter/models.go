package converter

// ProductModel представляет запись таблицы products в PostgreSQL.
// Колонки image_key и image_data взаимоисключающие: деплоймент
// использует ровно одну из них в зависимости от режима хранения.
type ProductModel struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Price       int64   `db:"price"` // цена в центах
	ImageKey    *string `db:"image_key"`
	ImageData   []byte  `db:"image_data"`
}
