package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
// Все SQL-запросы каталога изолированы здесь; значения передаются только
// через параметры запроса.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// ListAll возвращает все продукты в порядке, определяемом хранилищем.
// Пустая таблица — пустой срез, не ошибка.
func (p *ProductRepo) ListAll(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, description, price, image_key, image_data
		FROM products
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]*domain.Product, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(&model.ID, &model.Name, &model.Description, &model.Price,
			&model.ImageKey, &model.ImageData); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, p.conv.ToEntity(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// GetByID возвращает продукт по идентификатору или e.ErrProductNotFound.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, image_key, image_data
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).
		Scan(&model.ID, &model.Name, &model.Description, &model.Price,
			&model.ImageKey, &model.ImageData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// Create вставляет один продукт и возвращает материализованную строку
// с идентификатором, присвоенным базой данных.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	// VALUES ($1, $2, $3, $4, $5) name, description, price, image_key, image_data
	query := `
		INSERT INTO products (name, description, price, image_key, image_data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, price, image_key, image_data
	`

	in := p.conv.ToModel(product)

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, in.Name, in.Description, in.Price, in.ImageKey, in.ImageData).
		Scan(&model.ID, &model.Name, &model.Description, &model.Price,
			&model.ImageKey, &model.ImageData)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}
