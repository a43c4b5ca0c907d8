package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.ProductStore = (*ProductRepository)(nil)

const productColumns = `id, name, price, description, collection_id, photos, stock, sold, created_at, updated_at`

type ProductRepository struct {
	db Querier
}

func NewProductRepository(db Querier) *ProductRepository {
	return &ProductRepository{
		db: db,
	}
}

// storedPhoto is the jsonb shape of a photo; the object key is kept so that
// photos can be removed together with the product.
type storedPhoto struct {
	Key       string `json:"key"`
	SecureURL string `json:"secure_url"`
}

func (r *ProductRepository) Create(ctx context.Context, product model.Product) (model.Product, error) {
	photos, err := encodePhotos(product.Photos)
	if err != nil {
		return model.Product{}, err
	}

	query := `INSERT INTO products (id, name, price, description, collection_id, photos, stock, sold, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + productColumns

	saved, err := scanProduct(r.db.QueryRow(ctx, query,
		product.ID, product.Name, product.Price, product.Description, product.CollectionID,
		photos, product.Stock, product.Sold, product.CreatedAt, product.UpdatedAt,
	))
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	return saved, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to get product by id: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func encodePhotos(photos []model.Photo) ([]byte, error) {
	stored := make([]storedPhoto, len(photos))
	for i, p := range photos {
		stored[i] = storedPhoto{Key: p.Key, SecureURL: p.SecureURL}
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode photos: %w", err)
	}
	return data, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		product model.Product
		photos  []byte
	)

	err := row.Scan(
		&product.ID, &product.Name, &product.Price, &product.Description, &product.CollectionID,
		&photos, &product.Stock, &product.Sold, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return model.Product{}, err
	}

	var stored []storedPhoto
	if len(photos) > 0 {
		if err := json.Unmarshal(photos, &stored); err != nil {
			return model.Product{}, fmt.Errorf("failed to decode photos: %w", err)
		}
	}
	product.Photos = make([]model.Photo, len(stored))
	for i, p := range stored {
		product.Photos[i] = model.Photo{Key: p.Key, SecureURL: p.SecureURL}
	}

	return product, nil
}
