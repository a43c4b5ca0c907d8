package model

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// MaxProductPhotos bounds the number of photos attached to one product.
const MaxProductPhotos = 5

// ProductStore defines persistence operations for products.
type ProductStore interface {
	Create(ctx context.Context, product Product) (Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Product is a catalog item.
type Product struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Description  string    `json:"description"`
	CollectionID uuid.UUID `json:"collectionId"`
	Photos       []Photo   `json:"photos"`
	Stock        int       `json:"stock"`
	Sold         int       `json:"sold"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Photo references an uploaded product image.
type Photo struct {
	Key       string `json:"-"`
	SecureURL string `json:"secureUrl"`
}

// CreateProductParams contains parameters to create a product.
type CreateProductParams struct {
	Name         string
	Price        float64
	Description  string
	CollectionID uuid.UUID
	Stock        int
	Photos       []PhotoUpload
}

// PhotoUpload is a photo received from a client, not yet stored.
type PhotoUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Extension   string
}
