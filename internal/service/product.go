package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

const cleanupTimeout = 10 * time.Second

// Product manages catalog items and their photos.
type Product struct {
	store   model.ProductStore
	storage model.Storage
	logger  *logger.Logger
}

// NewProduct creates a product service.
func NewProduct(store model.ProductStore, storage model.Storage, logger *logger.Logger) *Product {
	return &Product{store: store, storage: storage, logger: logger}
}

// Create uploads the photos and stores the product. Uploaded photos are
// removed again if any later step fails.
func (s *Product) Create(ctx context.Context, params model.CreateProductParams) (model.Product, error) {
	if params.Name == "" || params.Description == "" || params.Price == 0 || params.CollectionID == uuid.Nil {
		return model.Product{}, fmt.Errorf("%w: name, price, description and collection are required", model.ErrValidationFailed)
	}
	if params.Price < 0 || params.Stock < 0 {
		return model.Product{}, fmt.Errorf("%w: price and stock must not be negative", model.ErrInvalidInput)
	}
	if len(params.Photos) > model.MaxProductPhotos {
		return model.Product{}, fmt.Errorf("%w: at most %d photos are allowed", model.ErrInvalidInput, model.MaxProductPhotos)
	}

	id := uuid.New()
	photos := make([]model.Photo, 0, len(params.Photos))

	for i, upload := range params.Photos {
		key := photoKey(id, i+1, upload.Extension)
		url, err := s.storage.Upload(ctx, key, upload.Reader, upload.Size, upload.ContentType)
		if err != nil {
			s.logger.Error("Product service: failed to upload photo",
				"product_id", id,
				"key", key,
				"error", err.Error())
			s.removePhotos(ctx, id, photos)
			return model.Product{}, fmt.Errorf("failed to upload photo: %w", err)
		}
		photos = append(photos, model.Photo{Key: key, SecureURL: url})
	}

	now := time.Now()
	product, err := s.store.Create(ctx, model.Product{
		ID:           id,
		Name:         params.Name,
		Price:        params.Price,
		Description:  params.Description,
		CollectionID: params.CollectionID,
		Photos:       photos,
		Stock:        params.Stock,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.removePhotos(ctx, id, photos)
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product service: product created",
		"product_id", id,
		"photos", len(photos))

	return product, nil
}

// GetByID returns a single product.
func (s *Product) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Product{}, model.ErrResourceNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Delete removes the product and then its photos.
func (s *Product) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrResourceNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.removePhotos(ctx, id, product.Photos)

	s.logger.Info("Product service: product deleted",
		"product_id", id)

	return nil
}

// removePhotos is best effort; orphaned objects are logged, not returned.
func (s *Product) removePhotos(ctx context.Context, productID uuid.UUID, photos []model.Photo) {
	if len(photos) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	for _, photo := range photos {
		if err := s.storage.Delete(ctx, photo.Key); err != nil {
			s.logger.Warn("Product service: failed to delete photo",
				"product_id", productID,
				"key", photo.Key,
				"error", err.Error())
		}
	}
}

func photoKey(productID uuid.UUID, n int, ext string) string {
	return fmt.Sprintf("products/%s/photo_%d%s", productID, n, ext)
}
