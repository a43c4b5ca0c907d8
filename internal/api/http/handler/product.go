package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

const (
	maxProductBody = 50 << 20
	maxFormMemory  = 10 << 20
	photosField    = "photos"
)

// Product serves catalog endpoints.
type Product struct {
	products model.ProductService
	logger   *logger.Logger
}

// NewProduct creates the product handler.
func NewProduct(products model.ProductService, logger *logger.Logger) *Product {
	return &Product{products: products, logger: logger}
}

type productResponse struct {
	Success bool          `json:"success"`
	Product model.Product `json:"product"`
}

// Create accepts a multipart form with product fields and up to
// model.MaxProductPhotos image files under "photos".
func (h *Product) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxProductBody)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		response.Error(w, h.logger, fmt.Errorf("%w: malformed multipart form", model.ErrInvalidInput))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	params, err := productParams(r.MultipartForm)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	files := r.MultipartForm.File[photosField]
	if len(files) > model.MaxProductPhotos {
		response.Error(w, h.logger, fmt.Errorf("%w: at most %d photos are allowed", model.ErrInvalidInput, model.MaxProductPhotos))
		return
	}

	for _, fh := range files {
		upload, closeFile, err := openPhoto(fh)
		if err != nil {
			response.Error(w, h.logger, err)
			return
		}
		defer closeFile()
		params.Photos = append(params.Photos, upload)
	}

	product, err := h.products.Create(r.Context(), params)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, productResponse{Success: true, Product: product})
}

func (h *Product) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.logger, model.ErrInvalidInput)
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, productResponse{Success: true, Product: product})
}

func (h *Product) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.logger, model.ErrInvalidInput)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Success: true, Message: "Product deleted"})
}

func productParams(form *multipart.Form) (model.CreateProductParams, error) {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	params := model.CreateProductParams{
		Name:        value("name"),
		Description: value("description"),
	}

	if v := value("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.CreateProductParams{}, fmt.Errorf("%w: price must be a number", model.ErrInvalidInput)
		}
		params.Price = price
	}

	if v := value("stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return model.CreateProductParams{}, fmt.Errorf("%w: stock must be an integer", model.ErrInvalidInput)
		}
		params.Stock = stock
	}

	if v := value("collectionId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return model.CreateProductParams{}, fmt.Errorf("%w: collectionId must be a uuid", model.ErrInvalidInput)
		}
		params.CollectionID = id
	}

	return params, nil
}

func openPhoto(fh *multipart.FileHeader) (model.PhotoUpload, func(), error) {
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return model.PhotoUpload{}, nil, fmt.Errorf("%w: %s is not an image", model.ErrInvalidInput, fh.Filename)
	}

	f, err := fh.Open()
	if err != nil {
		return model.PhotoUpload{}, nil, fmt.Errorf("failed to open uploaded photo: %w", err)
	}

	return model.PhotoUpload{
		Reader:      f,
		Size:        fh.Size,
		ContentType: contentType,
		Extension:   strings.ToLower(filepath.Ext(fh.Filename)),
	}, func() { _ = f.Close() }, nil
}
