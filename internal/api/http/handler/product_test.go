package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/mocks"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/testutil"
)

type formFile struct {
	name        string
	contentType string
	content     string
}

func newMultipartRequest(t *testing.T, fields map[string]string, files []formFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, mw.WriteField(key, value))
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, photosField, f.name))
		header.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = io.WriteString(part, f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/product", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestProduct_Create(t *testing.T) {
	collectionID := uuid.New()
	fields := map[string]string{
		"name":         "Lamp",
		"description":  "Desk lamp",
		"price":        "19.99",
		"stock":        "7",
		"collectionId": collectionID.String(),
	}

	t.Run("success", func(t *testing.T) {
		products := mocks.NewProductService(t)
		var uploaded []string
		products.On("Create", mock.Anything, mock.MatchedBy(func(p model.CreateProductParams) bool {
			return p.Name == "Lamp" && p.Price == 19.99 && p.Stock == 7 && p.CollectionID == collectionID && len(p.Photos) == 2
		})).Run(func(args mock.Arguments) {
			params := args.Get(1).(model.CreateProductParams)
			for _, photo := range params.Photos {
				data, err := io.ReadAll(photo.Reader)
				require.NoError(t, err)
				uploaded = append(uploaded, photo.Extension+":"+photo.ContentType+":"+string(data))
			}
		}).Return(model.Product{ID: uuid.New(), Name: "Lamp", Price: 19.99, Stock: 7}, nil)

		h := NewProduct(products, testutil.MakeNoopLogger())
		rec := httptest.NewRecorder()
		h.Create(rec, newMultipartRequest(t, fields, []formFile{
			{name: "front.JPG", contentType: "image/jpeg", content: "jpeg-bytes"},
			{name: "side.png", contentType: "image/png", content: "png-bytes"},
		}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{".jpg:image/jpeg:jpeg-bytes", ".png:image/png:png-bytes"}, uploaded)
		assert.Equal(t, "Lamp", decodeBody(t, rec)["product"].(map[string]any)["name"])
	})

	tests := []struct {
		name   string
		fields map[string]string
		files  []formFile
	}{
		{
			name:   "non-image file",
			fields: fields,
			files:  []formFile{{name: "notes.txt", contentType: "text/plain", content: "hi"}},
		},
		{
			name: "too many photos",
			fields: fields,
			files: []formFile{
				{name: "1.jpg", contentType: "image/jpeg"},
				{name: "2.jpg", contentType: "image/jpeg"},
				{name: "3.jpg", contentType: "image/jpeg"},
				{name: "4.jpg", contentType: "image/jpeg"},
				{name: "5.jpg", contentType: "image/jpeg"},
				{name: "6.jpg", contentType: "image/jpeg"},
			},
		},
		{
			name:   "price is not a number",
			fields: map[string]string{"name": "Lamp", "price": "cheap"},
		},
		{
			name:   "collection is not a uuid",
			fields: map[string]string{"name": "Lamp", "price": "1", "collectionId": "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := mocks.NewProductService(t)
			h := NewProduct(products, testutil.MakeNoopLogger())

			rec := httptest.NewRecorder()
			h.Create(rec, newMultipartRequest(t, tt.fields, tt.files))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_INPUT", decodeBody(t, rec)["code"])
		})
	}

	t.Run("not multipart", func(t *testing.T) {
		h := NewProduct(mocks.NewProductService(t), testutil.MakeNoopLogger())
		rec := httptest.NewRecorder()
		h.Create(rec, newJSONRequest(http.MethodPost, "/api/product", `{"name":"Lamp"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProduct_Get(t *testing.T) {
	id := uuid.New()
	products := mocks.NewProductService(t)
	products.On("GetByID", mock.Anything, id).Return(model.Product{
		ID:     id,
		Name:   "Lamp",
		Photos: []model.Photo{{Key: "products/x/photo_1.jpg", SecureURL: "http://cdn/photo_1.jpg"}},
	}, nil).Once()
	products.On("GetByID", mock.Anything, mock.Anything).Return(model.Product{}, model.ErrResourceNotFound).Once()
	h := NewProduct(products, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Get(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/api/product/"+id.String(), nil), "id", id.String()))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http://cdn/photo_1.jpg")
	assert.NotContains(t, rec.Body.String(), "products/x/photo_1.jpg")

	other := uuid.New().String()
	rec = httptest.NewRecorder()
	h.Get(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/api/product/"+other, nil), "id", other))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProduct_Delete(t *testing.T) {
	id := uuid.New()
	products := mocks.NewProductService(t)
	products.On("Delete", mock.Anything, id).Return(nil)
	h := NewProduct(products, testutil.MakeNoopLogger())

	rec := httptest.NewRecorder()
	h.Delete(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/product/"+id.String(), nil), "id", id.String()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deleted", decodeBody(t, rec)["message"])
}
