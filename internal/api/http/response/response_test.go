package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/testutil"
)

func TestError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "classified error",
			err:         model.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "INVALID_CREDENTIALS",
			wantMessage: "invalid credentials",
		},
		{
			name:        "wrapped classified error keeps client message",
			err:         fmt.Errorf("%w: smtp: 421 try later", model.ErrDeliveryFailed),
			wantStatus:  http.StatusBadGateway,
			wantCode:    "DELIVERY_FAILED",
			wantMessage: "failed to deliver email",
		},
		{
			name:        "server side classified error",
			err:         fmt.Errorf("failed to verify password: %w", model.ErrMalformedHash),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "MALFORMED_HASH",
			wantMessage: "stored password hash is malformed",
		},
		{
			name:        "unclassified error",
			err:         errors.New("connection reset by peer"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL",
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, testutil.MakeNoopLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]any{"success": true})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}
