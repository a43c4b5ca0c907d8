// Package response writes JSON bodies for the HTTP API.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

const internalErrorMessage = "internal server error"

type errorBody struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSON writes body with the given status.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Error maps err onto a client response. Classified errors keep their status
// and message; anything else is logged and reported as a 500.
func Error(w http.ResponseWriter, logger *logger.Logger, err error) {
	var modelErr *model.Error
	if errors.As(err, &modelErr) {
		if modelErr.Status >= http.StatusInternalServerError {
			logger.Error("HTTP: request failed",
				"code", modelErr.Code,
				"error", err.Error())
		}
		JSON(w, modelErr.Status, errorBody{Code: modelErr.Code, Message: modelErr.Message})
		return
	}

	logger.Error("HTTP: request failed",
		"error", err.Error())
	JSON(w, http.StatusInternalServerError, errorBody{Code: "INTERNAL", Message: internalErrorMessage})
}
