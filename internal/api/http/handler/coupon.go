package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// Coupon serves coupon management endpoints.
type Coupon struct {
	coupons model.CouponService
	logger  *logger.Logger
}

// NewCoupon creates the coupon handler.
func NewCoupon(coupons model.CouponService, logger *logger.Logger) *Coupon {
	return &Coupon{coupons: coupons, logger: logger}
}

type couponResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Coupon  model.Coupon `json:"coupon"`
}

type couponsResponse struct {
	Success bool           `json:"success"`
	Coupons []model.Coupon `json:"coupons"`
}

func (h *Coupon) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code     string `json:"code"`
		Discount int    `json:"discount"`
	}
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	coupon, err := h.coupons.Create(r.Context(), req.Code, req.Discount)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, couponResponse{Success: true, Message: "Coupon created successfully", Coupon: coupon})
}

func (h *Coupon) List(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.coupons.List(r.Context())
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, couponsResponse{Success: true, Coupons: coupons})
}

func (h *Coupon) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.logger, model.ErrInvalidInput)
		return
	}

	coupon, err := h.coupons.Deactivate(r.Context(), id)
	if err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, couponResponse{Success: true, Message: "Coupon deactivated", Coupon: coupon})
}

func (h *Coupon) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.logger, model.ErrInvalidInput)
		return
	}

	if err := h.coupons.Delete(r.Context(), id); err != nil {
		response.Error(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, messageResponse{Success: true, Message: "Coupon deleted"})
}
