// Package service implements the storefront business operations.
package service

import "github.com/dtroode/storefront-server/internal/model"

var (
	_ model.CredentialService = (*Credentials)(nil)
	_ model.CouponService     = (*Coupon)(nil)
	_ model.ProductService    = (*Product)(nil)
)
