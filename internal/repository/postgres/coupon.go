package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.CouponStore = (*CouponRepository)(nil)

const couponColumns = `id, code, discount, active, created_at, updated_at`

type CouponRepository struct {
	db Querier
}

func NewCouponRepository(db Querier) *CouponRepository {
	return &CouponRepository{
		db: db,
	}
}

func (r *CouponRepository) Create(ctx context.Context, coupon model.Coupon) (model.Coupon, error) {
	query := `INSERT INTO coupons (id, code, discount, active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + couponColumns

	saved, err := scanCoupon(r.db.QueryRow(ctx, query,
		coupon.ID, coupon.Code, coupon.Discount, coupon.Active, coupon.CreatedAt, coupon.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Coupon{}, model.ErrDuplicateCoupon
		}
		return model.Coupon{}, fmt.Errorf("failed to create coupon: %w", err)
	}

	return saved, nil
}

func (r *CouponRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (model.Coupon, error) {
	query := `UPDATE coupons SET active = $2, updated_at = now() WHERE id = $1 RETURNING ` + couponColumns

	coupon, err := scanCoupon(r.db.QueryRow(ctx, query, id, active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Coupon{}, model.ErrNotFound
		}
		return model.Coupon{}, fmt.Errorf("failed to update coupon: %w", err)
	}

	return coupon, nil
}

func (r *CouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	rows, err := r.db.Query(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer rows.Close()

	coupons := make([]model.Coupon, 0)
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, coupon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate coupons: %w", err)
	}

	return coupons, nil
}

func scanCoupon(row pgx.Row) (model.Coupon, error) {
	var coupon model.Coupon
	err := row.Scan(&coupon.ID, &coupon.Code, &coupon.Discount, &coupon.Active, &coupon.CreatedAt, &coupon.UpdatedAt)
	return coupon, err
}
