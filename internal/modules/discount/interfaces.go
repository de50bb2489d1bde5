package discount

import (
	"context"

	"hoteladmin/internal/domain"
)

// DiscountRepository defines the store operations the service needs.
type DiscountRepository interface {
	FindByCode(ctx context.Context, code string) (*domain.Discount, error)
	GetByID(ctx context.Context, id int64) (*domain.Discount, error)
	Create(ctx context.Context, d *domain.Discount) error
	List(ctx context.Context) ([]domain.Discount, error)
}

// UsageCounter reports how many non-cancelled bookings a user has redeemed a
// discount on, for the per-user limit check.
type UsageCounter interface {
	CountUserDiscountUsage(ctx context.Context, userID, discountID int64) (int, error)
}
