package booking

import (
	"context"

	"hoteladmin/internal/repository"
)

// ReposFrom adapts the gorm-backed stores to the module's interfaces.
func ReposFrom(s *repository.Stores) Repos {
	return Repos{
		Bookings:  s.Bookings,
		Rooms:     s.Rooms,
		Calendar:  s.Calendar,
		Discounts: s.Discounts,
	}
}

type gormTx struct {
	stores *repository.Stores
}

// NewGormTx wraps the stores bundle as the orchestrator's transaction runner.
func NewGormTx(stores *repository.Stores) TxRunner {
	return &gormTx{stores: stores}
}

func (g *gormTx) WithTx(ctx context.Context, fn func(tx Repos) error) error {
	return g.stores.WithTx(ctx, func(tx *repository.Stores) error {
		return fn(ReposFrom(tx))
	})
}
