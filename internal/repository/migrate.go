package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the engine touches, including
// the booking_nights ledger whose unique index backs the no-double-booking
// guarantee.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&roomModel{},
		&specialPriceModel{},
		&blockedDateModel{},
		&discountModel{},
		&bookingModel{},
		&bookingNightModel{},
	)
}
