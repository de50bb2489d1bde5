package main

import (
	"context"
	"log"
	"os"
	"time"

	"hoteladmin/internal/database"
	"hoteladmin/internal/domain"
	"hoteladmin/internal/modules/booking"
	"hoteladmin/internal/modules/discount"
	"hoteladmin/internal/pkg/clock"
	"hoteladmin/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hoteladmin.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM booking_nights")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM special_prices")
	db.Exec("DELETE FROM blocked_dates")
	db.Exec("DELETE FROM discounts")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	stores := repository.NewStores(db)
	users := repository.NewUserRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")
	guestHash, _ := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
	guest := domain.User{Email: "guest@example.com", PasswordHash: string(guestHash), Name: "Guest"}
	if err := users.Create(ctx, &guest); err != nil {
		log.Fatal(err)
	}
	vipHash, _ := bcrypt.GenerateFromPassword([]byte("vip123"), bcrypt.DefaultCost)
	vip := domain.User{Email: "vip@example.com", PasswordHash: string(vipHash), Name: "VIP Guest"}
	if err := users.Create(ctx, &vip); err != nil {
		log.Fatal(err)
	}

	// ================== ROOMS ==================
	log.Println("Creating rooms...")
	weekend := 150.0
	standard := domain.Room{Name: "Standard 101", BasePrice: 100, WeekendPrice: &weekend, IsActive: true}
	if err := stores.Rooms.Create(ctx, &standard); err != nil {
		log.Fatal(err)
	}
	deluxe := domain.Room{Name: "Deluxe 201", BasePrice: 220, IsActive: true}
	if err := stores.Rooms.Create(ctx, &deluxe); err != nil {
		log.Fatal(err)
	}

	// ================== CALENDAR ==================
	log.Println("Creating special prices and blocked dates...")
	nextSaturday := nextWeekday(time.Saturday)
	if err := stores.Calendar.UpsertSpecialPrice(ctx, &domain.SpecialPrice{
		RoomID: standard.ID,
		Date:   nextSaturday,
		Amount: 80,
		Mode:   domain.PriceModeFixed,
	}); err != nil {
		log.Fatal(err)
	}
	if err := stores.Calendar.BlockDate(ctx, &domain.BlockedDate{
		RoomID: deluxe.ID,
		Date:   domain.DateOnly(time.Now().AddDate(0, 0, 30)),
		Reason: "renovation",
	}); err != nil {
		log.Fatal(err)
	}

	// ================== DISCOUNTS ==================
	log.Println("Creating discounts...")
	maxDiscount := 15.0
	limit := 100
	if err := stores.Discounts.Create(ctx, &domain.Discount{
		Code:         "SAVE10",
		Type:         domain.DiscountPercentage,
		Value:        10,
		MaxDiscount:  &maxDiscount,
		UsageLimit:   &limit,
		ApplicableTo: domain.ScopeAllRooms,
		Status:       domain.DiscountActive,
	}); err != nil {
		log.Fatal(err)
	}
	minAmount := 300.0
	if err := stores.Discounts.Create(ctx, &domain.Discount{
		Code:             "FREENIGHT",
		Type:             domain.DiscountFreeNight,
		Value:            1,
		MinBookingAmount: &minAmount,
		ApplicableTo:     domain.ScopeSpecificUsers,
		UserIDs:          []int64{vip.ID},
		Status:           domain.DiscountActive,
	}); err != nil {
		log.Fatal(err)
	}

	// ================== BOOKINGS ==================
	log.Println("Creating a sample booking...")
	clk := clock.System()
	discountService := discount.NewService(stores.Discounts, stores.Bookings, clk)
	bookingService := booking.NewService(booking.NewGormTx(stores), booking.ReposFrom(stores), discountService, clk)

	checkIn := domain.DateOnly(time.Now().AddDate(0, 0, 7))
	if _, err := bookingService.CreateBooking(ctx, booking.CreateBookingInput{
		RoomID:       standard.ID,
		UserID:       guest.ID,
		CheckIn:      checkIn,
		CheckOut:     checkIn.AddDate(0, 0, 2),
		DiscountCode: "SAVE10",
	}); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete.")
}

func nextWeekday(wd time.Weekday) time.Time {
	d := domain.DateOnly(time.Now())
	for d.Weekday() != wd {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
