package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hoteladmin/internal/config"
	"hoteladmin/internal/database"
	"hoteladmin/internal/middleware"
	"hoteladmin/internal/modules/booking"
	"hoteladmin/internal/modules/catalog"
	"hoteladmin/internal/modules/discount"
	"hoteladmin/internal/pkg/clock"
	"hoteladmin/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	stores := repository.NewStores(db)
	clk := clock.System()

	discountService := discount.NewService(stores.Discounts, stores.Bookings, clk)
	discountHandler := discount.NewHandler(discountService)

	bookingService := booking.NewService(
		booking.NewGormTx(stores),
		booking.ReposFrom(stores),
		discountService,
		clk,
	)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(stores.Rooms, stores.Calendar)
	catalogHandler := catalog.NewHandler(catalogService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		catalogHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		discountHandler.RegisterRoutes(v1)
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	go func() {
		log.Printf("listening on %s env=%s", cfg.HTTPAddr, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	// in-flight requests get until the shutdown timeout to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error=%q", err.Error())
	}
	log.Println("server stopped")
}
