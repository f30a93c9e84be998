package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/maribelle/nail-studio-api/internal/config"
	"github.com/maribelle/nail-studio-api/internal/database"
	"github.com/maribelle/nail-studio-api/internal/handler"
	"github.com/maribelle/nail-studio-api/internal/middleware"
	"github.com/maribelle/nail-studio-api/internal/queue"
	"github.com/maribelle/nail-studio-api/internal/repository"
	"github.com/maribelle/nail-studio-api/internal/router"
	"github.com/maribelle/nail-studio-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter; both degrade
	// to pass-through when it is unreachable.
	rdb := config.NewRedisClient()
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	technicians := repository.NewTechnicianRepo(db)
	appointments := repository.NewAppointmentRepo(db)
	availability := repository.NewAvailabilityRepo(db)
	reviews := repository.NewReviewRepo(db)
	loyalty := repository.NewLoyaltyRepo(db)
	bookingStore := repository.NewBookingStore(appointments, availability)

	// Services
	availabilitySvc := service.NewAvailabilityService(availability)
	bookingSvc := service.NewBookingService(bookingStore, users, availabilitySvc, queue.PublishAppointmentConfirmed)
	loyaltySvc := service.NewLoyaltyService(loyalty, appointments)
	reviewSvc := service.NewReviewService(reviews, appointments)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users, tokens)
	accountH := handler.NewAccountHandler(users, loyaltySvc)
	bookingH := handler.NewBookingHandler(bookingSvc, appointments, reviewSvc)
	publicH := handler.NewPublicHandler(technicians, availabilitySvc, reviews)
	adminApptH := handler.NewAdminAppointmentHandler(bookingSvc, appointments, technicians, loyaltySvc)
	adminAvailH := handler.NewAdminAvailabilityHandler(availabilitySvc)
	adminUserH := handler.NewAdminUserHandler(users)
	adminTechH := handler.NewAdminTechnicianHandler(technicians)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterPublic(e, publicH, cacheMW)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limitMW)
	router.RegisterCustomer(e, accountH, bookingH, cfg.JWTSecret, limitMW)
	router.RegisterAdmin(e, adminApptH, adminAvailH, adminUserH, adminTechH, cfg.JWTSecret)

	// Consume confirmation events in the background; the consumer
	// reconnects on broker failures.
	go func() {
		if err := queue.StartConfirmationConsumer(); err != nil {
			log.Printf("confirmation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
