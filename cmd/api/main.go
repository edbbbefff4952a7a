package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"coliving/internal/config"
	"coliving/internal/database"
	"coliving/internal/feed"
	"coliving/internal/middleware"
	"coliving/internal/modules/auth"
	"coliving/internal/modules/booking"
	"coliving/internal/modules/guest"
	"coliving/internal/modules/housekeeping"
	"coliving/internal/modules/maintenance"
	jwtsvc "coliving/internal/pkg/jwt"
	"coliving/internal/pkg/response"
	"coliving/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	roomStatusRepo := repository.NewRoomStatusRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	recurringRepo := repository.NewRecurringTaskRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := feed.NewHub()
	defer hub.Close()

	guestService := guest.NewService(guestRepo, bookingRepo)
	bookingService := booking.NewService(bookingRepo, guestService, hub, cfg.ConfirmTimeout, cfg.ConfirmPoll)
	housekeepingService := housekeeping.NewService(catalog, bookingRepo, roomStatusRepo, hub)
	maintenanceService := maintenance.NewService(maintenanceRepo, recurringRepo, hub)
	authService := auth.NewService(staffRepo, j)

	scheduler := maintenance.NewScheduler(maintenanceService, cfg.RecurringEvery)
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		auth.NewHandler(authService).RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			booking.NewHandler(bookingService).RegisterRoutes(protected)
			housekeeping.NewHandler(housekeepingService).RegisterRoutes(protected)
			maintenance.NewHandler(maintenanceService).RegisterRoutes(protected)
			guest.NewHandler(guestService).RegisterRoutes(protected)
			feed.NewHandler(hub).RegisterRoutes(protected)

			protected.GET("/catalog", func(c *gin.Context) {
				response.Success(c, http.StatusOK, gin.H{
					"properties": catalog.Properties(),
					"rooms":      catalog.Rooms(),
				})
			})
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
