package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"coliving/internal/config"
	"coliving/internal/database"
	"coliving/internal/dateutil"
	"coliving/internal/domain"
	"coliving/internal/pkg/ids"
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
		log.Fatal("Catalog load failed:", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM maintenance_issues")
	db.Exec("DELETE FROM recurring_tasks")
	db.Exec("DELETE FROM room_statuses")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM guests")
	db.Exec("DELETE FROM staff_users")

	ctx := context.Background()
	staffRepo := repository.NewStaffRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	statusRepo := repository.NewRoomStatusRepository(db)
	recurringRepo := repository.NewRecurringTaskRepository(db)

	// ================== STAFF ==================
	log.Println("Creating staff users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.StaffUser{
		ID:           ids.New(),
		Email:        "admin@coliving.local",
		PasswordHash: string(adminHash),
		Name:         "Admin",
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := staffRepo.Create(ctx, &admin); err != nil {
		log.Fatal("Staff seed failed:", err)
	}

	hkHash, _ := bcrypt.GenerateFromPassword([]byte("clean123"), bcrypt.DefaultCost)
	housekeeper := domain.StaffUser{
		ID:           ids.New(),
		Email:        "maria@coliving.local",
		PasswordHash: string(hkHash),
		Name:         "Maria",
		Role:         domain.RoleHousekeeper,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := staffRepo.Create(ctx, &housekeeper); err != nil {
		log.Fatal("Staff seed failed:", err)
	}

	rooms := catalog.Rooms()
	if len(rooms) == 0 {
		log.Fatal("Catalog has no rooms")
	}

	// ================== BOOKINGS ==================
	log.Println("Creating sample bookings...")

	today := time.Now()
	in := dateutil.FormatDate(today)
	out := dateutil.FormatDate(today.AddDate(0, 0, 3))
	shortStay := domain.Booking{
		ID:           ids.New(),
		GuestName:    "Jane Doe",
		GuestEmail:   "jane@example.com",
		RoomID:       rooms[0].ID,
		CheckIn:      in,
		CheckOut:     out,
		NightlyPrice: 60,
		TotalPrice:   180,
		Status:       domain.BookingConfirmed,
		StayCategory: domain.StayShort,
		Channel:      domain.ChannelAirbnb,
		EarlyCheckIn: true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := bookingRepo.Create(ctx, &shortStay); err != nil {
		log.Fatal("Booking seed failed:", err)
	}

	if len(rooms) > 1 {
		longIn := dateutil.FormatDate(today.AddDate(0, 0, -10))
		longOut := dateutil.FormatDate(today.AddDate(0, 0, 30))
		longStay := domain.Booking{
			ID:                ids.New(),
			GuestName:         "Tom Long",
			GuestPhone:        "+1 555 010 0200",
			RoomID:            rooms[1].ID,
			CheckIn:           longIn,
			CheckOut:          longOut,
			NightlyPrice:      35,
			TotalPrice:        1400,
			Status:            domain.BookingCheckedIn,
			StayCategory:      domain.StayLong,
			IsLongTerm:        true,
			WeeklyCleaningDay: "monday",
			Channel:           domain.ChannelColiving,
			CreatedAt:         time.Now(),
			UpdatedAt:         time.Now(),
		}
		if err := bookingRepo.Create(ctx, &longStay); err != nil {
			log.Fatal("Booking seed failed:", err)
		}
	}

	// ================== ROOM STATUSES ==================
	log.Println("Creating room statuses...")

	for i, room := range rooms {
		status := domain.CleanBaseline(room.ID)
		if i%3 == 1 {
			status.Status = domain.RoomDirty
			status.AssignedTo = housekeeper.Name
		}
		if err := statusRepo.Upsert(ctx, status); err != nil {
			log.Fatal("Room status seed failed:", err)
		}
	}

	// ================== RECURRING TASKS ==================
	log.Println("Creating recurring tasks...")

	boiler := domain.RecurringTask{
		ID:          ids.New(),
		Description: "Boiler pressure check",
		LocationID:  rooms[0].PropertyID,
		Frequency:   domain.FrequencyMonthly,
		NextDue:     dateutil.FormatDate(today),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := recurringRepo.Create(ctx, &boiler); err != nil {
		log.Fatal("Recurring task seed failed:", err)
	}

	log.Println("Seed complete.")
	log.Println("Login: admin@coliving.local / admin123")
}
