package repository

import (
	"context"
	"time"

	"coliving/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	GuestName         string    `gorm:"column:guest_name"`
	GuestEmail        *string   `gorm:"column:guest_email"`
	GuestPhone        *string   `gorm:"column:guest_phone"`
	GuestID           *string   `gorm:"column:guest_id;index"`
	RoomID            string    `gorm:"column:room_id;index"`
	CheckIn           string    `gorm:"column:check_in"`
	CheckOut          string    `gorm:"column:check_out"`
	NightlyPrice      float64   `gorm:"column:nightly_price"`
	TotalPrice        float64   `gorm:"column:total_price"`
	Status            string    `gorm:"column:status;index"`
	StayCategory      string    `gorm:"column:stay_category"`
	IsLongTerm        bool      `gorm:"column:is_long_term"`
	WeeklyCleaningDay *string   `gorm:"column:weekly_cleaning_day"`
	EarlyCheckIn      bool      `gorm:"column:early_check_in"`
	Channel           string    `gorm:"column:channel"`
	PaymentStatus     *string   `gorm:"column:payment_status"`
	Notes             *string   `gorm:"column:notes"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:                m.ID,
		GuestName:         m.GuestName,
		GuestEmail:        strValue(m.GuestEmail),
		GuestPhone:        strValue(m.GuestPhone),
		GuestID:           strValue(m.GuestID),
		RoomID:            m.RoomID,
		CheckIn:           m.CheckIn,
		CheckOut:          m.CheckOut,
		NightlyPrice:      m.NightlyPrice,
		TotalPrice:        m.TotalPrice,
		Status:            domain.BookingStatus(m.Status),
		StayCategory:      domain.StayCategory(m.StayCategory),
		IsLongTerm:        m.IsLongTerm,
		WeeklyCleaningDay: strValue(m.WeeklyCleaningDay),
		EarlyCheckIn:      m.EarlyCheckIn,
		Channel:           domain.BookingChannel(m.Channel),
		PaymentStatus:     domain.PaymentStatus(strValue(m.PaymentStatus)),
		Notes:             strValue(m.Notes),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:                b.ID,
		GuestName:         b.GuestName,
		GuestEmail:        strPtr(b.GuestEmail),
		GuestPhone:        strPtr(b.GuestPhone),
		GuestID:           strPtr(b.GuestID),
		RoomID:            b.RoomID,
		CheckIn:           b.CheckIn,
		CheckOut:          b.CheckOut,
		NightlyPrice:      b.NightlyPrice,
		TotalPrice:        b.TotalPrice,
		Status:            string(b.Status),
		StayCategory:      string(b.StayCategory),
		IsLongTerm:        b.IsLongTerm,
		WeeklyCleaningDay: strPtr(b.WeeklyCleaningDay),
		EarlyCheckIn:      b.EarlyCheckIn,
		Channel:           string(b.Channel),
		PaymentStatus:     strPtr(string(b.PaymentStatus)),
		Notes:             strPtr(b.Notes),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).Order("check_in, id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

// ListActiveByRoom returns the room's non-cancelled bookings in creation
// order, which is the encounter order conflict checks report against.
func (r *BookingRepository) ListActiveByRoom(ctx context.Context, roomID string) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND status <> ?", roomID, string(domain.BookingCancelled)).
		Order("created_at, id").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID string) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("check_in, id").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) SetGuestID(ctx context.Context, id, guestID string) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", id).
		Update("guest_id", guestID)
	return tx.Error
}

func toDomainBookings(ms []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}
