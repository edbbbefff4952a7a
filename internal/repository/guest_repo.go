package repository

import (
	"context"
	"encoding/json"
	"time"

	"coliving/internal/domain"

	"gorm.io/gorm"
)

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

type guestModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	FullName          string    `gorm:"column:full_name"`
	NormalizedName    *string   `gorm:"column:normalized_name;index"`
	Email             *string   `gorm:"column:email"`
	NormalizedEmail   *string   `gorm:"column:normalized_email;index"`
	Phone             *string   `gorm:"column:phone"`
	NormalizedPhone   *string   `gorm:"column:normalized_phone;index"`
	StayCount         int       `gorm:"column:stay_count"`
	LifetimeNights    int       `gorm:"column:lifetime_nights"`
	LastStayEnd       *string   `gorm:"column:last_stay_end"`
	SourceChannels    string    `gorm:"column:source_channels;type:text"`
	LastBookingID     *string   `gorm:"column:last_booking_id"`
	Tags              string    `gorm:"column:tags;type:text"`
	Notes             *string   `gorm:"column:notes"`
	Status            string    `gorm:"column:status"`
	CountedBookingIDs string    `gorm:"column:counted_booking_ids;type:text"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (guestModel) TableName() string { return "guests" }

func toDomainGuest(m guestModel) *domain.Guest {
	return &domain.Guest{
		ID:                m.ID,
		FullName:          m.FullName,
		NormalizedName:    strValue(m.NormalizedName),
		Email:             strValue(m.Email),
		NormalizedEmail:   strValue(m.NormalizedEmail),
		Phone:             strValue(m.Phone),
		NormalizedPhone:   strValue(m.NormalizedPhone),
		StayCount:         m.StayCount,
		LifetimeNights:    m.LifetimeNights,
		LastStayEnd:       strValue(m.LastStayEnd),
		SourceChannels:    decodeStrings(m.SourceChannels),
		LastBookingID:     strValue(m.LastBookingID),
		Tags:              decodeStrings(m.Tags),
		Notes:             strValue(m.Notes),
		Status:            domain.GuestStatus(m.Status),
		CountedBookingIDs: decodeStrings(m.CountedBookingIDs),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toGuestModel(g *domain.Guest) guestModel {
	return guestModel{
		ID:                g.ID,
		FullName:          g.FullName,
		NormalizedName:    strPtr(g.NormalizedName),
		Email:             strPtr(g.Email),
		NormalizedEmail:   strPtr(g.NormalizedEmail),
		Phone:             strPtr(g.Phone),
		NormalizedPhone:   strPtr(g.NormalizedPhone),
		StayCount:         g.StayCount,
		LifetimeNights:    g.LifetimeNights,
		LastStayEnd:       strPtr(g.LastStayEnd),
		SourceChannels:    encodeStrings(g.SourceChannels),
		LastBookingID:     strPtr(g.LastBookingID),
		Tags:              encodeStrings(g.Tags),
		Notes:             strPtr(g.Notes),
		Status:            string(g.Status),
		CountedBookingIDs: encodeStrings(g.CountedBookingIDs),
		CreatedAt:         g.CreatedAt,
		UpdatedAt:         g.UpdatedAt,
	}
}

func (r *GuestRepository) Create(ctx context.Context, g *domain.Guest) error {
	m := toGuestModel(g)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*g = *toDomainGuest(m)
	return nil
}

func (r *GuestRepository) Update(ctx context.Context, g *domain.Guest) error {
	m := toGuestModel(g)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*g = *toDomainGuest(m)
	return nil
}

func (r *GuestRepository) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	var m guestModel
	tx := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainGuest(m), nil
}

func (r *GuestRepository) ListAll(ctx context.Context) ([]domain.Guest, error) {
	var ms []guestModel
	tx := r.db.WithContext(ctx).Order("full_name, id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Guest, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainGuest(m))
	}
	return out, nil
}

// FindByNormalizedEmail is a point lookup on the normalized email key.
// When several guests share the key (an accepted ambiguity) the most
// recently updated one wins.
func (r *GuestRepository) FindByNormalizedEmail(ctx context.Context, email string) (*domain.Guest, error) {
	return r.findByKey(ctx, "normalized_email", email)
}

func (r *GuestRepository) FindByNormalizedPhone(ctx context.Context, phone string) (*domain.Guest, error) {
	return r.findByKey(ctx, "normalized_phone", phone)
}

func (r *GuestRepository) FindByNormalizedName(ctx context.Context, name string) (*domain.Guest, error) {
	return r.findByKey(ctx, "normalized_name", name)
}

func (r *GuestRepository) findByKey(ctx context.Context, column, value string) (*domain.Guest, error) {
	if value == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var m guestModel
	tx := r.db.WithContext(ctx).
		Where(column+" = ?", value).
		Order("updated_at DESC").
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainGuest(m), nil
}

// AddStayOnce increments the guest's lifetime stats for one booking inside
// a transaction, guarded by the counted-booking set. Returns false without
// touching the record when the booking was already counted.
func (r *GuestRepository) AddStayOnce(ctx context.Context, guestID, bookingID string, nights int, stayEnd string) (bool, error) {
	counted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m guestModel
		if err := tx.First(&m, "id = ?", guestID).Error; err != nil {
			return err
		}
		g := toDomainGuest(m)
		if g.HasCountedBooking(bookingID) {
			return nil
		}
		g.StayCount++
		g.LifetimeNights += nights
		if stayEnd > g.LastStayEnd {
			g.LastStayEnd = stayEnd
		}
		g.LastBookingID = bookingID
		g.CountedBookingIDs = append(g.CountedBookingIDs, bookingID)
		g.UpdatedAt = time.Now()

		updated := toGuestModel(g)
		if err := tx.Save(&updated).Error; err != nil {
			return err
		}
		counted = true
		return nil
	})
	return counted, err
}

func encodeStrings(vals []string) string {
	if len(vals) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(vals)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeStrings(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var vals []string
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		return nil
	}
	return vals
}
