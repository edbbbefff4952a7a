package guest

import (
	"context"
	"errors"
	"log"
	"time"

	"coliving/internal/dateutil"
	"coliving/internal/domain"
	"coliving/internal/pkg/ids"

	"gorm.io/gorm"
)

// Returning-guest reasons.
const (
	ReasonStayCount          = "stayCount"
	ReasonPriorCompletedStay = "priorCompletedStay"
)

// Normalized holds the canonical forms of the draft's contact fields.
type Normalized struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Resolution is the outcome of matching a booking draft to a guest record.
type Resolution struct {
	GuestID         string        `json:"guest_id"`
	Guest           *domain.Guest `json:"guest"`
	Created         bool          `json:"created"`
	IsReturning     bool          `json:"is_returning"`
	ReturningReason string        `json:"returning_reason,omitempty"`
	Normalized      Normalized    `json:"normalized"`
}

// StatsResult is a soft success/failure report for a stats update. Store
// errors never escape this layer as panics or raw errors.
type StatsResult struct {
	OK      bool   `json:"ok"`
	Counted bool   `json:"counted"`
	Message string `json:"message,omitempty"`
}

type Service struct {
	guests   GuestRepository
	bookings BookingReader
}

func NewService(guests GuestRepository, bookings BookingReader) *Service {
	return &Service{guests: guests, bookings: bookings}
}

// ResolveForBooking matches the draft against existing guests by
// normalized email, then phone, then (only when allowNameMatch is set)
// name; the first hit wins. A match merges the draft's contact fields into
// the guest where the guest has none, never overwriting populated fields.
// No match creates a fresh guest with zeroed stats.
func (s *Service) ResolveForBooking(ctx context.Context, draft domain.Booking, allowNameMatch bool) (*Resolution, error) {
	norm := Normalized{
		Email: NormalizeEmail(draft.GuestEmail),
		Phone: NormalizePhone(draft.GuestPhone),
		Name:  NormalizeName(draft.GuestName),
	}
	if norm.Email == "" && norm.Phone == "" && norm.Name == "" {
		return nil, ErrNoIdentity
	}

	matched, err := s.lookup(ctx, norm, allowNameMatch)
	if err != nil {
		return nil, err
	}

	if matched == nil {
		created := &domain.Guest{
			ID:              ids.New(),
			FullName:        draft.GuestName,
			NormalizedName:  norm.Name,
			Email:           draft.GuestEmail,
			NormalizedEmail: norm.Email,
			Phone:           draft.GuestPhone,
			NormalizedPhone: norm.Phone,
			SourceChannels:  []string{string(draft.Channel)},
			Status:          domain.GuestActive,
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		}
		if err := s.guests.Create(ctx, created); err != nil {
			return nil, err
		}
		return &Resolution{
			GuestID:    created.ID,
			Guest:      created,
			Created:    true,
			Normalized: norm,
		}, nil
	}

	if mergeAbsentFields(matched, draft, norm) {
		matched.UpdatedAt = time.Now()
		if err := s.guests.Update(ctx, matched); err != nil {
			return nil, err
		}
	}

	res := &Resolution{
		GuestID:    matched.ID,
		Guest:      matched,
		Normalized: norm,
	}
	res.IsReturning, res.ReturningReason = s.returningStatus(ctx, matched, draft)
	return res, nil
}

func (s *Service) lookup(ctx context.Context, norm Normalized, allowNameMatch bool) (*domain.Guest, error) {
	type finder func(context.Context, string) (*domain.Guest, error)
	attempts := []struct {
		key  string
		find finder
	}{
		{norm.Email, s.guests.FindByNormalizedEmail},
		{norm.Phone, s.guests.FindByNormalizedPhone},
	}
	if allowNameMatch {
		attempts = append(attempts, struct {
			key  string
			find finder
		}{norm.Name, s.guests.FindByNormalizedName})
	}

	for _, a := range attempts {
		if a.key == "" {
			continue
		}
		g, err := a.find(ctx, a.key)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		return g, nil
	}
	return nil, nil
}

// mergeAbsentFields copies contact fields the guest is missing from the
// draft and unions the booking channel. Reports whether anything changed.
func mergeAbsentFields(g *domain.Guest, draft domain.Booking, norm Normalized) bool {
	changed := false
	if g.Email == "" && draft.GuestEmail != "" {
		g.Email = draft.GuestEmail
		g.NormalizedEmail = norm.Email
		changed = true
	}
	if g.Phone == "" && draft.GuestPhone != "" {
		g.Phone = draft.GuestPhone
		g.NormalizedPhone = norm.Phone
		changed = true
	}
	if g.FullName == "" && draft.GuestName != "" {
		g.FullName = draft.GuestName
		g.NormalizedName = norm.Name
		changed = true
	}
	if ch := string(draft.Channel); ch != "" && !g.HasChannel(ch) {
		g.SourceChannels = append(g.SourceChannels, ch)
		changed = true
	}
	return changed
}

// returningStatus decides whether this booking belongs to a returning
// guest: a positive stay count is authoritative, otherwise any prior stay
// that ended strictly before the new check-in counts retroactively.
func (s *Service) returningStatus(ctx context.Context, g *domain.Guest, draft domain.Booking) (bool, string) {
	if g.StayCount >= 1 {
		return true, ReasonStayCount
	}

	prior, err := s.bookings.ListByGuest(ctx, g.ID)
	if err != nil {
		log.Printf("guest_resolution guest_id=%s prior_booking_scan_failed error=%q", g.ID, err.Error())
		return false, ""
	}
	for _, b := range prior {
		if b.StayEnded() && b.CheckOut != "" && b.CheckOut < draft.CheckIn {
			return true, ReasonPriorCompletedStay
		}
	}
	return false, ""
}

// UpdateStatsFromBooking increments the guest's lifetime stats for a
// completed stay. The counted-booking guard makes it safe to call twice
// for the same booking. Failures come back as a soft result, never as a
// raised error.
func (s *Service) UpdateStatsFromBooking(ctx context.Context, b domain.Booking) StatsResult {
	if b.GuestID == "" {
		return StatsResult{OK: false, Message: "booking is not linked to a guest"}
	}
	nights := dateutil.CalculateNights(b.CheckIn, b.CheckOut)
	counted, err := s.guests.AddStayOnce(ctx, b.GuestID, b.ID, nights, b.CheckOut)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatsResult{OK: false, Message: "guest not found"}
		}
		log.Printf("guest_stats guest_id=%s booking_id=%s update_failed error=%q", b.GuestID, b.ID, err.Error())
		return StatsResult{OK: false, Message: err.Error()}
	}
	return StatsResult{OK: true, Counted: counted}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Guest, error) {
	g, err := s.guests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Guest, error) {
	return s.guests.ListAll(ctx)
}
