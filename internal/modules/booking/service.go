package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"coliving/internal/dateutil"
	"coliving/internal/domain"
	"coliving/internal/pkg/ids"
	"coliving/internal/pkg/validator"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var validStatuses = map[domain.BookingStatus]bool{
	domain.BookingPending:    true,
	domain.BookingConfirmed:  true,
	domain.BookingCheckedIn:  true,
	domain.BookingCheckedOut: true,
	domain.BookingCancelled:  true,
	domain.BookingCompleted:  true,
}

type Service struct {
	bookings BookingRepository
	guests   GuestResolver
	events   Broadcaster

	confirmTimeout time.Duration
	confirmPoll    time.Duration
}

func NewService(bookings BookingRepository, guests GuestResolver, events Broadcaster, confirmTimeout, confirmPoll time.Duration) *Service {
	if confirmTimeout <= 0 {
		confirmTimeout = 5 * time.Second
	}
	if confirmPoll <= 0 {
		confirmPoll = 200 * time.Millisecond
	}
	return &Service{
		bookings:       bookings,
		guests:         guests,
		events:         events,
		confirmTimeout: confirmTimeout,
		confirmPoll:    confirmPoll,
	}
}

// CreateBooking validates the draft, runs the conflict detector against the
// room's active bookings, persists, resolves the guest, and waits for the
// write to be observable before reporting success.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	draft, err := s.draftFromRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.bookings.ListActiveByRoom(ctx, draft.RoomID)
	if err != nil {
		return nil, err
	}
	if res := CheckConflict(*draft, existing, ""); res.Conflict {
		if res.ConflictingBooking == nil {
			return nil, ErrInvalidDates
		}
		return nil, &ConflictError{Result: res}
	}

	draft.ID = ids.New()
	draft.Status = domain.BookingPending
	draft.CreatedAt = time.Now()
	draft.UpdatedAt = draft.CreatedAt

	if err := s.bookings.Create(ctx, draft); err != nil {
		if isOverlapConstraint(err) {
			// A racing save landed first; the store-level exclusion
			// constraint caught it.
			return nil, &ConflictError{Result: ConflictResult{
				Conflict: true,
				Reason:   "room was booked concurrently for these dates",
			}}
		}
		return nil, err
	}

	if err := s.confirmWrite(ctx, draft.ID); err != nil {
		return nil, err
	}

	s.resolveGuest(ctx, draft, req.AllowNameMatch)
	s.publish("booking", "created", draft.ID)
	return draft, nil
}

// UpdateBooking re-validates and re-runs the conflict check excluding the
// booking's own interval, then saves.
func (s *Service) UpdateBooking(ctx context.Context, id string, req CreateBookingRequest) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	draft, err := s.draftFromRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.bookings.ListActiveByRoom(ctx, draft.RoomID)
	if err != nil {
		return nil, err
	}
	if res := CheckConflict(*draft, existing, id); res.Conflict {
		if res.ConflictingBooking == nil {
			return nil, ErrInvalidDates
		}
		return nil, &ConflictError{Result: res}
	}

	draft.ID = current.ID
	draft.Status = current.Status
	draft.GuestID = current.GuestID
	draft.CreatedAt = current.CreatedAt
	draft.UpdatedAt = time.Now()

	if err := s.bookings.Update(ctx, draft); err != nil {
		if isOverlapConstraint(err) {
			return nil, &ConflictError{Result: ConflictResult{
				Conflict: true,
				Reason:   "room was booked concurrently for these dates",
			}}
		}
		return nil, err
	}

	s.resolveGuest(ctx, draft, req.AllowNameMatch)
	s.publish("booking", "updated", draft.ID)
	return draft, nil
}

// CancelBooking is the logical delete: the record stays, the room frees up.
func (s *Service) CancelBooking(ctx context.Context, id string) error {
	if err := s.bookings.UpdateStatus(ctx, id, domain.BookingCancelled); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.publish("booking", "cancelled", id)
	return nil
}

// UpdateStatus moves the booking through its lifecycle. A transition into
// checked-out (or the legacy completed) also counts the stay into the
// guest's lifetime stats, exactly once.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if !validStatuses[status] {
		return nil, ErrValidation
	}
	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.StayEnded() && s.guests != nil {
		res := s.guests.UpdateStatsFromBooking(ctx, *b)
		if !res.OK {
			log.Printf("booking_status booking_id=%s guest_stats_skipped message=%q", id, res.Message)
		}
	}

	s.publish("booking", "updated", id)
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// OccupiedDates returns the room's blocked calendar days for the
// date-picker, over the half-open occupancy intervals.
func (s *Service) OccupiedDates(ctx context.Context, roomID, excludeID string) (map[string]bool, error) {
	bookings, err := s.bookings.ListActiveByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return dateutil.OccupiedDates(bookings, roomID, excludeID), nil
}

// draftFromRequest applies the form-level rules: the direct channel needs a
// chosen payment status, any other channel carries none, and the stay
// category (with its long-term and weekly-cleaning consequences) is derived
// from the night count unless explicitly overridden.
func (s *Service) draftFromRequest(req CreateBookingRequest) (*domain.Booking, error) {
	channel := domain.BookingChannel(req.Channel)
	payment := domain.PaymentStatus(req.PaymentStatus)
	switch channel {
	case domain.ChannelDirect:
		if payment != domain.PaymentPaid && payment != domain.PaymentUnpaid {
			return nil, ErrPaymentStatusRequired
		}
	case domain.ChannelAirbnb, domain.ChannelColiving:
		payment = domain.PaymentNone
	default:
		return nil, ErrValidation
	}

	nights := dateutil.CalculateNights(req.CheckIn, req.CheckOut)
	category := domain.StayCategory(req.StayCategory)
	if category == "" {
		category = domain.StayCategoryForNights(nights)
	}

	weeklyDay := req.WeeklyCleaningDay
	if category == domain.StayShort {
		weeklyDay = ""
	}

	total := req.TotalPrice
	if total == 0 {
		total = float64(nights) * req.NightlyPrice
	}

	b := &domain.Booking{
		GuestName:         req.GuestName,
		GuestEmail:        req.GuestEmail,
		GuestPhone:        req.GuestPhone,
		RoomID:            req.RoomID,
		CheckIn:           req.CheckIn,
		CheckOut:          req.CheckOut,
		NightlyPrice:      req.NightlyPrice,
		TotalPrice:        total,
		StayCategory:      category,
		IsLongTerm:        category != domain.StayShort,
		WeeklyCleaningDay: weeklyDay,
		EarlyCheckIn:      req.EarlyCheckIn,
		Channel:           channel,
		PaymentStatus:     payment,
		Notes:             req.Notes,
	}
	if errs := validator.Validate(b); errs != nil {
		return nil, ErrValidation
	}
	return b, nil
}

// confirmWrite polls the store until the freshly written booking is
// observable, surfacing a distinct retryable error when the window closes
// without it.
func (s *Service) confirmWrite(ctx context.Context, id string) error {
	deadline := time.Now().Add(s.confirmTimeout)
	for {
		if _, err := s.bookings.GetByID(ctx, id); err == nil {
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if time.Now().After(deadline) {
			return ErrConfirmTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.confirmPoll):
		}
	}
}

// resolveGuest links the booking to its canonical guest. Resolution
// failures never fail the save.
func (s *Service) resolveGuest(ctx context.Context, b *domain.Booking, allowNameMatch bool) {
	if s.guests == nil {
		return
	}
	res, err := s.guests.ResolveForBooking(ctx, *b, allowNameMatch)
	if err != nil {
		log.Printf("booking_save booking_id=%s guest_resolution_failed error=%q", b.ID, err.Error())
		return
	}
	if res.GuestID == b.GuestID {
		return
	}
	b.GuestID = res.GuestID
	if err := s.bookings.SetGuestID(ctx, b.ID, res.GuestID); err != nil {
		log.Printf("booking_save booking_id=%s guest_link_failed error=%q", b.ID, err.Error())
	}
}

func (s *Service) publish(entity, action, id string) {
	if s.events != nil {
		s.events.Publish(entity, action, id)
	}
}

// isOverlapConstraint recognizes the PostgreSQL exclusion/unique violation
// raised by idx_no_overlap.
func isOverlapConstraint(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return (pgErr.Code == "23P01" || pgErr.Code == "23505") && pgErr.ConstraintName == "idx_no_overlap"
	}
	return false
}
