package booking

import (
	"context"

	"coliving/internal/domain"
	"coliving/internal/modules/guest"
)

// BookingRepository is the store behind booking saves and queries.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	Update(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListActiveByRoom(ctx context.Context, roomID string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	SetGuestID(ctx context.Context, id, guestID string) error
}

// GuestResolver deduplicates the guest behind a booking and keeps lifetime
// stats. Runs once per booking save; failures are soft.
type GuestResolver interface {
	ResolveForBooking(ctx context.Context, draft domain.Booking, allowNameMatch bool) (*guest.Resolution, error)
	UpdateStatsFromBooking(ctx context.Context, b domain.Booking) guest.StatsResult
}

// Broadcaster pushes an entity-change event to connected dashboard
// sessions after a successful mutation.
type Broadcaster interface {
	Publish(entity, action, id string)
}
