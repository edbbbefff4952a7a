package guest

import (
	"context"

	"coliving/internal/domain"
)

// GuestRepository does point lookups on normalized identity keys and owns
// the transactional stats increment.
type GuestRepository interface {
	Create(ctx context.Context, g *domain.Guest) error
	Update(ctx context.Context, g *domain.Guest) error
	GetByID(ctx context.Context, id string) (*domain.Guest, error)
	ListAll(ctx context.Context) ([]domain.Guest, error)
	FindByNormalizedEmail(ctx context.Context, email string) (*domain.Guest, error)
	FindByNormalizedPhone(ctx context.Context, phone string) (*domain.Guest, error)
	FindByNormalizedName(ctx context.Context, name string) (*domain.Guest, error)
	AddStayOnce(ctx context.Context, guestID, bookingID string, nights int, stayEnd string) (bool, error)
}

// BookingReader exposes the prior bookings needed for the returning-guest
// fallback check.
type BookingReader interface {
	ListByGuest(ctx context.Context, guestID string) ([]domain.Booking, error)
}
