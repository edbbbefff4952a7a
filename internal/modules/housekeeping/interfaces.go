package housekeeping

import (
	"context"

	"coliving/internal/domain"
)

// BookingReader supplies the booking snapshot the deriver runs over.
type BookingReader interface {
	ListAll(ctx context.Context) ([]domain.Booking, error)
}

// RoomStatusRepository owns the manual per-room housekeeping state.
type RoomStatusRepository interface {
	GetAll(ctx context.Context) (map[string]domain.RoomStatus, error)
	Upsert(ctx context.Context, s domain.RoomStatus) error
	MarkClean(ctx context.Context, roomID string) error
}

// Broadcaster pushes an entity-change event to connected dashboard
// sessions after a successful mutation.
type Broadcaster interface {
	Publish(entity, action, id string)
}
