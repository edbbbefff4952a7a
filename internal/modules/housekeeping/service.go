package housekeeping

import (
	"context"

	"coliving/internal/config"
	"coliving/internal/dateutil"
	"coliving/internal/domain"
)

var validStatuses = map[domain.HousekeepingStatus]bool{
	domain.RoomClean:         true,
	domain.RoomDirty:         true,
	domain.RoomInProgress:    true,
	domain.RoomCheckoutDirty: true,
}

// PlanView is a derived day plan plus its formatted message.
type PlanView struct {
	Date    string            `json:"date"`
	Tasks   []domain.RoomTask `json:"tasks"`
	Plan    Plan              `json:"plan"`
	Message string            `json:"message"`
}

type Service struct {
	catalog  *config.Catalog
	bookings BookingReader
	statuses RoomStatusRepository
	events   Broadcaster
}

func NewService(catalog *config.Catalog, bookings BookingReader, statuses RoomStatusRepository, events Broadcaster) *Service {
	return &Service{
		catalog:  catalog,
		bookings: bookings,
		statuses: statuses,
		events:   events,
	}
}

// TasksForDate recomputes the task list from the current booking and
// room-status snapshots. Nothing is cached; every call derives from scratch.
func (s *Service) TasksForDate(ctx context.Context, date string) ([]domain.RoomTask, error) {
	if _, err := dateutil.ParseDate(date); err != nil {
		return nil, ErrInvalidDate
	}
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := s.statuses.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCleaningTasks(date, s.catalog.Rooms(), bookings, statuses), nil
}

// PlanForDate derives the tasks and splits them into display tiers with the
// shareable message.
func (s *Service) PlanForDate(ctx context.Context, date string) (*PlanView, error) {
	tasks, err := s.TasksForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return &PlanView{
		Date:    date,
		Tasks:   tasks,
		Plan:    SplitByPriority(tasks),
		Message: FormatPlanMessage(date, tasks),
	}, nil
}

// SetRoomStatus stores a manual override of the room's housekeeping state.
func (s *Service) SetRoomStatus(ctx context.Context, roomID string, status domain.HousekeepingStatus, assignedTo string, priority int) error {
	if _, ok := s.catalog.RoomByID(roomID); !ok {
		return ErrUnknownRoom
	}
	if !validStatuses[status] {
		return ErrInvalidStatus
	}
	if assignedTo == "" {
		assignedTo = domain.UnassignedStaff
	}
	if priority <= 0 {
		priority = domain.DefaultPriority
	}
	if err := s.statuses.Upsert(ctx, domain.RoomStatus{
		RoomID:     roomID,
		Status:     status,
		AssignedTo: assignedTo,
		Priority:   priority,
	}); err != nil {
		return err
	}
	s.publish("room_status", "updated", roomID)
	return nil
}

// MarkRoomClean resets the room to the clean baseline.
func (s *Service) MarkRoomClean(ctx context.Context, roomID string) error {
	if _, ok := s.catalog.RoomByID(roomID); !ok {
		return ErrUnknownRoom
	}
	if err := s.statuses.MarkClean(ctx, roomID); err != nil {
		return err
	}
	s.publish("room_status", "updated", roomID)
	return nil
}

func (s *Service) publish(entity, action, id string) {
	if s.events != nil {
		s.events.Publish(entity, action, id)
	}
}
