package housekeeping

import (
	"context"
	"testing"

	"coliving/internal/config"
	"coliving/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockRoomStatusRepository struct {
	mock.Mock
}

func (m *MockRoomStatusRepository) GetAll(ctx context.Context) (map[string]domain.RoomStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.RoomStatus), args.Error(1)
}

func (m *MockRoomStatusRepository) Upsert(ctx context.Context, s domain.RoomStatus) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRoomStatusRepository) MarkClean(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func testCatalog(t *testing.T) *config.Catalog {
	t.Helper()
	c, err := config.NewCatalog([]domain.Property{
		{ID: "casa-norte", Name: "Casa Norte", Rooms: []domain.Room{
			{ID: "r1", Name: "Room 101"},
		}},
	})
	require.NoError(t, err)
	return c
}

func TestTasksForDate_InvalidDate(t *testing.T) {
	svc := NewService(testCatalog(t), new(MockBookingReader), new(MockRoomStatusRepository), nil)

	_, err := svc.TasksForDate(context.Background(), "03/05/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestPlanForDate_BuildsViewWithMessage(t *testing.T) {
	bookings := new(MockBookingReader)
	statuses := new(MockRoomStatusRepository)
	svc := NewService(testCatalog(t), bookings, statuses, nil)

	bookings.On("ListAll", mock.Anything).Return([]domain.Booking{
		{ID: "b1", RoomID: "r1", GuestName: "Jane", CheckIn: "2024-03-01", CheckOut: "2024-03-05", Status: domain.BookingConfirmed},
	}, nil)
	statuses.On("GetAll", mock.Anything).Return(map[string]domain.RoomStatus{}, nil)

	view, err := svc.PlanForDate(context.Background(), "2024-03-05")

	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", view.Date)
	require.Len(t, view.Tasks, 1)
	require.Len(t, view.Plan.Normal, 1)
	assert.Contains(t, view.Message, "Room 101")
}

func TestSetRoomStatus_UnknownRoom(t *testing.T) {
	svc := NewService(testCatalog(t), new(MockBookingReader), new(MockRoomStatusRepository), nil)

	err := svc.SetRoomStatus(context.Background(), "ghost", domain.RoomDirty, "", 0)
	assert.ErrorIs(t, err, ErrUnknownRoom)
}

func TestSetRoomStatus_InvalidStatus(t *testing.T) {
	svc := NewService(testCatalog(t), new(MockBookingReader), new(MockRoomStatusRepository), nil)

	err := svc.SetRoomStatus(context.Background(), "r1", "sparkling", "", 0)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetRoomStatus_AppliesDefaults(t *testing.T) {
	statuses := new(MockRoomStatusRepository)
	svc := NewService(testCatalog(t), new(MockBookingReader), statuses, nil)

	statuses.On("Upsert", mock.Anything, domain.RoomStatus{
		RoomID:     "r1",
		Status:     domain.RoomDirty,
		AssignedTo: domain.UnassignedStaff,
		Priority:   domain.DefaultPriority,
	}).Return(nil)

	require.NoError(t, svc.SetRoomStatus(context.Background(), "r1", domain.RoomDirty, "", 0))
	statuses.AssertExpectations(t)
}

func TestMarkRoomClean(t *testing.T) {
	statuses := new(MockRoomStatusRepository)
	svc := NewService(testCatalog(t), new(MockBookingReader), statuses, nil)

	statuses.On("MarkClean", mock.Anything, "r1").Return(nil)
	require.NoError(t, svc.MarkRoomClean(context.Background(), "r1"))

	err := svc.MarkRoomClean(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUnknownRoom)
}
