package booking

import (
	"context"
	"testing"
	"time"

	"coliving/internal/domain"
	"coliving/internal/modules/guest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListActiveByRoom(ctx context.Context, roomID string) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) SetGuestID(ctx context.Context, id, guestID string) error {
	args := m.Called(ctx, id, guestID)
	return args.Error(0)
}

type MockGuestResolver struct {
	mock.Mock
}

func (m *MockGuestResolver) ResolveForBooking(ctx context.Context, draft domain.Booking, allowNameMatch bool) (*guest.Resolution, error) {
	args := m.Called(ctx, draft, allowNameMatch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guest.Resolution), args.Error(1)
}

func (m *MockGuestResolver) UpdateStatsFromBooking(ctx context.Context, b domain.Booking) guest.StatsResult {
	args := m.Called(ctx, b)
	return args.Get(0).(guest.StatsResult)
}

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Publish(entity, action, id string) {
	m.Called(entity, action, id)
}

func newTestService(bookings *MockBookingRepository, guests *MockGuestResolver, events *MockBroadcaster) *Service {
	return NewService(bookings, guests, events, time.Second, time.Millisecond)
}

func TestService_CreateBooking_Success(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGuests := new(MockGuestResolver)
	mockEvents := new(MockBroadcaster)

	mockBookings.On("ListActiveByRoom", mock.Anything, "r1").Return([]domain.Booking{}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockBookings.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Booking{ID: "x"}, nil)
	mockGuests.On("ResolveForBooking", mock.Anything, mock.Anything, false).
		Return(&guest.Resolution{GuestID: "g1", Created: true}, nil)
	mockBookings.On("SetGuestID", mock.Anything, mock.Anything, "g1").Return(nil)
	mockEvents.On("Publish", "booking", "created", mock.Anything).Return()

	service := newTestService(mockBookings, mockGuests, mockEvents)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		GuestName:    "Jane Doe",
		GuestEmail:   "jane@example.com",
		RoomID:       "r1",
		CheckIn:      "2024-03-01",
		CheckOut:     "2024-03-05",
		NightlyPrice: 50,
		Channel:      "airbnb",
	})

	require.NoError(t, err)
	require.NotNil(t, b)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 200.0, b.TotalPrice)
	assert.Equal(t, domain.StayShort, b.StayCategory)
	assert.False(t, b.IsLongTerm)
	assert.Equal(t, "g1", b.GuestID)
	mockEvents.AssertCalled(t, "Publish", "booking", "created", b.ID)
}

func TestService_CreateBooking_Conflict(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	existing := []domain.Booking{
		{ID: "b1", RoomID: "r1", GuestName: "G1", CheckIn: "2024-03-01", CheckOut: "2024-03-05", Status: domain.BookingConfirmed},
	}
	mockBookings.On("ListActiveByRoom", mock.Anything, "r1").Return(existing, nil)

	service := newTestService(mockBookings, new(MockGuestResolver), new(MockBroadcaster))

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		GuestName: "New Guest",
		RoomID:    "r1",
		CheckIn:   "2024-03-04",
		CheckOut:  "2024-03-06",
		Channel:   "airbnb",
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "b1", conflict.Result.ConflictingBooking.ID)
	assert.Contains(t, conflict.Result.Reason, "G1")
	mockBookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_BackToBackAccepted(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGuests := new(MockGuestResolver)
	mockEvents := new(MockBroadcaster)

	existing := []domain.Booking{
		{ID: "b1", RoomID: "r1", GuestName: "G1", CheckIn: "2024-03-01", CheckOut: "2024-03-05", Status: domain.BookingConfirmed},
	}
	mockBookings.On("ListActiveByRoom", mock.Anything, "r1").Return(existing, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockBookings.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Booking{ID: "x"}, nil)
	mockGuests.On("ResolveForBooking", mock.Anything, mock.Anything, false).
		Return(&guest.Resolution{GuestID: "g2"}, nil)
	mockBookings.On("SetGuestID", mock.Anything, mock.Anything, "g2").Return(nil)
	mockEvents.On("Publish", "booking", "created", mock.Anything).Return()

	service := newTestService(mockBookings, mockGuests, mockEvents)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		GuestName: "Next Guest",
		RoomID:    "r1",
		CheckIn:   "2024-03-05",
		CheckOut:  "2024-03-08",
		Channel:   "coliving",
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", b.CheckIn)
}

func TestService_CreateBooking_InvalidDates(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockBookings.On("ListActiveByRoom", mock.Anything, "r1").Return([]domain.Booking{}, nil)

	service := newTestService(mockBookings, new(MockGuestResolver), new(MockBroadcaster))

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		GuestName: "Jane",
		RoomID:    "r1",
		CheckIn:   "2024-03-05",
		CheckOut:  "2024-03-05",
		Channel:   "airbnb",
	})
	assert.ErrorIs(t, err, ErrInvalidDates)
}

func TestService_CreateBooking_RejectsMissingRequiredFields(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockGuestResolver), new(MockBroadcaster))

	// No guest name.
	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		RoomID:   "r1",
		CheckIn:  "2024-03-01",
		CheckOut: "2024-03-05",
		Channel:  "airbnb",
	})
	assert.ErrorIs(t, err, ErrValidation)

	// No dates.
	_, err = service.CreateBooking(context.Background(), CreateBookingRequest{
		GuestName: "Jane",
		RoomID:    "r1",
		Channel:   "airbnb",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateBooking_DirectChannelNeedsPaymentStatus(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockGuestResolver), new(MockBroadcaster))

	_, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		GuestName: "Jane",
		RoomID:    "r1",
		CheckIn:   "2024-03-01",
		CheckOut:  "2024-03-05",
		Channel:   "direct",
	})
	assert.ErrorIs(t, err, ErrPaymentStatusRequired)
}

func TestService_CreateBooking_NonDirectChannelClearsPaymentStatus(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGuests := new(MockGuestResolver)
	mockEvents := new(MockBroadcaster)

	mockBookings.On("ListActiveByRoom", mock.Anything, "r1").Return([]domain.Booking{}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockBookings.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Booking{ID: "x"}, nil)
	mockGuests.On("ResolveForBooking", mock.Anything, mock.Anything, false).
		Return(&guest.Resolution{GuestID: "g1"}, nil)
	mockBookings.On("SetGuestID", mock.Anything, mock.Anything, "g1").Return(nil)
	mockEvents.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return()

	service := newTestService(mockBookings, mockGuests, mockEvents)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		GuestName:     "Jane",
		RoomID:        "r1",
		CheckIn:       "2024-03-01",
		CheckOut:      "2024-03-05",
		Channel:       "airbnb",
		PaymentStatus: "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentNone, b.PaymentStatus)
}

func TestService_CreateBooking_LongStayDerivation(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGuests := new(MockGuestResolver)
	mockEvents := new(MockBroadcaster)

	mockBookings.On("ListActiveByRoom", mock.Anything, "r1").Return([]domain.Booking{}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockBookings.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Booking{ID: "x"}, nil)
	mockGuests.On("ResolveForBooking", mock.Anything, mock.Anything, false).
		Return(&guest.Resolution{GuestID: "g1"}, nil)
	mockBookings.On("SetGuestID", mock.Anything, mock.Anything, "g1").Return(nil)
	mockEvents.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return()

	service := newTestService(mockBookings, mockGuests, mockEvents)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		GuestName:         "Tom Long",
		RoomID:            "r1",
		CheckIn:           "2024-03-01",
		CheckOut:          "2024-03-20",
		Channel:           "coliving",
		WeeklyCleaningDay: "monday",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StayMedium, b.StayCategory)
	assert.True(t, b.IsLongTerm)
	assert.Equal(t, "monday", b.WeeklyCleaningDay)
}

func TestService_CreateBooking_ShortStayDropsWeeklyDay(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGuests := new(MockGuestResolver)
	mockEvents := new(MockBroadcaster)

	mockBookings.On("ListActiveByRoom", mock.Anything, "r1").Return([]domain.Booking{}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockBookings.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Booking{ID: "x"}, nil)
	mockGuests.On("ResolveForBooking", mock.Anything, mock.Anything, false).
		Return(&guest.Resolution{GuestID: "g1"}, nil)
	mockBookings.On("SetGuestID", mock.Anything, mock.Anything, "g1").Return(nil)
	mockEvents.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return()

	service := newTestService(mockBookings, mockGuests, mockEvents)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		GuestName:         "Jane",
		RoomID:            "r1",
		CheckIn:           "2024-03-01",
		CheckOut:          "2024-03-03",
		Channel:           "airbnb",
		WeeklyCleaningDay: "monday",
	})
	require.NoError(t, err)
	assert.Empty(t, b.WeeklyCleaningDay)
}

func TestService_UpdateStatus_CheckoutCountsStay(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGuests := new(MockGuestResolver)
	mockEvents := new(MockBroadcaster)

	checkedOut := &domain.Booking{
		ID:       "b1",
		GuestID:  "g1",
		CheckIn:  "2024-03-01",
		CheckOut: "2024-03-05",
		Status:   domain.BookingCheckedOut,
	}
	mockBookings.On("UpdateStatus", mock.Anything, "b1", domain.BookingCheckedOut).Return(nil)
	mockBookings.On("GetByID", mock.Anything, "b1").Return(checkedOut, nil)
	mockGuests.On("UpdateStatsFromBooking", mock.Anything, *checkedOut).
		Return(guest.StatsResult{OK: true, Counted: true})
	mockEvents.On("Publish", "booking", "updated", "b1").Return()

	service := newTestService(mockBookings, mockGuests, mockEvents)

	b, err := service.UpdateStatus(context.Background(), "b1", domain.BookingCheckedOut)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedOut, b.Status)
	mockGuests.AssertCalled(t, "UpdateStatsFromBooking", mock.Anything, *checkedOut)
}

func TestService_UpdateStatus_RejectsUnknownValue(t *testing.T) {
	service := newTestService(new(MockBookingRepository), new(MockGuestResolver), new(MockBroadcaster))

	_, err := service.UpdateStatus(context.Background(), "b1", "vanished")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_CreateBooking_GuestResolutionFailureIsSoft(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockGuests := new(MockGuestResolver)
	mockEvents := new(MockBroadcaster)

	mockBookings.On("ListActiveByRoom", mock.Anything, "r1").Return([]domain.Booking{}, nil)
	mockBookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockBookings.On("GetByID", mock.Anything, mock.Anything).Return(&domain.Booking{ID: "x"}, nil)
	mockGuests.On("ResolveForBooking", mock.Anything, mock.Anything, false).
		Return(nil, assert.AnError)
	mockEvents.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return()

	service := newTestService(mockBookings, mockGuests, mockEvents)

	b, err := service.CreateBooking(context.Background(), CreateBookingRequest{
		GuestName: "Jane",
		RoomID:    "r1",
		CheckIn:   "2024-03-01",
		CheckOut:  "2024-03-05",
		Channel:   "airbnb",
	})
	require.NoError(t, err)
	assert.Empty(t, b.GuestID)
	mockBookings.AssertNotCalled(t, "SetGuestID", mock.Anything, mock.Anything, mock.Anything)
}
