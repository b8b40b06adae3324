package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/cinemabooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreatePending(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByOwner(ctx context.Context, owner string) ([]domain.Booking, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ConfirmPending(ctx context.Context, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) DeletePending(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepository) ExpirePendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordBookingCreated()   { m.Called() }
func (m *MockMetrics) RecordBookingConfirmed() { m.Called() }
func (m *MockMetrics) RecordBookingDeleted()   { m.Called() }

func (m *MockMetrics) RecordBookingsExpired(count int) {
	m.Called(count)
}

func newTestService(repo *MockBookingRepository, producer *MockProducer) *BookingService {
	return &BookingService{
		bookings:     repo,
		producer:     producer,
		bookingTopic: "booking_topic",
		holdTTL:      15 * time.Minute,
	}
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockProducer)

	ctx := context.Background()
	input := CreateBookingInput{
		Owner:         "alice",
		ScreeningTime: "15:00",
		Seats:         []string{"2"},
	}

	mockRepo.On("CreatePending", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(nil).Once()

	created, err := service.CreateBooking(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotEmpty(t, created.BookingID)
	assert.Equal(t, domain.BookingStatusPending, created.Status)
	assert.Equal(t, "alice", created.Owner)
	assert.Equal(t, "15:00", created.ScreeningTime)
	assert.Equal(t, []string{"2"}, created.Seats)
	assert.True(t, created.ExpiresAt.After(time.Now()))

	mockRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_ValidationErrors(t *testing.T) {
	service := &BookingService{holdTTL: 15 * time.Minute}
	ctx := context.Background()

	testCases := []struct {
		name        string
		input       CreateBookingInput
		expectedErr string
	}{
		{
			name:        "Empty owner",
			input:       CreateBookingInput{ScreeningTime: "15:00", Seats: []string{"2"}},
			expectedErr: "owner is required",
		},
		{
			name:        "Empty screening time",
			input:       CreateBookingInput{Owner: "alice", Seats: []string{"2"}},
			expectedErr: "screening time is required",
		},
		{
			name:        "No seats",
			input:       CreateBookingInput{Owner: "alice", ScreeningTime: "15:00"},
			expectedErr: "at least one seat is required",
		},
		{
			name:        "Blank seat token",
			input:       CreateBookingInput{Owner: "alice", ScreeningTime: "15:00", Seats: []string{""}},
			expectedErr: "seat identifier must not be empty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			created, err := service.CreateBooking(ctx, tc.input)
			assert.Error(t, err)
			assert.Nil(t, created)
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

func TestBookingService_CreateBooking_RepositoryError(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockProducer)

	ctx := context.Background()
	expectedErr := errors.New("database error")
	mockRepo.On("CreatePending", ctx, mock.Anything).Return(expectedErr).Once()

	created, err := service.CreateBooking(ctx, CreateBookingInput{
		Owner:         "alice",
		ScreeningTime: "15:00",
		Seats:         []string{"2"},
	})

	assert.Error(t, err)
	assert.Nil(t, created)
	assert.Equal(t, expectedErr, err)

	mockRepo.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_ConfirmBooking_Success(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockProducer)

	ctx := context.Background()
	bookingID := "booking-123"

	confirmed := &domain.Booking{
		ID:            1,
		BookingID:     bookingID,
		Owner:         "alice",
		ScreeningTime: "15:00",
		Seats:         []string{"2"},
		Status:        domain.BookingStatusConfirmed,
		ExpiresAt:     time.Now().Add(15 * time.Minute),
	}

	mockRepo.On("ConfirmPending", ctx, bookingID).Return(confirmed, nil).Once()
	mockProducer.On("Publish", ctx, "booking_topic", bookingID, mock.Anything).Return(nil).Once()

	result, err := service.ConfirmBooking(ctx, bookingID)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, domain.BookingStatusConfirmed, result.Status)

	mockRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_ConfirmBooking_NotFound(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockProducer)

	ctx := context.Background()
	mockRepo.On("ConfirmPending", ctx, "missing").Return(nil, domain.ErrNotFound).Once()

	result, err := service.ConfirmBooking(ctx, "missing")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mockRepo.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_ConfirmBooking_AlreadyExpired(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockProducer)

	ctx := context.Background()
	mockRepo.On("ConfirmPending", ctx, "expired-booking").Return(nil, domain.ErrInvalidState).Once()

	result, err := service.ConfirmBooking(ctx, "expired-booking")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	mockRepo.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_DeleteBooking_Success(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockProducer)

	ctx := context.Background()
	bookingID := "booking-456"

	pending := &domain.Booking{
		ID:            1,
		BookingID:     bookingID,
		Owner:         "alice",
		ScreeningTime: "15:00",
		Seats:         []string{"2"},
		Status:        domain.BookingStatusPending,
	}

	mockRepo.On("GetByBookingID", ctx, bookingID).Return(pending, nil).Once()
	mockRepo.On("DeletePending", ctx, bookingID).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_topic", bookingID, mock.Anything).Return(nil).Once()

	err := service.DeleteBooking(ctx, bookingID)

	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_DeleteBooking_NotFound(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockProducer)

	ctx := context.Background()
	mockRepo.On("GetByBookingID", ctx, "missing").Return(nil, domain.ErrNotFound).Once()

	err := service.DeleteBooking(ctx, "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "DeletePending")
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_DeleteBooking_NotPending(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockProducer)

	ctx := context.Background()
	bookingID := "confirmed-booking"

	confirmed := &domain.Booking{
		ID:        1,
		BookingID: bookingID,
		Owner:     "alice",
		Status:    domain.BookingStatusConfirmed,
	}

	mockRepo.On("GetByBookingID", ctx, bookingID).Return(confirmed, nil).Once()
	mockRepo.On("DeletePending", ctx, bookingID).Return(domain.ErrInvalidState).Once()

	err := service.DeleteBooking(ctx, bookingID)

	assert.ErrorIs(t, err, domain.ErrInvalidState)

	mockRepo.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_ListBookings(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	service := newTestService(mockRepo, nil)

	ctx := context.Background()
	bookings := []domain.Booking{
		{ID: 1, BookingID: "b1", Owner: "alice", ScreeningTime: "14:00", Seats: []string{"1"}, Status: domain.BookingStatusPending},
		{ID: 2, BookingID: "b2", Owner: "alice", ScreeningTime: "15:00", Seats: []string{"2", "3"}, Status: domain.BookingStatusConfirmed},
	}

	mockRepo.On("ListByOwner", ctx, "alice").Return(bookings, nil).Once()

	result, err := service.ListBookings(ctx, "alice")

	assert.NoError(t, err)
	assert.Equal(t, bookings, result)

	mockRepo.AssertExpectations(t)
}

func TestBookingService_ExpirePendingBookings_Success(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	mockMetrics := &MockMetrics{}
	service := newTestService(mockRepo, mockProducer)
	service.metrics = mockMetrics

	ctx := context.Background()
	expired := []domain.Booking{
		{ID: 1, BookingID: "b1", Owner: "alice", Status: domain.BookingStatusExpired, ExpiresAt: time.Now().Add(-time.Hour)},
		{ID: 2, BookingID: "b2", Owner: "bob", Status: domain.BookingStatusExpired, ExpiresAt: time.Now().Add(-2 * time.Hour)},
	}

	mockRepo.On("ExpirePendingBefore", ctx, mock.AnythingOfType("time.Time")).Return(expired, nil).Once()
	mockMetrics.On("RecordBookingsExpired", 2).Once()
	mockProducer.On("Publish", ctx, "booking_topic", "b1", mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_topic", "b2", mock.Anything).Return(nil).Once()

	result, err := service.ExpirePendingBookings(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expired, result)

	mockRepo.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_ExpirePendingBookings_Empty(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockProducer)

	ctx := context.Background()
	mockRepo.On("ExpirePendingBefore", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Booking{}, nil).Once()

	result, err := service.ExpirePendingBookings(ctx)

	assert.NoError(t, err)
	assert.Empty(t, result)

	mockRepo.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_ExpirePendingBookings_Idempotent(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockProducer)

	ctx := context.Background()
	expired := []domain.Booking{
		{ID: 1, BookingID: "b1", Owner: "alice", Status: domain.BookingStatusExpired},
	}

	// First sweep transitions the booking, the second finds nothing left.
	mockRepo.On("ExpirePendingBefore", ctx, mock.AnythingOfType("time.Time")).Return(expired, nil).Once()
	mockRepo.On("ExpirePendingBefore", ctx, mock.AnythingOfType("time.Time")).Return([]domain.Booking{}, nil).Once()
	mockProducer.On("Publish", ctx, "booking_topic", "b1", mock.Anything).Return(nil).Once()

	first, err := service.ExpirePendingBookings(ctx)
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := service.ExpirePendingBookings(ctx)
	assert.NoError(t, err)
	assert.Empty(t, second)

	mockRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_ExpirePendingBookings_Error(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockProducer)

	ctx := context.Background()
	expectedErr := errors.New("database error")
	mockRepo.On("ExpirePendingBefore", ctx, mock.AnythingOfType("time.Time")).Return(nil, expectedErr).Once()

	result, err := service.ExpirePendingBookings(ctx)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, expectedErr, err)

	mockRepo.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_Publish_NoProducer(t *testing.T) {
	service := &BookingService{}

	err := service.publish(context.Background(), "test_event", &domain.Booking{BookingID: "b1"})
	assert.NoError(t, err)
}

func TestBookingService_Publish_NoTopic(t *testing.T) {
	mockProducer := &MockProducer{}
	service := &BookingService{producer: mockProducer}

	err := service.publish(context.Background(), "test_event", &domain.Booking{BookingID: "b1"})
	assert.NoError(t, err)

	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_Publish_WithNotifications(t *testing.T) {
	mockProducer := &MockProducer{}
	service := &BookingService{
		producer:           mockProducer,
		bookingTopic:       "booking_topic",
		notificationsTopic: "notifications_topic",
	}

	ctx := context.Background()
	booking := &domain.Booking{
		BookingID:     "b1",
		Owner:         "alice",
		ScreeningTime: "15:00",
		Seats:         []string{"2"},
		Status:        domain.BookingStatusPending,
		ExpiresAt:     time.Now().Add(15 * time.Minute),
	}

	mockProducer.On("Publish", ctx, "booking_topic", "b1", mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "notifications_topic", "b1", mock.Anything).Return(nil).Once()

	err := service.publish(ctx, "test_event", booking)
	assert.NoError(t, err)

	mockProducer.AssertExpectations(t)
}

func TestNewBookingService_WithOptions(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	mockMetrics := &MockMetrics{}

	service := NewBookingService(
		mockRepo,
		mockProducer,
		"booking_topic",
		15*time.Minute,
		WithNotificationsTopic("notifications_topic"),
		WithMetrics(mockMetrics),
	)

	assert.NotNil(t, service)
	assert.Equal(t, "notifications_topic", service.notificationsTopic)
	assert.Equal(t, mockMetrics, service.metrics)
	assert.Equal(t, 15*time.Minute, service.holdTTL)
}
