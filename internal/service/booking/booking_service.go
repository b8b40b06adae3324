package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/cinemabooking/internal/domain"
	"github.com/Domenick1991/cinemabooking/internal/kafka"
	"github.com/Domenick1991/cinemabooking/internal/repository"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, bookingID string) error
	ListBookings(ctx context.Context, owner string) ([]domain.Booking, error)
	ExpirePendingBookings(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Metrics interface {
	RecordBookingCreated()
	RecordBookingConfirmed()
	RecordBookingDeleted()
	RecordBookingsExpired(count int)
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	metrics            Metrics
	bookingTopic       string
	notificationsTopic string
	holdTTL            time.Duration
}

type CreateBookingInput struct {
	Owner         string   `json:"owner"`
	ScreeningTime string   `json:"screening_time"`
	Seats         []string `json:"seats"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithMetrics(m Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	producer Producer,
	bookingTopic string,
	holdTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		producer:     producer,
		bookingTopic: bookingTopic,
		holdTTL:      holdTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking persists a pending booking with a hold deadline. Seat
// availability across bookings is deliberately not checked.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if strings.TrimSpace(input.Owner) == "" {
		return nil, errors.New("owner is required")
	}
	if strings.TrimSpace(input.ScreeningTime) == "" {
		return nil, errors.New("screening time is required")
	}
	if len(input.Seats) == 0 {
		return nil, errors.New("at least one seat is required")
	}
	for _, seat := range input.Seats {
		if strings.TrimSpace(seat) == "" {
			return nil, errors.New("seat identifier must not be empty")
		}
	}

	booking := &domain.Booking{
		BookingID:     uuid.NewString(),
		Owner:         input.Owner,
		ScreeningTime: input.ScreeningTime,
		Seats:         input.Seats,
		ExpiresAt:     time.Now().Add(s.holdTTL),
	}

	if err := s.bookings.CreatePending(ctx, booking); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordBookingCreated()
	}
	if err := s.publish(ctx, "booking_created", booking); err != nil {
		logrus.WithError(err).Warnf("failed to publish booking_created event for booking %s", booking.BookingID)
	}
	return booking, nil
}

// ConfirmBooking transitions pending -> confirmed. The repository performs a
// conditional update, so a booking that already expired (or was deleted)
// cannot be confirmed.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	confirmed, err := s.bookings.ConfirmPending(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordBookingConfirmed()
	}
	if err := s.publish(ctx, "booking_confirmed", confirmed); err != nil {
		logrus.WithError(err).Warnf("failed to publish booking_confirmed event for booking %s", confirmed.BookingID)
	}
	return confirmed, nil
}

// DeleteBooking removes a booking while it is still pending. Confirmed and
// expired bookings stay on record.
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	current, err := s.bookings.GetByBookingID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.bookings.DeletePending(ctx, bookingID); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordBookingDeleted()
	}
	if err := s.publish(ctx, "booking_deleted", current); err != nil {
		logrus.WithError(err).Warnf("failed to publish booking_deleted event for booking %s", current.BookingID)
	}
	return nil
}

func (s *BookingService) ListBookings(ctx context.Context, owner string) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, owner)
}

// ExpirePendingBookings transitions every pending booking whose hold deadline
// has passed. The update is conditioned on the stored status, so a booking
// confirmed or deleted in the meantime is left alone. Safe to run repeatedly.
func (s *BookingService) ExpirePendingBookings(ctx context.Context) ([]domain.Booking, error) {
	expired, err := s.bookings.ExpirePendingBefore(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	if s.metrics != nil && len(expired) > 0 {
		s.metrics.RecordBookingsExpired(len(expired))
	}
	for _, b := range expired {
		if err := s.publish(ctx, "booking_expired", &b); err != nil {
			logrus.WithError(err).Warnf("failed to publish booking_expired event for booking %s", b.BookingID)
		}
	}
	return expired, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		BookingID:     booking.BookingID,
		Owner:         booking.Owner,
		ScreeningTime: booking.ScreeningTime,
		Seats:         booking.Seats,
		Status:        string(booking.Status),
		ExpiresAt:     booking.ExpiresAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.BookingID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.BookingID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
