package email

import (
	"context"
	"strings"

	"github.com/Domenick1991/cinemabooking/internal/kafka"
	"github.com/sirupsen/logrus"
)

type Sender struct {
	log *logrus.Logger
}

func NewSender(log *logrus.Logger) *Sender {
	if log == nil {
		log = logrus.New()
	}
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.WithFields(logrus.Fields{
		"owner":      event.Owner,
		"event":      event.Type,
		"screening":  event.ScreeningTime,
		"seats":      strings.Join(event.Seats, ","),
		"booking_id": event.BookingID,
	}).Info("send booking notification")
	return nil
}
