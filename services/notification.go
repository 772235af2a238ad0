package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/service-booking/utils"
)

// ScheduleDisplayLayout renders schedule times in confirmation mails,
// e.g. "Monday, January 2, 2006 at 3:04 PM".
const ScheduleDisplayLayout = "Monday, January 2, 2006 at 3:04 PM"

// BookingConfirmation is the message handed to the delivery collaborator
// after a booking commits.
type BookingConfirmation struct {
	Recipient    string    `json:"recipient"`
	BookingID    string    `json:"booking_id"`
	ServiceName  string    `json:"service_name"`
	CustomerName string    `json:"customer_name"`
	ScheduledAt  time.Time `json:"scheduled_at"`
}

func (m BookingConfirmation) Subject() string {
	return "Your Booking is Confirmed"
}

func (m BookingConfirmation) FormattedSchedule() string {
	if m.ScheduledAt.IsZero() {
		return "N/A"
	}
	return m.ScheduledAt.Format(ScheduleDisplayLayout)
}

func (m BookingConfirmation) Body() string {
	serviceName := m.ServiceName
	if serviceName == "" {
		serviceName = "N/A"
	}
	return fmt.Sprintf(
		"Hello %s,\n\nYour booking %s for service %s on %s has been received.\n\nThank you for using our platform!",
		m.CustomerName, m.BookingID, serviceName, m.FormattedSchedule(),
	)
}

// Mailer delivers a confirmation. Implementations may block; they are only
// called from the dispatcher's worker goroutine.
type Mailer interface {
	Send(ctx context.Context, msg BookingConfirmation) error
}

// LogMailer writes the rendered mail to the info log. Default driver for
// local development.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg BookingConfirmation) error {
	utils.InfoLogger.WithFields(logrus.Fields{
		"to":         msg.Recipient,
		"booking_id": msg.BookingID,
		"subject":    msg.Subject(),
	}).Info(msg.Body())
	return nil
}

// JSONPublisher is satisfied by *mq.Publisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// QueueMailer hands the confirmation to an external mail worker through the
// message broker.
type QueueMailer struct {
	Publisher  JSONPublisher
	RoutingKey string
}

type queuedMail struct {
	BookingConfirmation
	Subject           string `json:"subject"`
	Body              string `json:"body"`
	FormattedSchedule string `json:"formatted_schedule"`
}

func (q QueueMailer) Send(ctx context.Context, msg BookingConfirmation) error {
	return q.Publisher.PublishJSON(ctx, q.RoutingKey, queuedMail{
		BookingConfirmation: msg,
		Subject:             msg.Subject(),
		Body:                msg.Body(),
		FormattedSchedule:   msg.FormattedSchedule(),
	})
}
