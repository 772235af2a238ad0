package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyMailer gagal sebanyak failures kali, lalu berhasil
type flakyMailer struct {
	mu       sync.Mutex
	failures int
	sent     []BookingConfirmation
}

func (m *flakyMailer) Send(_ context.Context, msg BookingConfirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("mail server unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *flakyMailer) Sent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestDispatcherDelivers(t *testing.T) {
	mailer := &flakyMailer{}
	d := NewNotificationDispatcher(mailer, 10)
	d.Start()

	d.Dispatch(BookingConfirmation{BookingID: "b-1"})
	d.Dispatch(BookingConfirmation{BookingID: "b-2"})
	d.Stop()

	assert.Equal(t, 2, mailer.Sent())
	assert.Equal(t, int64(2), d.GetMetrics().Sent)
}

func TestDispatcherRetriesThenGivesUp(t *testing.T) {
	mailer := &flakyMailer{failures: 1}
	d := NewNotificationDispatcher(mailer, 10)
	d.RetryInterval = 10 * time.Millisecond
	d.Start()
	defer d.Stop()

	d.Dispatch(BookingConfirmation{BookingID: "b-1"})
	assert.Eventually(t, func() bool { return d.GetMetrics().Sent == 1 }, time.Second, 5*time.Millisecond)

	m := d.GetMetrics()
	assert.Equal(t, int64(1), m.Sent)
	assert.Equal(t, int64(1), m.Retried)
	assert.Zero(t, d.PendingRetries())

	always := &flakyMailer{failures: 100}
	d2 := NewNotificationDispatcher(always, 10)
	d2.RetryInterval = 10 * time.Millisecond
	d2.MaxAttempts = 2
	d2.Start()
	defer d2.Stop()

	d2.Dispatch(BookingConfirmation{BookingID: "b-2"})
	assert.Eventually(t, func() bool { return d2.GetMetrics().Failed == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, always.Sent())
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := NewNotificationDispatcher(&flakyMailer{}, 1)
	// belum Start, jadi antrian tidak pernah dikonsumsi
	d.Dispatch(BookingConfirmation{BookingID: "b-1"})
	d.Dispatch(BookingConfirmation{BookingID: "b-2"})
	assert.Equal(t, int64(1), d.GetMetrics().Dropped)
}

func TestBookingConfirmationRendering(t *testing.T) {
	msg := BookingConfirmation{
		Recipient:    "operator@example.com",
		BookingID:    "b-1",
		ServiceName:  "AC Repair Service",
		CustomerName: "Farhan",
		ScheduledAt:  time.Date(2030, 3, 4, 15, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "Your Booking is Confirmed", msg.Subject())
	assert.Equal(t, "Monday, March 4, 2030 at 3:30 PM", msg.FormattedSchedule())
	assert.Contains(t, msg.Body(), "Hello Farhan")
	assert.Contains(t, msg.Body(), "AC Repair Service")

	empty := BookingConfirmation{}
	assert.Equal(t, "N/A", empty.FormattedSchedule())
	assert.Contains(t, empty.Body(), "service N/A")
}

type capturePublisher struct {
	key     string
	payload []byte
	err     error
}

func (p *capturePublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.key = key
	p.payload, _ = json.Marshal(v)
	return p.err
}

func TestQueueMailerPublishesRenderedMail(t *testing.T) {
	pub := &capturePublisher{}
	mailer := QueueMailer{Publisher: pub, RoutingKey: "booking.confirmation"}

	err := mailer.Send(context.Background(), BookingConfirmation{
		Recipient:    "operator@example.com",
		BookingID:    "b-9",
		ServiceName:  "Laundry Service",
		CustomerName: "Sari",
		ScheduledAt:  time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "booking.confirmation", pub.key)

	var body map[string]any
	require.NoError(t, json.Unmarshal(pub.payload, &body))
	assert.Equal(t, "b-9", body["booking_id"])
	assert.Equal(t, "operator@example.com", body["recipient"])
	assert.Equal(t, "Your Booking is Confirmed", body["subject"])
	assert.Equal(t, "Monday, March 4, 2030 at 9:00 AM", body["formatted_schedule"])

	pub.err = errors.New("channel closed")
	assert.Error(t, mailer.Send(context.Background(), BookingConfirmation{}))
}

func TestLogMailerNeverFails(t *testing.T) {
	assert.NoError(t, LogMailer{}.Send(context.Background(), BookingConfirmation{BookingID: "b-1"}))
}
