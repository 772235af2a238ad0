package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/service-booking/utils"
)

// Notifier accepts a confirmation without waiting for delivery.
type Notifier interface {
	Dispatch(msg BookingConfirmation)
}

// NotificationMetrics menyimpan metrik pengiriman notifikasi
type NotificationMetrics struct {
	Sent    int64
	Failed  int64
	Retried int64
	Dropped int64
}

type pendingNotification struct {
	msg      BookingConfirmation
	attempts int
}

// NotificationDispatcher delivers confirmations on a background goroutine.
// Failed sends go to a retry queue that is flushed every RetryInterval until
// MaxAttempts is reached. Nothing here ever reports back to the caller.
type NotificationDispatcher struct {
	mailer        Mailer
	queue         chan pendingNotification
	retryQueue    []pendingNotification
	RetryInterval time.Duration
	MaxAttempts   int
	SendTimeout   time.Duration
	metrics       NotificationMetrics
	mutex         sync.Mutex
	stopChan      chan struct{}
	stopOnce      sync.Once
	wg            sync.WaitGroup
}

func NewNotificationDispatcher(mailer Mailer, buffer int) *NotificationDispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	return &NotificationDispatcher{
		mailer:        mailer,
		queue:         make(chan pendingNotification, buffer),
		retryQueue:    make([]pendingNotification, 0),
		RetryInterval: 30 * time.Second,
		MaxAttempts:   3,
		SendTimeout:   10 * time.Second,
		stopChan:      make(chan struct{}),
	}
}

// Start memulai goroutine pengirim dan retry
func (d *NotificationDispatcher) Start() {
	if d.RetryInterval <= 0 {
		d.RetryInterval = 30 * time.Second
	}
	d.wg.Add(1)
	go d.run()
	utils.InfoLogger.Println("Notification dispatcher started")
}

// Stop drains what is already queued, then returns. Pending retries are
// logged and abandoned.
func (d *NotificationDispatcher) Stop() {
	d.stopOnce.Do(func() { close(d.stopChan) })
	d.wg.Wait()

	d.mutex.Lock()
	defer d.mutex.Unlock()
	for _, p := range d.retryQueue {
		utils.ErrorLogger.WithFields(logrus.Fields{"booking_id": p.msg.BookingID}).
			Warn("notification abandoned on shutdown")
	}
	d.retryQueue = nil
}

// Dispatch never blocks. When the buffer is full the message is dropped and
// logged.
func (d *NotificationDispatcher) Dispatch(msg BookingConfirmation) {
	select {
	case d.queue <- pendingNotification{msg: msg}:
	default:
		d.mutex.Lock()
		d.metrics.Dropped++
		d.mutex.Unlock()
		utils.ErrorLogger.WithFields(logrus.Fields{"booking_id": msg.BookingID}).
			Error("notification queue full, confirmation dropped")
	}
}

func (d *NotificationDispatcher) run() {
	defer d.wg.Done()
	ticker := time.NewTicker(d.RetryInterval)
	defer ticker.Stop()

	for {
		select {
		case p := <-d.queue:
			d.deliver(p)
		case <-ticker.C:
			d.processRetryQueue()
		case <-d.stopChan:
			for {
				select {
				case p := <-d.queue:
					d.deliver(p)
				default:
					return
				}
			}
		}
	}
}

func (d *NotificationDispatcher) deliver(p pendingNotification) {
	p.attempts++
	ctx, cancel := context.WithTimeout(context.Background(), d.SendTimeout)
	err := d.mailer.Send(ctx, p.msg)
	cancel()

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if err == nil {
		d.metrics.Sent++
		return
	}

	fields := logrus.Fields{"booking_id": p.msg.BookingID, "attempt": p.attempts}
	if p.attempts >= d.MaxAttempts {
		d.metrics.Failed++
		utils.ErrorLogger.WithFields(fields).Errorf("booking confirmation failed permanently: %v", err)
		return
	}
	utils.ErrorLogger.WithFields(fields).Warnf("booking confirmation failed, will retry: %v", err)
	d.retryQueue = append(d.retryQueue, p)
}

func (d *NotificationDispatcher) processRetryQueue() {
	d.mutex.Lock()
	if len(d.retryQueue) == 0 {
		d.mutex.Unlock()
		return
	}
	queue := d.retryQueue
	d.retryQueue = make([]pendingNotification, 0)
	d.metrics.Retried += int64(len(queue))
	d.mutex.Unlock()

	for _, p := range queue {
		d.deliver(p)
	}
}

// GetMetrics mengembalikan metrik saat ini
func (d *NotificationDispatcher) GetMetrics() NotificationMetrics {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.metrics
}

func (d *NotificationDispatcher) PendingRetries() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.retryQueue)
}
