package models

import (
	"errors"
	"fmt"
	"strings"
)

// BookingStatus disimpan sebagai kode integer di kolom bookings.status.
type BookingStatus uint8

const (
	StatusPending BookingStatus = iota
	StatusConfirmed
	StatusCompleted
	StatusCancelled
)

var ErrInvalidStatus = errors.New("invalid booking status")

// urutan harus sama dengan deklarasi konstanta di atas
var statusLabels = [...]string{
	StatusPending:   "pending",
	StatusConfirmed: "confirmed",
	StatusCompleted: "completed",
	StatusCancelled: "cancelled",
}

// Label returns the lowercase label for s, or ErrInvalidStatus when the code
// is outside the declared set.
func (s BookingStatus) Label() (string, error) {
	if int(s) >= len(statusLabels) {
		return "", fmt.Errorf("%w: %d", ErrInvalidStatus, s)
	}
	return statusLabels[s], nil
}

func (s BookingStatus) String() string {
	label, err := s.Label()
	if err != nil {
		return fmt.Sprintf("BookingStatus(%d)", uint8(s))
	}
	return label
}

// StatusFromLabel is the case-insensitive inverse of Label.
func StatusFromLabel(label string) (BookingStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	for code, l := range statusLabels {
		if l == normalized {
			return BookingStatus(code), nil
		}
	}
	return 0, fmt.Errorf("%w label: %q", ErrInvalidStatus, label)
}

func AllStatuses() []BookingStatus {
	return []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}
}

func AllStatusLabels() []string {
	labels := make([]string, 0, len(statusLabels))
	for _, s := range AllStatuses() {
		labels = append(labels, statusLabels[s])
	}
	return labels
}

// Belum ada endpoint yang mengubah status setelah booking dibuat; tabel ini
// dipakai ketika transisi status ditambahkan.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCompleted, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransitionTo reports whether moving from s to target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}
