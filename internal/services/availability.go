package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctor-appointment-api/internal/apperror"
)

const (
	DateLayout = "02-01-2006"
	TimeLayout = "15:04"

	// ConflictWindow is how close two appointments of one doctor may be.
	// Appointments exactly ConflictWindow apart still conflict.
	ConflictWindow = time.Hour
)

// Slot is a bookable date and time of day, normalized to UTC instants.
type Slot struct {
	Date time.Time // midnight of the day
	Time time.Time // Date plus the time of day
}

// ParseSlot parses a DD-MM-YYYY date and an HH:mm time of day.
func ParseSlot(date, clock string) (Slot, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return Slot{}, apperror.Conflict("Invalid date, expected DD-MM-YYYY")
	}
	tod, err := time.ParseInLocation(TimeLayout, clock, time.UTC)
	if err != nil {
		return Slot{}, apperror.Conflict("Invalid time, expected HH:mm")
	}
	at := day.Add(time.Duration(tod.Hour())*time.Hour + time.Duration(tod.Minute())*time.Minute)
	return Slot{Date: day, Time: at}, nil
}

// Window returns the inclusive range of instants that conflict with s.
func (s Slot) Window() (from, to time.Time) {
	return s.Time.Add(-ConflictWindow), s.Time.Add(ConflictWindow)
}

type AvailabilityChecker struct {
	appointments AppointmentStore
}

func NewAvailabilityChecker(appointments AppointmentStore) *AvailabilityChecker {
	return &AvailabilityChecker{appointments: appointments}
}

// Check reports whether the doctor has no appointment within ConflictWindow
// of the slot. Instants are compared directly, so a window that crosses
// midnight also sees the neighbouring day. The answer is advisory: nothing
// reserves the slot between Check and a later booking.
func (a *AvailabilityChecker) Check(ctx context.Context, doctorID primitive.ObjectID, slot Slot) (bool, error) {
	from, to := slot.Window()
	n, err := a.appointments.CountAppointmentsBetween(ctx, doctorID, from, to)
	if err != nil {
		return false, apperror.Internal("Error checking availability", err)
	}
	return n == 0, nil
}
