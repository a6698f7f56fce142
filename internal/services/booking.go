package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctor-appointment-api/internal/apperror"
	"github.com/harentsoaR/doctor-appointment-api/internal/models"
	"github.com/harentsoaR/doctor-appointment-api/internal/store"
)

type BookingRequest struct {
	DoctorID primitive.ObjectID
	Date     string // DD-MM-YYYY
	Time     string // HH:mm
}

type Booking struct {
	users        UserStore
	doctors      DoctorStore
	appointments AppointmentStore
	mailbox      *Mailbox
	recorder     Recorder
	log          logrus.FieldLogger
}

func NewBooking(users UserStore, doctors DoctorStore, appointments AppointmentStore, mailbox *Mailbox, recorder Recorder, log logrus.FieldLogger) *Booking {
	return &Booking{
		users:        users,
		doctors:      doctors,
		appointments: appointments,
		mailbox:      mailbox,
		recorder:     recorder,
		log:          log,
	}
}

// Book stores a pending appointment and notifies the doctor's owning user.
//
// It does not consult the availability checker. If the notification fails the
// appointment stays stored and the error is returned; there is no rollback.
func (b *Booking) Book(ctx context.Context, userID primitive.ObjectID, req BookingRequest) (*models.Appointment, error) {
	slot, err := ParseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	doctor, err := b.doctors.FindDoctorByID(ctx, req.DoctorID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NotFound("Doctor not found")
	}
	if err != nil {
		return nil, apperror.Internal("Error booking appointment", err)
	}

	patient, err := b.users.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NotFound("User does not exist")
	}
	if err != nil {
		return nil, apperror.Internal("Error booking appointment", err)
	}

	apt := &models.Appointment{
		ID:         primitive.NewObjectID(),
		UserID:     patient.ID,
		DoctorID:   doctor.ID,
		UserInfo:   models.UserInfo{Name: patient.Name, Email: patient.Email},
		DoctorInfo: models.NewDoctorInfo(doctor),
		Date:       slot.Date,
		Time:       slot.Time,
		Status:     models.StatusPending,
	}
	if err := b.appointments.CreateAppointment(ctx, apt); err != nil {
		return nil, apperror.Internal("Error booking appointment", err)
	}
	b.recorder.AppointmentBooked()

	log := b.log.WithFields(logrus.Fields{
		"appointment_id": apt.ID.Hex(),
		"doctor_id":      doctor.ID.Hex(),
		"user_id":        patient.ID.Hex(),
	})

	err = b.mailbox.Notify(ctx, doctor.UserID, models.Notification{
		Type:        models.NotificationAppointmentRequest,
		Message:     fmt.Sprintf("A new appointment request has been made by %s", patient.Name),
		Data:        &models.NotificationData{AppointmentID: apt.ID, DoctorID: doctor.ID, Name: patient.Name},
		OnClickPath: "/doctor/appointments",
	})
	if err != nil {
		log.WithError(err).Warn("appointment stored but doctor was not notified")
		if apperror.KindOf(err) == apperror.KindNotFound {
			return apt, apperror.NotFound("Doctor account owner not found")
		}
		return apt, err
	}

	log.Info("appointment booked")
	return apt, nil
}

// ListForUser returns the appointments booked by the user.
func (b *Booking) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error) {
	appointments, err := b.appointments.ListAppointmentsByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("Error fetching appointments", err)
	}
	return appointments, nil
}

// ListForDoctor returns the appointments of the doctor record owned by the user.
func (b *Booking) ListForDoctor(ctx context.Context, doctorUserID primitive.ObjectID) ([]models.Appointment, error) {
	doctor, err := b.doctorOf(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}
	appointments, err := b.appointments.ListAppointmentsByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, apperror.Internal("Error fetching appointments", err)
	}
	return appointments, nil
}

// ChangeStatus lets the doctor owning the appointment approve or reject it,
// and tells the patient.
func (b *Booking) ChangeStatus(ctx context.Context, doctorUserID, appointmentID primitive.ObjectID, status models.Status) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, apperror.Conflict("Invalid appointment status")
	}
	doctor, err := b.doctorOf(ctx, doctorUserID)
	if err != nil {
		return nil, err
	}

	apt, err := b.appointments.FindAppointmentByID(ctx, appointmentID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && apt.DoctorID != doctor.ID) {
		return nil, apperror.NotFound("Appointment not found")
	}
	if err != nil {
		return nil, apperror.Internal("Error changing appointment status", err)
	}

	if err := b.appointments.UpdateAppointmentStatus(ctx, apt.ID, status); err != nil {
		return nil, apperror.Internal("Error changing appointment status", err)
	}
	apt.Status = status

	err = b.mailbox.Notify(ctx, apt.UserID, models.Notification{
		Type:        models.NotificationAppointmentChanged,
		Message:     fmt.Sprintf("Your appointment status has been %s", status),
		Data:        &models.NotificationData{AppointmentID: apt.ID, DoctorID: doctor.ID},
		OnClickPath: "/appointments",
	})
	if err != nil {
		b.log.WithError(err).WithField("appointment_id", apt.ID.Hex()).Warn("appointment status changed but patient was not notified")
		return apt, err
	}
	return apt, nil
}

func (b *Booking) doctorOf(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error) {
	doctor, err := b.doctors.FindDoctorByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NotFound("Doctor not found")
	}
	if err != nil {
		return nil, apperror.Internal("Error loading doctor", err)
	}
	return doctor, nil
}
