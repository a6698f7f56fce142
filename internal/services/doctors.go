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

type Doctors struct {
	users   UserStore
	doctors DoctorStore
	mailbox *Mailbox
	log     logrus.FieldLogger
}

func NewDoctors(users UserStore, doctors DoctorStore, mailbox *Mailbox, log logrus.FieldLogger) *Doctors {
	return &Doctors{users: users, doctors: doctors, mailbox: mailbox, log: log}
}

// Apply records a pending doctor application for the user and notifies the
// admin. The application is kept even when no admin exists.
func (s *Doctors) Apply(ctx context.Context, userID primitive.ObjectID, profile models.DoctorProfile) (*models.Doctor, error) {
	_, err := s.doctors.FindDoctorByUserID(ctx, userID)
	if err == nil {
		return nil, apperror.Conflict("Doctor account already applied")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperror.Internal("Error Applying Doctor", err)
	}

	doctor := &models.Doctor{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Status: models.StatusPending,
	}
	profile.Apply(doctor)
	if err := s.doctors.CreateDoctor(ctx, doctor); err != nil {
		return nil, apperror.Internal("Error Applying Doctor", err)
	}

	admin, err := s.users.FindAdmin(ctx)
	if errors.Is(err, store.ErrNotFound) {
		s.log.WithField("doctor_id", doctor.ID.Hex()).Warn("doctor application stored but no admin user exists")
		return doctor, apperror.NotFound("Admin user not found")
	}
	if err != nil {
		return doctor, apperror.Internal("Error Applying Doctor", err)
	}

	name := doctor.FullName()
	err = s.mailbox.NotifyUser(ctx, admin, models.Notification{
		Type:        models.NotificationDoctorRequest,
		Message:     fmt.Sprintf("%s has applied for a doctor account", name),
		Data:        &models.NotificationData{DoctorID: doctor.ID, Name: name},
		OnClickPath: "/admin/doctors",
	})
	if err != nil {
		return doctor, err
	}
	return doctor, nil
}

func (s *Doctors) Approved(ctx context.Context) ([]models.Doctor, error) {
	return s.list(ctx, models.StatusApproved)
}

func (s *Doctors) All(ctx context.Context) ([]models.Doctor, error) {
	return s.list(ctx, "")
}

func (s *Doctors) list(ctx context.Context, status models.Status) ([]models.Doctor, error) {
	doctors, err := s.doctors.ListDoctors(ctx, status)
	if err != nil {
		return nil, apperror.Internal("Error fetching doctors", err)
	}
	return doctors, nil
}

func (s *Doctors) ByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	return s.find(s.doctors.FindDoctorByID(ctx, id))
}

func (s *Doctors) ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error) {
	return s.find(s.doctors.FindDoctorByUserID(ctx, userID))
}

func (s *Doctors) find(d *models.Doctor, err error) (*models.Doctor, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NotFound("Doctor not found")
	}
	if err != nil {
		return nil, apperror.Internal("Error fetching doctor", err)
	}
	return d, nil
}

// UpdateProfile edits the profile of the doctor owned by the user. Status
// is left untouched.
func (s *Doctors) UpdateProfile(ctx context.Context, userID primitive.ObjectID, profile models.DoctorProfile) (*models.Doctor, error) {
	doctor, err := s.ByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Apply(doctor)
	if err := s.doctors.SaveDoctor(ctx, doctor); err != nil {
		return nil, apperror.Internal("Error updating doctor profile", err)
	}
	return doctor, nil
}

// ChangeStatus is the admin decision on an application. The owning user
// becomes a doctor only while the status is approved.
func (s *Doctors) ChangeStatus(ctx context.Context, doctorID primitive.ObjectID, status models.Status) (*models.Doctor, error) {
	if !status.Valid() {
		return nil, apperror.Conflict("Invalid doctor status")
	}
	doctor, err := s.ByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	doctor.Status = status
	if err := s.doctors.SaveDoctor(ctx, doctor); err != nil {
		return nil, apperror.Internal("Error changing doctor status", err)
	}

	owner, err := s.users.FindUserByID(ctx, doctor.UserID)
	if errors.Is(err, store.ErrNotFound) {
		s.log.WithField("doctor_id", doctor.ID.Hex()).Warn("doctor status changed but owner does not exist")
		return doctor, apperror.NotFound("User does not exist")
	}
	if err != nil {
		return doctor, apperror.Internal("Error changing doctor status", err)
	}
	owner.IsDoctor = status == models.StatusApproved
	err = s.mailbox.NotifyUser(ctx, owner, models.Notification{
		Type:        models.NotificationDoctorRequestChanged,
		Message:     fmt.Sprintf("Your doctor account has been %s", status),
		Data:        &models.NotificationData{DoctorID: doctor.ID, Name: doctor.FullName()},
		OnClickPath: "/notifications",
	})
	if err != nil {
		return doctor, err
	}
	return doctor, nil
}
