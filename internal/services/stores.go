package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctor-appointment-api/internal/models"
)

// UserStore is the identity half of the store used by the workflows.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindAdmin(ctx context.Context) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
}

type DoctorStore interface {
	CreateDoctor(ctx context.Context, d *models.Doctor) error
	FindDoctorByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
	FindDoctorByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error)
	ListDoctors(ctx context.Context, status models.Status) ([]models.Doctor, error)
	SaveDoctor(ctx context.Context, d *models.Doctor) error
}

type AppointmentStore interface {
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	CountAppointmentsBetween(ctx context.Context, doctorID primitive.ObjectID, from, to time.Time) (int64, error)
	FindAppointmentByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error)
	ListAppointmentsByDoctor(ctx context.Context, doctorID primitive.ObjectID) ([]models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id primitive.ObjectID, status models.Status) error
}

// Recorder receives domain events for instrumentation.
type Recorder interface {
	AppointmentBooked()
	NotificationSent(kind string)
}
