package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/doctor-appointment-api/internal/models"
)

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = now()
	a.UpdatedAt = a.CreatedAt
	_, err := s.appointments.InsertOne(ctx, a)
	return translate(err)
}

// CountAppointmentsBetween counts the doctor's appointments whose time lies
// in [from, to], both ends included.
func (s *Store) CountAppointmentsBetween(ctx context.Context, doctorID primitive.ObjectID, from, to time.Time) (int64, error) {
	return s.appointments.CountDocuments(ctx, bson.M{
		"doctorId": doctorID,
		"time":     bson.M{"$gte": from, "$lte": to},
	})
}

func (s *Store) FindAppointmentByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var a models.Appointment
	if err := s.appointments.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *Store) ListAppointmentsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error) {
	return s.listAppointments(ctx, bson.M{"userId": userID})
}

func (s *Store) ListAppointmentsByDoctor(ctx context.Context, doctorID primitive.ObjectID) ([]models.Appointment, error) {
	return s.listAppointments(ctx, bson.M{"doctorId": doctorID})
}

func (s *Store) listAppointments(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	// Sort by time to "group" by date
	findOptions := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	cursor, err := s.appointments.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = make([]models.Appointment, 0)
	}
	return appointments, nil
}

func (s *Store) UpdateAppointmentStatus(ctx context.Context, id primitive.ObjectID, status models.Status) error {
	res, err := s.appointments.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
