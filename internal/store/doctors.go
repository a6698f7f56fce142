package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/doctor-appointment-api/internal/models"
)

func (s *Store) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	d.CreatedAt = now()
	d.UpdatedAt = d.CreatedAt
	_, err := s.doctors.InsertOne(ctx, d)
	return translate(err)
}

func (s *Store) FindDoctorByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	return s.findDoctor(ctx, bson.M{"_id": id})
}

func (s *Store) FindDoctorByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error) {
	return s.findDoctor(ctx, bson.M{"userId": userID})
}

func (s *Store) findDoctor(ctx context.Context, filter bson.M) (*models.Doctor, error) {
	var d models.Doctor
	if err := s.doctors.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// ListDoctors returns doctors with the given status, or all of them when
// status is empty.
func (s *Store) ListDoctors(ctx context.Context, status models.Status) ([]models.Doctor, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := s.doctors.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	if doctors == nil {
		doctors = make([]models.Doctor, 0)
	}
	return doctors, nil
}

func (s *Store) SaveDoctor(ctx context.Context, d *models.Doctor) error {
	d.UpdatedAt = now()
	res, err := s.doctors.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
