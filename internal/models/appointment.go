package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Appointment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	DoctorID   primitive.ObjectID `bson:"doctorId" json:"doctorId"`
	UserInfo   UserInfo           `bson:"userInfo" json:"userInfo"`
	DoctorInfo DoctorInfo         `bson:"doctorInfo" json:"doctorInfo"`
	Date       time.Time          `bson:"date" json:"date"` // UTC midnight of the booked day
	Time       time.Time          `bson:"time" json:"time"` // absolute instant: date + time of day
	Status     Status             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserInfo is the patient snapshot taken at booking time.
type UserInfo struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// DoctorInfo is the doctor snapshot taken at booking time.
type DoctorInfo struct {
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	FirstName          string             `bson:"firstName" json:"firstName"`
	LastName           string             `bson:"lastName" json:"lastName"`
	Specialization     string             `bson:"specialization" json:"specialization"`
	FeePerConsultation float64            `bson:"feePerConsultation" json:"feePerConsultation"`
}

func NewDoctorInfo(d *Doctor) DoctorInfo {
	return DoctorInfo{
		UserID:             d.UserID,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		Specialization:     d.Specialization,
		FeePerConsultation: d.FeePerConsultation,
	}
}
