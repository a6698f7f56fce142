package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Doctor struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID             primitive.ObjectID `bson:"userId" json:"userId"`
	FirstName          string             `bson:"firstName" json:"firstName"`
	LastName           string             `bson:"lastName" json:"lastName"`
	PhoneNumber        string             `bson:"phoneNumber" json:"phoneNumber"`
	Website            string             `bson:"website" json:"website"`
	Address            string             `bson:"address" json:"address"`
	Specialization     string             `bson:"specialization" json:"specialization"`
	Experience         string             `bson:"experience" json:"experience"`
	FeePerConsultation float64            `bson:"feePerConsultation" json:"feePerConsultation"`
	Timings            []string           `bson:"timings" json:"timings"` // ["HH:mm", "HH:mm"]
	Status             Status             `bson:"status" json:"status"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// DoctorProfile holds the fields a doctor fills in when applying or editing.
type DoctorProfile struct {
	FirstName          string   `json:"firstName" binding:"required"`
	LastName           string   `json:"lastName" binding:"required"`
	PhoneNumber        string   `json:"phoneNumber" binding:"required"`
	Website            string   `json:"website"`
	Address            string   `json:"address" binding:"required"`
	Specialization     string   `json:"specialization" binding:"required"`
	Experience         string   `json:"experience" binding:"required"`
	FeePerConsultation float64  `json:"feePerConsultation" binding:"gte=0"`
	Timings            []string `json:"timings"`
}

// Apply copies the profile fields onto d, leaving ownership and status alone.
func (p DoctorProfile) Apply(d *Doctor) {
	d.FirstName = p.FirstName
	d.LastName = p.LastName
	d.PhoneNumber = p.PhoneNumber
	d.Website = p.Website
	d.Address = p.Address
	d.Specialization = p.Specialization
	d.Experience = p.Experience
	d.FeePerConsultation = p.FeePerConsultation
	d.Timings = append([]string(nil), p.Timings...)
}
