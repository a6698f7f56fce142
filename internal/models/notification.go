package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types pushed into user mailboxes.
const (
	NotificationDoctorRequest        = "new-doctor-request"
	NotificationDoctorRequestChanged = "new-doctor-request-changed"
	NotificationAppointmentRequest   = "new-appointment-request"
	NotificationAppointmentChanged   = "appointment-status-changed"
)

type Notification struct {
	Type        string            `bson:"type" json:"type"`
	Message     string            `bson:"message" json:"message"`
	Data        *NotificationData `bson:"data,omitempty" json:"data,omitempty"`
	OnClickPath string            `bson:"onClickPath" json:"onClickPath"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
}

// NotificationData references the record a notification is about.
type NotificationData struct {
	DoctorID      primitive.ObjectID `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	AppointmentID primitive.ObjectID `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
}
