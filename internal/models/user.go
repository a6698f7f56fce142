package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Password            string             `bson:"password" json:"-"` // Hide from JSON responses
	IsDoctor            bool               `bson:"isDoctor" json:"isDoctor"`
	IsAdmin             bool               `bson:"isAdmin" json:"isAdmin"`
	UnseenNotifications []Notification     `bson:"unseenNotifications" json:"unseenNotifications"`
	SeenNotifications   []Notification     `bson:"seenNotifications" json:"seenNotifications"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Notify appends n to the unseen notifications.
func (u *User) Notify(n Notification) {
	u.ensureMailbox()
	u.UnseenNotifications = append(u.UnseenNotifications, n)
}

// MarkAllSeen moves every unseen notification to the end of the seen list,
// keeping their relative order.
func (u *User) MarkAllSeen() {
	u.ensureMailbox()
	u.SeenNotifications = append(u.SeenNotifications, u.UnseenNotifications...)
	u.UnseenNotifications = []Notification{}
}

// ClearNotifications empties both notification lists.
func (u *User) ClearNotifications() {
	u.UnseenNotifications = []Notification{}
	u.SeenNotifications = []Notification{}
}

// ensureMailbox keeps both lists non-nil so they are stored and rendered as
// empty arrays instead of null.
func (u *User) ensureMailbox() {
	if u.UnseenNotifications == nil {
		u.UnseenNotifications = []Notification{}
	}
	if u.SeenNotifications == nil {
		u.SeenNotifications = []Notification{}
	}
}

// Normalize fills the zero-valued slices of a freshly decoded or created user.
func (u *User) Normalize() {
	u.ensureMailbox()
}
