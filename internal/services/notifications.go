package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctor-appointment-api/internal/apperror"
	"github.com/harentsoaR/doctor-appointment-api/internal/models"
	"github.com/harentsoaR/doctor-appointment-api/internal/store"
)

// Mailbox manages the per-user unseen/seen notification lists.
//
// Every operation reads the user, changes the lists in memory and writes the
// whole document back. Nothing guards against a concurrent write to the same
// user in between, so the last write wins.
type Mailbox struct {
	users    UserStore
	recorder Recorder
	log      logrus.FieldLogger
}

func NewMailbox(users UserStore, recorder Recorder, log logrus.FieldLogger) *Mailbox {
	return &Mailbox{users: users, recorder: recorder, log: log}
}

// Notify appends n to the unseen notifications of the user with the given id.
func (m *Mailbox) Notify(ctx context.Context, userID primitive.ObjectID, n models.Notification) error {
	u, err := m.load(ctx, userID)
	if err != nil {
		return err
	}
	return m.NotifyUser(ctx, u, n)
}

// NotifyUser is Notify for a user that has already been loaded.
func (m *Mailbox) NotifyUser(ctx context.Context, u *models.User, n models.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	u.Notify(n)
	if err := m.users.SaveUser(ctx, u); err != nil {
		return apperror.Internal("Error sending notification", err)
	}
	m.recorder.NotificationSent(n.Type)
	m.log.WithFields(logrus.Fields{"user_id": u.ID.Hex(), "type": n.Type}).Debug("notification queued")
	return nil
}

// MarkAllSeen moves every unseen notification to the seen list.
func (m *Mailbox) MarkAllSeen(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	u, err := m.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.MarkAllSeen()
	if err := m.users.SaveUser(ctx, u); err != nil {
		return nil, apperror.Internal("Error marking notifications as seen", err)
	}
	return u, nil
}

// ClearAll deletes both notification lists.
func (m *Mailbox) ClearAll(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	u, err := m.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.ClearNotifications()
	if err := m.users.SaveUser(ctx, u); err != nil {
		return nil, apperror.Internal("Error deleting notifications", err)
	}
	return u, nil
}

func (m *Mailbox) load(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	u, err := m.users.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NotFound("User does not exist")
	}
	if err != nil {
		return nil, apperror.Internal("Error loading user", err)
	}
	return u, nil
}
