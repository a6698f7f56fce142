package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(msg string) Notification {
	return Notification{Type: NotificationAppointmentRequest, Message: msg, OnClickPath: "/doctor/appointments"}
}

func TestUserNotifyKeepsOrder(t *testing.T) {
	var u User
	u.Notify(note("a"))
	u.Notify(note("b"))
	u.Notify(note("a"))

	require.Len(t, u.UnseenNotifications, 3)
	assert.Equal(t, "a", u.UnseenNotifications[0].Message)
	assert.Equal(t, "b", u.UnseenNotifications[1].Message)
	assert.Equal(t, "a", u.UnseenNotifications[2].Message)
	assert.NotNil(t, u.SeenNotifications)
	assert.Empty(t, u.SeenNotifications)
}

func TestUserMarkAllSeen(t *testing.T) {
	u := User{SeenNotifications: []Notification{note("old")}}
	u.Notify(note("x"))
	u.Notify(note("y"))

	u.MarkAllSeen()

	assert.Empty(t, u.UnseenNotifications)
	assert.NotNil(t, u.UnseenNotifications)
	got := make([]string, 0, len(u.SeenNotifications))
	for _, n := range u.SeenNotifications {
		got = append(got, n.Message)
	}
	assert.Equal(t, []string{"old", "x", "y"}, got)
}

func TestUserMarkAllSeenThenClear(t *testing.T) {
	tests := []struct {
		name   string
		unseen []Notification
		seen   []Notification
	}{
		{"empty", nil, nil},
		{"unseen only", []Notification{note("a")}, nil},
		{"seen only", nil, []Notification{note("b")}},
		{"both", []Notification{note("a"), note("c")}, []Notification{note("b")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{UnseenNotifications: tt.unseen, SeenNotifications: tt.seen}
			u.MarkAllSeen()
			u.ClearNotifications()
			assert.Empty(t, u.UnseenNotifications)
			assert.Empty(t, u.SeenNotifications)
			assert.NotNil(t, u.UnseenNotifications)
			assert.NotNil(t, u.SeenNotifications)
		})
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, Status("cancelled").Valid())
	assert.False(t, Status("").Valid())
}
