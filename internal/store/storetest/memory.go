// Package storetest provides an in-memory store with the same contract as
// the MongoDB store, for use in tests.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctor-appointment-api/internal/models"
	"github.com/harentsoaR/doctor-appointment-api/internal/store"
)

// Memory keeps documents by value: callers get copies and changes are only
// visible after a Save, like a real document store.
type Memory struct {
	mu           sync.Mutex
	users        map[primitive.ObjectID]models.User
	doctors      map[primitive.ObjectID]models.Doctor
	appointments map[primitive.ObjectID]models.Appointment

	// Err, when set, is returned by every call. Useful to simulate outages.
	Err error
}

func NewMemory() *Memory {
	return &Memory{
		users:        make(map[primitive.ObjectID]models.User),
		doctors:      make(map[primitive.ObjectID]models.Doctor),
		appointments: make(map[primitive.ObjectID]models.Appointment),
	}
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Normalize()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = cloneUser(*u)
	return nil
}

func (m *Memory) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.ID == id })
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.Email == email })
}

func (m *Memory) FindAdmin(_ context.Context) (*models.User, error) {
	return m.findUser(func(u models.User) bool { return u.IsAdmin })
}

func (m *Memory) findUser(match func(models.User) bool) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if match(u) {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (m *Memory) SaveUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	u.Normalize()
	u.UpdatedAt = time.Now().UTC()
	m.users[u.ID] = cloneUser(*u)
	return nil
}

func (m *Memory) CreateDoctor(_ context.Context, d *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	d.CreatedAt = time.Now().UTC()
	d.UpdatedAt = d.CreatedAt
	m.doctors[d.ID] = cloneDoctor(*d)
	return nil
}

func (m *Memory) FindDoctorByID(_ context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	return m.findDoctor(func(d models.Doctor) bool { return d.ID == id })
}

func (m *Memory) FindDoctorByUserID(_ context.Context, userID primitive.ObjectID) (*models.Doctor, error) {
	return m.findDoctor(func(d models.Doctor) bool { return d.UserID == userID })
}

func (m *Memory) findDoctor(match func(models.Doctor) bool) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, d := range m.doctors {
		if match(d) {
			c := cloneDoctor(d)
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *Memory) ListDoctors(_ context.Context, status models.Status) ([]models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Doctor, 0)
	for _, d := range m.doctors {
		if status == "" || d.Status == status {
			out = append(out, cloneDoctor(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (m *Memory) SaveDoctor(_ context.Context, d *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.doctors[d.ID]; !ok {
		return store.ErrNotFound
	}
	d.UpdatedAt = time.Now().UTC()
	m.doctors[d.ID] = cloneDoctor(*d)
	return nil
}

func (m *Memory) CreateAppointment(_ context.Context, a *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.appointments[a.ID] = *a
	return nil
}

func (m *Memory) CountAppointmentsBetween(_ context.Context, doctorID primitive.ObjectID, from, to time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	var n int64
	for _, a := range m.appointments {
		if a.DoctorID == doctorID && !a.Time.Before(from) && !a.Time.After(to) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) FindAppointmentByID(_ context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	a, ok := m.appointments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (m *Memory) ListAppointmentsByUser(_ context.Context, userID primitive.ObjectID) ([]models.Appointment, error) {
	return m.listAppointments(func(a models.Appointment) bool { return a.UserID == userID })
}

func (m *Memory) ListAppointmentsByDoctor(_ context.Context, doctorID primitive.ObjectID) ([]models.Appointment, error) {
	return m.listAppointments(func(a models.Appointment) bool { return a.DoctorID == doctorID })
}

func (m *Memory) listAppointments(match func(models.Appointment) bool) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Appointment, 0)
	for _, a := range m.appointments {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func (m *Memory) UpdateAppointmentStatus(_ context.Context, id primitive.ObjectID, status models.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	a, ok := m.appointments[id]
	if !ok {
		return store.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	m.appointments[id] = a
	return nil
}

// AppointmentCount is a test helper reporting how many appointments exist.
func (m *Memory) AppointmentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appointments)
}

func cloneUser(u models.User) models.User {
	u.UnseenNotifications = append([]models.Notification{}, u.UnseenNotifications...)
	u.SeenNotifications = append([]models.Notification{}, u.SeenNotifications...)
	return u
}

func cloneDoctor(d models.Doctor) models.Doctor {
	d.Timings = append([]string(nil), d.Timings...)
	return d
}
