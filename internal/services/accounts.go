package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctor-appointment-api/internal/apperror"
	"github.com/harentsoaR/doctor-appointment-api/internal/models"
	"github.com/harentsoaR/doctor-appointment-api/internal/store"
	"github.com/harentsoaR/doctor-appointment-api/internal/utils"
)

// TokenIssuer signs credentials for a user id.
type TokenIssuer interface {
	GenerateJWT(userID string) (string, error)
}

type Accounts struct {
	users  UserStore
	tokens TokenIssuer
	log    logrus.FieldLogger
}

func NewAccounts(users UserStore, tokens TokenIssuer, log logrus.FieldLogger) *Accounts {
	return &Accounts{users: users, tokens: tokens, log: log}
}

type Registration struct {
	Name     string
	Email    string
	Password string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a hashed password. Emails are unique.
func (a *Accounts) Register(ctx context.Context, r Registration) (*models.User, error) {
	email := normalizeEmail(r.Email)
	_, err := a.users.FindUserByEmail(ctx, email)
	if err == nil {
		return nil, apperror.Conflict("User already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperror.Internal("Error Creating User", err)
	}

	hashed, err := utils.HashPassword(r.Password)
	if err != nil {
		return nil, apperror.Internal("Error Creating User", err)
	}

	u := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     strings.TrimSpace(r.Name),
		Email:    email,
		Password: hashed,
	}
	if err := a.users.CreateUser(ctx, u); err != nil {
		// The email index catches registrations racing past the lookup.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperror.Conflict("User already exists")
		}
		return nil, apperror.Internal("Error Creating User", err)
	}
	a.log.WithField("user_id", u.ID.Hex()).Info("user registered")
	return u, nil
}

// Login checks the credentials and returns a signed token.
func (a *Accounts) Login(ctx context.Context, email, password string) (string, error) {
	u, err := a.users.FindUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", apperror.Conflict("User does not exist")
	}
	if err != nil {
		return "", apperror.Internal("Error logging in", err)
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		return "", apperror.Conflict("Password is incorrect")
	}

	token, err := a.tokens.GenerateJWT(u.ID.Hex())
	if err != nil {
		return "", apperror.Internal("Error logging in", err)
	}
	return token, nil
}

// Profile returns the user; the password hash never leaves the JSON encoder.
func (a *Accounts) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	u, err := a.users.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NotFound("User does not exist")
	}
	if err != nil {
		return nil, apperror.Internal("Error getting user info", err)
	}
	return u, nil
}

func (a *Accounts) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := a.users.ListUsers(ctx)
	if err != nil {
		return nil, apperror.Internal("Error fetching users", err)
	}
	return users, nil
}

// IsAdmin reports whether the user holds the admin flag.
func (a *Accounts) IsAdmin(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	u, err := a.Profile(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.IsAdmin, nil
}
