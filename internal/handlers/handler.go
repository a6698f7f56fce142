package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctor-appointment-api/internal/apperror"
	"github.com/harentsoaR/doctor-appointment-api/internal/middleware"
	"github.com/harentsoaR/doctor-appointment-api/internal/response"
	"github.com/harentsoaR/doctor-appointment-api/internal/services"
)

// Handler holds the workflows the routes dispatch to.
type Handler struct {
	Accounts     *services.Accounts
	Mailbox      *services.Mailbox
	Availability *services.AvailabilityChecker
	Booking      *services.Booking
	Doctors      *services.Doctors
	Log          logrus.FieldLogger
}

func NewHandler(
	accounts *services.Accounts,
	mailbox *services.Mailbox,
	availability *services.AvailabilityChecker,
	booking *services.Booking,
	doctors *services.Doctors,
	log logrus.FieldLogger,
) *Handler {
	return &Handler{
		Accounts:     accounts,
		Mailbox:      mailbox,
		Availability: availability,
		Booking:      booking,
		Doctors:      doctors,
		Log:          log,
	}
}

// fail renders err and logs internal faults with their cause.
func (h *Handler) fail(c *gin.Context, err error) {
	if e := apperror.As(err); e.Kind == apperror.KindInternal {
		h.Log.WithError(e.Err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": middleware.GetRequestID(c),
		}).Error(e.Message)
	}
	response.Error(c, err)
}

// callerID returns the authenticated user id, writing a 401 when the
// request did not pass through the auth middleware.
func (h *Handler) callerID(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, apperror.Unauthorized("Token is invalid"))
	}
	return id, ok
}

// objectID parses a hex id from a request body, writing a 400 on failure.
func (h *Handler) objectID(c *gin.Context, hex, what string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		response.Error(c, apperror.Conflict("Invalid "+what+" id"))
		return primitive.NilObjectID, false
	}
	return id, true
}
