package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctor-appointment-api/internal/apperror"
	"github.com/harentsoaR/doctor-appointment-api/internal/handlers"
	"github.com/harentsoaR/doctor-appointment-api/internal/metrics"
	"github.com/harentsoaR/doctor-appointment-api/internal/middleware"
	"github.com/harentsoaR/doctor-appointment-api/internal/models"
	"github.com/harentsoaR/doctor-appointment-api/internal/response"
	"github.com/harentsoaR/doctor-appointment-api/internal/services"
	"github.com/harentsoaR/doctor-appointment-api/internal/store/storetest"
	"github.com/harentsoaR/doctor-appointment-api/internal/utils"
)

const secret = "test-secret"

type env struct {
	t      *testing.T
	router *gin.Engine
	mem    *storetest.Memory
	tokens *utils.TokenManager
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, _ := test.NewNullLogger()
	mem := storetest.NewMemory()
	rec := metrics.New(prometheus.NewRegistry())
	tokens := utils.NewTokenManager(secret, time.Hour)

	accounts := services.NewAccounts(mem, tokens, log)
	mailbox := services.NewMailbox(mem, rec, log)
	h := handlers.NewHandler(
		accounts,
		mailbox,
		services.NewAvailabilityChecker(mem),
		services.NewBooking(mem, mem, mem, mailbox, rec, log),
		services.NewDoctors(mem, mem, mailbox, log),
		log,
	)

	r := gin.New()
	h.RegisterRoutes(r, handlers.Guards{
		Public:    []gin.HandlerFunc{middleware.RateLimit(middleware.NewRateLimiter(1000, 1000))},
		Protected: []gin.HandlerFunc{middleware.AuthMiddleware(tokens)},
		Admin:     []gin.HandlerFunc{middleware.RequireAdmin(accounts)},
	})
	return &env{t: t, router: r, mem: mem, tokens: tokens}
}

type result struct {
	Code int
	Body response.Envelope
	Raw  string
}

func (e *env) do(method, path, token string, body any) result {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env response.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return result{Code: w.Code, Body: env, Raw: w.Body.String()}
}

// signup registers and logs in, returning the user id and token.
func (e *env) signup(name, email, password string) (primitive.ObjectID, string) {
	e.t.Helper()
	res := e.do(http.MethodPost, "/api/user/register", "", gin.H{"name": name, "email": email, "password": password})
	require.Equal(e.t, http.StatusOK, res.Code, res.Raw)

	res = e.do(http.MethodPost, "/api/user/login", "", gin.H{"email": email, "password": password})
	require.Equal(e.t, http.StatusOK, res.Code, res.Raw)
	token, ok := res.Body.Data.(string)
	require.True(e.t, ok)

	u, err := e.mem.FindUserByEmail(context.Background(), email)
	require.NoError(e.t, err)
	return u.ID, token
}

func (e *env) promote(id primitive.ObjectID) {
	e.t.Helper()
	u, err := e.mem.FindUserByID(context.Background(), id)
	require.NoError(e.t, err)
	u.IsAdmin = true
	require.NoError(e.t, e.mem.SaveUser(context.Background(), u))
}

func (e *env) user(id primitive.ObjectID) *models.User {
	e.t.Helper()
	u, err := e.mem.FindUserByID(context.Background(), id)
	require.NoError(e.t, err)
	return u
}

func doctorBody() gin.H {
	return gin.H{
		"firstName": "Gregory", "lastName": "House", "phoneNumber": "555-0101",
		"address": "Princeton", "specialization": "Diagnostics", "experience": "20",
		"feePerConsultation": 150, "timings": []string{"09:00", "17:00"},
	}
}

// approvedDoctor runs the apply and approve flow and returns the doctor
// owner's token and the doctor id.
func (e *env) approvedDoctor(adminToken string) (string, primitive.ObjectID) {
	e.t.Helper()
	ownerID, ownerToken := e.signup("Greg", "greg@x.com", "pw-doc")
	res := e.do(http.MethodPost, "/api/user/apply-doctor-account", ownerToken, doctorBody())
	require.Equal(e.t, http.StatusOK, res.Code, res.Raw)

	d, err := e.mem.FindDoctorByUserID(context.Background(), ownerID)
	require.NoError(e.t, err)
	res = e.do(http.MethodPost, "/api/admin/change-doctor-account-status", adminToken, gin.H{"doctorId": d.ID.Hex(), "status": "approved"})
	require.Equal(e.t, http.StatusOK, res.Code, res.Raw)
	return ownerToken, d.ID
}

func TestHelloWorld(t *testing.T) {
	e := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, "Hello World", w.Body.String())
}

func TestRegisterDuplicate(t *testing.T) {
	e := setup(t)

	res := e.do(http.MethodPost, "/api/user/register", "", gin.H{"name": "A", "email": "a@x.com", "password": "pw1"})
	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, res.Body.Success)
	assert.Equal(t, "User registered successfully", res.Body.Message)

	res = e.do(http.MethodPost, "/api/user/register", "", gin.H{"name": "A", "email": "a@x.com", "password": "pw1"})
	assert.False(t, res.Body.Success)
	assert.Equal(t, "User already exists", res.Body.Message)
	require.NotNil(t, res.Body.Error)
	assert.Equal(t, apperror.KindValidation, res.Body.Error.Kind)
}

func TestRegisterValidation(t *testing.T) {
	e := setup(t)

	res := e.do(http.MethodPost, "/api/user/register", "", gin.H{"name": "A", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	require.NotNil(t, res.Body.Error)
	assert.Contains(t, res.Body.Error.Fields, "Email")
	assert.Contains(t, res.Body.Error.Fields, "Password")
}

func TestLogin(t *testing.T) {
	e := setup(t)
	_, token := e.signup("A", "a@x.com", "pw1")
	assert.NotEmpty(t, token)

	res := e.do(http.MethodPost, "/api/user/login", "", gin.H{"email": "a@x.com", "password": "nope"})
	assert.NotEqual(t, http.StatusUnauthorized, res.Code)
	assert.False(t, res.Body.Success)
	assert.Equal(t, "Password is incorrect", res.Body.Message)
	require.NotNil(t, res.Body.Error)
	assert.Equal(t, apperror.KindValidation, res.Body.Error.Kind)

	res = e.do(http.MethodPost, "/api/user/login", "", gin.H{"email": "ghost@x.com", "password": "pw1"})
	assert.False(t, res.Body.Success)
	assert.Equal(t, "User does not exist", res.Body.Message)
}

func TestUserInfoHidesPassword(t *testing.T) {
	e := setup(t)
	id, token := e.signup("A", "a@x.com", "pw1")

	res := e.do(http.MethodPost, "/api/user/get-user-info-by-id", token, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	data, ok := res.Body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, id.Hex(), data["id"])
	assert.Equal(t, "a@x.com", data["email"])
	assert.NotContains(t, data, "password")
	assert.Equal(t, []any{}, data["unseenNotifications"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := setup(t)
	id, _ := e.signup("A", "a@x.com", "pw1")
	expired, err := utils.NewTokenManager(secret, -time.Minute).GenerateJWT(id.Hex())
	require.NoError(t, err)

	res := e.do(http.MethodPost, "/api/user/get-user-info-by-id", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Token is invalid", res.Body.Message)

	res = e.do(http.MethodGet, "/api/user/get-all-approved-doctors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, "Authorization header required", res.Body.Message)
}

func TestDoctorApplicationFlow(t *testing.T) {
	e := setup(t)
	adminID, adminToken := e.signup("Root", "root@x.com", "pw-admin")
	e.promote(adminID)
	_, patientToken := e.signup("Pat", "pat@x.com", "pw-pat")

	res := e.do(http.MethodGet, "/api/admin/get-all-users", patientToken, nil)
	assert.Equal(t, http.StatusForbidden, res.Code)

	ownerToken, doctorID := e.approvedDoctor(adminToken)

	d, err := e.mem.FindDoctorByID(context.Background(), doctorID)
	require.NoError(t, err)
	owner := e.user(d.UserID)
	assert.True(t, owner.IsDoctor)
	require.Len(t, owner.UnseenNotifications, 1)
	assert.Equal(t, "Your doctor account has been approved", owner.UnseenNotifications[0].Message)

	admin := e.user(adminID)
	require.Len(t, admin.UnseenNotifications, 1)
	assert.Equal(t, models.NotificationDoctorRequest, admin.UnseenNotifications[0].Type)

	res = e.do(http.MethodPost, "/api/user/apply-doctor-account", ownerToken, doctorBody())
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Doctor account already applied", res.Body.Message)

	res = e.do(http.MethodGet, "/api/user/get-all-approved-doctors", patientToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	doctors, ok := res.Body.Data.([]any)
	require.True(t, ok)
	require.Len(t, doctors, 1)
	assert.Equal(t, doctorID.Hex(), doctors[0].(map[string]any)["id"])

	res = e.do(http.MethodPost, "/api/doctor/get-doctor-info-by-user-id", ownerToken, nil)
	assert.Equal(t, http.StatusOK, res.Code)

	res = e.do(http.MethodPost, "/api/doctor/get-doctor-info-by-id", patientToken, gin.H{"doctorId": doctorID.Hex()})
	assert.Equal(t, http.StatusOK, res.Code)

	res = e.do(http.MethodPost, "/api/doctor/get-doctor-info-by-id", patientToken, gin.H{"doctorId": "xyz"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "Invalid doctor id", res.Body.Message)

	body := doctorBody()
	body["specialization"] = "Nephrology"
	res = e.do(http.MethodPost, "/api/doctor/update-doctor-profile", ownerToken, body)
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	assert.Equal(t, "Nephrology", res.Body.Data.(map[string]any)["specialization"])
	assert.Equal(t, "approved", res.Body.Data.(map[string]any)["status"])

	res = e.do(http.MethodGet, "/api/admin/get-all-doctors", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.Code)
	res = e.do(http.MethodGet, "/api/admin/get-all-users", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Len(t, res.Body.Data, 3)
	assert.NotContains(t, res.Raw, "password")
}

func TestApplyWithoutAdmin(t *testing.T) {
	e := setup(t)
	_, token := e.signup("Greg", "greg@x.com", "pw")

	res := e.do(http.MethodPost, "/api/user/apply-doctor-account", token, doctorBody())
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "Admin user not found", res.Body.Message)
}

func TestBookingAndAvailability(t *testing.T) {
	e := setup(t)
	adminID, adminToken := e.signup("Root", "root@x.com", "pw-admin")
	e.promote(adminID)
	ownerToken, doctorID := e.approvedDoctor(adminToken)
	patientID, patientToken := e.signup("Pat", "pat@x.com", "pw-pat")

	slot := func(clock string) gin.H {
		return gin.H{"doctorId": doctorID.Hex(), "date": "10-05-2024", "time": clock}
	}

	res := e.do(http.MethodPost, "/api/user/check-booking-avilability", patientToken, slot("09:00"))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, res.Body.Success)
	assert.Equal(t, "Appointments available", res.Body.Message)

	res = e.do(http.MethodPost, "/api/user/book-appointment", patientToken, slot("09:00"))
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	assert.True(t, res.Body.Success)
	assert.Equal(t, "Appointment booked successfully", res.Body.Message)
	assert.Nil(t, res.Body.Data)

	res = e.do(http.MethodPost, "/api/user/check-booking-avilability", patientToken, slot("09:30"))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.False(t, res.Body.Success)
	assert.Equal(t, "Appointments not available", res.Body.Message)

	res = e.do(http.MethodPost, "/api/user/check-booking-avilability", patientToken, slot("10:01"))
	assert.True(t, res.Body.Success)

	res = e.do(http.MethodPost, "/api/user/check-booking-avilability", patientToken, gin.H{"doctorId": doctorID.Hex(), "date": "2024-05-10", "time": "09:00"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = e.do(http.MethodGet, "/api/user/get-appointments-by-user-id", patientToken, nil)
	require.Equal(t, http.StatusOK, res.Code)
	list, ok := res.Body.Data.([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	apt := list[0].(map[string]any)
	assert.Equal(t, "pending", apt["status"])
	assert.Equal(t, patientID.Hex(), apt["userId"])

	owner := e.do(http.MethodGet, "/api/doctor/get-appointments-by-doctor-id", ownerToken, nil)
	require.Equal(t, http.StatusOK, owner.Code)
	assert.Len(t, owner.Body.Data, 1)

	res = e.do(http.MethodPost, "/api/doctor/change-appointment-status", patientToken, gin.H{"appointmentId": apt["id"], "status": "approved"})
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = e.do(http.MethodPost, "/api/doctor/change-appointment-status", ownerToken, gin.H{"appointmentId": apt["id"], "status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = e.do(http.MethodPost, "/api/doctor/change-appointment-status", ownerToken, gin.H{"appointmentId": apt["id"], "status": "approved"})
	require.Equal(t, http.StatusOK, res.Code, res.Raw)

	patient := e.user(patientID)
	require.Len(t, patient.UnseenNotifications, 1)
	assert.Equal(t, "Your appointment status has been approved", patient.UnseenNotifications[0].Message)
}

func TestNotificationRoutes(t *testing.T) {
	e := setup(t)
	adminID, adminToken := e.signup("Root", "root@x.com", "pw-admin")
	e.promote(adminID)
	e.approvedDoctor(adminToken)

	res := e.do(http.MethodPost, "/api/user/mark-all-notifications-as-seen", adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	data := res.Body.Data.(map[string]any)
	assert.Empty(t, data["unseenNotifications"])
	assert.Len(t, data["seenNotifications"], 1)
	assert.NotContains(t, data, "password")

	res = e.do(http.MethodPost, "/api/user/delete-all-notifications", adminToken, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Raw)
	admin := e.user(adminID)
	assert.Empty(t, admin.UnseenNotifications)
	assert.Empty(t, admin.SeenNotifications)
}

func TestStoreOutageIsInternalFault(t *testing.T) {
	e := setup(t)
	_, token := e.signup("A", "a@x.com", "pw1")
	e.mem.Err = assert.AnError

	res := e.do(http.MethodGet, "/api/user/get-all-approved-doctors", token, nil)
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.False(t, res.Body.Success)
	require.NotNil(t, res.Body.Error)
	assert.Equal(t, apperror.KindInternal, res.Body.Error.Kind)
	assert.Equal(t, assert.AnError.Error(), res.Body.Error.Detail)
}
