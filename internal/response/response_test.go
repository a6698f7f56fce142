package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/doctor-appointment-api/internal/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, "Doctors fetched successfully", []string{"a"})

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "Doctors fetched successfully", env.Message)
	assert.Nil(t, env.Error)
	assert.Equal(t, []any{"a"}, env.Data)
}

func TestOKOmitsEmptyFields(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, "Appointment booked successfully", nil)

	assert.JSONEq(t, `{"message":"Appointment booked successfully","success":true}`, w.Body.String())
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   apperror.Kind
		wantDetail string
	}{
		{"conflict", apperror.Conflict("User already exists"), http.StatusBadRequest, apperror.KindValidation, ""},
		{"not found", apperror.NotFound("Admin user not found"), http.StatusNotFound, apperror.KindNotFound, ""},
		{"auth", apperror.Unauthorized("Token is invalid"), http.StatusUnauthorized, apperror.KindAuth, ""},
		{"internal", apperror.Internal("Error booking appointment", errors.New("socket closed")), http.StatusInternalServerError, apperror.KindInternal, "socket closed"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, apperror.KindInternal, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			Error(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decode(t, w)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantKind, env.Error.Kind)
			assert.Equal(t, tt.wantDetail, env.Error.Detail)
		})
	}
}

func TestBindErrorListsFields(t *testing.T) {
	type body struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name" binding:"required"`
	}
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var b body
		if err := c.ShouldBindJSON(&b); err != nil {
			BindError(c, err)
			return
		}
		OK(c, "ok", nil)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, apperror.KindValidation, env.Error.Kind)
	assert.Equal(t, "Email must be a valid email address", env.Error.Fields["Email"])
	assert.Equal(t, "Name is required", env.Error.Fields["Name"])
}

func TestBindErrorMalformedJSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	BindError(c, errors.New("unexpected EOF"))

	env := decode(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "unexpected EOF", env.Error.Detail)
	assert.Empty(t, env.Error.Fields)
}
