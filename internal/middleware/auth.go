package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctor-appointment-api/internal/apperror"
	"github.com/harentsoaR/doctor-appointment-api/internal/response"
	"github.com/harentsoaR/doctor-appointment-api/internal/utils"
)

const userIDKey = "userID"

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	ValidateJWT(token string) (*utils.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's user id in the context.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, &apperror.Error{
				Kind:    apperror.KindAuth,
				Message: "Authorization header required",
				Err:     errors.New("missing bearer token"),
			})
			return
		}

		claims, err := tokens.ValidateJWT(tokenString)
		if errors.Is(err, utils.ErrSecretNotConfigured) {
			response.Abort(c, apperror.Internal("Error getting user info", err))
			return
		}
		if err != nil {
			response.Abort(c, apperror.Unauthorized("Token is invalid"))
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			response.Abort(c, apperror.Unauthorized("Token is invalid"))
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// CurrentUserID returns the id stored by AuthMiddleware.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}
