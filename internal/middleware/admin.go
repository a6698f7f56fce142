package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/doctor-appointment-api/internal/apperror"
	"github.com/harentsoaR/doctor-appointment-api/internal/response"
)

type AdminChecker interface {
	IsAdmin(ctx context.Context, userID primitive.ObjectID) (bool, error)
}

// RequireAdmin must run after AuthMiddleware. The admin flag is read from the
// store on every request.
func RequireAdmin(admins AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			response.Abort(c, apperror.Unauthorized("Token is invalid"))
			return
		}
		isAdmin, err := admins.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			response.Abort(c, err)
			return
		}
		if !isAdmin {
			response.Abort(c, apperror.Forbidden("Admin access required"))
			return
		}
		c.Next()
	}
}
