package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Guards are the ordered request checks run ahead of each route group.
type Guards struct {
	Public    []gin.HandlerFunc // register and login
	Protected []gin.HandlerFunc // every other /api route
	Admin     []gin.HandlerFunc // /api/admin, after Protected
}

func (h *Handler) RegisterRoutes(r gin.IRouter, g Guards) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello World")
	})

	public := r.Group("/api/user", g.Public...)
	{
		public.POST("/register", h.RegisterUser)
		public.POST("/login", h.Login)
	}

	user := r.Group("/api/user", g.Protected...)
	{
		user.POST("/get-user-info-by-id", h.GetUserInfo)
		user.POST("/apply-doctor-account", h.ApplyDoctorAccount)
		user.POST("/mark-all-notifications-as-seen", h.MarkAllNotificationsAsSeen)
		user.POST("/delete-all-notifications", h.DeleteAllNotifications)
		user.GET("/get-all-approved-doctors", h.GetAllApprovedDoctors)
		user.POST("/book-appointment", h.BookAppointment)
		user.POST("/check-booking-avilability", h.CheckBookingAvailability)
		user.GET("/get-appointments-by-user-id", h.GetAppointmentsByUserID)
	}

	adminGuards := append(append([]gin.HandlerFunc{}, g.Protected...), g.Admin...)
	admin := r.Group("/api/admin", adminGuards...)
	{
		admin.GET("/get-all-doctors", h.GetAllDoctors)
		admin.GET("/get-all-users", h.GetAllUsers)
		admin.POST("/change-doctor-account-status", h.ChangeDoctorAccountStatus)
	}

	doctor := r.Group("/api/doctor", g.Protected...)
	{
		doctor.POST("/get-doctor-info-by-user-id", h.GetDoctorInfoByUserID)
		doctor.POST("/get-doctor-info-by-id", h.GetDoctorInfoByID)
		doctor.POST("/update-doctor-profile", h.UpdateDoctorProfile)
		doctor.GET("/get-appointments-by-doctor-id", h.GetAppointmentsByDoctorID)
		doctor.POST("/change-appointment-status", h.ChangeAppointmentStatus)
	}
}
