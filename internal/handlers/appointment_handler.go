package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-appointment-api/internal/models"
	"github.com/harentsoaR/doctor-appointment-api/internal/response"
	"github.com/harentsoaR/doctor-appointment-api/internal/services"
)

type slotRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"` // DD-MM-YYYY
	Time     string `json:"time" binding:"required"` // HH:mm
}

type appointmentStatusRequest struct {
	AppointmentID string        `json:"appointmentId" binding:"required"`
	Status        models.Status `json:"status" binding:"required,oneof=pending approved rejected"`
}

// --- BOOK APPOINTMENT ---
func (h *Handler) BookAppointment(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	doctorID, ok := h.objectID(c, req.DoctorID, "doctor")
	if !ok {
		return
	}

	_, err := h.Booking.Book(c.Request.Context(), userID, services.BookingRequest{
		DoctorID: doctorID,
		Date:     req.Date,
		Time:     req.Time,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Appointment booked successfully", nil)
}

// --- CHECK AVAILABILITY ---
func (h *Handler) CheckBookingAvailability(c *gin.Context) {
	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	doctorID, ok := h.objectID(c, req.DoctorID, "doctor")
	if !ok {
		return
	}
	slot, err := services.ParseSlot(req.Date, req.Time)
	if err != nil {
		h.fail(c, err)
		return
	}

	available, err := h.Availability.Check(c.Request.Context(), doctorID, slot)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !available {
		response.Unsuccessful(c, "Appointments not available")
		return
	}
	response.OK(c, "Appointments available", nil)
}

// --- APPOINTMENTS OF THE CALLER ---
func (h *Handler) GetAppointmentsByUserID(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	appointments, err := h.Booking.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Appointments fetched successfully", appointments)
}

// --- APPOINTMENTS OF THE CALLER'S DOCTOR RECORD ---
func (h *Handler) GetAppointmentsByDoctorID(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	appointments, err := h.Booking.ListForDoctor(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Appointments fetched successfully", appointments)
}

// --- CHANGE APPOINTMENT STATUS (owning doctor only) ---
func (h *Handler) ChangeAppointmentStatus(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	var req appointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	appointmentID, ok := h.objectID(c, req.AppointmentID, "appointment")
	if !ok {
		return
	}

	apt, err := h.Booking.ChangeStatus(c.Request.Context(), userID, appointmentID, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Appointment status updated successfully", apt)
}
