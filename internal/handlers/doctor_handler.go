package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-appointment-api/internal/models"
	"github.com/harentsoaR/doctor-appointment-api/internal/response"
)

type doctorIDRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
}

type doctorStatusRequest struct {
	DoctorID string        `json:"doctorId" binding:"required"`
	Status   models.Status `json:"status" binding:"required,oneof=pending approved rejected"`
}

func (h *Handler) ApplyDoctorAccount(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	var profile models.DoctorProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		response.BindError(c, err)
		return
	}

	if _, err := h.Doctors.Apply(c.Request.Context(), userID, profile); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Doctor account applied successfully", nil)
}

func (h *Handler) GetAllApprovedDoctors(c *gin.Context) {
	doctors, err := h.Doctors.Approved(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Doctors fetched successfully", doctors)
}

func (h *Handler) GetDoctorInfoByUserID(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	doctor, err := h.Doctors.ByUserID(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Doctor info fetched successfully", doctor)
}

func (h *Handler) GetDoctorInfoByID(c *gin.Context) {
	var req doctorIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	doctorID, ok := h.objectID(c, req.DoctorID, "doctor")
	if !ok {
		return
	}
	doctor, err := h.Doctors.ByID(c.Request.Context(), doctorID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Doctor info fetched successfully", doctor)
}

func (h *Handler) UpdateDoctorProfile(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	var profile models.DoctorProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		response.BindError(c, err)
		return
	}
	doctor, err := h.Doctors.UpdateProfile(c.Request.Context(), userID, profile)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Doctor profile updated successfully", doctor)
}
