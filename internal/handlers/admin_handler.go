package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-appointment-api/internal/response"
)

func (h *Handler) GetAllDoctors(c *gin.Context) {
	doctors, err := h.Doctors.All(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Doctors fetched successfully", doctors)
}

func (h *Handler) GetAllUsers(c *gin.Context) {
	users, err := h.Accounts.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Users fetched successfully", users)
}

func (h *Handler) ChangeDoctorAccountStatus(c *gin.Context) {
	var req doctorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	doctorID, ok := h.objectID(c, req.DoctorID, "doctor")
	if !ok {
		return
	}
	doctor, err := h.Doctors.ChangeStatus(c.Request.Context(), doctorID, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Doctor status updated successfully", doctor)
}
