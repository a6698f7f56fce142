package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/doctor-appointment-api/internal/response"
	"github.com/harentsoaR/doctor-appointment-api/internal/services"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	_, err := h.Accounts.Register(c.Request.Context(), services.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "User registered successfully", nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	token, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "Login successful", token)
}

// GetUserInfo returns the caller's profile. The password hash is never
// serialized.
func (h *Handler) GetUserInfo(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	user, err := h.Accounts.Profile(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, "User info fetched successfully", user)
}
