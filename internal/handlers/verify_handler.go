package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"societyportal/internal/services"
)

type VerifyHandler struct {
	OTP *services.OTPService
}

func NewVerifyHandler(otp *services.OTPService) *VerifyHandler { return &VerifyHandler{OTP: otp} }

// @Summary      Send an email-verification OTP
// @Tags         Verify
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        sendmail  body      object{email=string}  true  "Target email"
// @Success      200       {object}  map[string]string
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Router       /api/users/sendmail [post]
func (h *VerifyHandler) SendMail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	if err := h.OTP.RequestVerification(user, req.Email); err != nil {
		// the pending record is already stored; the caller may retry
		log.Printf("[verify][sendmail] dispatch failed username=%q: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP mail"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("OTP sent to %s", req.Email)})
}

// @Summary      Confirm an email-verification OTP
// @Tags         Verify
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        verifyotp  body      object{otp=string}  true  "Submitted code"
// @Success      200        {object}  map[string]string
// @Failure      400        {object}  map[string]string
// @Failure      401        {object}  map[string]string
// @Failure      409        {object}  map[string]string
// @Router       /api/users/verifyotp [post]
func (h *VerifyHandler) VerifyOTP(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		OTP string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP is required"})
		return
	}

	updated, err := h.OTP.ConfirmVerification(user, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoPendingRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No pending verification request"})
		case errors.Is(err, services.ErrCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "OTP expired, please request a new one"})
		case errors.Is(err, services.ErrCodeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		default:
			log.Printf("[verify][confirm] error username=%q: %v", user.Username, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Email %s verified", *updated.Email)})
}
