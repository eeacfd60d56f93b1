package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"societyportal/internal/models"
	"societyportal/internal/utils"
)

var (
	ErrNoPendingRequest = errors.New("no pending verification request")
	ErrCodeInvalid      = errors.New("code invalid")
	ErrCodeExpired      = errors.New("code expired")
)

const (
	otpDigits     = 6
	defaultOTPTTL = 15 * time.Minute
)

type OTPService struct {
	Store   PendingStore
	UserSvc UserService
	Mailer  EmailService
	CodeTTL time.Duration // if 0, defaultOTPTTL is used
}

func NewOTPService(store PendingStore, userSvc UserService, mailer EmailService, codeTTL time.Duration) *OTPService {
	if codeTTL <= 0 {
		codeTTL = defaultOTPTTL
	}
	return &OTPService{
		Store:   store,
		UserSvc: userSvc,
		Mailer:  mailer,
		CodeTTL: codeTTL,
	}
}

// RequestVerification issues a fresh code for user and mails it to email.
// The pending record is stored before the send attempt, so a transient mail
// failure leaves a retryable record behind; a retry simply overwrites it.
func (s *OTPService) RequestVerification(user *models.User, email string) error {
	code, err := utils.NewOTPCode(otpDigits)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	s.Store.Put(&models.PendingVerification{
		Username: user.Username,
		Email:    email,
		Code:     code,
		IssuedAt: time.Now(),
	})

	if err := s.Mailer.SendOTPEmail(email, user.Name, code); err != nil {
		return fmt.Errorf("otp mail dispatch: %w", err)
	}

	log.Printf("[otp][send] username=%q email=%q", user.Username, email)
	return nil
}

// ConfirmVerification checks code against the pending record and, on match,
// commits the verified email to the credential store. The record is deleted
// on success and on detected expiry; a mismatch leaves it in place.
func (s *OTPService) ConfirmVerification(user *models.User, code string) (*models.User, error) {
	pending := s.Store.Get(user.Username)
	if pending == nil {
		return nil, ErrNoPendingRequest
	}
	if time.Since(pending.IssuedAt) > s.CodeTTL {
		s.Store.Delete(user.Username)
		return nil, ErrCodeExpired
	}
	if pending.Code != code {
		return nil, ErrCodeInvalid
	}

	updated, err := s.UserSvc.SetVerifiedEmail(user.ID, pending.Email)
	if err != nil {
		return nil, err
	}
	s.Store.Delete(user.Username)

	log.Printf("[otp][confirm] OK username=%q email=%q", user.Username, pending.Email)
	return updated, nil
}
