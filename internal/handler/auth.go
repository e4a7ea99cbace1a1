package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fotofocus-backend/internal/httputil"
	"fotofocus-backend/internal/model"
	"fotofocus-backend/internal/service"
	"fotofocus-backend/internal/validate"
)

type AuthHandler struct {
	registrationService *service.RegistrationService
	userService         *service.UserService
	resetService        *service.PasswordResetService
}

func NewAuthHandler(
	registrationService *service.RegistrationService,
	userService *service.UserService,
	resetService *service.PasswordResetService,
) *AuthHandler {
	return &AuthHandler{
		registrationService: registrationService,
		userService:         userService,
		resetService:        resetService,
	}
}

// RegisterRequest handles POST /auth/register/request (and the legacy
// POST /auth/register alias). Mails a verification code; no account exists yet.
func (h *AuthHandler) RegisterRequest(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, "Email and a password of at least 6 characters are required")
		return
	}

	if err := h.registrationService.Request(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, model.ErrPasswordMismatch):
			httputil.WriteBadRequest(w, "Passwords do not match")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Email already registered")
		case errors.Is(err, model.ErrThrottled):
			httputil.WriteTooManyRequests(w, "A code was sent recently; wait a minute before retrying")
		case errors.Is(err, model.ErrDeliveryFailed):
			httputil.WriteDeliveryFailed(w, "Could not send the verification email")
		default:
			log.Printf("[ERROR] Register request handler: err=%v", err)
			httputil.WriteInternalError(w, "Failed to start registration")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Verification code sent",
	})
}

// RegisterVerify handles POST /auth/register/verify
// Confirms the emailed code, creates the account, and signs the caller in.
func (h *AuthHandler) RegisterVerify(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, "Email and code are required")
		return
	}

	user, token, err := h.registrationService.Verify(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPendingNotFound):
			httputil.WriteNotFound(w, "No pending registration for this email")
		case errors.Is(err, model.ErrCodeExpired):
			httputil.WriteBadRequest(w, "Verification code expired; request a new one")
		case errors.Is(err, model.ErrTooManyAttempts):
			httputil.WriteTooManyRequests(w, "Too many attempts; request a new code")
		case errors.Is(err, model.ErrInvalidCode):
			httputil.WriteBadRequest(w, "Invalid verification code")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Email already registered")
		default:
			log.Printf("[ERROR] Register verify handler: err=%v", err)
			httputil.WriteInternalError(w, "Failed to complete registration")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, "Email and password are required")
		return
	}

	user, token, err := h.userService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Invalid credentials")
			return
		}
		log.Printf("[ERROR] Login handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to log in")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user.Public(),
	})
}

// ForgotPassword handles POST /auth/forgot-password
// Responds identically whether or not the email has an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, "Email is required")
		return
	}

	devToken, err := h.resetService.Forgot(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrDeliveryFailed) {
			httputil.WriteDeliveryFailed(w, "Could not send the reset email")
			return
		}
		log.Printf("[ERROR] Forgot password handler: err=%v", err)
		httputil.WriteInternalError(w, "Failed to process request")
		return
	}

	resp := map[string]string{
		"message": "If that email exists, a reset code has been sent",
	}
	if devToken != "" {
		resp["devToken"] = devToken
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// ResetPassword handles POST /auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, "Token and new password are required")
		return
	}

	if err := h.resetService.Reset(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, model.ErrWeakPassword):
			httputil.WriteBadRequest(w, "Password must be at least 6 characters")
		case errors.Is(err, model.ErrResetTokenInvalid):
			httputil.WriteBadRequest(w, "Token is invalid or expired")
		default:
			log.Printf("[ERROR] Reset password handler: err=%v", err)
			httputil.WriteInternalError(w, "Failed to reset password")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Password updated",
	})
}
