package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/domain"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/http/middleware"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/http/response"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/observability"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthServiceInterface
	logger  *slog.Logger
}

func NewAuthHandler(authSvc service.AuthServiceInterface, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, logger: logger}
}

type signupRequest struct {
	Identifier  string `json:"identifier"`
	Credential  string `json:"credential"`
	DisplayName string `json:"displayName"`
}

type signupResponse struct {
	Message    string `json:"message"`
	Identifier string `json:"identifier"`
	State      string `json:"state"`
	Code       string `json:"code,omitempty"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordAuthEvent(r.Context(), "signup", "bad_request")
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST")
		return
	}

	result, err := h.authSvc.Signup(r.Context(), req.Identifier, req.Credential, req.DisplayName)
	if err != nil {
		h.writeAuthError(w, r, "signup", err)
		return
	}

	observability.RecordAuthEvent(r.Context(), "signup", "success")
	response.JSON(w, r, http.StatusCreated, signupResponse{
		Message:    "SIGNUP_OK",
		Identifier: result.Identifier,
		State:      result.State,
		Code:       result.Code,
	})
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Credential string `json:"credential"`
}

type loginResponse struct {
	Message string               `json:"message"`
	Token   string               `json:"token"`
	Account domain.PublicAccount `json:"account"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordAuthEvent(r.Context(), "login", "bad_request")
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST")
		return
	}

	result, err := h.authSvc.Login(r.Context(), req.Identifier, req.Credential)
	if err != nil {
		h.writeAuthError(w, r, "login", err)
		return
	}

	observability.RecordAuthEvent(r.Context(), "login", "success")
	response.JSON(w, r, http.StatusOK, loginResponse{
		Message: "LOGIN_SUCCESS",
		Token:   result.Token,
		Account: result.Account,
	})
}

type requestCodeRequest struct {
	Identifier string `json:"identifier"`
}

type requestCodeResponse struct {
	Message    string `json:"message"`
	Identifier string `json:"identifier"`
	Code       string `json:"code,omitempty"`
}

func (h *AuthHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req requestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordAuthEvent(r.Context(), "otp_request", "bad_request")
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST")
		return
	}

	result, err := h.authSvc.RequestCode(r.Context(), req.Identifier)
	if err != nil {
		h.writeAuthError(w, r, "otp_request", err)
		return
	}

	observability.RecordAuthEvent(r.Context(), "otp_request", "success")
	response.JSON(w, r, http.StatusOK, requestCodeResponse{
		Message:    "OTP_SENT",
		Identifier: result.Identifier,
		Code:       result.Code,
	})
}

type verifyCodeRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

type verifyCodeResponse struct {
	Message    string    `json:"message"`
	Identifier string    `json:"identifier"`
	VerifiedAt time.Time `json:"verifiedAt"`
}

func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordAuthEvent(r.Context(), "otp_verify", "bad_request")
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST")
		return
	}

	result, err := h.authSvc.VerifyCode(r.Context(), req.Identifier, req.Code)
	if err != nil {
		h.writeAuthError(w, r, "otp_verify", err)
		return
	}

	observability.RecordAuthEvent(r.Context(), "otp_verify", "success")
	response.JSON(w, r, http.StatusOK, verifyCodeResponse{
		Message:    "VERIFIED",
		Identifier: result.Identifier,
		VerifiedAt: result.VerifiedAt,
	})
}

type deleteAccountResponse struct {
	Message    string `json:"message"`
	Identifier string `json:"identifier"`
}

func (h *AuthHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		observability.RecordAuthEvent(r.Context(), "account_delete", "unauthorized")
		response.Error(w, r, http.StatusUnauthorized, "MISSING_AUTH_TOKEN")
		return
	}

	if err := h.authSvc.DeleteAccount(r.Context(), claims.Identifier); err != nil {
		h.writeAuthError(w, r, "account_delete", err)
		return
	}

	observability.RecordAuthEvent(r.Context(), "account_delete", "success")
	response.JSON(w, r, http.StatusOK, deleteAccountResponse{
		Message:    "ACCOUNT_DELETED",
		Identifier: claims.Identifier,
	})
}

// writeAuthError maps engine failures to statuses and wire codes. Login's
// ErrInvalidCredential is 401, everywhere else the same kind is a 400
// validation failure. Unknown errors become an opaque 500 with the cause
// logged, never echoed.
func (h *AuthHandler) writeAuthError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, service.ErrInvalidIdentifier):
		status, code = http.StatusBadRequest, "INVALID_IDENTIFIER"
	case errors.Is(err, service.ErrInvalidCredential):
		status, code = http.StatusBadRequest, "INVALID_CREDENTIAL"
		if op == "login" {
			status = http.StatusUnauthorized
		}
	case errors.Is(err, service.ErrAccountExists):
		status, code = http.StatusConflict, "ACCOUNT_EXISTS"
	case errors.Is(err, service.ErrAccountNotFound):
		status, code = http.StatusNotFound, "ACCOUNT_NOT_FOUND"
	case errors.Is(err, service.ErrChallengeNotFound):
		status, code = http.StatusNotFound, "CHALLENGE_NOT_FOUND"
	case errors.Is(err, service.ErrChallengeExpired):
		status, code = http.StatusBadRequest, "CHALLENGE_EXPIRED"
	case errors.Is(err, service.ErrTooManyAttempts):
		status, code = http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS"
	case errors.Is(err, service.ErrCodeMismatch):
		status, code = http.StatusBadRequest, "CODE_MISMATCH"
	case errors.Is(err, service.ErrAccountNotVerified):
		status, code = http.StatusForbidden, "ACCOUNT_NOT_VERIFIED"
	default:
		h.logger.ErrorContext(r.Context(), "auth operation failed", "operation", op, "error", err)
	}

	observability.RecordAuthEvent(r.Context(), op, code)
	response.Error(w, r, status, code)
}
