package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"memberhub/internal/services"
)

const (
	stepSendOTP              = "send-otp"
	stepVerifyOTP            = "verify-otp"
	stepCompleteRegistration = "complete-registration"
)

// RegistrationStepRequest is the body of every step; each step reads its own fields.
type RegistrationStepRequest struct {
	Step              string `json:"step" binding:"required,oneof=send-otp verify-otp complete-registration"`
	VerificationType  string `json:"verificationType"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	OTP               string `json:"otp"`
	Organization      int64  `json:"organization"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Username          string `json:"username"`
	Password          string `json:"password"`
	Experience        string `json:"experience"`
	Level             string `json:"level"`
	Appointer         string `json:"appointer"`
	VerifiedContact   string `json:"verifiedContact"`
	HasOTP            bool   `json:"hasOTP"`
	VerificationToken string `json:"verificationToken"`
}

type VerifyOTPResponse struct {
	Success           bool   `json:"success"`
	VerificationToken string `json:"verificationToken"`
	VerifiedContact   string `json:"verifiedContact"`
}

type AdminRequestCreatedResponse struct {
	RequestID int64  `json:"requestId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

type AdminRegistrationHandler struct {
	service services.AdminRegistrationService
}

func NewAdminRegistrationHandler(service services.AdminRegistrationService) *AdminRegistrationHandler {
	return &AdminRegistrationHandler{service: service}
}

// @Summary      Регистрация администратора (шаги)
// @Description  send-otp -> verify-otp (returns verificationToken) -> complete-registration (creates a pending request)
// @Tags         AdminRegistration
// @Accept       json
// @Produce      json
// @Param        body  body      RegistrationStepRequest  true  "Step payload"
// @Success      200   {object}  VerifyOTPResponse
// @Success      201   {object}  AdminRequestCreatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /admin-registration [post]
func (h *AdminRegistrationHandler) Register(c *gin.Context) {
	var req RegistrationStepRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	switch req.Step {
	case stepSendOTP:
		err := h.service.SendOTP(ctx, services.SendOTPInput{
			VerificationType: req.VerificationType,
			Email:            req.Email,
			Phone:            req.Phone,
		})
		if err != nil {
			respondError(c, "[admin-registration][send-otp]", err)
			return
		}
		c.JSON(http.StatusOK, messageResponse{Message: "Verification code sent to your " + strings.ToLower(req.VerificationType)})

	case stepVerifyOTP:
		token, err := h.service.VerifyOTP(ctx, services.VerifyOTPInput{
			OTP:              req.OTP,
			VerificationType: req.VerificationType,
			Email:            req.Email,
			Phone:            req.Phone,
		})
		if err != nil {
			respondError(c, "[admin-registration][verify-otp]", err)
			return
		}
		contact := req.Email
		if strings.EqualFold(req.VerificationType, "phone") {
			contact = req.Phone
		}
		c.JSON(http.StatusOK, VerifyOTPResponse{Success: true, VerificationToken: token, VerifiedContact: strings.TrimSpace(contact)})

	case stepCompleteRegistration:
		created, err := h.service.CompleteRegistration(ctx, services.CompleteRegistrationInput{
			OrganizationID:    req.Organization,
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Email:             req.Email,
			Phone:             req.Phone,
			Username:          req.Username,
			Password:          req.Password,
			Experience:        req.Experience,
			Level:             req.Level,
			Appointer:         req.Appointer,
			VerificationType:  req.VerificationType,
			VerifiedContact:   req.VerifiedContact,
			HasOTP:            req.HasOTP,
			VerificationToken: req.VerificationToken,
		})
		if err != nil {
			respondError(c, "[admin-registration][complete]", err)
			return
		}
		c.JSON(http.StatusCreated, AdminRequestCreatedResponse{
			RequestID: created.ID,
			Username:  created.Username,
			Email:     created.Email,
			Status:    string(created.Status),
			Message:   "Registration submitted. A superadmin will review your request.",
		})
	}
}
