package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"memberhub/internal/models"
	"memberhub/internal/services"
)

type MemberRegistrationRequest struct {
	Step              string `json:"step" binding:"required,oneof=send-otp verify-otp complete-registration"`
	VerificationType  string `json:"verificationType"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	OTP               string `json:"otp"`
	Organization      int64  `json:"organization"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Password          string `json:"password"`
	Designation       string `json:"designation"`
	Experience        string `json:"experience"`
	Achievements      string `json:"achievements"`
	PaymentMethod     string `json:"paymentMethod"`
	VerifiedContact   string `json:"verifiedContact"`
	VerificationToken string `json:"verificationToken"`
}

type MemberCreatedResponse struct {
	ID           int64  `json:"id"`
	MembershipID string `json:"membershipId"`
	Status       string `json:"status"`
	Message      string `json:"message"`
}

type MemberLoginVerifyRequest struct {
	MembershipID string `json:"membership_id" binding:"required"`
	OTP          string `json:"otp" binding:"required"`
}

type MemberHandler struct {
	service services.MemberService
}

func NewMemberHandler(service services.MemberService) *MemberHandler {
	return &MemberHandler{service: service}
}

// @Summary      Регистрация члена организации (шаги)
// @Tags         Members
// @Accept       json
// @Produce      json
// @Param        body  body      MemberRegistrationRequest  true  "Step payload"
// @Success      200   {object}  VerifyOTPResponse
// @Success      201   {object}  MemberCreatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /members/registration [post]
func (h *MemberHandler) Register(c *gin.Context) {
	var req MemberRegistrationRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	switch req.Step {
	case stepSendOTP:
		err := h.service.SendOTP(ctx, services.SendOTPInput{VerificationType: req.VerificationType, Email: req.Email, Phone: req.Phone})
		if err != nil {
			respondError(c, "[member][send-otp]", err)
			return
		}
		c.JSON(http.StatusOK, messageResponse{Message: "Verification code sent to your " + strings.ToLower(req.VerificationType)})

	case stepVerifyOTP:
		token, err := h.service.VerifyOTP(ctx, services.VerifyOTPInput{
			OTP: req.OTP, VerificationType: req.VerificationType, Email: req.Email, Phone: req.Phone,
		})
		if err != nil {
			respondError(c, "[member][verify-otp]", err)
			return
		}
		contact := req.Email
		if strings.EqualFold(req.VerificationType, "phone") {
			contact = req.Phone
		}
		c.JSON(http.StatusOK, VerifyOTPResponse{Success: true, VerificationToken: token, VerifiedContact: strings.TrimSpace(contact)})

	case stepCompleteRegistration:
		m, err := h.service.Register(ctx, services.MemberRegistrationInput{
			OrganizationID:    req.Organization,
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Email:             req.Email,
			Phone:             req.Phone,
			Password:          req.Password,
			Designation:       req.Designation,
			Experience:        req.Experience,
			Achievements:      req.Achievements,
			PaymentMethod:     req.PaymentMethod,
			VerificationType:  req.VerificationType,
			VerifiedContact:   req.VerifiedContact,
			VerificationToken: req.VerificationToken,
		})
		if err != nil {
			respondError(c, "[member][register]", err)
			return
		}
		c.JSON(http.StatusCreated, MemberCreatedResponse{
			ID:           m.ID,
			MembershipID: m.MembershipID,
			Status:       string(m.Status),
			Message:      "Application submitted. Keep your membership ID to sign in.",
		})
	}
}

// @Summary      Вход члена организации
// @Description  Returns a session, or otp_required with the masked phone when a login code was sent
// @Tags         Members
// @Accept       json
// @Produce      json
// @Param        body  body      models.MemberLoginRequest  true  "Credentials"
// @Success      200   {object}  services.LoginResult
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /members/login [post]
func (h *MemberHandler) Login(c *gin.Context) {
	var req models.MemberLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.service.Login(c.Request.Context(), req.MembershipID, req.Password)
	if err != nil {
		respondError(c, "[member][login]", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Подтверждение входа кодом
// @Tags         Members
// @Accept       json
// @Produce      json
// @Param        body  body      MemberLoginVerifyRequest  true  "Membership ID and code"
// @Success      200   {object}  services.MemberSession
// @Failure      400   {object}  errorResponse
// @Router       /members/login/verify [post]
func (h *MemberHandler) VerifyLogin(c *gin.Context) {
	var req MemberLoginVerifyRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.service.VerifyLogin(c.Request.Context(), req.MembershipID, req.OTP)
	if err != nil {
		respondError(c, "[member][login-verify]", err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// @Summary      Мой профиль
// @Tags         Members
// @Produce      json
// @Success      200  {object}  models.Member
// @Security     BearerAuth
// @Router       /members/me [get]
func (h *MemberHandler) Me(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	m, err := h.service.Get(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, "[member][me]", err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// @Summary      Членский билет (PDF)
// @Tags         Members
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      403  {object}  errorResponse
// @Security     BearerAuth
// @Router       /members/me/card [get]
func (h *MemberHandler) Card(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	out, err := h.service.Card(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, "[member][card]", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="member-card-%d.pdf"`, p.ID))
	c.Data(http.StatusOK, "application/pdf", out)
}

// @Summary      Члены моей организации
// @Tags         MemberReview
// @Produce      json
// @Param        status  query     string  false  "pending | approved | rejected | active"
// @Success      200     {array}   models.Member
// @Security     BearerAuth
// @Router       /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	list, err := h.service.ListForOrganization(c.Request.Context(), p.OrganizationID, models.MemberStatus(c.Query("status")))
	if err != nil {
		respondError(c, "[member][list]", err)
		return
	}
	if list == nil {
		list = []*models.Member{}
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Одобрить члена
// @Tags         MemberReview
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  models.Member
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Security     BearerAuth
// @Router       /members/{id}/approve [post]
func (h *MemberHandler) Approve(c *gin.Context) {
	h.review(c, true)
}

// @Summary      Отклонить члена
// @Tags         MemberReview
// @Produce      json
// @Param        id   path      int  true  "Member ID"
// @Success      200  {object}  models.Member
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Security     BearerAuth
// @Router       /members/{id}/reject [post]
func (h *MemberHandler) Reject(c *gin.Context) {
	h.review(c, false)
}

func (h *MemberHandler) review(c *gin.Context, approve bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	m, err := h.service.Review(c.Request.Context(), p, id, approve)
	if err != nil {
		respondError(c, "[member][review]", err)
		return
	}
	c.JSON(http.StatusOK, m)
}
