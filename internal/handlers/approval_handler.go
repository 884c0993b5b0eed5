package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"memberhub/internal/models"
	"memberhub/internal/services"
)

type LoginCredentials struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type ApproveResponse struct {
	Admin            *models.Admin    `json:"admin"`
	OrganizationName string           `json:"organizationName"`
	LoginCredentials LoginCredentials `json:"loginCredentials"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ApprovalHandler struct {
	service services.ApprovalService
}

func NewApprovalHandler(service services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{service: service}
}

// @Summary      Одобрить заявку администратора
// @Tags         AdminApproval
// @Produce      json
// @Param        id   path      int  true  "Admin request ID"
// @Success      200  {object}  ApproveResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Security     BearerAuth
// @Router       /admin-approve/{id} [post]
func (h *ApprovalHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviewer, ok := mustPrincipal(c)
	if !ok {
		return
	}
	res, err := h.service.Approve(c.Request.Context(), id, reviewer.ID)
	if err != nil {
		respondError(c, "[approval][approve]", err)
		return
	}
	c.JSON(http.StatusOK, ApproveResponse{
		Admin:            res.Admin,
		OrganizationName: res.OrganizationName,
		LoginCredentials: LoginCredentials{Username: res.Admin.Username, Message: res.Message},
	})
}

// @Summary      Отклонить заявку администратора
// @Tags         AdminApproval
// @Accept       json
// @Produce      json
// @Param        id    path      int            true   "Admin request ID"
// @Param        body  body      RejectRequest  false  "Reason"
// @Success      200   {object}  models.AdminRequest
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Security     BearerAuth
// @Router       /admin-reject/{id} [post]
func (h *ApprovalHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reviewer, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var body RejectRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &body) {
		return
	}
	req, err := h.service.Reject(c.Request.Context(), id, reviewer.ID, body.Reason)
	if err != nil {
		respondError(c, "[approval][reject]", err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// @Summary      Список заявок администраторов
// @Tags         AdminApproval
// @Produce      json
// @Param        status  query     string  false  "pending | approved | rejected"
// @Success      200     {array}   models.AdminRequest
// @Security     BearerAuth
// @Router       /admin-requests [get]
func (h *ApprovalHandler) List(c *gin.Context) {
	list, err := h.service.ListRequests(c.Request.Context(), models.RequestStatus(c.Query("status")))
	if err != nil {
		respondError(c, "[approval][list]", err)
		return
	}
	if list == nil {
		list = []*models.AdminRequest{}
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Заявка администратора
// @Tags         AdminApproval
// @Produce      json
// @Param        id   path      int  true  "Admin request ID"
// @Success      200  {object}  models.AdminRequest
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /admin-requests/{id} [get]
func (h *ApprovalHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, err := h.service.GetRequest(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[approval][get]", err)
		return
	}
	c.JSON(http.StatusOK, req)
}
