package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"memberhub/internal/models"
	"memberhub/internal/services"
)

type CreateOrganizationRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type OrganizationHandler struct {
	service services.OrganizationService
}

func NewOrganizationHandler(service services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

// @Summary      Список организаций
// @Tags         Organizations
// @Produce      json
// @Success      200  {array}  models.Organization
// @Router       /organizations [get]
func (h *OrganizationHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "[organization][list]", err)
		return
	}
	if list == nil {
		list = []*models.Organization{}
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Организация
// @Tags         Organizations
// @Produce      json
// @Param        id   path      int  true  "Organization ID"
// @Success      200  {object}  models.Organization
// @Failure      404  {object}  errorResponse
// @Router       /organizations/{id} [get]
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	o, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[organization][get]", err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary      Создать организацию
// @Tags         Organizations
// @Accept       json
// @Produce      json
// @Param        body  body      CreateOrganizationRequest  true  "Organization"
// @Success      201   {object}  models.Organization
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Security     BearerAuth
// @Router       /organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req CreateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.service.Create(c.Request.Context(), services.OrganizationInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address,
	})
	if err != nil {
		respondError(c, "[organization][create]", err)
		return
	}
	c.JSON(http.StatusCreated, o)
}
