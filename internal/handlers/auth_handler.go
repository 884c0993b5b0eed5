package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"memberhub/internal/models"
	"memberhub/internal/services"
)

type AuthHandler struct {
	sessions services.SessionService
}

func NewAuthHandler(sessions services.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// @Summary      Вход администратора
// @Description  Username or email plus password; returns a session JWT
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Данные для входа"
// @Success      200    {object}  services.Session
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.sessions.LoginAdmin(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		respondError(c, "[auth][login]", err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// @Summary  Healthcheck
// @Tags     System
// @Success  200  {object}  map[string]string
// @Router   /healthz [get]
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
