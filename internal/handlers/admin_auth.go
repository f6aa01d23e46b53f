package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"minis-storefront/internal/models"
	"minis-storefront/internal/services"
)

type AdminAuthHandler struct {
	auth *services.AuthService
}

func NewAdminAuthHandler(auth *services.AuthService) *AdminAuthHandler {
	return &AdminAuthHandler{auth: auth}
}

// Login godoc
// @Summary     Admin login
// @Description Exchanges the artist's credentials for a session token
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Credentials"
// @Success     200 {object} models.LoginResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /admin/auth [post]
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	resp, err := h.auth.Login(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
