package http

import (
	"github.com/gin-gonic/gin"

	"github.com/imeelinew/paper-library/internal/apperr"
	"github.com/imeelinew/paper-library/internal/auth"
)

type AuthController struct {
	service *auth.Service
}

func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Username and password are required"))
		return
	}

	result, err := ac.service.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "ok", result)
}
