package handler

import (
	"net/http"

	"anoa.com/campuscircle/internal/dto"
	"anoa.com/campuscircle/internal/service"
	"anoa.com/campuscircle/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Verify only runs behind the auth middleware, so reaching it means the
// credential checked out.
func (h *AuthHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, dto.VerifyResponse{Valid: true})
}
