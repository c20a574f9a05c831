package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"splitledger/internal/auth"
)

type authHandlers struct {
	auth   *auth.Service
	tokens *auth.TokenManager
}

func (h *authHandlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse{Token: token, User: toUserResponse(user)})
}

func (h *authHandlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}

// logout is stateless: tokens expire on their own and the client discards
// its copy. The endpoint exists so clients have a uniform sign-out call.
func (h *authHandlers) logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
