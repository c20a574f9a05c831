package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"splitledger/internal/auth"
	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/service"
	"splitledger/internal/storage"
)

// writeError maps domain errors onto HTTP statuses. Validation errors carry
// their detail to the client; everything unexpected becomes an opaque 500.
func writeError(c *gin.Context, err error) {
	var (
		invalidMembers *ledger.InvalidMembersError
		invalidAmount  *ledger.InvalidAmountError
		invalidShare   *ledger.InvalidShareError
		mismatch       *ledger.ShareMismatchError
	)

	switch {
	case errors.As(err, &mismatch):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": mismatch.Error(),
			"delta": mismatch.Delta,
		})
	case errors.As(err, &invalidMembers),
		errors.As(err, &invalidAmount),
		errors.As(err, &invalidShare),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotMember), errors.Is(err, service.ErrNotPayer):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, auth.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		slog.Error("internal error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
