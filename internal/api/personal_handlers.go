package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"splitledger/internal/middleware"
	"splitledger/internal/service"
)

type personalHandlers struct {
	personal *service.PersonalService
}

func (h *personalHandlers) add(c *gin.Context) {
	var req personalExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.personal.AddExpense(c.Request.Context(),
		middleware.UserEmail(c), req.Description, req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPersonalExpenseResponse(expense))
}

func (h *personalHandlers) list(c *gin.Context) {
	expenses, err := h.personal.ListExpenses(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]personalExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toPersonalExpenseResponse(e))
	}
	c.JSON(http.StatusOK, gin.H{"expenses": out})
}

func (h *personalHandlers) delete(c *gin.Context) {
	err := h.personal.DeleteExpense(c.Request.Context(),
		middleware.UserEmail(c), c.Param("expenseId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *personalHandlers) total(c *gin.Context) {
	total, err := h.personal.Total(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}
