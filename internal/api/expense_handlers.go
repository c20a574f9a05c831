package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"splitledger/internal/middleware"
	"splitledger/internal/service"
)

type expenseHandlers struct {
	expenses *service.ExpenseService
}

func (h *expenseHandlers) toInput(req expenseRequest) service.ExpenseInput {
	return service.ExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		SplitType:   req.SplitType,
		Splits:      req.Splits,
	}
}

func (h *expenseHandlers) add(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenses.AddExpense(c.Request.Context(),
		middleware.UserEmail(c), c.Param("id"), h.toInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

func (h *expenseHandlers) update(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expense, err := h.expenses.UpdateExpense(c.Request.Context(),
		middleware.UserEmail(c), c.Param("id"), c.Param("expenseId"), h.toInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toExpenseResponse(expense))
}

func (h *expenseHandlers) delete(c *gin.Context) {
	err := h.expenses.DeleteExpense(c.Request.Context(),
		middleware.UserEmail(c), c.Param("id"), c.Param("expenseId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *expenseHandlers) list(c *gin.Context) {
	expenses, err := h.expenses.ListExpenses(c.Request.Context(),
		middleware.UserEmail(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	c.JSON(http.StatusOK, gin.H{"expenses": out})
}

func (h *expenseHandlers) balances(c *gin.Context) {
	groupID := c.Param("id")
	balances, err := h.expenses.GroupBalances(c.Request.Context(),
		middleware.UserEmail(c), groupID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, balancesResponse{GroupID: groupID, Balances: balances})
}
