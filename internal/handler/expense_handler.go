package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Adam-Mik/Projekt-zespolowy/internal/delta"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/middleware"
	"github.com/Adam-Mik/Projekt-zespolowy/internal/service"
)

// ExpenseHandler serves the /api/expenses/ resource.
type ExpenseHandler struct {
	expenses *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// expenseRequest deliberately has no person_paying field: whatever the client
// sends for the payer is dropped at the binding boundary and the server
// assigns the requester instead. Amount stays raw so a non-numeric value can
// be reported as field-level detail instead of a generic parse failure.
type expenseRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Group       string          `json:"group"`
}

// parseAmount accepts both the quoted decimal string the mobile client sends
// ("45.50") and a bare JSON number. An absent amount parses to zero, which
// the service reports as a required field.
func parseAmount(c *gin.Context, raw json.RawMessage) (decimal.Decimal, bool) {
	if len(raw) == 0 {
		return decimal.Zero, true
	}
	var amount decimal.Decimal
	if err := json.Unmarshal(raw, &amount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"amount": "A valid number is required."})
		return decimal.Zero, false
	}
	return amount, true
}

// List handles GET /api/expenses/?last_sync=<timestamp>.
func (h *ExpenseHandler) List(c *gin.Context) {
	watermark := delta.ParseWatermark(c.Query("last_sync"))

	expenses, err := h.expenses.List(c.Request.Context(), middleware.UserID(c), watermark)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// Create handles POST /api/expenses/ with the requester as payer.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c)
		return
	}

	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	expense, err := h.expenses.Create(c.Request.Context(), middleware.UserID(c), service.CreateExpenseInput{
		Name:        req.Name,
		Description: req.Description,
		Amount:      amount,
		GroupID:     req.Group,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// Get handles GET /api/expenses/{id}/. Requesters outside the owning group
// get a 404, never a 403.
func (h *ExpenseHandler) Get(c *gin.Context) {
	expense, err := h.expenses.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// Update handles PUT /api/expenses/{id}/. Group and payer are immutable.
func (h *ExpenseHandler) Update(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderBindError(c)
		return
	}

	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	expense, err := h.expenses.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), service.UpdateExpenseInput{
		Name:        req.Name,
		Description: req.Description,
		Amount:      amount,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// Delete handles DELETE /api/expenses/{id}/ as a soft delete.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	if err := h.expenses.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
