package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"homebudget/internal/models"
	"homebudget/internal/month"
	"homebudget/internal/services"
	"homebudget/internal/validator"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
	now           func() time.Time
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService, now: time.Now}
}

// ListBudgetsQuery holds the query parameters of the budget list.
type ListBudgetsQuery struct {
	Month     string `form:"month" binding:"omitempty,month"`
	MonthDate string `form:"month_date" binding:"omitempty,isodate"`
	TypeID    string `form:"type_id"`
	Order     string `form:"order" binding:"omitempty,budget_order"`
}

// UpsertBudgetRequest represents the request payload for creating or replacing a budget.
type UpsertBudgetRequest struct {
	MonthDate string           `json:"month_date" binding:"required,isodate"`
	TypeID    uint             `json:"type_id" binding:"required,gt=0"`
	Amount    *decimal.Decimal `json:"amount" binding:"required,gte=0,lt=1000000000" swaggertype:"number"`
}

// UpdateBudgetRequest represents the request payload for changing a budget amount.
type UpdateBudgetRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required,gte=0,lt=1000000000" swaggertype:"number"`
}

// ListBudgets handles listing the explicit budgets of a month.
// @Summary     List budgets
// @Description List explicit budget rows of one month (defaults to the current UTC month)
// @Tags        budgets
// @Produce     json
// @Security    SessionAuth
// @Param       month      query string false "Month in YYYY-MM format"
// @Param       month_date query string false "Any date of the month, YYYY-MM-DD"
// @Param       type_id    query int    false "Filter by transaction type"
// @Param       order      query string false "month_date|type_id|created_at with .asc or .desc"
// @Success     200 {array}  models.Budget
// @Failure     400 {object} ErrorResponse "Invalid query parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	var query ListBudgetsQuery
	if err := bindQuery(c, &query); err != nil {
		respondWithError(c, err)
		return
	}

	details := validator.Details{}
	if query.Month != "" && query.MonthDate != "" {
		details.Add("month_date", "Provide either month or month_date, not both")
	}
	var typeID *uint
	if query.TypeID != "" {
		id, err := strconv.ParseUint(query.TypeID, 10, 32)
		if err != nil || id == 0 {
			details.Add("type_id", "must be a positive integer")
		} else {
			v := uint(id)
			typeID = &v
		}
	}
	if len(details) > 0 {
		respondWithError(c, validator.NewError(details))
		return
	}

	monthDate := month.Of(h.now()).FirstDay()
	switch {
	case query.Month != "":
		m, _ := month.Parse(query.Month)
		monthDate = m.FirstDay()
	case query.MonthDate != "":
		monthDate, _ = month.NormalizeDate(query.MonthDate)
	}

	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), services.BudgetFilter{
		MonthDate: monthDate,
		TypeID:    typeID,
		Order:     query.Order,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budgets)
}

// UpsertBudget handles creating or replacing the budget of (month, category).
// @Summary     Upsert budget
// @Description Create the budget for a month and category, or overwrite its amount
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    SessionAuth
// @Param       request body UpsertBudgetRequest true "Budget"
// @Success     200 {object} models.Budget "Budget updated"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) UpsertBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpsertBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	budget, created, err := h.budgetService.UpsertBudget(c.Request.Context(), services.UpsertBudgetInput{
		MonthDate: models.Date(req.MonthDate),
		TypeID:    req.TypeID,
		Amount:    *req.Amount,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionUpsertBudget, "budget", budgetResourceID(budget), c.ClientIP(),
		map[string]any{"amount": budget.Amount.String(), "created": created})

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, budget)
}

// GetBudget handles retrieving the budget of (month, category).
// @Summary     Get budget
// @Tags        budgets
// @Produce     json
// @Security    SessionAuth
// @Param       month_date path string true "Any date of the month, YYYY-MM-DD"
// @Param       type_id    path int    true "Transaction type ID"
// @Success     200 {object} models.Budget
// @Failure     400 {object} ErrorResponse "Invalid budget key"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{month_date}/{type_id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	monthDate, typeID, err := parseBudgetKey(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudget(c.Request.Context(), monthDate, typeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// UpdateBudget handles changing the amount of an existing budget.
// @Summary     Update budget
// @Description Change the amount of an existing budget. Does not create; use POST /budgets.
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    SessionAuth
// @Param       month_date path string              true "Any date of the month, YYYY-MM-DD"
// @Param       type_id    path int                 true "Transaction type ID"
// @Param       request    body UpdateBudgetRequest true "New amount"
// @Success     200 {object} models.Budget
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{month_date}/{type_id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthDate, typeID, err := parseBudgetKey(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), monthDate, typeID, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionUpdateBudget, "budget", budgetResourceID(budget), c.ClientIP(),
		map[string]any{"amount": budget.Amount.String()})

	c.JSON(http.StatusOK, budget)
}

// DeleteBudget handles removing an explicit budget.
// @Summary     Delete budget
// @Description Remove the explicit budget; the category falls back to its default amount
// @Tags        budgets
// @Security    SessionAuth
// @Param       month_date path string true "Any date of the month, YYYY-MM-DD"
// @Param       type_id    path int    true "Transaction type ID"
// @Success     204 "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget key"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{month_date}/{type_id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthDate, typeID, err := parseBudgetKey(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(c.Request.Context(), monthDate, typeID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionDeleteBudget, "budget",
		string(monthDate)+"/"+strconv.FormatUint(uint64(typeID), 10), c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// parseBudgetKey reads the composite (month_date, type_id) key from the path.
// The month date is normalized to the first day of its month.
func parseBudgetKey(c *gin.Context) (models.Date, uint, error) {
	details := validator.Details{}

	monthDate, err := month.NormalizeDate(c.Param("month_date"))
	if err != nil {
		details.Add("month_date", "must be a valid date in YYYY-MM-DD format")
	}
	typeID, err := strconv.ParseUint(c.Param("type_id"), 10, 32)
	if err != nil || typeID == 0 {
		details.Add("type_id", "must be a positive integer")
	}

	if len(details) > 0 {
		return "", 0, validator.NewError(details)
	}
	return monthDate, uint(typeID), nil
}

func budgetResourceID(b *models.Budget) string {
	return string(b.MonthDate) + "/" + strconv.FormatUint(uint64(b.TypeID), 10)
}
