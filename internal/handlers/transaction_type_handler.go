package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homebudget/internal/services"
)

// TransactionTypeHandler serves the category reference data.
type TransactionTypeHandler struct {
	typeService services.TransactionTypeServicer
}

// NewTransactionTypeHandler creates a new TransactionTypeHandler.
func NewTransactionTypeHandler(typeService services.TransactionTypeServicer) *TransactionTypeHandler {
	return &TransactionTypeHandler{typeService: typeService}
}

// ListTransactionTypesQuery holds the query parameters of the list endpoint.
type ListTransactionTypesQuery struct {
	Q     string `form:"q" binding:"omitempty,max=100"`
	Order string `form:"order" binding:"omitempty,type_order"`
}

// ListTransactionTypes handles listing categories.
// @Summary     List transaction types
// @Description List spending categories in display order
// @Tags        transaction-types
// @Produce     json
// @Security    SessionAuth
// @Param       q     query string false "Case-insensitive match on name or code"
// @Param       order query string false "position.asc (default) or position.desc"
// @Success     200 {array}  models.TransactionType
// @Failure     400 {object} ErrorResponse "Invalid query parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transaction-types [get]
func (h *TransactionTypeHandler) ListTransactionTypes(c *gin.Context) {
	var query ListTransactionTypesQuery
	if err := bindQuery(c, &query); err != nil {
		respondWithError(c, err)
		return
	}

	types, err := h.typeService.ListTransactionTypes(c.Request.Context(), services.TransactionTypeFilter{
		Q:     query.Q,
		Order: query.Order,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types)
}

// GetTransactionType handles retrieving one category.
// @Summary     Get transaction type
// @Tags        transaction-types
// @Produce     json
// @Security    SessionAuth
// @Param       id path int true "Transaction type ID"
// @Success     200 {object} models.TransactionType
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transaction-types/{id} [get]
func (h *TransactionTypeHandler) GetTransactionType(c *gin.Context) {
	id, err := parsePathUint(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	t, err := h.typeService.GetTransactionType(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}
