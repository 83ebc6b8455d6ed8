package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"

	"homebudget/internal/models"
	"homebudget/internal/month"
	"homebudget/internal/pagination"
	"homebudget/internal/services"
	"homebudget/internal/validator"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// ListTransactionsQuery holds the query parameters of the transaction list.
// Numeric filters are bound as text so failures are reported per field.
type ListTransactionsQuery struct {
	Month            string `form:"month" binding:"omitempty,month"`
	StartDate        string `form:"start_date" binding:"omitempty,isodate"`
	EndDate          string `form:"end_date" binding:"omitempty,isodate"`
	TypeID           string `form:"type_id"`
	MinAmount        string `form:"min_amount"`
	MaxAmount        string `form:"max_amount"`
	Q                string `form:"q" binding:"max=255"`
	IsManualOverride *bool  `form:"is_manual_override"`
	ImportHash       string `form:"import_hash" binding:"max=128"`
	Order            string `form:"order" binding:"omitempty,tx_order"`
	Limit            int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Cursor           string `form:"cursor"`
	Fields           string `form:"fields" binding:"omitempty,tx_fields"`
	Page             int    `form:"page" binding:"omitempty,min=1"`
	PageSize         int    `form:"pageSize" binding:"omitempty,min=1,max=1000"`
}

// CreateTransactionRequest represents one transaction to record.
type CreateTransactionRequest struct {
	TypeID           uint             `json:"type_id" binding:"required,gt=0"`
	Amount           *decimal.Decimal `json:"amount" binding:"required,gt=0,lt=100000" swaggertype:"number"`
	Description      string           `json:"description" binding:"required,max=255"`
	Date             string           `json:"date" binding:"required,isodate,mindate=2000-01-01"`
	ImportHash       *string          `json:"import_hash" binding:"omitempty,max=128"`
	IsManualOverride bool             `json:"is_manual_override"`
}

// CreateTransactionsBatchRequest represents a bulk import.
type CreateTransactionsBatchRequest struct {
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=1,max=1000,dive"`
}

// ReplaceTransactionRequest represents a full replacement of a transaction.
type ReplaceTransactionRequest struct {
	TypeID           uint             `json:"type_id" binding:"required,gt=0"`
	Amount           *decimal.Decimal `json:"amount" binding:"required,gt=0,lt=100000" swaggertype:"number"`
	Description      string           `json:"description" binding:"required,max=255"`
	Date             string           `json:"date" binding:"required,isodate,mindate=2000-01-01"`
	IsManualOverride *bool            `json:"is_manual_override"`
	AIStatus         *string          `json:"ai_status" binding:"omitempty,ai_status"`
	AIConfidence     *float64         `json:"ai_confidence" binding:"omitempty,gte=0,lte=1"`
	ImportHash       *string          `json:"import_hash" binding:"omitempty,max=128"`
}

// PatchTransactionRequest represents a partial update. Absent keys are left
// alone; a null ai_status, ai_confidence or import_hash clears the column.
type PatchTransactionRequest struct {
	TypeID           *uint            `json:"type_id" binding:"omitempty,gt=0"`
	Amount           *decimal.Decimal `json:"amount" binding:"omitempty,gt=0,lt=100000" swaggertype:"number"`
	Description      *string          `json:"description" binding:"omitempty,max=255"`
	Date             *string          `json:"date" binding:"omitempty,isodate,mindate=2000-01-01"`
	IsManualOverride *bool            `json:"is_manual_override"`
	AIStatus         *string          `json:"ai_status" binding:"omitempty,ai_status"`
	AIConfidence     *float64         `json:"ai_confidence" binding:"omitempty,gte=0,lte=1"`
	ImportHash       *string          `json:"import_hash" binding:"omitempty,max=128"`
}

// TransactionListResponse is the body of the transaction list.
type TransactionListResponse struct {
	Data       []models.Transaction `json:"data"`
	Count      int64                `json:"count"`
	NextCursor *string              `json:"next_cursor"`
}

// ListTransactions handles listing transactions with filters and pagination.
// @Summary     List transactions
// @Description Filter, sort and paginate transactions. A cursor takes precedence over page/pageSize.
// @Tags        transactions
// @Produce     json
// @Security    SessionAuth
// @Param       month              query string false "Month in YYYY-MM format"
// @Param       start_date         query string false "Inclusive lower date bound"
// @Param       end_date           query string false "Inclusive upper date bound"
// @Param       type_id            query int    false "Filter by transaction type"
// @Param       min_amount         query number false "Minimum amount"
// @Param       max_amount         query number false "Maximum amount"
// @Param       q                  query string false "Case-insensitive description search"
// @Param       is_manual_override query bool   false "Filter by manual override"
// @Param       import_hash        query string false "Filter by import hash"
// @Param       order              query string false "date.asc|date.desc|amount.asc|amount.desc"
// @Param       limit              query int    false "Window size (1-1000, default 50)"
// @Param       cursor             query string false "Opaque cursor from a previous page"
// @Param       page               query int    false "Page number (offset mode)"
// @Param       pageSize           query int    false "Page size (offset mode)"
// @Param       fields             query string false "Comma separated columns to return"
// @Success     200 {object} TransactionListResponse
// @Failure     400 {object} ErrorResponse "Invalid query parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var query ListTransactionsQuery
	if err := bindQuery(c, &query); err != nil {
		respondWithError(c, err)
		return
	}

	q, err := query.toServiceQuery()
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := h.transactionService.ListTransactions(c.Request.Context(), q)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if len(q.Fields) == 0 {
		c.JSON(http.StatusOK, page)
		return
	}

	rows, err := projectRows(page.Data, q.Fields)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "count": page.Count, "next_cursor": page.NextCursor})
}

// toServiceQuery applies the cross-field rules and the month expansion.
func (q ListTransactionsQuery) toServiceQuery() (services.TransactionQuery, error) {
	details := validator.Details{}
	out := services.TransactionQuery{
		Q:                q.Q,
		IsManualOverride: q.IsManualOverride,
		ImportHash:       strings.TrimSpace(q.ImportHash),
		Order:            q.Order,
		Limit:            pagination.ClampLimit(q.Limit),
		Page:             pagination.PageRequest{Page: q.Page, PageSize: q.PageSize},
		Fields:           validator.SplitFields(q.Fields),
	}

	if q.TypeID != "" {
		id, err := strconv.ParseUint(q.TypeID, 10, 32)
		if err != nil || id == 0 {
			details.Add("type_id", "must be a positive integer")
		} else {
			v := uint(id)
			out.TypeID = &v
		}
	}
	out.MinAmount = parseAmountParam(details, "min_amount", q.MinAmount)
	out.MaxAmount = parseAmountParam(details, "max_amount", q.MaxAmount)
	if out.MinAmount != nil && out.MaxAmount != nil && out.MinAmount.GreaterThan(*out.MaxAmount) {
		details.Add("min_amount", "must be less than or equal to max_amount")
	}
	if q.StartDate != "" && q.EndDate != "" && q.StartDate > q.EndDate {
		details.Add("start_date", "must be on or before end_date")
	}

	if q.Cursor != "" {
		cur, err := pagination.DecodeCursor(q.Cursor)
		if err != nil {
			details.Add("cursor", "is invalid")
		} else {
			out.Cursor = &cur
		}
	}

	if len(details) > 0 {
		return services.TransactionQuery{}, validator.NewError(details)
	}

	var from, to models.Date
	if q.Month != "" {
		m, _ := month.Parse(q.Month)
		from, to = m.FirstDay(), m.LastDay()
	}
	if d := models.Date(q.StartDate); d != "" && d > from {
		from = d
	}
	if d := models.Date(q.EndDate); d != "" && (to == "" || d < to) {
		to = d
	}
	if from != "" {
		out.From = &from
	}
	if to != "" {
		out.To = &to
	}

	return out, nil
}

func parseAmountParam(details validator.Details, field, raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		details.Add(field, "must be a number")
		return nil
	}
	return &d
}

// projectRows keeps only the requested keys of each row.
func projectRows(rows []models.Transaction, fields []string) ([]map[string]json.RawMessage, error) {
	out := make([]map[string]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		raw, err := json.Marshal(row)
		if err != nil {
			return nil, err
		}
		var all map[string]json.RawMessage
		if err := json.Unmarshal(raw, &all); err != nil {
			return nil, err
		}
		picked := make(map[string]json.RawMessage, len(fields))
		for _, f := range fields {
			if v, ok := all[f]; ok {
				picked[f] = v
			}
		}
		out = append(out, picked)
	}
	return out, nil
}

// GetTransaction handles retrieving a single transaction.
// @Summary     Get transaction
// @Tags        transactions
// @Produce     json
// @Security    SessionAuth
// @Param       id path string true "Transaction ID (UUID)"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransaction(c.Request.Context(), userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// CreateTransaction handles recording one transaction or a batch import.
// @Summary     Create transaction(s)
// @Description A single object creates one transaction (201). An object with a
// @Description "transactions" array imports up to 1000 items and reports each (207).
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    SessionAuth
// @Param       request body CreateTransactionRequest true "Transaction, or {transactions: [...]}"
// @Success     201 {object} models.Transaction "Transaction created"
// @Success     207 {object} services.BatchResult "Batch processed"
// @Failure     400 {object} ErrorResponse "Invalid input or unknown type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Duplicate import hash"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	keys, err := bindJSONKeys(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if _, ok := keys["transactions"]; ok {
		h.createBatch(c, userID)
		return
	}

	var req CreateTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	details := validator.Details{}
	checkDescription(details, "description", &req.Description)
	if len(details) > 0 {
		respondWithError(c, validator.NewError(details))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionCreateTransaction, "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"type_id": transaction.TypeID, "amount": transaction.Amount.String(), "date": transaction.Date})

	c.JSON(http.StatusCreated, transaction)
}

func (h *TransactionHandler) createBatch(c *gin.Context, userID string) {
	var req CreateTransactionsBatchRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	details := validator.Details{}
	items := make([]services.CreateTransactionInput, len(req.Transactions))
	for i := range req.Transactions {
		checkDescription(details, "transactions["+strconv.Itoa(i)+"].description", &req.Transactions[i].Description)
		items[i] = req.Transactions[i].toInput()
	}
	if len(details) > 0 {
		respondWithError(c, validator.NewError(details))
		return
	}

	result, err := h.transactionService.CreateTransactionsBatch(c.Request.Context(), userID, items)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionImportBatch, "transaction", "", c.ClientIP(),
		map[string]any{"created": result.Summary.Created, "skipped": result.Summary.Skipped, "errors": result.Summary.Errors})

	c.JSON(http.StatusMultiStatus, result)
}

// ReplaceTransaction handles a full replacement of a transaction.
// @Summary     Replace transaction
// @Description ai_status and ai_confidence may only be sent together with is_manual_override=true
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    SessionAuth
// @Param       id      path string                    true "Transaction ID (UUID)"
// @Param       request body ReplaceTransactionRequest true "Transaction"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) ReplaceTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ReplaceTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	keys, err := bindJSONKeys(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	details := validator.Details{}
	checkDescription(details, "description", &req.Description)
	if len(details) > 0 {
		respondWithError(c, validator.NewError(details))
		return
	}

	in := services.ReplaceTransactionInput{
		TypeID:           req.TypeID,
		Amount:           *req.Amount,
		Description:      req.Description,
		Date:             models.Date(req.Date),
		IsManualOverride: req.IsManualOverride,
		AIStatus:         toAIStatus(req.AIStatus),
		AIConfidence:     req.AIConfidence,
		ImportHash:       req.ImportHash,
		TouchesAI:        hasKey(keys, "ai_status") || hasKey(keys, "ai_confidence"),
	}

	transaction, err := h.transactionService.ReplaceTransaction(c.Request.Context(), userID, id, in)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionUpdateTransaction, "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"mode": "replace"})

	c.JSON(http.StatusOK, transaction)
}

// PatchTransaction handles a partial update of a transaction.
// @Summary     Patch transaction
// @Description At least one field is required. AI fields require is_manual_override on the request or the stored row.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    SessionAuth
// @Param       id      path string                  true "Transaction ID (UUID)"
// @Param       request body PatchTransactionRequest true "Fields to change"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [patch]
func (h *TransactionHandler) PatchTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PatchTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}
	keys, err := bindJSONKeys(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	details := validator.Details{}
	if req.Description != nil {
		checkDescription(details, "description", req.Description)
	}
	if len(details) > 0 {
		respondWithError(c, validator.NewError(details))
		return
	}

	patch := services.TransactionPatch{
		TypeID:           req.TypeID,
		Amount:           req.Amount,
		Description:      req.Description,
		IsManualOverride: req.IsManualOverride,
		AIStatus:         toAIStatus(req.AIStatus),
		SetAIStatus:      hasKey(keys, "ai_status"),
		AIConfidence:     req.AIConfidence,
		SetAIConfidence:  hasKey(keys, "ai_confidence"),
		ImportHash:       req.ImportHash,
		SetImportHash:    hasKey(keys, "import_hash"),
	}
	if req.Date != nil {
		d := models.Date(*req.Date)
		patch.Date = &d
	}

	transaction, err := h.transactionService.PatchTransaction(c.Request.Context(), userID, id, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionUpdateTransaction, "transaction", transaction.ID, c.ClientIP(),
		map[string]any{"mode": "patch", "fields": presentKeys(keys)})

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction handles removing a transaction.
// @Summary     Delete transaction
// @Tags        transactions
// @Produce     json
// @Security    SessionAuth
// @Param       id path string true "Transaction ID (UUID)"
// @Success     200 {object} OKResponse
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionDeleteTransaction, "transaction", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, OKResponse{OK: true})
}

func (r CreateTransactionRequest) toInput() services.CreateTransactionInput {
	return services.CreateTransactionInput{
		TypeID:           r.TypeID,
		Amount:           *r.Amount,
		Description:      r.Description,
		Date:             models.Date(r.Date),
		ImportHash:       r.ImportHash,
		IsManualOverride: r.IsManualOverride,
	}
}

// bindJSONKeys returns the top-level keys of the JSON object body.
func bindJSONKeys(c *gin.Context) (map[string]json.RawMessage, error) {
	var keys map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&keys, binding.JSON); err != nil {
		return nil, validator.ToAppError(err)
	}
	return keys, nil
}

// checkDescription trims s in place and rejects a blank result.
func checkDescription(details validator.Details, field string, s *string) {
	*s = strings.TrimSpace(*s)
	if *s == "" {
		details.Add(field, "must not be blank")
	}
}

func hasKey(keys map[string]json.RawMessage, key string) bool {
	_, ok := keys[key]
	return ok
}

func presentKeys(keys map[string]json.RawMessage) []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func toAIStatus(s *string) *models.AIStatus {
	if s == nil {
		return nil
	}
	status := models.AIStatus(*s)
	return &status
}
