// Package client provides an HTTP client for the home budget API, plus the
// optimistic budget editor and the cancelling dashboard loader built on it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"homebudget/internal/models"
	"homebudget/internal/pagination"
	"homebudget/internal/services"
)

// APIError is a non-2xx answer decoded from the error envelope.
type APIError struct {
	Status  int                 `json:"-"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Status)
	}
	return e.Message
}

// UpsertBudgetInput is the body of a budget upsert.
type UpsertBudgetInput struct {
	MonthDate models.Date     `json:"month_date"`
	TypeID    uint            `json:"type_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// CreateTransactionInput is the body of a single transaction create.
type CreateTransactionInput struct {
	TypeID           uint            `json:"type_id"`
	Amount           decimal.Decimal `json:"amount"`
	Description      string          `json:"description"`
	Date             models.Date     `json:"date"`
	ImportHash       *string         `json:"import_hash,omitempty"`
	IsManualOverride bool            `json:"is_manual_override,omitempty"`
}

// TransactionFilter narrows a transaction list. Zero values are omitted.
type TransactionFilter struct {
	Month  string
	Q      string
	TypeID uint
	Order  string
	Limit  int
	Cursor string
}

func (f TransactionFilter) values() url.Values {
	v := url.Values{}
	if f.Month != "" {
		v.Set("month", f.Month)
	}
	if f.Q != "" {
		v.Set("q", f.Q)
	}
	if f.TypeID > 0 {
		v.Set("type_id", strconv.FormatUint(uint64(f.TypeID), 10))
	}
	if f.Order != "" {
		v.Set("order", f.Order)
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Cursor != "" {
		v.Set("cursor", f.Cursor)
	}
	return v
}

// Client communicates with the home budget API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client. token is the session token; it is sent as a Bearer
// credential when not empty.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// ListTransactionTypes fetches the categories in display order.
func (c *Client) ListTransactionTypes(ctx context.Context) ([]models.TransactionType, error) {
	var types []models.TransactionType
	if err := c.do(ctx, http.MethodGet, "/api/transaction-types", nil, nil, &types); err != nil {
		return nil, fmt.Errorf("fetching transaction types: %w", err)
	}
	return types, nil
}

// ListBudgets fetches the explicit budgets of a "YYYY-MM" month.
func (c *Client) ListBudgets(ctx context.Context, month string) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := c.do(ctx, http.MethodGet, "/api/budgets", url.Values{"month": {month}}, nil, &budgets); err != nil {
		return nil, fmt.Errorf("fetching budgets: %w", err)
	}
	return budgets, nil
}

// UpsertBudget creates or replaces the budget of one category and month.
func (c *Client) UpsertBudget(ctx context.Context, in UpsertBudgetInput) (*models.Budget, error) {
	var budget models.Budget
	if err := c.do(ctx, http.MethodPost, "/api/budgets", nil, in, &budget); err != nil {
		return nil, fmt.Errorf("saving budget: %w", err)
	}
	return &budget, nil
}

// GetMonthlyReport fetches the household report of a "YYYY-MM" month.
func (c *Client) GetMonthlyReport(ctx context.Context, month string) (*services.MonthlyReport, error) {
	var report services.MonthlyReport
	if err := c.do(ctx, http.MethodGet, "/api/reports/monthly", url.Values{"month": {month}}, nil, &report); err != nil {
		return nil, fmt.Errorf("fetching monthly report: %w", err)
	}
	return &report, nil
}

// ListTransactions fetches one page of transactions.
func (c *Client) ListTransactions(ctx context.Context, f TransactionFilter) (*pagination.CursorPage[models.Transaction], error) {
	var page pagination.CursorPage[models.Transaction]
	if err := c.do(ctx, http.MethodGet, "/api/transactions", f.values(), nil, &page); err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}
	return &page, nil
}

// CreateTransaction records a single transaction.
func (c *Client) CreateTransaction(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	var tx models.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", nil, in, &tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}
	return &tx, nil
}

// DeleteTransaction removes one of the caller's transactions.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/transactions/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != nil {
		envelope.Error.Status = resp.StatusCode
		return envelope.Error
	}
	return apiErr
}
