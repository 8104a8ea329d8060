package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/moneytalk/internal/client/models"
	"github.com/dmitrijs2005/moneytalk/internal/logging"
)

const (
	// staleSessionStatus is the backend's custom "token no longer matches the
	// last login" code. Treated exactly like 401.
	staleSessionStatus = 434

	defaultTimeout = 15 * time.Second
)

// HTTPClient is the REST implementation of Client.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  TokenSource
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With("component", "api"),
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// do executes a request and decodes a 2xx JSON body into out (when non-nil).
// Authenticated calls re-read the bearer token per request.
func (c *HTTPClient) do(req *http.Request, authed bool, out any) error {
	if authed {
		token, err := c.tokens.Token(req.Context())
		if err != nil {
			return fmt.Errorf("token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatus(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, in, out any, authed bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, authed, out)
}

// mapStatus turns a non-2xx response into a sentinel or a ServerError that
// carries the backend-supplied message.
func (c *HTTPClient) mapStatus(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, staleSessionStatus:
		return ErrSessionExpired
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &ServerError{Status: resp.StatusCode, Message: msg}
	}
}

func (c *HTTPClient) Login(ctx context.Context, id models.Identity) (string, *models.UserProfile, error) {
	var out struct {
		Token string             `json:"token"`
		User  models.UserProfile `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", nil, id, &out, false); err != nil {
		return "", nil, err
	}
	return out.Token, &out.User, nil
}

func (c *HTTPClient) Messages(ctx context.Context, limit int, beforeID string) ([]RawMessage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if beforeID != "" {
		q.Set("before_id", beforeID)
	}
	var out struct {
		Messages []RawMessage `json:"messages"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/user/message", q, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *HTTPClient) PostText(ctx context.Context, role, content string) (*MessageExchange, error) {
	in := map[string]string{"role": role, "data_type": "text", "content": content}
	var out struct {
		Response MessageExchange `json:"response"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/user/message", nil, in, &out, true); err != nil {
		return nil, err
	}
	return &out.Response, nil
}

func (c *HTTPClient) PostImage(ctx context.Context, path string) (*MessageExchange, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("role", "user"); err != nil {
		return nil, err
	}
	if err := mw.WriteField("data_type", "image"); err != nil {
		return nil, err
	}
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/user/message", nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out struct {
		Response MessageExchange `json:"response"`
	}
	if err := c.do(req, true, &out); err != nil {
		return nil, err
	}
	return &out.Response, nil
}

func (c *HTTPClient) DeleteMessage(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/user/message/"+url.PathEscape(id), nil, nil, nil, true)
}

func filterQuery(f models.ExpenseFilter, page, pageSize int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	q.Set("startDate", f.StartDate)
	q.Set("endDate", f.EndDate)
	q.Set("minAmount", f.MinAmount)
	q.Set("maxAmount", f.MaxAmount)
	q.Set("keyword", f.Keyword)
	q.Set("sortField", f.SortField)
	q.Set("sortOrder", f.SortOrder)
	return q
}

func (c *HTTPClient) Expenses(ctx context.Context, f models.ExpenseFilter, page, pageSize int) (*ExpensePage, error) {
	var out struct {
		Expenses     []models.Expense `json:"expenses"`
		Page         int              `json:"page"`
		PageSize     int              `json:"page_size"`
		TotalPages   int              `json:"total_pages"`
		TotalRecords int              `json:"total_records"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/user/expenses", filterQuery(f, page, pageSize), nil, &out, true); err != nil {
		return nil, err
	}
	return &ExpensePage{
		Expenses:     out.Expenses,
		Page:         out.Page,
		PageSize:     out.PageSize,
		TotalPages:   out.TotalPages,
		TotalRecords: out.TotalRecords,
	}, nil
}

func (c *HTTPClient) Expense(ctx context.Context, id int64) (*models.Expense, error) {
	var out struct {
		Expense models.Expense `json:"expense"`
	}
	path := "/api/v1/user/expenses/" + strconv.FormatInt(id, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out.Expense, nil
}

func (c *HTTPClient) AddExpenses(ctx context.Context, items []NewExpense) ([]models.Expense, error) {
	in := map[string][]NewExpense{"expenses": items}
	var out struct {
		AddedExpenses []models.Expense `json:"added_expenses"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/user/expenses", nil, in, &out, true); err != nil {
		return nil, err
	}
	return out.AddedExpenses, nil
}

func (c *HTTPClient) UpdateExpense(ctx context.Context, id int64, patch ExpensePatch) (*models.Expense, error) {
	var out struct {
		UpdatedExpense models.Expense `json:"updated_expense"`
	}
	path := "/api/v1/user/expenses/" + strconv.FormatInt(id, 10)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, patch, &out, true); err != nil {
		return nil, err
	}
	return &out.UpdatedExpense, nil
}

func (c *HTTPClient) DeleteExpenses(ctx context.Context, ids []int64) (int, error) {
	in := map[string][]int64{"delete_ids": ids}
	var out struct {
		DeletedCount int `json:"deleted_count"`
	}
	if err := c.doJSON(ctx, http.MethodPut, "/api/v1/user/expenses", nil, in, &out, true); err != nil {
		return 0, err
	}
	return out.DeletedCount, nil
}

func (c *HTTPClient) DeleteExpense(ctx context.Context, id int64) error {
	path := "/api/v1/user/expenses/" + strconv.FormatInt(id, 10)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

func (c *HTTPClient) StatisticsSummary(ctx context.Context, rng string, top int) (*models.StatisticsSummary, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("top", strconv.Itoa(top))
	var out struct {
		TotalIncome  int64            `json:"total_income"`
		TotalExpense int64            `json:"total_expense"`
		TopIncomes   []models.Expense `json:"top_incomes"`
		TopExpenses  []models.Expense `json:"top_expenses"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/user/statistics/summary", q, nil, &out, true); err != nil {
		return nil, err
	}
	return &models.StatisticsSummary{
		TotalIncome:  out.TotalIncome,
		TotalExpense: out.TotalExpense,
		TopIncomes:   out.TopIncomes,
		TopExpenses:  out.TopExpenses,
	}, nil
}

func (c *HTTPClient) StatisticsChart(ctx context.Context, rng string) (*models.ChartData, error) {
	q := url.Values{}
	q.Set("range", rng)
	var out struct {
		LineData struct {
			Labels   []string `json:"labels"`
			Legend   []string `json:"legend"`
			Datasets []struct {
				Data []float64 `json:"data"`
			} `json:"datasets"`
		} `json:"lineData"`
		Unit         string  `json:"unit"`
		TotalIncome  float64 `json:"total_income"`
		TotalExpense float64 `json:"total_expense"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/user/statistics/chart", q, nil, &out, true); err != nil {
		return nil, err
	}

	cd := &models.ChartData{
		Labels:       out.LineData.Labels,
		Legend:       out.LineData.Legend,
		Unit:         out.Unit,
		TotalIncome:  out.TotalIncome,
		TotalExpense: out.TotalExpense,
	}
	if len(out.LineData.Datasets) > 0 {
		cd.Income = out.LineData.Datasets[0].Data
	}
	if len(out.LineData.Datasets) > 1 {
		cd.Expense = out.LineData.Datasets[1].Data
	}
	return cd, nil
}
