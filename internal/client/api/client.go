// Package api defines the remote MoneyTalk backend surface consumed by the
// client and its HTTP implementation.
package api

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/moneytalk/internal/client/models"
)

// RawMessage is one undecoded chat message envelope as the backend stores it.
// Content is decoded by the conversation package; its shape depends on the
// role and content type.
type RawMessage struct {
	ID        json.Number     `json:"id"`
	Role      string          `json:"role"`
	Content   json.RawMessage `json:"content"`
	Timestamp string          `json:"timestamp"`
}

// MessageExchange is the backend's reply to posting a message: the persisted
// copy of the user's message (when one was sent) and the assistant's response.
type MessageExchange struct {
	UserMessage      *RawMessage `json:"user_message"`
	AssistantMessage *RawMessage `json:"assistant_message"`
}

// NewExpense is one expense submitted for persistence.
type NewExpense struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	ExpenseDate string `json:"expense_date"`
}

// ExpensePatch is a partial update body. Nil fields are omitted from the
// request, keeping the write scope to what actually changed.
type ExpensePatch struct {
	Description *string `json:"description,omitempty"`
	Amount      *int64  `json:"amount,omitempty"`
	ExpenseDate *string `json:"expense_date,omitempty"`
}

// IsEmpty reports whether the patch contains no field at all.
func (p ExpensePatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.ExpenseDate == nil
}

// ExpensePage is one page of a filtered expense listing.
type ExpensePage struct {
	Expenses     []models.Expense
	Page         int
	PageSize     int
	TotalPages   int
	TotalRecords int
}

// Client is the backend API used by the client application. All methods honor
// context cancellation; authenticated calls read the bearer token from the
// configured TokenSource on every request.
type Client interface {
	// Login exchanges a third-party identity for a bearer token and profile.
	Login(ctx context.Context, id models.Identity) (string, *models.UserProfile, error)

	// Messages fetches up to limit history entries, newest first, strictly
	// older than beforeID when it is non-empty.
	Messages(ctx context.Context, limit int, beforeID string) ([]RawMessage, error)
	// PostText persists a text message for the given role and returns the
	// resulting exchange.
	PostText(ctx context.Context, role, content string) (*MessageExchange, error)
	// PostImage uploads a local image file as a user message.
	PostImage(ctx context.Context, path string) (*MessageExchange, error)
	// DeleteMessage removes one message by id.
	DeleteMessage(ctx context.Context, id string) error

	Expenses(ctx context.Context, f models.ExpenseFilter, page, pageSize int) (*ExpensePage, error)
	Expense(ctx context.Context, id int64) (*models.Expense, error)
	AddExpenses(ctx context.Context, items []NewExpense) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, id int64, patch ExpensePatch) (*models.Expense, error)
	// DeleteExpenses removes the given ids in one call and returns how many
	// records were actually deleted (0 is a legitimate answer).
	DeleteExpenses(ctx context.Context, ids []int64) (int, error)
	DeleteExpense(ctx context.Context, id int64) error

	StatisticsSummary(ctx context.Context, rng string, top int) (*models.StatisticsSummary, error)
	StatisticsChart(ctx context.Context, rng string) (*models.ChartData, error)
}

// TokenSource supplies the bearer credential for an outgoing call. It is
// consulted per request; the session store is the source of truth, so a
// logout mid-flight makes subsequent calls fail with an auth error instead
// of racing an in-memory copy.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
