package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/moneytalk/internal/client/api"
	"github.com/dmitrijs2005/moneytalk/internal/client/models"
	"github.com/dmitrijs2005/moneytalk/internal/common"
)

// ExpenseService exposes the datasheet operations: paged listing with
// filters, direct reads and writes outside the chat flow.
type ExpenseService interface {
	List(ctx context.Context, f models.ExpenseFilter, page, pageSize int) (*api.ExpensePage, error)
	Get(ctx context.Context, id int64) (*models.Expense, error)
	Add(ctx context.Context, items []api.NewExpense) ([]models.Expense, error)
	Update(ctx context.Context, id int64, patch api.ExpensePatch) (*models.Expense, error)
	Delete(ctx context.Context, ids []int64) (int, error)
	DeleteOne(ctx context.Context, id int64) error
}

type expenseService struct {
	client api.Client
}

func NewExpenseService(client api.Client) ExpenseService {
	return &expenseService{client: client}
}

// List validates the sort parameters locally before hitting the backend;
// everything else is passed through as-is.
func (s *expenseService) List(ctx context.Context, f models.ExpenseFilter, page, pageSize int) (*api.ExpensePage, error) {
	if f.SortField == "" {
		f.SortField = models.SortByDate
	}
	if f.SortOrder == "" {
		f.SortOrder = models.SortDesc
	}
	if f.SortField != models.SortByDate && f.SortField != models.SortByAmount {
		return nil, fmt.Errorf("sort field %q: %w", f.SortField, common.ErrorValidation)
	}
	if f.SortOrder != models.SortAsc && f.SortOrder != models.SortDesc {
		return nil, fmt.Errorf("sort order %q: %w", f.SortOrder, common.ErrorValidation)
	}
	if page < 1 {
		return nil, fmt.Errorf("page %d: %w", page, common.ErrorValidation)
	}
	return s.client.Expenses(ctx, f, page, pageSize)
}

func (s *expenseService) Get(ctx context.Context, id int64) (*models.Expense, error) {
	return s.client.Expense(ctx, id)
}

func (s *expenseService) Add(ctx context.Context, items []api.NewExpense) ([]models.Expense, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no expenses to add: %w", common.ErrorValidation)
	}
	return s.client.AddExpenses(ctx, items)
}

// Update rejects an empty patch locally; the backend would accept it but the
// round trip is pointless.
func (s *expenseService) Update(ctx context.Context, id int64, patch api.ExpensePatch) (*models.Expense, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("empty update: %w", common.ErrorValidation)
	}
	return s.client.UpdateExpense(ctx, id, patch)
}

func (s *expenseService) Delete(ctx context.Context, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.client.DeleteExpenses(ctx, ids)
}

func (s *expenseService) DeleteOne(ctx context.Context, id int64) error {
	return s.client.DeleteExpense(ctx, id)
}
