package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/moneytalk/internal/client/api"
	"github.com/dmitrijs2005/moneytalk/internal/client/models"
	"github.com/dmitrijs2005/moneytalk/internal/common"
)

func TestList_FillsSortDefaults(t *testing.T) {
	fc := &fakeClient{ExpensesRet: &api.ExpensePage{}}
	svc := NewExpenseService(fc)

	_, err := svc.List(context.Background(), models.ExpenseFilter{}, 1, 10)
	require.NoError(t, err)
	require.Equal(t, models.SortByDate, fc.LastFilter.SortField)
	require.Equal(t, models.SortDesc, fc.LastFilter.SortOrder)
}

func TestList_RejectsBadSortAndPage(t *testing.T) {
	fc := &fakeClient{}
	svc := NewExpenseService(fc)
	ctx := context.Background()

	_, err := svc.List(ctx, models.ExpenseFilter{SortField: "name"}, 1, 10)
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.List(ctx, models.ExpenseFilter{SortOrder: "sideways"}, 1, 10)
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.List(ctx, models.ExpenseFilter{}, 0, 10)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestAdd_RejectsEmptyBatch(t *testing.T) {
	svc := NewExpenseService(&fakeClient{})

	_, err := svc.Add(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestUpdate_RejectsEmptyPatch(t *testing.T) {
	svc := NewExpenseService(&fakeClient{})

	_, err := svc.Update(context.Background(), 7, api.ExpensePatch{})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestDelete_EmptyListSkipsBackend(t *testing.T) {
	fc := &fakeClient{}
	svc := NewExpenseService(fc)

	n, err := svc.Delete(context.Background(), nil)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Zero(t, fc.DeleteExpensesCalls)
}

func TestDelete_PassesIDs(t *testing.T) {
	fc := &fakeClient{DeleteExpensesRet: 2}
	svc := NewExpenseService(fc)

	n, err := svc.Delete(context.Background(), []int64{1, 2})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []int64{1, 2}, fc.LastDeleteIDs)
}
