package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/moneytalk/internal/client/models"
	"github.com/dmitrijs2005/moneytalk/internal/common"
)

func TestSummary_DefaultsToTodayAndTopCount(t *testing.T) {
	fc := &fakeClient{SummaryRet: &models.StatisticsSummary{}}
	svc := NewStatisticsService(fc)

	_, err := svc.Summary(context.Background(), "", 0)
	require.NoError(t, err)
	require.Equal(t, models.RangeToday, fc.LastRange)
	require.Equal(t, defaultTopCount, fc.LastTop)
}

func TestSummary_RejectsUnknownRange(t *testing.T) {
	svc := NewStatisticsService(&fakeClient{})

	_, err := svc.Summary(context.Background(), "90d", 3)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestChart_DefaultsTo7d(t *testing.T) {
	fc := &fakeClient{ChartRet: &models.ChartData{}}
	svc := NewStatisticsService(fc)

	_, err := svc.Chart(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, models.Range7d, fc.LastChartRange)
}

func TestChart_RejectsToday(t *testing.T) {
	svc := NewStatisticsService(&fakeClient{})

	_, err := svc.Chart(context.Background(), models.RangeToday)
	require.ErrorIs(t, err, common.ErrorValidation)
}
