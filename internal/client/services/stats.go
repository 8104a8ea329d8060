package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/moneytalk/internal/client/api"
	"github.com/dmitrijs2005/moneytalk/internal/client/models"
	"github.com/dmitrijs2005/moneytalk/internal/common"
)

const defaultTopCount = 3

// StatisticsService exposes the aggregate views: the totals/top summary and
// the daily line chart.
type StatisticsService interface {
	Summary(ctx context.Context, rng string, top int) (*models.StatisticsSummary, error)
	Chart(ctx context.Context, rng string) (*models.ChartData, error)
}

type statisticsService struct {
	client api.Client
}

func NewStatisticsService(client api.Client) StatisticsService {
	return &statisticsService{client: client}
}

// Summary accepts today/7d/30d/1y; an empty range means today.
func (s *statisticsService) Summary(ctx context.Context, rng string, top int) (*models.StatisticsSummary, error) {
	if rng == "" {
		rng = models.RangeToday
	}
	switch rng {
	case models.RangeToday, models.Range7d, models.Range30d, models.Range1y:
	default:
		return nil, fmt.Errorf("range %q: %w", rng, common.ErrorValidation)
	}
	if top < 1 {
		top = defaultTopCount
	}
	return s.client.StatisticsSummary(ctx, rng, top)
}

// Chart accepts 7d/30d/1y; an empty range means 7d. The chart has no daily
// resolution for "today", so that range is rejected.
func (s *statisticsService) Chart(ctx context.Context, rng string) (*models.ChartData, error) {
	if rng == "" {
		rng = models.Range7d
	}
	switch rng {
	case models.Range7d, models.Range30d, models.Range1y:
	default:
		return nil, fmt.Errorf("range %q: %w", rng, common.ErrorValidation)
	}
	return s.client.StatisticsChart(ctx, rng)
}
