package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
	"github.com/pharmadesk/pharmacy-client/internal/core/ports"
)

// DashboardService reads the aggregate endpoints.
type DashboardService struct {
	client ports.Requester
}

func NewDashboardService(client ports.Requester) *DashboardService {
	return &DashboardService{client: client}
}

func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	var out domain.DashboardSummary
	if err := s.client.Get(ctx, "/dashboard/summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DashboardService) LowStock(ctx context.Context) ([]domain.Medicine, error) {
	var out []domain.Medicine
	if err := s.client.Get(ctx, "/dashboard/low-stock", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *DashboardService) RecentSales(ctx context.Context) ([]domain.Sale, error) {
	var out []domain.Sale
	if err := s.client.Get(ctx, "/dashboard/recent-sales", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Overview issues the three dashboard reads concurrently and joins them.
// Each target field is written by exactly one goroutine, so the only
// synchronization needed is the join itself.
func (s *DashboardService) Overview(ctx context.Context) (*domain.DashboardOverview, error) {
	var ov domain.DashboardOverview

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.client.Get(ctx, "/dashboard/summary", &ov.Summary) })
	g.Go(func() error { return s.client.Get(ctx, "/dashboard/low-stock", &ov.LowStock) })
	g.Go(func() error { return s.client.Get(ctx, "/dashboard/recent-sales", &ov.RecentSales) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}
