package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
)

func TestDashboardService_Overview(t *testing.T) {
	client := &stubRequester{
		getFn: func(ctx context.Context, path string, out any) error {
			// Jitter the arrival order; only the joint result matters.
			time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
			switch path {
			case "/dashboard/summary":
				fill(t, out, domain.DashboardSummary{TotalMedicines: 7, TotalSales: 3, TotalRevenue: 120.50})
			case "/dashboard/low-stock":
				fill(t, out, []domain.Medicine{{ID: 5, Name: "Insulin", Quantity: 4}})
			case "/dashboard/recent-sales":
				fill(t, out, []domain.Sale{{ID: 1, CustomerName: "Walk-in", TotalAmount: 11.98}})
			default:
				t.Errorf("unexpected path: %s", path)
			}
			return nil
		},
	}
	svc := NewDashboardService(client)

	ov, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}

	if ov.Summary.TotalMedicines != 7 || ov.Summary.TotalRevenue != 120.50 {
		t.Fatalf("unexpected summary: %+v", ov.Summary)
	}
	if len(ov.LowStock) != 1 || ov.LowStock[0].Name != "Insulin" {
		t.Fatalf("unexpected low stock: %+v", ov.LowStock)
	}
	if len(ov.RecentSales) != 1 || ov.RecentSales[0].CustomerName != "Walk-in" {
		t.Fatalf("unexpected recent sales: %+v", ov.RecentSales)
	}
}

func TestDashboardService_Overview_PropagatesFailure(t *testing.T) {
	boom := errors.New("backend unreachable")
	client := &stubRequester{
		getFn: func(ctx context.Context, path string, out any) error {
			if path == "/dashboard/low-stock" {
				return boom
			}
			return nil
		},
	}
	svc := NewDashboardService(client)

	if _, err := svc.Overview(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected joined failure, got %v", err)
	}
}

func TestDashboardService_Summary(t *testing.T) {
	client := &stubRequester{
		getFn: func(ctx context.Context, path string, out any) error {
			if path != "/dashboard/summary" {
				t.Fatalf("unexpected path: %s", path)
			}
			fill(t, out, domain.DashboardSummary{TotalMedicines: 2})
			return nil
		},
	}
	svc := NewDashboardService(client)

	sum, err := svc.Summary(context.Background())
	if err != nil || sum.TotalMedicines != 2 {
		t.Fatalf("unexpected result: %+v, %v", sum, err)
	}
}
