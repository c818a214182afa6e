package service

import (
	"context"
	"testing"

	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
)

func TestSalesService_Create(t *testing.T) {
	client := &stubRequester{
		postFn: func(ctx context.Context, path string, in, out any) error {
			if path != "/sales" {
				t.Fatalf("unexpected path: %s", path)
			}
			req, ok := in.(domain.SaleRequest)
			if !ok {
				t.Fatalf("unexpected payload type: %T", in)
			}
			fill(t, out, domain.Sale{
				ID:           11,
				CustomerName: req.Sale.CustomerName,
				TotalAmount:  req.Sale.TotalAmount,
				SaleDate:     req.Sale.SaleDate,
			})
			return nil
		},
	}
	svc := NewSalesService(client)

	req := domain.SaleRequest{
		Sale:  domain.Sale{CustomerName: "Walk-in", TotalAmount: 11.98, SaleDate: "2025-06-01"},
		Items: []domain.SaleItem{{MedicineID: 1, Quantity: 2, Price: 5.99}},
	}
	sale, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sale.ID != 11 || sale.CustomerName != "Walk-in" {
		t.Fatalf("unexpected sale: %+v", sale)
	}
}

func TestSalesService_Create_RequiresCustomerAndItems(t *testing.T) {
	client := &stubRequester{
		postFn: func(ctx context.Context, path string, in, out any) error {
			t.Fatalf("no network call expected")
			return nil
		},
	}
	svc := NewSalesService(client)

	empty := domain.SaleRequest{Sale: domain.Sale{CustomerName: "Walk-in"}}
	if _, err := svc.Create(context.Background(), empty); err == nil {
		t.Fatalf("expected failure for empty cart")
	}

	noName := domain.SaleRequest{Items: []domain.SaleItem{{MedicineID: 1, Quantity: 1, Price: 1}}}
	if _, err := svc.Create(context.Background(), noName); err == nil {
		t.Fatalf("expected failure for missing customer name")
	}
}
