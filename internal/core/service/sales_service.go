package service

import (
	"context"

	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
	"github.com/pharmadesk/pharmacy-client/internal/core/ports"
)

// SalesService maps sales operations onto the /sales endpoints.
type SalesService struct {
	client   ports.Requester
	validate *inputValidator
}

func NewSalesService(client ports.Requester) *SalesService {
	return &SalesService{client: client, validate: newInputValidator()}
}

func (s *SalesService) List(ctx context.Context) ([]domain.Sale, error) {
	var out []domain.Sale
	if err := s.client.Get(ctx, "/sales", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type saleRequestInput struct {
	CustomerName string            `validate:"required"`
	Items        []domain.SaleItem `validate:"min=1"`
}

// Create persists a sale built from a cart. Stock is decremented server-side.
func (s *SalesService) Create(ctx context.Context, req domain.SaleRequest) (*domain.Sale, error) {
	input := saleRequestInput{CustomerName: req.Sale.CustomerName, Items: req.Items}
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	var out domain.Sale
	if err := s.client.Post(ctx, "/sales", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
