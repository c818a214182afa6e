package service

import (
	"context"
	"fmt"

	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
	"github.com/pharmadesk/pharmacy-client/internal/core/ports"
)

// CustomerService maps customer operations onto the /customers endpoints.
type CustomerService struct {
	client   ports.Requester
	validate *inputValidator
}

func NewCustomerService(client ports.Requester) *CustomerService {
	return &CustomerService{client: client, validate: newInputValidator()}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	if err := s.client.Get(ctx, "/customers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type customerPayload struct {
	Name string `json:"name" validate:"required"`
}

func (s *CustomerService) Add(ctx context.Context, name string) (*domain.Customer, error) {
	payload := customerPayload{Name: name}
	if err := s.validate.Struct(payload); err != nil {
		return nil, err
	}

	var out domain.Customer
	if err := s.client.Post(ctx, "/customers", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/customers/%d", id))
}
