package service

import (
	"context"
	"fmt"

	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
	"github.com/pharmadesk/pharmacy-client/internal/core/ports"
)

// SupplierService maps supplier operations onto the /suppliers endpoints.
type SupplierService struct {
	client   ports.Requester
	validate *inputValidator
}

func NewSupplierService(client ports.Requester) *SupplierService {
	return &SupplierService{client: client, validate: newInputValidator()}
}

func (s *SupplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	if err := s.client.Get(ctx, "/suppliers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type supplierPayload struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
}

func (s *SupplierService) Add(ctx context.Context, sup domain.Supplier) (*domain.Supplier, error) {
	payload := supplierPayload{
		Name:    sup.Name,
		Contact: sup.Contact,
		Email:   sup.Email,
		Address: sup.Address,
	}
	if err := s.validate.Struct(payload); err != nil {
		return nil, err
	}

	var out domain.Supplier
	if err := s.client.Post(ctx, "/suppliers", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SupplierService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/suppliers/%d", id))
}
