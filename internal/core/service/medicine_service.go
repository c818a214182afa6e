package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
	"github.com/pharmadesk/pharmacy-client/internal/core/ports"
)

// MedicineService maps inventory operations onto the /medicines endpoints.
type MedicineService struct {
	client   ports.Requester
	validate *inputValidator
}

func NewMedicineService(client ports.Requester) *MedicineService {
	return &MedicineService{client: client, validate: newInputValidator()}
}

func (s *MedicineService) List(ctx context.Context) ([]domain.Medicine, error) {
	var out []domain.Medicine
	if err := s.client.Get(ctx, "/medicines", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *MedicineService) Get(ctx context.Context, id int64) (*domain.Medicine, error) {
	var out domain.Medicine
	if err := s.client.Get(ctx, fmt.Sprintf("/medicines/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type medicinePayload struct {
	Name        string  `json:"name" validate:"required"`
	Company     string  `json:"company" validate:"required"`
	BatchNumber string  `json:"batchNumber" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	ExpiryDate  string  `json:"expiryDate" validate:"required,datetime=2006-01-02"`
}

// Add validates the form input before any network call and returns the
// created record.
func (s *MedicineService) Add(ctx context.Context, med domain.Medicine) (*domain.Medicine, error) {
	payload := medicinePayload{
		Name:        med.Name,
		Company:     med.Company,
		BatchNumber: med.BatchNumber,
		Price:       med.Price,
		Quantity:    med.Quantity,
		ExpiryDate:  med.ExpiryDate,
	}
	if err := s.validate.Struct(payload); err != nil {
		return nil, err
	}

	var out domain.Medicine
	if err := s.client.Post(ctx, "/medicines", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *MedicineService) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/medicines/%d", id))
}

// ExpiryReport classifies the current inventory against thresholdDays. The
// derivation is local; the backend only supplies the raw records.
func (s *MedicineService) ExpiryReport(ctx context.Context, thresholdDays int) (domain.ExpiryReport, error) {
	meds, err := s.List(ctx)
	if err != nil {
		return domain.ExpiryReport{}, err
	}
	return domain.BuildExpiryReport(meds, time.Now(), thresholdDays), nil
}
