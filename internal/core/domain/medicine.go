package domain

import (
	"math"
	"time"
)

// ExpiryStatus classifies a medicine batch against its expiry date.
type ExpiryStatus string

const (
	ExpiryExpired ExpiryStatus = "expired"
	ExpiryNear    ExpiryStatus = "near-expiry"
	ExpirySafe    ExpiryStatus = "safe"
)

// ExpiryDateLayout is the wire format for expiry dates.
const ExpiryDateLayout = "2006-01-02"

// Medicine is an inventory record. JSON keys are camelCase to match the
// backend's serialization.
type Medicine struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Company     string  `json:"company"`
	BatchNumber string  `json:"batchNumber,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ExpiryDate  string  `json:"expiryDate,omitempty"`
}

// DaysUntilExpiry returns the number of whole days between now and the batch
// expiry date, rounded up. Negative for batches already past their date.
func (m Medicine) DaysUntilExpiry(now time.Time) (int, error) {
	exp, err := time.Parse(ExpiryDateLayout, m.ExpiryDate)
	if err != nil {
		return 0, ErrBadExpiryDate
	}
	return int(math.Ceil(exp.Sub(now).Hours() / 24)), nil
}

// ExpiryStatusAt classifies the batch: past its date, within thresholdDays of
// it, or safe beyond the threshold.
func (m Medicine) ExpiryStatusAt(now time.Time, thresholdDays int) (ExpiryStatus, int, error) {
	days, err := m.DaysUntilExpiry(now)
	if err != nil {
		return "", 0, err
	}
	switch {
	case days < 0:
		return ExpiryExpired, days, nil
	case days <= thresholdDays:
		return ExpiryNear, days, nil
	default:
		return ExpirySafe, days, nil
	}
}

// ExpiryEntry is one classified row of an expiry report.
type ExpiryEntry struct {
	Medicine
	DaysUntilExpiry int
	Status          ExpiryStatus
}

// ExpiryReport aggregates expiry classification over an inventory snapshot.
// ValueAtRisk is the retail value (price times quantity) of every batch that
// is expired or inside the threshold window.
type ExpiryReport struct {
	ThresholdDays int
	Entries       []ExpiryEntry
	Expired       int
	NearExpiry    int
	Safe          int
	ValueAtRisk   float64
}

// BuildExpiryReport classifies each medicine against now and thresholdDays.
// Records with an unparseable expiry date are skipped.
func BuildExpiryReport(meds []Medicine, now time.Time, thresholdDays int) ExpiryReport {
	report := ExpiryReport{ThresholdDays: thresholdDays}
	for _, m := range meds {
		status, days, err := m.ExpiryStatusAt(now, thresholdDays)
		if err != nil {
			continue
		}
		report.Entries = append(report.Entries, ExpiryEntry{
			Medicine:        m,
			DaysUntilExpiry: days,
			Status:          status,
		})
		switch status {
		case ExpiryExpired:
			report.Expired++
		case ExpiryNear:
			report.NearExpiry++
		default:
			report.Safe++
		}
		if status != ExpirySafe {
			report.ValueAtRisk += m.Price * float64(m.Quantity)
		}
	}
	return report
}
