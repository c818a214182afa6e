package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pharmadesk/pharmacy-client/internal/core/domain"
)

func medicineFromFlags(name, company, batch string, price float64, qty int, expiry string) domain.Medicine {
	return domain.Medicine{
		Name:        name,
		Company:     company,
		BatchNumber: batch,
		Price:       price,
		Quantity:    qty,
		ExpiryDate:  expiry,
	}
}

func supplierFromFlags(name, contact, email, address string) domain.Supplier {
	return domain.Supplier{
		Name:    name,
		Contact: contact,
		Email:   email,
		Address: address,
	}
}

// itemFlags collects repeated -item id:qty flags.
type itemFlags []struct {
	medicineID int64
	quantity   int
}

func (f *itemFlags) String() string { return fmt.Sprintf("%d items", len(*f)) }

func (f *itemFlags) Set(value string) error {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("item %q must be <medicineID>:<quantity>", value)
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid medicine id %q", parts[0])
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", parts[1])
	}
	*f = append(*f, struct {
		medicineID int64
		quantity   int
	}{id, qty})
	return nil
}

// runCreateSale mirrors the create-sale page: load the inventory snapshot,
// fill a cart with stock checks, then persist the sale in one call.
func (a *app) runCreateSale(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sales create", flag.ContinueOnError)
	customer := fs.String("customer", "", "customer name")
	var items itemFlags
	fs.Var(&items, "item", "sale line as <medicineID>:<quantity> (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	meds, err := a.medicines.List(ctx)
	if err != nil {
		return err
	}

	cart := domain.NewCart(meds)
	for _, it := range items {
		if err := cart.Add(it.medicineID, it.quantity); err != nil {
			return fmt.Errorf("medicine %d: %w", it.medicineID, err)
		}
	}

	req, err := cart.BuildRequest(*customer, time.Now())
	if err != nil {
		return err
	}

	sale, err := a.sales.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("sale %d recorded for %s, total %.2f\n", sale.ID, sale.CustomerName, sale.TotalAmount)
	return nil
}
