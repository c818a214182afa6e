// Package main provides the entry point for pharmacli, the terminal front
// end of the pharmacy inventory system. Each subcommand corresponds to one
// page of the web application; protected subcommands go through the
// navigation guard before touching the API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pharmadesk/pharmacy-client/internal/core/service"
	"github.com/pharmadesk/pharmacy-client/internal/infrastructure/api"
	"github.com/pharmadesk/pharmacy-client/internal/infrastructure/config"
	"github.com/pharmadesk/pharmacy-client/internal/infrastructure/session"
	"github.com/pharmadesk/pharmacy-client/internal/nav"
	"github.com/pharmadesk/pharmacy-client/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	store := session.NewFileStore(cfg.SessionFile)
	auth := service.NewAuthManager(store, log)
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, auth, log)
	auth.AttachRequester(client)
	client.SetUnauthorizedHandler(auth.HandleUnauthorized)
	auth.SetNavigator(func(path string) {
		fmt.Fprintf(os.Stderr, "session expired; sign in again with `pharmacli login` (%s)\n", path)
	})
	auth.Initialize()

	app := &app{
		cfg:       cfg,
		auth:      auth,
		guard:     nav.NewGuard(auth),
		medicines: service.NewMedicineService(client),
		suppliers: service.NewSupplierService(client),
		customers: service.NewCustomerService(client),
		sales:     service.NewSalesService(client),
		dashboard: service.NewDashboardService(client),
	}

	if err := app.run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg       *config.Config
	auth      *service.AuthManager
	guard     *nav.Guard
	medicines *service.MedicineService
	suppliers *service.SupplierService
	customers *service.CustomerService
	sales     *service.SalesService
	dashboard *service.DashboardService
}

// commandPaths maps each subcommand onto the view path the guard knows.
var commandPaths = map[string]string{
	"login":         nav.LoginPath,
	"signup":        nav.SignupPath,
	"logout":        "/logout",
	"whoami":        "/whoami",
	"dashboard":     "/dashboard",
	"medicines":     "/medicines",
	"suppliers":     "/suppliers",
	"customers":     "/customers",
	"sales":         "/sales",
	"low-stock":     "/low-stock",
	"expiry-report": "/expiry-report",
}

var errNotSignedIn = errors.New("not signed in; run `pharmacli login`")

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}
	cmd, rest := args[0], args[1:]

	path, known := commandPaths[cmd]
	if !known {
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}

	// Logout is unconditional: it must succeed whatever the prior state.
	if cmd == "logout" {
		a.auth.Logout()
		fmt.Println("signed out")
		return nil
	}

	switch decision := a.guard.Resolve(path); decision.Action {
	case nav.ShowPlaceholder:
		return errors.New("session restore still in progress")
	case nav.Redirect:
		if decision.Target == nav.LoginPath {
			return errNotSignedIn
		}
		// Authenticated user on an entry view: send them forward.
		fmt.Printf("already signed in; showing %s\n", decision.Target)
		return a.runDashboard(ctx)
	}

	switch cmd {
	case "login":
		return a.runLogin(ctx, rest)
	case "signup":
		return a.runSignup(ctx, rest)
	case "whoami":
		return a.runWhoami()
	case "dashboard":
		return a.runDashboard(ctx)
	case "medicines":
		return a.runMedicines(ctx, rest)
	case "suppliers":
		return a.runSuppliers(ctx, rest)
	case "customers":
		return a.runCustomers(ctx, rest)
	case "sales":
		return a.runSales(ctx, rest)
	case "low-stock":
		return a.runLowStock(ctx)
	case "expiry-report":
		return a.runExpiryReport(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res := a.auth.Login(ctx, *username, *password)
	if !res.Success {
		return errors.New(res.Message)
	}
	st := a.auth.State()
	fmt.Printf("signed in as %s\n", st.User.Username)
	return nil
}

func (a *app) runSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := a.auth.Signup(ctx, *username, *email, *password)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func (a *app) runWhoami() error {
	st := a.auth.State()
	if !st.IsAuthenticated {
		return errNotSignedIn
	}
	fmt.Printf("%s <%s> (%s)\n", st.User.Username, st.User.Email, st.User.Role)
	return nil
}

func (a *app) runDashboard(ctx context.Context) error {
	ov, err := a.dashboard.Overview(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("medicines: %d   sales: %d   revenue: %.2f\n\n",
		ov.Summary.TotalMedicines, ov.Summary.TotalSales, ov.Summary.TotalRevenue)

	if len(ov.LowStock) > 0 {
		fmt.Println("low stock:")
		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tQTY")
		for _, m := range ov.LowStock {
			fmt.Fprintf(w, "%d\t%s\t%d\n", m.ID, m.Name, m.Quantity)
		}
		w.Flush()
		fmt.Println()
	}

	if len(ov.RecentSales) > 0 {
		fmt.Println("recent sales:")
		w := newTable()
		fmt.Fprintln(w, "ID\tCUSTOMER\tTOTAL\tDATE")
		for _, s := range ov.RecentSales {
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\n", s.ID, s.CustomerName, s.TotalAmount, s.SaleDate)
		}
		w.Flush()
	}
	return nil
}

func (a *app) runMedicines(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		meds, err := a.medicines.List(ctx)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tBATCH\tPRICE\tQTY\tEXPIRY")
		for _, m := range meds {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%d\t%s\n",
				m.ID, m.Name, m.Company, m.BatchNumber, m.Price, m.Quantity, m.ExpiryDate)
		}
		return w.Flush()

	case "add":
		fs := flag.NewFlagSet("medicines add", flag.ContinueOnError)
		name := fs.String("name", "", "medicine name")
		company := fs.String("company", "", "company")
		batch := fs.String("batch", "", "batch number")
		price := fs.Float64("price", 0, "unit price")
		qty := fs.Int("qty", 0, "quantity in stock")
		expiry := fs.String("expiry", "", "expiry date (YYYY-MM-DD)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		med, err := a.medicines.Add(ctx, medicineFromFlags(*name, *company, *batch, *price, *qty, *expiry))
		if err != nil {
			return err
		}
		fmt.Printf("added medicine %d (%s)\n", med.ID, med.Name)
		return nil

	case "delete":
		id, err := idArg("medicines delete", args)
		if err != nil {
			return err
		}
		if err := a.medicines.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("deleted medicine %d\n", id)
		return nil

	default:
		return fmt.Errorf("unknown medicines subcommand %q", sub)
	}
}

func (a *app) runSuppliers(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		sups, err := a.suppliers.List(ctx)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tNAME\tCONTACT\tEMAIL\tADDRESS")
		for _, s := range sups {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Contact, s.Email, s.Address)
		}
		return w.Flush()

	case "add":
		fs := flag.NewFlagSet("suppliers add", flag.ContinueOnError)
		name := fs.String("name", "", "supplier name")
		contact := fs.String("contact", "", "contact number")
		email := fs.String("email", "", "email address")
		address := fs.String("address", "", "address")
		if err := fs.Parse(args); err != nil {
			return err
		}
		sup, err := a.suppliers.Add(ctx, supplierFromFlags(*name, *contact, *email, *address))
		if err != nil {
			return err
		}
		fmt.Printf("added supplier %d (%s)\n", sup.ID, sup.Name)
		return nil

	case "delete":
		id, err := idArg("suppliers delete", args)
		if err != nil {
			return err
		}
		if err := a.suppliers.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("deleted supplier %d\n", id)
		return nil

	default:
		return fmt.Errorf("unknown suppliers subcommand %q", sub)
	}
}

func (a *app) runCustomers(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		custs, err := a.customers.List(ctx)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tNAME")
		for _, c := range custs {
			fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
		}
		return w.Flush()

	case "add":
		fs := flag.NewFlagSet("customers add", flag.ContinueOnError)
		name := fs.String("name", "", "customer name")
		if err := fs.Parse(args); err != nil {
			return err
		}
		cust, err := a.customers.Add(ctx, *name)
		if err != nil {
			return err
		}
		fmt.Printf("added customer %d (%s)\n", cust.ID, cust.Name)
		return nil

	default:
		return fmt.Errorf("unknown customers subcommand %q", sub)
	}
}

func (a *app) runSales(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		sales, err := a.sales.List(ctx)
		if err != nil {
			return err
		}
		w := newTable()
		fmt.Fprintln(w, "ID\tCUSTOMER\tTOTAL\tDATE")
		for _, s := range sales {
			fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\n", s.ID, s.CustomerName, s.TotalAmount, s.SaleDate)
		}
		return w.Flush()

	case "create":
		return a.runCreateSale(ctx, args)

	default:
		return fmt.Errorf("unknown sales subcommand %q", sub)
	}
}

func (a *app) runLowStock(ctx context.Context) error {
	meds, err := a.dashboard.LowStock(ctx)
	if err != nil {
		return err
	}
	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tQTY")
	for _, m := range meds {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", m.ID, m.Name, m.Company, m.Quantity)
	}
	return w.Flush()
}

func (a *app) runExpiryReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("expiry-report", flag.ContinueOnError)
	days := fs.Int("days", a.cfg.ExpiryThresholdDays, "near-expiry threshold in days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	report, err := a.medicines.ExpiryReport(ctx, *days)
	if err != nil {
		return err
	}

	fmt.Printf("expired: %d   near-expiry: %d   safe: %d   value at risk: %.2f\n\n",
		report.Expired, report.NearExpiry, report.Safe, report.ValueAtRisk)

	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tEXPIRY\tDAYS\tSTATUS")
	for _, e := range report.Entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", e.ID, e.Name, e.ExpiryDate, e.DaysUntilExpiry, e.Status)
	}
	return w.Flush()
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func idArg(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: pharmacli %s <id>", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, strings.TrimSpace(`
usage: pharmacli <command> [flags]

  login -u <user> -p <pass>     sign in
  signup -u <user> -e <email> -p <pass>
  logout                        sign out
  whoami                        show the current user
  dashboard                     summary, low stock, recent sales
  medicines [list|add|delete]   inventory
  suppliers [list|add|delete]   suppliers
  customers [list|add]          customers
  sales [list|create]           sales history / new sale
  low-stock                     items below the stock threshold
  expiry-report [-days n]       expiry classification
`))
}
