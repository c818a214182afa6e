package domain

// DashboardSummary mirrors the /dashboard/summary aggregate.
type DashboardSummary struct {
	TotalMedicines int64   `json:"totalMedicines"`
	TotalSales     int64   `json:"totalSales"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

// DashboardOverview joins the three independent dashboard reads for a single
// render. The reads complete in no particular order; only the joint result is
// observed.
type DashboardOverview struct {
	Summary     DashboardSummary
	LowStock    []Medicine
	RecentSales []Sale
}
