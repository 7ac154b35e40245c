package repository

import (
	"context"
	"time"
)

// MonthlyRevenueResult represents invoiced revenue for a single month
type MonthlyRevenueResult struct {
	Year    int
	Month   int
	Revenue float64
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// CountClients returns total clients and how many of them are leads
	CountClients(ctx context.Context) (total int64, leads int64, err error)

	// CountActiveProjects returns the number of non-archived projects
	CountActiveProjects(ctx context.Context) (int64, error)

	// OutstandingInvoiceTotal sums sent, unpaid invoice totals
	OutstandingInvoiceTotal(ctx context.Context) (float64, error)

	// OverdueInvoiceTotal sums sent, unpaid invoice totals past their due date
	OverdueInvoiceTotal(ctx context.Context, asOf time.Time) (float64, error)

	// RevenueByMonth returns paid invoice revenue for the last N months
	RevenueByMonth(ctx context.Context, months int) ([]MonthlyRevenueResult, error)

	// UnbilledHoursTotal sums timesheet hours not yet covered by any invoice
	UnbilledHoursTotal(ctx context.Context) (float64, error)
}
