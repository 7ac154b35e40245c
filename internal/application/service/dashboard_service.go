package service

import (
	"context"
	"time"

	"github.com/praxishq/praxis-api/internal/domain/repository"
)

// DashboardService provides back-office overview statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalClients      int64            `json:"total_clients"`
	TotalLeads        int64            `json:"total_leads"`
	ActiveProjects    int64            `json:"active_projects"`
	OutstandingAmount float64          `json:"outstanding_amount"`
	OverdueAmount     float64          `json:"overdue_amount"`
	UnbilledHours     float64          `json:"unbilled_hours"`
	RevenueByMonth    []MonthlyRevenue `json:"revenue_by_month"`
}

// MonthlyRevenue represents paid revenue for a single month
type MonthlyRevenue struct {
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Revenue float64 `json:"revenue"`
}

// GetStats assembles the dashboard overview
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{RevenueByMonth: []MonthlyRevenue{}}

	total, leads, err := s.analyticsRepo.CountClients(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalClients = total
	stats.TotalLeads = leads

	active, err := s.analyticsRepo.CountActiveProjects(ctx)
	if err != nil {
		return nil, err
	}
	stats.ActiveProjects = active

	outstanding, err := s.analyticsRepo.OutstandingInvoiceTotal(ctx)
	if err != nil {
		return nil, err
	}
	stats.OutstandingAmount = outstanding

	overdue, err := s.analyticsRepo.OverdueInvoiceTotal(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	stats.OverdueAmount = overdue

	unbilled, err := s.analyticsRepo.UnbilledHoursTotal(ctx)
	if err != nil {
		return nil, err
	}
	stats.UnbilledHours = unbilled

	revenue, err := s.analyticsRepo.RevenueByMonth(ctx, 12)
	if err != nil {
		return nil, err
	}
	for _, r := range revenue {
		stats.RevenueByMonth = append(stats.RevenueByMonth, MonthlyRevenue{
			Year:    r.Year,
			Month:   r.Month,
			Revenue: r.Revenue,
		})
	}

	return stats, nil
}
