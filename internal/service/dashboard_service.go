package service

import (
	"time"

	"github.com/noah-isme/academy-crm/internal/dto"
	"github.com/noah-isme/academy-crm/internal/models"
	"github.com/noah-isme/academy-crm/internal/repository"
)

// DashboardService aggregates the headline numbers shown on the dashboard.
type DashboardService struct {
	state *repository.StateRepository
	now   func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(state *repository.StateRepository) *DashboardService {
	return &DashboardService{state: state, now: time.Now}
}

// Summary computes the dashboard from one consistent snapshot.
func (s *DashboardService) Summary() dto.DashboardSummary {
	snap := s.state.Snapshot()
	now := s.now()
	month := now.Format("2006-01")

	summary := dto.DashboardSummary{
		TotalStudents: len(snap.Students),
		Groups:        len(snap.Groups),
		Staff:         len(snap.Persons),
		Contracts:     len(snap.Contracts),
		Month:         month,
	}
	for _, st := range snap.Students {
		if st.Status == models.StudentStatusActive {
			summary.ActiveStudents++
		}
	}
	for _, p := range snap.Payments {
		switch p.Status {
		case models.PaymentStatusPaid:
			if len(p.Date) >= len(month) && p.Date[:len(month)] == month {
				summary.RevenueThisMonth += p.Amount
			}
		case models.PaymentStatusDue:
			summary.PaymentsDue++
			summary.OutstandingTotal += p.Amount
		case models.PaymentStatusOverdue:
			summary.PaymentsOverdue++
			summary.OutstandingTotal += p.Amount
		}
	}
	return summary
}
