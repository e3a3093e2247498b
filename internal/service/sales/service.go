// Package sales serves the back-office dashboard numbers straight off the
// sales ledger. Only completed orders count.
package sales

import (
	"context"
	"time"

	orderrepo "kantinho-pos/internal/repository/order"
)

var (
	weekdayNames = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}
	monthNames   = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}
)

// WeekdayTotal is one weekday of revenue within the trailing week.
type WeekdayTotal struct {
	Day   string `json:"day"`
	Total int64  `json:"total"`
}

// MonthTotal is one labeled month of revenue.
type MonthTotal struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
}

// Summary aggregates the completed side of the ledger.
type Summary struct {
	TotalSales        int64   `json:"totalSales"`
	TotalOrders       int64   `json:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// Service answers dashboard queries.
type Service struct {
	repo orderrepo.Repository
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Daily returns revenue per day for the last seven days, zero-filled.
func (s *Service) Daily(ctx context.Context) ([]orderrepo.DailyTotal, error) {
	return s.repo.DailySales(ctx, 7)
}

// Weekly returns the trailing week labeled by weekday.
func (s *Service) Weekly(ctx context.Context) ([]WeekdayTotal, error) {
	daily, err := s.repo.DailySales(ctx, 7)
	if err != nil {
		return nil, err
	}
	out := make([]WeekdayTotal, 0, len(daily))
	for _, d := range daily {
		label := d.Date
		if t, err := time.Parse("2006-01-02", d.Date); err == nil {
			label = weekdayNames[int(t.Weekday())]
		}
		out = append(out, WeekdayTotal{Day: label, Total: d.Total})
	}
	return out, nil
}

// Monthly returns the last six months labeled by month name.
func (s *Service) Monthly(ctx context.Context) ([]MonthTotal, error) {
	monthly, err := s.repo.MonthlySales(ctx, 6)
	if err != nil {
		return nil, err
	}
	out := make([]MonthTotal, 0, len(monthly))
	for _, m := range monthly {
		label := m.Month
		if t, err := time.Parse("2006-01", m.Month); err == nil {
			label = monthNames[int(t.Month())-1]
		}
		out = append(out, MonthTotal{Month: label, Total: m.Total})
	}
	return out, nil
}

// TopItems returns the five best sellers by quantity.
func (s *Service) TopItems(ctx context.Context) ([]orderrepo.ItemCount, error) {
	return s.repo.TopItems(ctx, 5)
}

// Summarize computes the headline dashboard figures.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{TotalSales: totals.Revenue, TotalOrders: totals.Orders}
	if totals.Orders > 0 {
		summary.AverageOrderValue = float64(totals.Revenue) / float64(totals.Orders)
	}
	return summary, nil
}
