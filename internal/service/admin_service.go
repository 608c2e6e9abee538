package service

import (
	"context"
	"time"

	"mlm_platform/internal/domain"
	"mlm_platform/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// AdminService provides the read-only rollups behind the admin dashboard.
// It never mutates anything and may run against a read replica.
type AdminService struct {
	db      *pgxpool.Pool
	txnRepo *repository.TransactionRepository
}

func NewAdminService(db *pgxpool.Pool) *AdminService {
	return &AdminService{
		db:      db,
		txnRepo: repository.NewTransactionRepository(db),
	}
}

// MonthCount is one month bucket of a signup chart.
type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// MonthAmount is one month bucket of a revenue chart.
type MonthAmount struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// DashboardStats is the aggregate payload for the admin dashboard.
type DashboardStats struct {
	TotalUsers         int64                `json:"total_users"`
	TotalPaidUsers     int64                `json:"total_paid_users"`
	TotalFreeUsers     int64                `json:"total_free_users"`
	TotalBlockedUsers  int64                `json:"total_blocked_users"`
	TotalWalletBalance decimal.Decimal      `json:"total_wallet_balance"`
	TotalInvestment    decimal.Decimal      `json:"total_investment"`
	TotalKycApproved   int64                `json:"total_kyc_approved"`
	TotalKycPending    int64                `json:"total_kyc_pending"`
	MonthlySignup      []MonthCount         `json:"monthly_signup"`
	RevenueData        []MonthAmount        `json:"revenue_data"`
	RecentTransactions []domain.Transaction `json:"recent_transactions"`
}

// GetDashboardStats builds the full dashboard rollup.
func (s *AdminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		TotalWalletBalance: decimal.Zero,
		TotalInvestment:    decimal.Zero,
	}

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM users WHERE role = 'user'`, &stats.TotalUsers},
		{`SELECT COUNT(*) FROM users WHERE role = 'user' AND NOT is_active`, &stats.TotalBlockedUsers},
		{`SELECT COUNT(DISTINCT user_id) FROM plan_purchases WHERE status = 'approved'`, &stats.TotalPaidUsers},
		{`SELECT COUNT(*) FROM kyc_records WHERE status = 'approved'`, &stats.TotalKycApproved},
		{`SELECT COUNT(*) FROM kyc_records WHERE status = 'pending'`, &stats.TotalKycPending},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(ctx, c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}
	stats.TotalFreeUsers = stats.TotalUsers - stats.TotalPaidUsers

	if err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(topup_balance), 0) FROM users WHERE role = 'user'`,
	).Scan(&stats.TotalWalletBalance); err != nil {
		return nil, err
	}
	if err := s.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM plan_purchases`,
	).Scan(&stats.TotalInvestment); err != nil {
		return nil, err
	}

	var err error
	if stats.MonthlySignup, err = s.monthlySignups(ctx); err != nil {
		return nil, err
	}
	if stats.RevenueData, err = s.monthlyRevenue(ctx); err != nil {
		return nil, err
	}
	if stats.RecentTransactions, err = s.txnRepo.Recent(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentTransactions == nil {
		stats.RecentTransactions = []domain.Transaction{}
	}
	return stats, nil
}

func (s *AdminService) monthlySignups(ctx context.Context) ([]MonthCount, error) {
	rows, err := s.db.Query(ctx, `
		SELECT EXTRACT(MONTH FROM created_at)::int AS m, COUNT(*)
		FROM users WHERE role = 'user'
		GROUP BY m ORDER BY m`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := []MonthCount{}
	for rows.Next() {
		var m int
		var n int64
		if err := rows.Scan(&m, &n); err != nil {
			return nil, err
		}
		buckets = append(buckets, MonthCount{Month: monthName(m), Count: n})
	}
	return buckets, rows.Err()
}

func (s *AdminService) monthlyRevenue(ctx context.Context) ([]MonthAmount, error) {
	rows, err := s.db.Query(ctx, `
		SELECT EXTRACT(MONTH FROM created_at)::int AS m, COALESCE(SUM(amount), 0)
		FROM plan_purchases
		GROUP BY m ORDER BY m`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := []MonthAmount{}
	for rows.Next() {
		var m int
		var amount decimal.Decimal
		if err := rows.Scan(&m, &amount); err != nil {
			return nil, err
		}
		buckets = append(buckets, MonthAmount{Month: monthName(m), Amount: amount})
	}
	return buckets, rows.Err()
}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()[:3]
}
