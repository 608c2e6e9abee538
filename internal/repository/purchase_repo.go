package repository

import (
	"context"
	"encoding/json"

	"mlm_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const purchaseColumns = `id, user_id, COALESCE(sponsor_id, ''), plan_id, amount, daily_commission,
	monthly_commission, levels, status, start_date, end_date, created_at`

type PurchaseRepository struct {
	db *pgxpool.Pool
}

func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func scanPurchase(row pgx.Row) (*domain.PlanPurchase, error) {
	var p domain.PlanPurchase
	var levels []byte
	if err := row.Scan(
		&p.ID, &p.UserID, &p.SponsorID, &p.PlanID, &p.Amount, &p.DailyCommission,
		&p.MonthlyCommission, &levels, &p.Status, &p.StartDate, &p.EndDate, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(levels, &p.Levels); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateWithTx inserts a purchase inside the orchestrating transaction.
func (r *PurchaseRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, p *domain.PlanPurchase) error {
	levels, err := json.Marshal(levelsOrEmpty(p.Levels))
	if err != nil {
		return err
	}
	return tx.QueryRow(ctx,
		`INSERT INTO plan_purchases
		   (user_id, sponsor_id, plan_id, amount, daily_commission, monthly_commission, levels, status)
		 VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8)
		 RETURNING id, start_date, created_at`,
		p.UserID, p.SponsorID, p.PlanID, p.Amount, p.DailyCommission, p.MonthlyCommission, levels, p.Status,
	).Scan(&p.ID, &p.StartDate, &p.CreatedAt)
}

// ListByUser returns a user's purchases newest-first.
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID string) ([]domain.PlanPurchase, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+purchaseColumns+` FROM plan_purchases WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []domain.PlanPurchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, *p)
	}
	return purchases, rows.Err()
}

// CountByUser reports how many purchases a user has in the given status.
func (r *PurchaseRepository) CountByUser(ctx context.Context, userID string, status domain.PurchaseStatus) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM plan_purchases WHERE user_id = $1 AND status = $2`,
		userID, status).Scan(&n)
	return n, err
}
