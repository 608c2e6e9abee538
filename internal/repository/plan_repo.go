package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mlm_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const planColumns = `id, name, plan_type, amount, daily_commission, monthly_commission,
	description, levels, is_active, created_at, updated_at`

type PlanRepository struct {
	db *pgxpool.Pool
}

func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

func scanPlan(row pgx.Row) (*domain.Plan, error) {
	var p domain.Plan
	var levels []byte
	if err := row.Scan(
		&p.ID, &p.Name, &p.PlanType, &p.Amount, &p.DailyCommission, &p.MonthlyCommission,
		&p.Description, &levels, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(levels, &p.Levels); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*domain.Plan, error) {
	p, err := scanPlan(r.db.QueryRow(ctx,
		`SELECT `+planColumns+` FROM plans WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	return p, err
}

// List returns all plans newest-first; activeOnly hides disabled plans.
func (r *PlanRepository) List(ctx context.Context, activeOnly bool) ([]domain.Plan, error) {
	q := `SELECT ` + planColumns + ` FROM plans`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

// Create inserts a plan; a duplicate name is ErrDuplicatePlanName.
func (r *PlanRepository) Create(ctx context.Context, p *domain.Plan) error {
	levels, err := json.Marshal(levelsOrEmpty(p.Levels))
	if err != nil {
		return err
	}
	if p.PlanType == "" {
		p.PlanType = domain.PlanActivation
	}
	err = r.db.QueryRow(ctx,
		`INSERT INTO plans (name, plan_type, amount, daily_commission, monthly_commission, description, levels)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, is_active, created_at, updated_at`,
		p.Name, p.PlanType, p.Amount, p.DailyCommission, p.MonthlyCommission, p.Description, levels,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePlanName
		}
		return err
	}
	return nil
}

// PlanUpdate carries the admin-editable plan fields.
type PlanUpdate struct {
	Name              *string
	Amount            *decimal.Decimal
	DailyCommission   *decimal.Decimal
	MonthlyCommission *decimal.Decimal
	Description       *string
	Levels            []domain.CommissionLevel
	IsActive          *bool
}

// Update applies the non-nil fields of upd to one plan.
func (r *PlanRepository) Update(ctx context.Context, id int64, upd PlanUpdate) (*domain.Plan, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{id}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Amount != nil {
		add("amount", *upd.Amount)
	}
	if upd.DailyCommission != nil {
		add("daily_commission", *upd.DailyCommission)
	}
	if upd.MonthlyCommission != nil {
		add("monthly_commission", *upd.MonthlyCommission)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Levels != nil {
		levels, err := json.Marshal(upd.Levels)
		if err != nil {
			return nil, err
		}
		add("levels", levels)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}

	q := `UPDATE plans SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + planColumns
	p, err := scanPlan(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicatePlanName
		}
		return nil, err
	}
	return p, nil
}

func levelsOrEmpty(levels []domain.CommissionLevel) []domain.CommissionLevel {
	if levels == nil {
		return []domain.CommissionLevel{}
	}
	return levels
}
