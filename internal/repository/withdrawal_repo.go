package repository

import (
	"context"
	"encoding/json"
	"errors"

	"mlm_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const withdrawalColumns = `id, user_id, amount, method, account_info, status,
	COALESCE(processed_by, ''), remarks, created_at, processed_at`

type WithdrawalRepository struct {
	db *pgxpool.Pool
}

func NewWithdrawalRepository(db *pgxpool.Pool) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	var info []byte
	if err := row.Scan(
		&w.ID, &w.UserID, &w.Amount, &w.Method, &info, &w.Status,
		&w.ProcessedBy, &w.Remarks, &w.CreatedAt, &w.ProcessedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(info, &w.AccountInfo); err != nil {
		return nil, err
	}
	return &w, nil
}

// Create records a new pending withdrawal request. Balances are untouched
// until approval.
func (r *WithdrawalRepository) Create(ctx context.Context, w *domain.Withdrawal) error {
	if w.AccountInfo == nil {
		w.AccountInfo = map[string]string{}
	}
	info, err := json.Marshal(w.AccountInfo)
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO withdrawals (user_id, amount, method, account_info)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, status, created_at`,
		w.UserID, w.Amount, w.Method, info,
	).Scan(&w.ID, &w.Status, &w.CreatedAt)
}

// ListByUser returns a user's withdrawal requests newest-first.
func (r *WithdrawalRepository) ListByUser(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	return r.query(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
}

// ListByStatus lists requests across all users; empty status means all.
func (r *WithdrawalRepository) ListByStatus(ctx context.Context, status domain.WithdrawalStatus) ([]domain.Withdrawal, error) {
	if status == "" {
		return r.query(ctx,
			`SELECT `+withdrawalColumns+` FROM withdrawals ORDER BY created_at DESC`)
	}
	return r.query(ctx,
		`SELECT `+withdrawalColumns+` FROM withdrawals WHERE status = $1 ORDER BY created_at DESC`,
		status)
}

// DecideTx performs the one-time pending -> approved|rejected transition
// inside the settling transaction and returns the decided request.
func (r *WithdrawalRepository) DecideTx(ctx context.Context, tx pgx.Tx, id int64, status domain.WithdrawalStatus, processedBy, remarks string) (*domain.Withdrawal, error) {
	w, err := scanWithdrawal(tx.QueryRow(ctx,
		`UPDATE withdrawals
		 SET status = $2, processed_by = NULLIF($3, ''), remarks = $4, processed_at = NOW()
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+withdrawalColumns, id, status, processedBy, remarks))
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM withdrawals WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRequestNotFound
	}
	return nil, ErrRequestNotPending
}

func (r *WithdrawalRepository) query(ctx context.Context, q string, args ...any) ([]domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *w)
	}
	return list, rows.Err()
}
