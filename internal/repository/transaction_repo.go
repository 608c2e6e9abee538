package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mlm_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const txnColumns = `id, user_id, COALESCE(sponsor_id, ''), type, amount, sub_amount, source, status,
	wallet_type, plan_id, purchase_id, description, txn_no, note, payment_date, created_at`

// TransactionRepository appends and reads the ledger. Entries are never
// updated except the one-time pending -> success|failed transition.
type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func scanTxn(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := row.Scan(
		&t.ID, &t.UserID, &t.SponsorID, &t.Type, &t.Amount, &t.SubAmount, &t.Source, &t.Status,
		&t.WalletType, &t.PlanID, &t.PurchaseID, &t.Description, &t.TxnNo, &t.Note,
		&t.PaymentDate, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create appends one ledger entry.
func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	return createTxn(ctx, r.db, t)
}

// CreateWithTx appends one ledger entry inside an existing transaction.
func (r *TransactionRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	return createTxn(ctx, tx, t)
}

func createTxn(ctx context.Context, q queryRower, t *domain.Transaction) error {
	if t.Status == "" {
		t.Status = domain.TxnSuccess
	}
	if t.SubAmount.IsZero() {
		t.SubAmount = t.Amount
	}
	if t.PaymentDate.IsZero() {
		t.PaymentDate = time.Now()
	}
	return q.QueryRow(ctx,
		`INSERT INTO transactions
		   (user_id, sponsor_id, type, amount, sub_amount, source, status, wallet_type,
		    plan_id, purchase_id, description, txn_no, note, payment_date)
		 VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id, payment_date, created_at`,
		t.UserID, t.SponsorID, t.Type, t.Amount, t.SubAmount, t.Source, t.Status, t.WalletType,
		t.PlanID, t.PurchaseID, t.Description, t.TxnNo, t.Note, t.PaymentDate,
	).Scan(&t.ID, &t.PaymentDate, &t.CreatedAt)
}

// GetByID loads one entry.
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	t, err := scanTxn(r.db.QueryRow(ctx,
		`SELECT `+txnColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListByUser returns a user's entries newest-first with optional filters.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, f domain.TransactionFilter) ([]domain.Transaction, error) {
	where := []string{"user_id = $1"}
	args := []any{userID}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Source != "" {
		where = append(where, "source = "+arg(f.Source))
	}
	if f.Status != "" {
		where = append(where, "status = "+arg(f.Status))
	}
	if f.WalletType != "" {
		where = append(where, "wallet_type = "+arg(f.WalletType))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT ` + txnColumns + ` FROM transactions WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(f.Offset)

	return r.queryTxns(ctx, q, args...)
}

// ListBySourceStatus lists entries across all users, newest-first.
// Status and source may be empty to mean "any".
func (r *TransactionRepository) ListBySourceStatus(ctx context.Context, source domain.TxnSource, status domain.TxnStatus) ([]domain.Transaction, error) {
	where := []string{"1=1"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if source != "" {
		where = append(where, "source = "+arg(source))
	}
	if status != "" {
		where = append(where, "status = "+arg(status))
	}

	q := `SELECT ` + txnColumns + ` FROM transactions WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at DESC`
	return r.queryTxns(ctx, q, args...)
}

// Recent returns the newest n entries across all users.
func (r *TransactionRepository) Recent(ctx context.Context, n int) ([]domain.Transaction, error) {
	return r.queryTxns(ctx,
		`SELECT `+txnColumns+` FROM transactions ORDER BY created_at DESC LIMIT $1`, n)
}

// SettlePendingTx performs the one-time pending -> terminal transition inside
// a transaction, returning the settled entry. Entries already terminal are
// not touched (ErrRequestNotPending).
func (r *TransactionRepository) SettlePendingTx(ctx context.Context, tx pgx.Tx, id int64, status domain.TxnStatus, note string) (*domain.Transaction, error) {
	t, err := scanTxn(tx.QueryRow(ctx,
		`UPDATE transactions SET status = $2, note = $3
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+txnColumns, id, status, note))
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRequestNotFound
	}
	return nil, ErrRequestNotPending
}

func (r *TransactionRepository) queryTxns(ctx context.Context, q string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTxn(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	return txns, rows.Err()
}
