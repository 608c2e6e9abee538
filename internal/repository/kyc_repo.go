package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mlm_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const kycColumns = `id, user_id, user_name, pan_number, aadhar_number, account_holder_name,
	bank_name, account_number, ifsc_code, document_image, status, remarks, created_at, updated_at`

type KycRepository struct {
	db *pgxpool.Pool
}

func NewKycRepository(db *pgxpool.Pool) *KycRepository {
	return &KycRepository{db: db}
}

func scanKyc(row pgx.Row) (*domain.KycRecord, error) {
	var k domain.KycRecord
	if err := row.Scan(
		&k.ID, &k.UserID, &k.UserName, &k.PanNumber, &k.AadharNumber, &k.AccountHolderName,
		&k.BankName, &k.AccountNumber, &k.IFSCCode, &k.DocumentImage, &k.Status, &k.Remarks,
		&k.CreatedAt, &k.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &k, nil
}

// Create inserts a user's single KYC record; a second submission for the
// same user_id is ErrKycAlreadySubmitted.
func (r *KycRepository) Create(ctx context.Context, k *domain.KycRecord) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO kyc_records
		   (user_id, user_name, pan_number, aadhar_number, account_holder_name,
		    bank_name, account_number, ifsc_code, document_image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, status, created_at, updated_at`,
		k.UserID, k.UserName, k.PanNumber, k.AadharNumber, k.AccountHolderName,
		k.BankName, k.AccountNumber, k.IFSCCode, k.DocumentImage,
	).Scan(&k.ID, &k.Status, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrKycAlreadySubmitted
		}
		return err
	}
	return nil
}

func (r *KycRepository) GetByUserID(ctx context.Context, userID string) (*domain.KycRecord, error) {
	k, err := scanKyc(r.db.QueryRow(ctx,
		`SELECT `+kycColumns+` FROM kyc_records WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKycNotFound
		}
		return nil, err
	}
	return k, nil
}

// SetStatus performs the one-time pending -> approved|rejected transition.
// Approval clears remarks; the handler layer enforces that rejection carries
// some. Records already decided are left untouched.
func (r *KycRepository) SetStatus(ctx context.Context, id int64, status domain.KycStatus, remarks string) (*domain.KycRecord, error) {
	if status == domain.KycApproved {
		remarks = ""
	}
	k, err := scanKyc(r.db.QueryRow(ctx,
		`UPDATE kyc_records SET status = $2, remarks = $3, updated_at = NOW()
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+kycColumns, id, status, remarks))
	if err == nil {
		return k, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM kyc_records WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrKycNotFound
	}
	return nil, ErrKycAlreadyDecided
}

// Delete removes a record, re-opening submission for that user.
func (r *KycRepository) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM kyc_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrKycNotFound
	}
	return nil
}

// List returns one page of records for the admin screen plus the total count.
func (r *KycRepository) List(ctx context.Context, f domain.KycFilter) ([]domain.KycRecord, int64, error) {
	where := []string{"1=1"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		where = append(where, "status = "+arg(f.Status))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf("(user_name ILIKE %s OR user_id ILIKE %s)", p, p))
	}

	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM kyc_records WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	q := `SELECT ` + kycColumns + ` FROM kyc_records WHERE ` + cond +
		` ORDER BY created_at DESC LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg((f.Page-1)*f.Limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []domain.KycRecord
	for rows.Next() {
		k, err := scanKyc(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *k)
	}
	return records, total, rows.Err()
}
