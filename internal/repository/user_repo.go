package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"mlm_platform/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const userColumns = `id, user_id, full_name, email, COALESCE(mobile, ''), password_hash, role,
	COALESCE(sponsor_id, ''), ewallet_balance, topup_balance, total_earnings, total_withdrawn,
	profile_image, is_active, created_at, updated_at`

// maxIDAttempts bounds the 6-digit id retry loop; the unique constraint on
// users.user_id is the authoritative guard.
const maxIDAttempts = 10

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GenerateUserID returns a random 6-digit numeric string.
func GenerateUserID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failure is not recoverable here
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID, &u.UserID, &u.FullName, &u.Email, &u.Mobile, &u.PasswordHash, &u.Role,
		&u.SponsorID, &u.EwalletBalance, &u.TopupBalance, &u.TotalEarnings, &u.TotalWithdrawn,
		&u.ProfileImage, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = LOWER($1)`, email))
}

// GetByUserIDOrEmail resolves a login identifier.
func (r *UserRepository) GetByUserIDOrEmail(ctx context.Context, ident string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1 OR email = LOWER($1)`, ident))
}

// Create inserts a new user, generating a unique 6-digit user_id. On id
// collision it retries up to maxIDAttempts; the DB unique index decides.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		u.UserID = GenerateUserID()
		err := r.db.QueryRow(ctx,
			`INSERT INTO users (user_id, full_name, email, mobile, password_hash, role, sponsor_id)
			 VALUES ($1, $2, LOWER($3), NULLIF($4, ''), $5, $6, NULLIF($7, ''))
			 RETURNING id, is_active, created_at, updated_at`,
			u.UserID, u.FullName, u.Email, u.Mobile, u.PasswordHash, u.Role, u.SponsorID,
		).Scan(&u.ID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
		if err == nil {
			return nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_user_id_key":
				continue // birthday collision, roll again
			case "users_email_key":
				return ErrEmailRegistered
			case "users_mobile_key":
				return ErrMobileRegistered
			}
		}
		return err
	}
	return ErrIDGenerationExhausted
}

// AdjustBalance applies delta to one wallet as a single conditional update.
// The balance check and the mutation are one atomic statement; a debit that
// would take the wallet negative affects no rows and returns
// ErrInsufficientFunds.
func (r *UserRepository) AdjustBalance(ctx context.Context, userID string, wallet domain.WalletKind, delta decimal.Decimal) (decimal.Decimal, error) {
	return adjustBalance(ctx, r.db, userID, wallet, delta)
}

// AdjustBalanceTx is AdjustBalance inside an existing transaction.
func (r *UserRepository) AdjustBalanceTx(ctx context.Context, tx pgx.Tx, userID string, wallet domain.WalletKind, delta decimal.Decimal) (decimal.Decimal, error) {
	return adjustBalance(ctx, tx, userID, wallet, delta)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func adjustBalance(ctx context.Context, q queryRower, userID string, wallet domain.WalletKind, delta decimal.Decimal) (decimal.Decimal, error) {
	col := "ewallet_balance"
	if wallet == domain.WalletTopup {
		col = "topup_balance"
	}

	var newBalance decimal.Decimal
	err := q.QueryRow(ctx,
		`UPDATE users SET `+col+` = `+col+` + $1, updated_at = NOW()
		 WHERE user_id = $2 AND `+col+` + $1 >= 0
		 RETURNING `+col,
		delta, userID,
	).Scan(&newBalance)
	if err == nil {
		return newBalance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, err
	}

	// no row: either the user is missing or the debit would go negative
	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`, userID,
	).Scan(&exists); err != nil {
		return decimal.Zero, err
	}
	if !exists {
		return decimal.Zero, ErrUserNotFound
	}
	return decimal.Zero, ErrInsufficientFunds
}

// AddWithdrawnTx bumps the cumulative withdrawn counter.
func (r *UserRepository) AddWithdrawnTx(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET total_withdrawn = total_withdrawn + $1, updated_at = NOW() WHERE user_id = $2`,
		amount, userID)
	return err
}

// AddEarningsTx bumps the cumulative earnings counter.
func (r *UserRepository) AddEarningsTx(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET total_earnings = total_earnings + $1, updated_at = NOW() WHERE user_id = $2`,
		amount, userID)
	return err
}

// Referrals returns the user_ids directly sponsored by userID, oldest first.
func (r *UserRepository) Referrals(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM users WHERE sponsor_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UserUpdate carries the admin-editable fields. Role is deliberately not
// representable here; it is immutable after creation.
type UserUpdate struct {
	FullName     *string
	Email        *string
	Mobile       *string
	PasswordHash *string
	ProfileImage *string
	IsActive     *bool
}

// Update applies the non-nil fields of upd to one user.
func (r *UserRepository) Update(ctx context.Context, userID string, upd UserUpdate) (*domain.User, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{userID}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.FullName != nil {
		add("full_name", *upd.FullName)
	}
	if upd.Email != nil {
		add("email", strings.ToLower(*upd.Email))
	}
	if upd.Mobile != nil {
		add("mobile", *upd.Mobile)
	}
	if upd.PasswordHash != nil {
		add("password_hash", *upd.PasswordHash)
	}
	if upd.ProfileImage != nil {
		add("profile_image", *upd.ProfileImage)
	}
	if upd.IsActive != nil {
		add("is_active", *upd.IsActive)
	}

	q := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE user_id = $1 RETURNING ` + userColumns
	u, err := scanUser(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "users_mobile_key" {
				return nil, ErrMobileRegistered
			}
			return nil, ErrEmailRegistered
		}
		return nil, err
	}
	return u, nil
}

// UserListFilter narrows admin user listings. Only standard users are listed.
type UserListFilter struct {
	Search    string // matches full_name, email or user_id
	Active    *bool
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// List returns one page of standard users plus the total count for the filter.
func (r *UserRepository) List(ctx context.Context, f UserListFilter) ([]domain.User, int64, error) {
	where := []string{`role = 'user'`}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Active != nil {
		where = append(where, "is_active = "+arg(*f.Active))
	}
	if f.StartDate != nil {
		where = append(where, "created_at >= "+arg(*f.StartDate))
	}
	if f.EndDate != nil {
		where = append(where, "created_at <= "+arg(*f.EndDate))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf("(full_name ILIKE %s OR email ILIKE %s OR user_id ILIKE %s)", p, p, p))
	}

	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	q := `SELECT ` + userColumns + ` FROM users WHERE ` + cond +
		` ORDER BY created_at DESC LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg((f.Page-1)*f.Limit)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}
