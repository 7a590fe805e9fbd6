package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/gopos/internal/account/entity"
)

// UpsertChallenge keeps one row per user; a code hash already held by
// another user surfaces as goerror.ErrConflict.
func (s *DB) UpsertChallenge(ctx context.Context, chal entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertChallenge")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO account_otp_challenges (user_id, code_hash, issued_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET code_hash = EXCLUDED.code_hash,
		    issued_at = EXCLUDED.issued_at,
		    expires_at = EXCLUDED.expires_at`,
		chal.UserID, chal.CodeHash, chal.IssuedAt, chal.ExpiresAt,
	)
	err = s.mapError(err)
	return err
}

// ConsumeChallenge deletes the challenge and sets the password in one
// transaction. The DELETE takes the row lock, so of two concurrent callers
// only the first sees the row.
func (s *DB) ConsumeChallenge(ctx context.Context, codeHash string, now time.Time, newHash string) (userID int64, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeChallenge")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	var consumed entity.ConsumedChallenge
	err = tx.QueryRow(ctx, `
		DELETE FROM account_otp_challenges
		WHERE code_hash = $1
		RETURNING user_id, expires_at`, codeHash,
	).Scan(&consumed.UserID, &consumed.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, entity.ErrOTPInvalid
	}
	if err != nil {
		return 0, s.mapError(err)
	}

	// rollback restores the row
	if (entity.Challenge{ExpiresAt: consumed.ExpiresAt}).Expired(now) {
		return 0, entity.ErrOTPExpired
	}

	tag, err := tx.Exec(ctx,
		`UPDATE account_users SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		consumed.UserID, newHash, now)
	if err != nil {
		return 0, s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return 0, entity.ErrOTPInvalid
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, s.mapError(err)
	}

	return consumed.UserID, nil
}
