package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/gopos/internal/notification/entity"
)

func (s *DB) CreateDelivery(ctx context.Context, d entity.Delivery) (err error) {
	ctx, span := s.startSpan(ctx, "CreateDelivery")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO notification_deliveries
			(id, user_id, channel, destination, kind, status, attempts, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.UserID, d.Channel.String(), d.Destination, d.Kind.String(), d.Status.String(),
		d.Attempts, d.LastError, d.CreatedAt, d.UpdatedAt,
	)
	err = s.mapError(err)
	return err
}

func (s *DB) UpdateDelivery(ctx context.Context, r entity.DeliveryResult) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateDelivery")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE notification_deliveries
		SET status = $2, attempts = $3, last_error = $4, updated_at = $5
		WHERE id = $1`,
		r.ID, r.Status.String(), r.Attempts, r.LastError, r.UpdatedAt,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}

// GetDelivery is used by operators and tests to inspect a delivery.
func (s *DB) GetDelivery(ctx context.Context, id int64) (d *entity.Delivery, err error) {
	ctx, span := s.startSpan(ctx, "GetDelivery")
	defer func() { s.endSpan(span, err) }()

	var (
		out                   entity.Delivery
		channel, kind, status string
	)
	err = s.conn.QueryRow(ctx, `
		SELECT id, user_id, channel, destination, kind, status, attempts, last_error, created_at, updated_at
		FROM notification_deliveries WHERE id = $1`, id,
	).Scan(&out.ID, &out.UserID, &channel, &out.Destination, &kind, &status,
		&out.Attempts, &out.LastError, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	out.Channel = entity.Channel(channel)
	out.Kind = entity.Kind(kind)
	out.Status = entity.DeliveryStatus(status)
	return &out, nil
}
