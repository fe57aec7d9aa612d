package infrastructure

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/shared/models"
)

// PostgresAttemptRepository implements PaymentAttemptRepository using
// PostgreSQL. Every statement runs on the base connection, never on a
// transaction carried by ctx: attempt rows must survive a rollback of the
// surrounding operation.
type PostgresAttemptRepository struct {
	db *sqlx.DB
}

// NewPostgresAttemptRepository creates a new PostgresAttemptRepository
func NewPostgresAttemptRepository(db *sqlx.DB) *PostgresAttemptRepository {
	return &PostgresAttemptRepository{db: db}
}

// postgresAttempt represents a payment attempt row
type postgresAttempt struct {
	ID            string    `db:"id"`
	PaymentID     string    `db:"payment_id"`
	Status        string    `db:"status"`
	Provider      string    `db:"provider"`
	TransactionID string    `db:"transaction_id"`
	FailureReason string    `db:"failure_reason"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	Version       int       `db:"version"`
}

// Create inserts a new attempt row, committed immediately
func (r *PostgresAttemptRepository) Create(ctx context.Context, attempt *domain.PaymentAttempt) error {
	query := `
		INSERT INTO payment_attempts (
			id, payment_id, status, provider, transaction_id, failure_reason,
			created_at, updated_at, version
		) VALUES (
			:id, :payment_id, :status, :provider, :transaction_id, :failure_reason,
			:created_at, :updated_at, :version
		)`

	_, err := r.db.NamedExecContext(ctx, query, r.toPostgres(attempt))
	if err != nil {
		return errors.Wrap(err, "failed to insert payment attempt")
	}

	return nil
}

// Update writes the terminal state of an attempt, committed immediately
func (r *PostgresAttemptRepository) Update(ctx context.Context, attempt *domain.PaymentAttempt) error {
	query := `
		UPDATE payment_attempts
		SET status = :status, provider = :provider, transaction_id = :transaction_id,
			failure_reason = :failure_reason, updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":             attempt.ID.String(),
		"status":         string(attempt.Status),
		"provider":       attempt.Provider,
		"transaction_id": attempt.TransactionID,
		"failure_reason": attempt.FailureReason,
		"updated_at":     attempt.Timestamps.UpdatedAt,
		"version":        attempt.Version.Value,
		"old_version":    attempt.Version.Value - 1, // Optimistic locking
	})
	if err != nil {
		return errors.Wrap(err, "failed to update payment attempt")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return errors.Wrapf(domain.ErrConflict, "payment attempt %s was modified concurrently", attempt.ID)
	}

	return nil
}

// FindByPaymentID lists a payment's attempts, oldest first
func (r *PostgresAttemptRepository) FindByPaymentID(ctx context.Context, paymentID models.ID) ([]*domain.PaymentAttempt, error) {
	query := `
		SELECT id, payment_id, status, provider, transaction_id, failure_reason,
			   created_at, updated_at, version
		FROM payment_attempts
		WHERE payment_id = $1
		ORDER BY created_at ASC`

	var rows []postgresAttempt
	if err := r.db.SelectContext(ctx, &rows, query, paymentID.String()); err != nil {
		return nil, errors.Wrap(err, "failed to list payment attempts")
	}

	attempts := make([]*domain.PaymentAttempt, 0, len(rows))
	for i := range rows {
		attempt, err := r.toDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}

	return attempts, nil
}

func (r *PostgresAttemptRepository) toPostgres(attempt *domain.PaymentAttempt) *postgresAttempt {
	return &postgresAttempt{
		ID:            attempt.ID.String(),
		PaymentID:     attempt.PaymentID.String(),
		Status:        string(attempt.Status),
		Provider:      attempt.Provider,
		TransactionID: attempt.TransactionID,
		FailureReason: attempt.FailureReason,
		CreatedAt:     attempt.Timestamps.CreatedAt,
		UpdatedAt:     attempt.Timestamps.UpdatedAt,
		Version:       attempt.Version.Value,
	}
}

func (r *PostgresAttemptRepository) toDomain(row *postgresAttempt) (*domain.PaymentAttempt, error) {
	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid attempt ID in database")
	}
	paymentID, err := models.NewID(row.PaymentID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment ID in database")
	}

	return &domain.PaymentAttempt{
		ID:            id,
		PaymentID:     paymentID,
		Status:        domain.PaymentAttemptStatus(row.Status),
		Provider:      row.Provider,
		TransactionID: row.TransactionID,
		FailureReason: row.FailureReason,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Version: models.Version{Value: row.Version},
	}, nil
}
