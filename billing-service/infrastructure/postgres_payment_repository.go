package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/shared/events"
	"github.com/swiftship/courier-system/shared/models"
)

// PostgresPaymentRepository implements PaymentRepository using PostgreSQL
type PostgresPaymentRepository struct {
	db *sqlx.DB
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(db *sqlx.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// postgresPayment represents a payment row
type postgresPayment struct {
	ID        string     `db:"id"`
	OrderID   string     `db:"order_id"`
	ParcelID  string     `db:"parcel_id"`
	UserID    string     `db:"user_id"`
	Amount    int64      `db:"amount"`
	Currency  string     `db:"currency"`
	Status    string     `db:"status"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
	Version   int        `db:"version"`
}

// Save saves a payment, inserting on creation and updating otherwise
func (r *PostgresPaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	for _, event := range payment.Events() {
		if event.EventType == events.PaymentCreatedEvent {
			return r.insertPayment(ctx, payment)
		}
	}
	return r.updatePayment(ctx, payment)
}

func (r *PostgresPaymentRepository) insertPayment(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, order_id, parcel_id, user_id, amount, currency, status,
			created_at, updated_at, version
		) VALUES (
			:id, :order_id, :parcel_id, :user_id, :amount, :currency, :status,
			:created_at, :updated_at, :version
		)`

	_, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, r.toPostgres(payment))
	if err != nil {
		return errors.Wrap(err, "failed to insert payment")
	}

	return nil
}

func (r *PostgresPaymentRepository) updatePayment(ctx context.Context, payment *domain.Payment) error {
	query := `
		UPDATE payments
		SET status = :status, updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	result, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, map[string]interface{}{
		"id":          payment.ID.String(),
		"status":      payment.Status.String(),
		"updated_at":  payment.Timestamps.UpdatedAt,
		"version":     payment.Version.Value,
		"old_version": payment.Version.Value - 1, // Optimistic locking
	})
	if err != nil {
		return errors.Wrap(err, "failed to update payment")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return errors.Wrapf(domain.ErrConflict, "payment %s was modified concurrently", payment.ID)
	}

	return nil
}

// FindByID finds a payment by ID
func (r *PostgresPaymentRepository) FindByID(ctx context.Context, id models.ID) (*domain.Payment, error) {
	query := `
		SELECT id, order_id, parcel_id, user_id, amount, currency, status,
			   created_at, updated_at, deleted_at, version
		FROM payments
		WHERE id = $1 AND deleted_at IS NULL`

	var row postgresPayment
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find payment")
	}

	return r.toDomain(&row)
}

// FindByOrderID finds the payment opened for an order
func (r *PostgresPaymentRepository) FindByOrderID(ctx context.Context, orderID models.ID) (*domain.Payment, error) {
	query := `
		SELECT id, order_id, parcel_id, user_id, amount, currency, status,
			   created_at, updated_at, deleted_at, version
		FROM payments
		WHERE order_id = $1 AND deleted_at IS NULL`

	var row postgresPayment
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, orderID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find payment by order")
	}

	return r.toDomain(&row)
}

func (r *PostgresPaymentRepository) toPostgres(payment *domain.Payment) *postgresPayment {
	return &postgresPayment{
		ID:        payment.ID.String(),
		OrderID:   payment.OrderID.String(),
		ParcelID:  payment.ParcelID.String(),
		UserID:    payment.UserID.String(),
		Amount:    payment.Amount.Amount,
		Currency:  payment.Amount.Currency,
		Status:    payment.Status.String(),
		CreatedAt: payment.Timestamps.CreatedAt,
		UpdatedAt: payment.Timestamps.UpdatedAt,
		Version:   payment.Version.Value,
	}
}

func (r *PostgresPaymentRepository) toDomain(row *postgresPayment) (*domain.Payment, error) {
	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment ID in database")
	}
	orderID, err := models.NewID(row.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID in database")
	}
	parcelID, err := models.NewID(row.ParcelID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid parcel ID in database")
	}
	userID, err := models.NewID(row.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID in database")
	}

	return &domain.Payment{
		ID:       id,
		OrderID:  orderID,
		ParcelID: parcelID,
		UserID:   userID,
		Amount:   models.NewMoney(row.Amount, row.Currency),
		Status:   domain.PaymentStatus(row.Status),
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			DeletedAt: row.DeletedAt,
		},
		Version: models.Version{Value: row.Version},
	}, nil
}
