package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/swiftship/courier-system/billing-service/domain"
	"github.com/swiftship/courier-system/shared/models"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// postgresOrder represents an order row
type postgresOrder struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Total     int64     `db:"total"`
	Currency  string    `db:"currency"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	Version   int       `db:"version"`
}

// Save updates an order's status under optimistic locking
func (r *PostgresOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = :status, updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	result, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, map[string]interface{}{
		"id":          order.ID.String(),
		"status":      order.Status.String(),
		"updated_at":  order.Timestamps.UpdatedAt,
		"version":     order.Version.Value,
		"old_version": order.Version.Value - 1, // Optimistic locking
	})
	if err != nil {
		return errors.Wrap(err, "failed to update order")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return errors.Wrapf(domain.ErrConflict, "order %s was modified concurrently", order.ID)
	}

	return nil
}

// FindByID finds an order by ID
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id models.ID) (*domain.Order, error) {
	query := `
		SELECT id, user_id, total, currency, status, created_at, updated_at, version
		FROM orders
		WHERE id = $1`

	var row postgresOrder
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find order")
	}

	return r.toDomain(&row)
}

func (r *PostgresOrderRepository) toDomain(row *postgresOrder) (*domain.Order, error) {
	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID in database")
	}
	userID, err := models.NewID(row.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID in database")
	}

	return &domain.Order{
		ID:     id,
		UserID: userID,
		Total:  models.NewMoney(row.Total, row.Currency),
		Status: domain.OrderStatus(row.Status),
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Version: models.Version{Value: row.Version},
	}, nil
}
