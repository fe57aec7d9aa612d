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

// PostgresParcelRepository implements ParcelRepository using PostgreSQL
type PostgresParcelRepository struct {
	db *sqlx.DB
}

// NewPostgresParcelRepository creates a new PostgresParcelRepository
func NewPostgresParcelRepository(db *sqlx.DB) *PostgresParcelRepository {
	return &PostgresParcelRepository{db: db}
}

// postgresParcel represents a parcel row
type postgresParcel struct {
	ID              string    `db:"id"`
	OrderID         string    `db:"order_id"`
	UserID          string    `db:"user_id"`
	PickupAddress   string    `db:"pickup_address"`
	DeliveryAddress string    `db:"delivery_address"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
	Version         int       `db:"version"`
}

// Save updates a parcel's status under optimistic locking
func (r *PostgresParcelRepository) Save(ctx context.Context, parcel *domain.Parcel) error {
	query := `
		UPDATE parcels
		SET status = :status, updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	result, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, map[string]interface{}{
		"id":          parcel.ID.String(),
		"status":      parcel.Status.String(),
		"updated_at":  parcel.Timestamps.UpdatedAt,
		"version":     parcel.Version.Value,
		"old_version": parcel.Version.Value - 1, // Optimistic locking
	})
	if err != nil {
		return errors.Wrap(err, "failed to update parcel")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return errors.Wrapf(domain.ErrConflict, "parcel %s was modified concurrently", parcel.ID)
	}

	return nil
}

// FindByID finds a parcel by ID
func (r *PostgresParcelRepository) FindByID(ctx context.Context, id models.ID) (*domain.Parcel, error) {
	query := `
		SELECT id, order_id, user_id, pickup_address, delivery_address, status,
			   created_at, updated_at, version
		FROM parcels
		WHERE id = $1`

	var row postgresParcel
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find parcel")
	}

	return r.toDomain(&row)
}

// FindByOrderID finds the parcel attached to an order
func (r *PostgresParcelRepository) FindByOrderID(ctx context.Context, orderID models.ID) (*domain.Parcel, error) {
	query := `
		SELECT id, order_id, user_id, pickup_address, delivery_address, status,
			   created_at, updated_at, version
		FROM parcels
		WHERE order_id = $1`

	var row postgresParcel
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, orderID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find parcel by order")
	}

	return r.toDomain(&row)
}

func (r *PostgresParcelRepository) toDomain(row *postgresParcel) (*domain.Parcel, error) {
	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid parcel ID in database")
	}
	orderID, err := models.NewID(row.OrderID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID in database")
	}
	userID, err := models.NewID(row.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID in database")
	}

	return &domain.Parcel{
		ID:              id,
		OrderID:         orderID,
		UserID:          userID,
		PickupAddress:   row.PickupAddress,
		DeliveryAddress: row.DeliveryAddress,
		Status:          domain.ParcelStatus(row.Status),
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Version: models.Version{Value: row.Version},
	}, nil
}
