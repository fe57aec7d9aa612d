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

// PostgresPaymentMethodRepository implements PaymentMethodRepository using
// PostgreSQL. Only saved cards are stored; one-time cards never reach here.
type PostgresPaymentMethodRepository struct {
	db *sqlx.DB
}

// NewPostgresPaymentMethodRepository creates a new PostgresPaymentMethodRepository
func NewPostgresPaymentMethodRepository(db *sqlx.DB) *PostgresPaymentMethodRepository {
	return &PostgresPaymentMethodRepository{db: db}
}

// postgresSavedCard represents a saved card row
type postgresSavedCard struct {
	ID         string    `db:"id"`
	OwnerID    string    `db:"owner_id"`
	CardNumber string    `db:"card_number"`
	Expiry     string    `db:"expiry"`
	HolderName string    `db:"holder_name"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Save stores a saved card
func (r *PostgresPaymentMethodRepository) Save(ctx context.Context, card *domain.SavedCard) error {
	query := `
		INSERT INTO payment_methods (
			id, owner_id, card_number, expiry, holder_name, created_at, updated_at
		) VALUES (
			:id, :owner_id, :card_number, :expiry, :holder_name, :created_at, :updated_at
		)`

	_, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, &postgresSavedCard{
		ID:         card.ID.String(),
		OwnerID:    card.OwnerID.String(),
		CardNumber: card.CardNumber,
		Expiry:     card.Expiry,
		HolderName: card.HolderName,
		CreatedAt:  card.Timestamps.CreatedAt,
		UpdatedAt:  card.Timestamps.UpdatedAt,
	})
	if err != nil {
		return errors.Wrap(err, "failed to insert payment method")
	}

	return nil
}

// FindByID finds a saved card by ID
func (r *PostgresPaymentMethodRepository) FindByID(ctx context.Context, id models.ID) (*domain.SavedCard, error) {
	query := `
		SELECT id, owner_id, card_number, expiry, holder_name, created_at, updated_at
		FROM payment_methods
		WHERE id = $1`

	var row postgresSavedCard
	err := sqlx.GetContext(ctx, executor(ctx, r.db), &row, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find payment method")
	}

	return r.toDomain(&row)
}

// FindByOwnerID lists a user's saved cards
func (r *PostgresPaymentMethodRepository) FindByOwnerID(ctx context.Context, ownerID models.ID) ([]*domain.SavedCard, error) {
	query := `
		SELECT id, owner_id, card_number, expiry, holder_name, created_at, updated_at
		FROM payment_methods
		WHERE owner_id = $1
		ORDER BY created_at ASC`

	var rows []postgresSavedCard
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &rows, query, ownerID.String()); err != nil {
		return nil, errors.Wrap(err, "failed to list payment methods")
	}

	cards := make([]*domain.SavedCard, 0, len(rows))
	for i := range rows {
		card, err := r.toDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

func (r *PostgresPaymentMethodRepository) toDomain(row *postgresSavedCard) (*domain.SavedCard, error) {
	id, err := models.NewID(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment method ID in database")
	}
	ownerID, err := models.NewID(row.OwnerID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid owner ID in database")
	}

	return &domain.SavedCard{
		ID:         id,
		OwnerID:    ownerID,
		CardNumber: row.CardNumber,
		Expiry:     row.Expiry,
		HolderName: row.HolderName,
		Timestamps: models.Timestamps{
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
	}, nil
}
