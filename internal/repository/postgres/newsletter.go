package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/petdohod/workshop-api/internal/domain"
)

// NewsletterRepository handles newsletter subscriber data access
type NewsletterRepository struct {
	pool *pgxpool.Pool
}

// NewNewsletterRepository creates a new newsletter repository
func NewNewsletterRepository(db *DB) *NewsletterRepository {
	return &NewsletterRepository{pool: db.Pool}
}

// Subscribe inserts the email or reactivates an inactive row. Subscribing an
// email that is already active is reported as domain.ErrAlreadySubscribed,
// a handled outcome rather than a fault.
func (r *NewsletterRepository) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	query := `
		INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		ON CONFLICT (email) DO UPDATE SET is_active = true
		WHERE newsletter_subscribers.is_active = false
		RETURNING id, email, subscribed_at, is_active
	`

	var sub domain.Subscriber
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.IsActive,
	)
	if err != nil {
		// The conflict update matched an already-active row, so the
		// statement affected nothing and returned no row.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to subscribe email: %w", err)
	}

	return &sub, nil
}
