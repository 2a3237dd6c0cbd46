package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/petdohod/workshop-api/internal/domain"
)

// RegistrationRepository handles registration data access
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *DB) *RegistrationRepository {
	return &RegistrationRepository{pool: db.Pool}
}

const registrationColumns = `
	id, workshop_id, first_name, last_name, email, phone, address, city, zip,
	registration_type, partner_first_name, partner_last_name, partner_email,
	workshop_date, workshop_location, price, notes, status, variable_symbol,
	created_at, updated_at
`

// Create inserts a registration with status pending and fills in the
// assigned id and timestamps. The variable symbol is written separately by
// SetVariableSymbol once the id is known.
func (r *RegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (
			workshop_id, first_name, last_name, email, phone, address, city, zip,
			registration_type, partner_first_name, partner_last_name, partner_email,
			workshop_date, workshop_location, price, notes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		reg.WorkshopID, reg.FirstName, reg.LastName, reg.Email, reg.Phone,
		reg.Address, reg.City, reg.Zip, reg.RegistrationType,
		reg.PartnerFirstName, reg.PartnerLastName, reg.PartnerEmail,
		reg.WorkshopDate, reg.WorkshopLocation, reg.Price, reg.Notes, reg.Status,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		// The partial unique index on (email, workshop_date,
		// workshop_location) catches concurrent submissions that slip
		// past the ExistsActive probe.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateRegistration
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	return nil
}

// SetVariableSymbol writes the derived payment reference. This is the second
// step of the two-phase create; a crash in between leaves the symbol null.
func (r *RegistrationRepository) SetVariableSymbol(ctx context.Context, id int64, vs string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE registrations SET variable_symbol = $2, updated_at = NOW() WHERE id = $1`,
		id, vs,
	)
	if err != nil {
		return fmt.Errorf("failed to set variable symbol: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}

	return nil
}

// GetByID retrieves a registration by id.
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	query := `SELECT` + registrationColumns + `FROM registrations WHERE id = $1`

	reg, err := scanRegistration(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return reg, nil
}

// List returns all registrations, most recent first.
func (r *RegistrationRepository) List(ctx context.Context) ([]domain.Registration, error) {
	query := `SELECT` + registrationColumns + `FROM registrations ORDER BY created_at DESC`
	return r.queryRegistrations(ctx, query)
}

// ListByStatus returns registrations with the given status, most recent first.
func (r *RegistrationRepository) ListByStatus(ctx context.Context, status string) ([]domain.Registration, error) {
	query := `SELECT` + registrationColumns + `
		FROM registrations WHERE status = $1 ORDER BY created_at DESC`
	return r.queryRegistrations(ctx, query, status)
}

// ExistsActive reports whether a non-cancelled registration already exists
// for the (email, workshop date, workshop location) triple.
func (r *RegistrationRepository) ExistsActive(ctx context.Context, email, date, location string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM registrations
			WHERE email = $1 AND workshop_date = $2 AND workshop_location = $3
			AND status != 'cancelled'
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email, date, location).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check duplicate registration: %w", err)
	}

	return exists, nil
}

// UpdateStatus sets the registration status.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE registrations SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update registration status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}

	return nil
}

// Delete removes a registration row for good.
func (r *RegistrationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRegistrationNotFound
	}

	return nil
}

func (r *RegistrationRepository) queryRegistrations(ctx context.Context, query string, args ...any) ([]domain.Registration, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}

	return regs, rows.Err()
}

func scanRegistration(row pgx.Row) (*domain.Registration, error) {
	var reg domain.Registration
	err := row.Scan(
		&reg.ID, &reg.WorkshopID, &reg.FirstName, &reg.LastName, &reg.Email,
		&reg.Phone, &reg.Address, &reg.City, &reg.Zip, &reg.RegistrationType,
		&reg.PartnerFirstName, &reg.PartnerLastName, &reg.PartnerEmail,
		&reg.WorkshopDate, &reg.WorkshopLocation, &reg.Price, &reg.Notes,
		&reg.Status, &reg.VariableSymbol, &reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}
