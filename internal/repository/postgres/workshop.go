package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/petdohod/workshop-api/internal/domain"
)

// WorkshopRepository handles workshop data access
type WorkshopRepository struct {
	pool *pgxpool.Pool
}

// NewWorkshopRepository creates a new workshop repository
func NewWorkshopRepository(db *DB) *WorkshopRepository {
	return &WorkshopRepository{pool: db.Pool}
}

const workshopColumns = `
	id, name, date, start_date, end_date, location, type, capacity,
	price_single, price_couple, program, address, what_to_bring,
	instructor_info, bank_account, variable_symbol, is_active, created_at
`

// Create inserts a workshop and fills in its assigned id and created_at.
func (r *WorkshopRepository) Create(ctx context.Context, w *domain.Workshop) error {
	query := `
		INSERT INTO workshops (
			name, date, start_date, end_date, location, type, capacity,
			price_single, price_couple, program, address, what_to_bring,
			instructor_info, bank_account, variable_symbol, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		w.Name, w.Date, w.StartDate, w.EndDate, w.Location, w.Type, w.Capacity,
		w.PriceSingle, w.PriceCouple, w.Program, w.Address, w.WhatToBring,
		w.InstructorInfo, w.BankAccount, w.VariableSymbolPrefix, w.IsActive,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create workshop: %w", err)
	}

	return nil
}

// GetByID retrieves a workshop by id regardless of its active flag;
// historic registrations keep referencing soft-deleted workshops.
func (r *WorkshopRepository) GetByID(ctx context.Context, id int64) (*domain.Workshop, error) {
	query := `SELECT` + workshopColumns + `FROM workshops WHERE id = $1`

	var w domain.Workshop
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Name, &w.Date, &w.StartDate, &w.EndDate, &w.Location, &w.Type,
		&w.Capacity, &w.PriceSingle, &w.PriceCouple, &w.Program, &w.Address,
		&w.WhatToBring, &w.InstructorInfo, &w.BankAccount, &w.VariableSymbolPrefix,
		&w.IsActive, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}

	return &w, nil
}

// ListActive returns active workshops, soonest first. Workshops without a
// structured start date sort after dated ones, newest created first.
func (r *WorkshopRepository) ListActive(ctx context.Context) ([]domain.Workshop, error) {
	query := `SELECT` + workshopColumns + `
		FROM workshops
		WHERE is_active = true
		ORDER BY start_date ASC NULLS LAST, created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}
	defer rows.Close()

	var workshops []domain.Workshop
	for rows.Next() {
		var w domain.Workshop
		if err := rows.Scan(
			&w.ID, &w.Name, &w.Date, &w.StartDate, &w.EndDate, &w.Location, &w.Type,
			&w.Capacity, &w.PriceSingle, &w.PriceCouple, &w.Program, &w.Address,
			&w.WhatToBring, &w.InstructorInfo, &w.BankAccount, &w.VariableSymbolPrefix,
			&w.IsActive, &w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan workshop: %w", err)
		}
		workshops = append(workshops, w)
	}

	return workshops, rows.Err()
}

// Update rewrites all mutable columns of a workshop.
func (r *WorkshopRepository) Update(ctx context.Context, w *domain.Workshop) error {
	query := `
		UPDATE workshops
		SET name = $2, date = $3, start_date = $4, end_date = $5, location = $6,
		    type = $7, capacity = $8, price_single = $9, price_couple = $10,
		    program = $11, address = $12, what_to_bring = $13,
		    instructor_info = $14, bank_account = $15, variable_symbol = $16,
		    is_active = $17
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		w.ID, w.Name, w.Date, w.StartDate, w.EndDate, w.Location, w.Type,
		w.Capacity, w.PriceSingle, w.PriceCouple, w.Program, w.Address,
		w.WhatToBring, w.InstructorInfo, w.BankAccount, w.VariableSymbolPrefix,
		w.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update workshop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkshopNotFound
	}

	return nil
}

// SoftDelete flips the active flag. The row and its registrations stay.
func (r *WorkshopRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE workshops SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkshopNotFound
	}

	return nil
}

// CountRegistrations counts non-cancelled registrations matching the
// workshop's snapshotted date label and location.
func (r *WorkshopRepository) CountRegistrations(ctx context.Context, date, location string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM registrations
		WHERE workshop_date = $1 AND workshop_location = $2 AND status != 'cancelled'
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, date, location).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}

	return count, nil
}
