package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/petdohod/workshop-api/internal/czdate"
	"github.com/petdohod/workshop-api/internal/domain"
)

// WorkshopService implements the public listing and the admin CRUD for
// workshops. The cache is optional; a nil cache disables it.
type WorkshopService struct {
	workshops WorkshopRepository
	cache     WorkshopListingCache
}

// NewWorkshopService creates a new workshop service
func NewWorkshopService(workshops WorkshopRepository, cache WorkshopListingCache) *WorkshopService {
	return &WorkshopService{workshops: workshops, cache: cache}
}

// ListActive returns the active workshops annotated with their live
// registration counts and fill status, soonest first.
func (s *WorkshopService) ListActive(ctx context.Context) ([]domain.WorkshopListing, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to read workshop listing cache")
		} else if cached != nil {
			return cached, nil
		}
	}

	workshops, err := s.workshops.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.WorkshopListing, 0, len(workshops))
	for _, w := range workshops {
		count, err := s.workshops.CountRegistrations(ctx, w.Date, w.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to count registrations for workshop %d: %w", w.ID, err)
		}
		listings = append(listings, domain.WorkshopListing{
			Workshop:          w,
			RegistrationCount: count,
			FillStatus:        w.FillStatus(count),
			Remaining:         w.Remaining(count),
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, listings); err != nil {
			log.Warn().Err(err).Msg("Failed to cache workshop listing")
		}
	}

	return listings, nil
}

// Get returns a single workshop by id, including inactive ones. Admin only.
func (s *WorkshopService) Get(ctx context.Context, id int64) (*domain.Workshop, error) {
	return s.workshops.GetByID(ctx, id)
}

// Create stores a new workshop from admin input.
func (s *WorkshopService) Create(ctx context.Context, input domain.WorkshopInput) (*domain.Workshop, error) {
	w, err := workshopFromInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.workshops.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create workshop: %w", err)
	}

	s.invalidateListing(ctx)
	return w, nil
}

// Update replaces a workshop's fields with the submitted input.
func (s *WorkshopService) Update(ctx context.Context, id int64, input domain.WorkshopInput) (*domain.Workshop, error) {
	w, err := workshopFromInput(input)
	if err != nil {
		return nil, err
	}
	w.ID = id

	if err := s.workshops.Update(ctx, w); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx)
	return s.workshops.GetByID(ctx, id)
}

// Delete deactivates a workshop. Registrations keep their snapshots.
func (s *WorkshopService) Delete(ctx context.Context, id int64) error {
	if err := s.workshops.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

func (s *WorkshopService) invalidateListing(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate workshop listing cache")
	}
}

// workshopFromInput validates admin input and derives the stored record.
// When structured dates are present the Czech date label is generated from
// them; otherwise the submitted free-form label is kept as-is.
func workshopFromInput(input domain.WorkshopInput) (*domain.Workshop, error) {
	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	if input.Date == "" && input.StartDate == "" {
		return nil, &domain.ValidationError{Field: "date", Message: "Vyplň prosím všechna povinná pole"}
	}

	var startDate, endDate *time.Time
	if input.StartDate != "" {
		t, err := time.Parse("2006-01-02", input.StartDate)
		if err != nil {
			return nil, &domain.ValidationError{Field: "startDate", Message: "Neplatná hodnota"}
		}
		startDate = &t
	}
	if input.EndDate != "" {
		t, err := time.Parse("2006-01-02", input.EndDate)
		if err != nil {
			return nil, &domain.ValidationError{Field: "endDate", Message: "Neplatná hodnota"}
		}
		endDate = &t
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, &domain.ValidationError{Field: "endDate", Message: "Neplatná hodnota"}
	}

	date := input.Date
	if startDate != nil {
		date = czdate.RangeLabel(*startDate, endDate)
	}

	wtype := input.Type
	if wtype == "" {
		wtype = domain.WorkshopTypePublic
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	return &domain.Workshop{
		Name:                 optional(input.Name),
		Date:                 date,
		StartDate:            startDate,
		EndDate:              endDate,
		Location:             input.Location,
		Type:                 wtype,
		Capacity:             input.Capacity,
		PriceSingle:          input.PriceSingle,
		PriceCouple:          input.PriceCouple,
		Program:              optional(input.Program),
		Address:              optional(input.Address),
		WhatToBring:          optional(input.WhatToBring),
		InstructorInfo:       optional(input.InstructorInfo),
		BankAccount:          optional(input.BankAccount),
		VariableSymbolPrefix: optional(input.VariableSymbolPrefix),
		IsActive:             isActive,
	}, nil
}
