package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/petdohod/workshop-api/internal/domain"
	"github.com/petdohod/workshop-api/internal/payment"
)

const notifyTimeout = 30 * time.Second

// RegistrationService implements workshop signup and its admin lifecycle.
type RegistrationService struct {
	registrations RegistrationRepository
	workshops     WorkshopRepository
	notifier      Notifier
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(registrations RegistrationRepository, workshops WorkshopRepository, notifier Notifier) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		workshops:     workshops,
		notifier:      notifier,
	}
}

// Submit validates and stores a public registration, assigns its variable
// symbol and kicks off the confirmation emails. The emails are dispatched
// asynchronously; their failures are logged and never fail the submission.
func (s *RegistrationService) Submit(ctx context.Context, input domain.RegistrationInput) (*domain.Registration, error) {
	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}

	workshop, err := s.workshops.GetByID(ctx, input.WorkshopID)
	if err != nil {
		return nil, err
	}
	if !workshop.IsActive {
		return nil, domain.ErrWorkshopNotFound
	}

	exists, err := s.registrations.ExistsActive(ctx, input.Email, workshop.Date, workshop.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate registration: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateRegistration
	}

	regType := input.RegistrationType
	if regType == "" {
		regType = domain.RegistrationTypeSingle
	}

	reg := &domain.Registration{
		WorkshopID:       workshop.ID,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		Phone:            input.Phone,
		Address:          optional(input.Address),
		City:             optional(input.City),
		Zip:              optional(input.Zip),
		RegistrationType: regType,
		PartnerFirstName: optional(input.PartnerFirstName),
		PartnerLastName:  optional(input.PartnerLastName),
		PartnerEmail:     optional(input.PartnerEmail),
		WorkshopDate:     workshop.Date,
		WorkshopLocation: workshop.Location,
		Price:            payment.FormatCZK(float64(resolvePrice(workshop, regType))),
		Notes:            optional(input.Notes),
		Status:           domain.StatusPending,
	}

	if err := s.registrations.Create(ctx, reg); err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	// The variable symbol needs the generated id, so it is assigned in a
	// second statement. When that write fails the registration stands and
	// the symbol is filled in by hand later.
	vs := variableSymbol(workshop.VariableSymbolPrefix, reg.ID, reg.CreatedAt)
	if err := s.registrations.SetVariableSymbol(ctx, reg.ID, vs); err != nil {
		log.Error().Err(err).Int64("registration_id", reg.ID).
			Msg("Failed to assign variable symbol")
	} else {
		reg.VariableSymbol = &vs
	}

	go s.sendRegistrationEmails(*reg, *workshop)

	return reg, nil
}

// resolvePrice picks the amount for the registration type. A pair signup
// without a configured couple price falls back to twice the single price.
func resolvePrice(w *domain.Workshop, regType string) int {
	if regType == domain.RegistrationTypePair {
		if w.PriceCouple != nil {
			return *w.PriceCouple
		}
		return 2 * w.PriceSingle
	}
	return w.PriceSingle
}

// variableSymbol builds the payment identifier: workshop prefix plus the
// registration id padded to at least three digits, or a year-month fallback
// when the workshop carries no prefix.
func variableSymbol(prefix *string, id int64, createdAt time.Time) string {
	if prefix != nil && *prefix != "" {
		return fmt.Sprintf("%s%03d", *prefix, id)
	}
	return createdAt.Format("200601") + fmt.Sprintf("%04d", id)
}

func (s *RegistrationService) sendRegistrationEmails(reg domain.Registration, workshop domain.Workshop) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.RegistrationConfirmation(ctx, &reg, &workshop); err != nil {
		log.Error().Err(err).Int64("registration_id", reg.ID).
			Msg("Failed to send registration confirmation email")
	}
	if err := s.notifier.AdminNewRegistration(ctx, &reg); err != nil {
		log.Error().Err(err).Int64("registration_id", reg.ID).
			Msg("Failed to send admin notification email")
	}
}

// List returns all registrations, optionally filtered by status.
func (s *RegistrationService) List(ctx context.Context, status string) ([]domain.Registration, error) {
	if status == "" {
		return s.registrations.List(ctx)
	}
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.registrations.ListByStatus(ctx, status)
}

// UpdateStatus sets a registration's status. Confirming a registration
// triggers the payment-received email.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Registration, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	if err := s.registrations.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	reg, err := s.registrations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == domain.StatusConfirmed {
		go s.sendPaymentConfirmedEmail(*reg)
	}

	return reg, nil
}

func (s *RegistrationService) sendPaymentConfirmedEmail(reg domain.Registration) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.PaymentConfirmed(ctx, &reg); err != nil {
		log.Error().Err(err).Int64("registration_id", reg.ID).
			Msg("Failed to send payment confirmation email")
	}
}

// Delete permanently removes a registration.
func (s *RegistrationService) Delete(ctx context.Context, id int64) error {
	return s.registrations.Delete(ctx, id)
}

// optional maps an empty or whitespace-only form value to SQL NULL.
func optional(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
