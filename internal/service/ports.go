package service

import (
	"context"

	"github.com/petdohod/workshop-api/internal/domain"
)

// WorkshopRepository is the store contract consumed by the services.
type WorkshopRepository interface {
	Create(ctx context.Context, w *domain.Workshop) error
	GetByID(ctx context.Context, id int64) (*domain.Workshop, error)
	ListActive(ctx context.Context) ([]domain.Workshop, error)
	Update(ctx context.Context, w *domain.Workshop) error
	SoftDelete(ctx context.Context, id int64) error
	CountRegistrations(ctx context.Context, date, location string) (int, error)
}

// RegistrationRepository is the store contract for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	SetVariableSymbol(ctx context.Context, id int64, vs string) error
	GetByID(ctx context.Context, id int64) (*domain.Registration, error)
	List(ctx context.Context) ([]domain.Registration, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Registration, error)
	ExistsActive(ctx context.Context, email, date, location string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// NewsletterRepository is the store contract for newsletter signups.
type NewsletterRepository interface {
	Subscribe(ctx context.Context, email string) (*domain.Subscriber, error)
}

// Notifier dispatches outbound emails. Implementations must be safe for
// concurrent use; all calls happen on fire-and-forget goroutines and their
// errors are logged, never surfaced.
type Notifier interface {
	RegistrationConfirmation(ctx context.Context, reg *domain.Registration, workshop *domain.Workshop) error
	AdminNewRegistration(ctx context.Context, reg *domain.Registration) error
	PaymentConfirmed(ctx context.Context, reg *domain.Registration) error
	ContactMessage(ctx context.Context, msg domain.ContactMessage) error
}

// WorkshopListingCache holds the public listing between admin writes.
type WorkshopListingCache interface {
	Get(ctx context.Context) ([]domain.WorkshopListing, error)
	Set(ctx context.Context, listings []domain.WorkshopListing) error
	Invalidate(ctx context.Context) error
}
