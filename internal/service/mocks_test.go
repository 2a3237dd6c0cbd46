package service

import (
	"context"

	"github.com/petdohod/workshop-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockWorkshopRepository mocks the WorkshopRepository interface
type MockWorkshopRepository struct {
	mock.Mock
}

func (m *MockWorkshopRepository) Create(ctx context.Context, w *domain.Workshop) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWorkshopRepository) GetByID(ctx context.Context, id int64) (*domain.Workshop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workshop), args.Error(1)
}

func (m *MockWorkshopRepository) ListActive(ctx context.Context) ([]domain.Workshop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workshop), args.Error(1)
}

func (m *MockWorkshopRepository) Update(ctx context.Context, w *domain.Workshop) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWorkshopRepository) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkshopRepository) CountRegistrations(ctx context.Context, date, location string) (int, error) {
	args := m.Called(ctx, date, location)
	return args.Int(0), args.Error(1)
}

// MockRegistrationRepository mocks the RegistrationRepository interface
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) SetVariableSymbol(ctx context.Context, id int64, vs string) error {
	args := m.Called(ctx, id, vs)
	return args.Error(0)
}

func (m *MockRegistrationRepository) GetByID(ctx context.Context, id int64) (*domain.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) List(ctx context.Context) ([]domain.Registration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) ListByStatus(ctx context.Context, status string) ([]domain.Registration, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) ExistsActive(ctx context.Context, email, date, location string) (bool, error) {
	args := m.Called(ctx, email, date, location)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNewsletterRepository mocks the NewsletterRepository interface
type MockNewsletterRepository struct {
	mock.Mock
}

func (m *MockNewsletterRepository) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscriber), args.Error(1)
}

// stubNotifier records notification calls on channels so tests can wait for
// the fire-and-forget goroutines deterministically. The configured err is
// returned from every call.
type stubNotifier struct {
	err           error
	confirmations chan *domain.Registration
	adminNotices  chan *domain.Registration
	payments      chan *domain.Registration
	contacts      chan domain.ContactMessage
}

func newStubNotifier(err error) *stubNotifier {
	return &stubNotifier{
		err:           err,
		confirmations: make(chan *domain.Registration, 4),
		adminNotices:  make(chan *domain.Registration, 4),
		payments:      make(chan *domain.Registration, 4),
		contacts:      make(chan domain.ContactMessage, 4),
	}
}

func (n *stubNotifier) RegistrationConfirmation(ctx context.Context, reg *domain.Registration, workshop *domain.Workshop) error {
	n.confirmations <- reg
	return n.err
}

func (n *stubNotifier) AdminNewRegistration(ctx context.Context, reg *domain.Registration) error {
	n.adminNotices <- reg
	return n.err
}

func (n *stubNotifier) PaymentConfirmed(ctx context.Context, reg *domain.Registration) error {
	n.payments <- reg
	return n.err
}

func (n *stubNotifier) ContactMessage(ctx context.Context, msg domain.ContactMessage) error {
	n.contacts <- msg
	return n.err
}

// MockWorkshopCache mocks the WorkshopListingCache interface
type MockWorkshopCache struct {
	mock.Mock
}

func (m *MockWorkshopCache) Get(ctx context.Context) ([]domain.WorkshopListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkshopListing), args.Error(1)
}

func (m *MockWorkshopCache) Set(ctx context.Context, listings []domain.WorkshopListing) error {
	args := m.Called(ctx, listings)
	return args.Error(0)
}

func (m *MockWorkshopCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
