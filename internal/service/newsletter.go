package service

import (
	"context"

	"github.com/petdohod/workshop-api/internal/domain"
)

// NewsletterService implements newsletter signups.
type NewsletterService struct {
	subscribers NewsletterRepository
}

// NewNewsletterService creates a new newsletter service
func NewNewsletterService(subscribers NewsletterRepository) *NewsletterService {
	return &NewsletterService{subscribers: subscribers}
}

// Subscribe adds the email to the newsletter list, reactivating a previous
// unsubscribe. An already-active email returns domain.ErrAlreadySubscribed.
func (s *NewsletterService) Subscribe(ctx context.Context, input domain.SubscribeInput) (*domain.Subscriber, error) {
	if err := validate.Struct(input); err != nil {
		return nil, validationError(err)
	}
	return s.subscribers.Subscribe(ctx, input.Email)
}
