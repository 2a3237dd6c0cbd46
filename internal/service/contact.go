package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/petdohod/workshop-api/internal/domain"
)

// ContactService forwards contact form submissions to the admin mailbox.
// Messages are not persisted; delivery is best-effort.
type ContactService struct {
	notifier Notifier
}

// NewContactService creates a new contact service
func NewContactService(notifier Notifier) *ContactService {
	return &ContactService{notifier: notifier}
}

// Send validates the message and dispatches it asynchronously. A delivery
// failure is logged, never reported to the visitor.
func (s *ContactService) Send(ctx context.Context, msg domain.ContactMessage) error {
	if err := validate.Struct(msg); err != nil {
		return validationError(err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.ContactMessage(ctx, msg); err != nil {
			log.Error().Err(err).Str("email", msg.Email).
				Msg("Failed to forward contact message")
		}
	}()

	return nil
}
