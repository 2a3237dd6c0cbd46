package domain

import "time"

// Subscriber is a newsletter signup. Emails are unique; re-subscribing an
// inactive email reactivates the existing row.
type Subscriber struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
	IsActive     bool      `json:"isActive"`
}

// SubscribeInput is the newsletter form payload.
type SubscribeInput struct {
	Email string `json:"email" validate:"required,email,max=200"`
}
