package domain

import "time"

// Registration types
const (
	RegistrationTypeSingle = "single"
	RegistrationTypePair   = "pair"
)

// Registration statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is one of the three known statuses. Any of
// them may be set directly by an admin; there is no forward-only transition
// rule.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// Registration is one person's (or pair's) signup for a workshop. Workshop
// date, location and price are snapshotted at submission time so that later
// edits to the workshop never rewrite history.
type Registration struct {
	ID               int64     `json:"id"`
	WorkshopID       int64     `json:"workshopId"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          *string   `json:"address,omitempty"`
	City             *string   `json:"city,omitempty"`
	Zip              *string   `json:"zip,omitempty"`
	RegistrationType string    `json:"registrationType"`
	PartnerFirstName *string   `json:"partnerFirstName,omitempty"`
	PartnerLastName  *string   `json:"partnerLastName,omitempty"`
	PartnerEmail     *string   `json:"partnerEmail,omitempty"`
	WorkshopDate     string    `json:"workshopDate"`
	WorkshopLocation string    `json:"workshopLocation"`
	Price            string    `json:"price"`
	Notes            *string   `json:"notes,omitempty"`
	Status           string    `json:"status"`
	VariableSymbol   *string   `json:"variableSymbol,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// RegistrationInput is the public submission payload. The workshop snapshot
// fields and price are resolved server-side from the referenced workshop.
type RegistrationInput struct {
	WorkshopID       int64  `json:"workshopId" validate:"required,gt=0"`
	FirstName        string `json:"firstName" validate:"required,max=100"`
	LastName         string `json:"lastName" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email,max=200"`
	Phone            string `json:"phone" validate:"required,max=50"`
	Address          string `json:"address" validate:"omitempty,max=300"`
	City             string `json:"city" validate:"omitempty,max=100"`
	Zip              string `json:"zip" validate:"omitempty,max=20"`
	RegistrationType string `json:"registrationType" validate:"omitempty,oneof=single pair"`
	PartnerFirstName string `json:"partnerFirstName" validate:"omitempty,max=100"`
	PartnerLastName  string `json:"partnerLastName" validate:"omitempty,max=100"`
	PartnerEmail     string `json:"partnerEmail" validate:"omitempty,email,max=200"`
	Notes            string `json:"notes"`
}
