package domain

import "time"

// Workshop types
const (
	WorkshopTypePublic    = "public"
	WorkshopTypeCorporate = "corporate"
)

// Fill status classification for a workshop listing
const (
	FillStatusFull       = "full"
	FillStatusNearlyFull = "nearly_full"
	FillStatusAvailable  = "available"
)

// Workshop is a single scheduled seminar instance. Optional detail and
// payment columns are pointers so that absent values round-trip as SQL NULL
// instead of empty strings.
type Workshop struct {
	ID                   int64      `json:"id"`
	Name                 *string    `json:"name,omitempty"`
	Date                 string     `json:"date"`
	StartDate            *time.Time `json:"startDate,omitempty"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	Location             string     `json:"location"`
	Type                 string     `json:"type"`
	Capacity             *int       `json:"capacity,omitempty"`
	PriceSingle          int        `json:"priceSingle"`
	PriceCouple          *int       `json:"priceCouple,omitempty"`
	Program              *string    `json:"program,omitempty"`
	Address              *string    `json:"address,omitempty"`
	WhatToBring          *string    `json:"whatToBring,omitempty"`
	InstructorInfo       *string    `json:"instructorInfo,omitempty"`
	BankAccount          *string    `json:"bankAccount,omitempty"`
	VariableSymbolPrefix *string    `json:"variableSymbol,omitempty"`
	IsActive             bool       `json:"isActive"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// FillStatus classifies how full the workshop is for a given count of
// non-cancelled registrations. A workshop without a capacity is never full.
func (w Workshop) FillStatus(registrationCount int) string {
	if w.Capacity == nil || *w.Capacity <= 0 {
		return FillStatusAvailable
	}
	ratio := float64(registrationCount) / float64(*w.Capacity)
	switch {
	case ratio >= 1:
		return FillStatusFull
	case ratio > 0.5:
		return FillStatusNearlyFull
	default:
		return FillStatusAvailable
	}
}

// Remaining returns the number of free spots, or nil when capacity is
// unlimited/hidden. Never negative.
func (w Workshop) Remaining(registrationCount int) *int {
	if w.Capacity == nil {
		return nil
	}
	r := *w.Capacity - registrationCount
	if r < 0 {
		r = 0
	}
	return &r
}

// WorkshopListing is a workshop annotated with its live registration count
// for the public listing.
type WorkshopListing struct {
	Workshop
	RegistrationCount int    `json:"registrationCount"`
	FillStatus        string `json:"fillStatus"`
	Remaining         *int   `json:"remaining,omitempty"`
}

// WorkshopInput carries admin-submitted workshop data for both create and
// update. Structured dates arrive as YYYY-MM-DD strings; when present the
// human-readable date label is derived from them and the submitted label is
// ignored.
type WorkshopInput struct {
	Name                 string `json:"name" validate:"omitempty,max=200"`
	Date                 string `json:"date" validate:"omitempty,max=100"`
	StartDate            string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate              string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Location             string `json:"location" validate:"required,max=200"`
	Type                 string `json:"type" validate:"omitempty,oneof=public corporate"`
	Capacity             *int   `json:"capacity" validate:"omitempty,gt=0"`
	PriceSingle          int    `json:"priceSingle" validate:"required,gt=0"`
	PriceCouple          *int   `json:"priceCouple" validate:"omitempty,gt=0"`
	Program              string `json:"program"`
	Address              string `json:"address"`
	WhatToBring          string `json:"whatToBring"`
	InstructorInfo       string `json:"instructorInfo"`
	BankAccount          string `json:"bankAccount" validate:"omitempty,max=100"`
	VariableSymbolPrefix string `json:"variableSymbol" validate:"omitempty,max=50,numeric"`
	IsActive             *bool  `json:"isActive"`
}
