package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceTransaction records a completed service.
// Payment starts at zero and is reconciled later.
type ServiceTransaction struct {
	Base
	StaffID    uuid.UUID  `db:"staff_id" json:"staff"`
	CustomerID uuid.UUID  `db:"customer_id" json:"customer"`
	PetID      uuid.UUID  `db:"pet_id" json:"pet"`
	ServiceID  *uuid.UUID `db:"service_id" json:"service,omitempty"`
	BookingID  uuid.UUID  `db:"booking_id" json:"booking"`
	Date       time.Time  `db:"date" json:"date"`
	Feedback   string     `db:"feedback" json:"feedback"`
	Payment    float64    `db:"payment" json:"payment"`
}

// ServiceTransactionView is a transaction joined with its participants.
type ServiceTransactionView struct {
	ID       uuid.UUID `json:"id"`
	Date     time.Time `json:"date"`
	Feedback string    `json:"feedback"`
	Payment  float64   `json:"payment"`
	Staff    *Profile  `json:"staff,omitempty"`
	Customer *Profile  `json:"customer,omitempty"`
	Pet      *Pet      `json:"pet,omitempty"`
	Service  *Fee      `json:"service,omitempty"`
}
