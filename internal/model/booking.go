package model

import (
	"fmt"

	"github.com/google/uuid"
)

// BookingStatus is the wire-level status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusDone      BookingStatus = "done"
)

// BookingStatuses lists every legal status value.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusDeclined,
	BookingStatusDone,
}

func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseBookingStatus validates a raw status string.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown booking status %q", raw)
	}
	return s, nil
}

// Booking is one customer request for a service.
type Booking struct {
	Base
	UserID          uuid.UUID       `db:"user_id" json:"user"`
	StaffID         *uuid.UUID      `db:"staff_id" json:"staff,omitempty"`
	BranchID        uuid.UUID       `db:"branch_id" json:"branch"`
	PetID           uuid.UUID       `db:"pet_id" json:"pet"`
	ApplicationID   uuid.UUID       `db:"application_id" json:"application"`
	ApplicationType ApplicationType `db:"application_type" json:"applicationType"`
	ExtraServices   UUIDArray       `db:"extra_services" json:"extraServices"`
	Status          BookingStatus   `db:"status" json:"status"`
	Extension       *int            `db:"extension" json:"extension,omitempty"`
	Payable         float64         `db:"payable" json:"payable"`
}

// BookingFilters narrows booking projections.
type BookingFilters struct {
	Status BookingStatus
	UserID uuid.UUID
	// NewestFirst orders by creation time descending.
	NewestFirst bool
}

// BookingView is a booking joined with the documents it references.
type BookingView struct {
	Booking
	Profile          *Profile `json:"profile,omitempty"`
	Pet              *Pet     `json:"petDetails,omitempty"`
	Branch           *Branch  `json:"branchDetails,omitempty"`
	Staff            *Profile `json:"staffDetails,omitempty"`
	ExtraServiceFees []*Fee   `json:"extraServiceDetails,omitempty"`
}

// UpdateBookingStatusRequest is the body of the status transition endpoint.
// Booking carries the application reference, not the booking id.
type UpdateBookingStatusRequest struct {
	Booking uuid.UUID     `json:"booking" binding:"required"`
	Status  BookingStatus `json:"status" binding:"required,booking_status"`
}

// UpdateBookingExtensionRequest is the body of the stay extension endpoint.
type UpdateBookingExtensionRequest struct {
	Booking uuid.UUID `json:"booking" binding:"required"`
	Days    int       `json:"days" binding:"required,min=1"`
}
