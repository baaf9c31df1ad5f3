package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ApplicationType discriminates the application variants a booking can reference.
type ApplicationType string

const (
	ApplicationTypeBoarding ApplicationType = "boarding"
	ApplicationTypeGrooming ApplicationType = "grooming"
	ApplicationTypeTransit  ApplicationType = "transit"
)

func (t ApplicationType) Valid() bool {
	switch t {
	case ApplicationTypeBoarding, ApplicationTypeGrooming, ApplicationTypeTransit:
		return true
	}
	return false
}

// FeeTitle is the service fee catalog title holding this type's base fee.
func (t ApplicationType) FeeTitle() string {
	return string(t)
}

// DisplayName is the customer-facing label shown in a user's booking list.
func (t ApplicationType) DisplayName() string {
	switch t {
	case ApplicationTypeTransit:
		return "Home Service"
	case ApplicationTypeGrooming:
		return "Hair Cut"
	}
	return string(t)
}

type GroomingApplication struct {
	Base
	ServiceName      string    `db:"service_name" json:"serviceName"`
	OtherInformation string    `db:"other_information" json:"otherInformation"`
	ScheduleID       uuid.UUID `db:"schedule_id" json:"schedule"`
}

type BoardingApplication struct {
	Base
	ServiceName string    `db:"service_name" json:"serviceName"`
	Schedule    time.Time `db:"schedule" json:"schedule"`
	DaysOfStay  int       `db:"days_of_stay" json:"daysOfStay"`
	CageID      uuid.UUID `db:"cage_id" json:"cage"`
	BranchID    uuid.UUID `db:"branch_id" json:"branch"`
}

type TransitApplication struct {
	Base
	Schedule time.Time `db:"schedule" json:"schedule"`
}

// Application is a tagged union over the three application payloads.
// Exactly one payload is set and it matches Type.
type Application struct {
	Type     ApplicationType
	Grooming *GroomingApplication
	Boarding *BoardingApplication
	Transit  *TransitApplication
}

func NewGroomingApplication(a *GroomingApplication) *Application {
	return &Application{Type: ApplicationTypeGrooming, Grooming: a}
}

func NewBoardingApplication(a *BoardingApplication) *Application {
	return &Application{Type: ApplicationTypeBoarding, Boarding: a}
}

func NewTransitApplication(a *TransitApplication) *Application {
	return &Application{Type: ApplicationTypeTransit, Transit: a}
}

// Base returns the common fields of whichever payload is set.
func (a *Application) Base() *Base {
	switch a.Type {
	case ApplicationTypeGrooming:
		if a.Grooming != nil {
			return &a.Grooming.Base
		}
	case ApplicationTypeBoarding:
		if a.Boarding != nil {
			return &a.Boarding.Base
		}
	case ApplicationTypeTransit:
		if a.Transit != nil {
			return &a.Transit.Base
		}
	}
	return nil
}

func (a *Application) ID() uuid.UUID {
	if b := a.Base(); b != nil {
		return b.ID
	}
	return uuid.Nil
}

// Validate checks that exactly the payload named by Type is present.
func (a *Application) Validate() error {
	set := 0
	for _, present := range []bool{a.Grooming != nil, a.Boarding != nil, a.Transit != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("application must carry exactly one payload, got %d", set)
	}
	if a.Base() == nil {
		return fmt.Errorf("application payload does not match type %q", a.Type)
	}
	return nil
}

// GroomingApplicationView is a grooming application with its schedule resolved.
type GroomingApplicationView struct {
	GroomingApplication
	Schedule *Schedule `json:"scheduleDetails,omitempty"`
}

// BoardingApplicationView is a boarding application with its cage resolved.
type BoardingApplicationView struct {
	BoardingApplication
	Cage *Cage `json:"cageDetails,omitempty"`
}

// CreateGroomingRequest is the body of the grooming application endpoint.
// Pet defaults to the caller's registered pet when omitted.
type CreateGroomingRequest struct {
	Schedule         uuid.UUID   `json:"schedule" binding:"required"`
	Pet              uuid.UUID   `json:"pet"`
	Branch           uuid.UUID   `json:"branch" binding:"required"`
	Services         []uuid.UUID `json:"services" binding:"max=20"`
	ServiceName      string      `json:"serviceName" binding:"max=120"`
	OtherInformation string      `json:"otherInformation" binding:"max=1000"`
}

// CreateBoardingRequest is the body of the boarding application endpoint.
type CreateBoardingRequest struct {
	Pet         uuid.UUID `json:"pet"`
	Branch      uuid.UUID `json:"branch" binding:"required"`
	Cage        uuid.UUID `json:"cage" binding:"required"`
	ServiceName string    `json:"serviceName" binding:"max=120"`
	Schedule    time.Time `json:"schedule" binding:"required"`
	DaysOfStay  int       `json:"daysOfStay" binding:"required,min=1"`
}

// CreateTransitRequest is the body of the transit application endpoint.
type CreateTransitRequest struct {
	Pet      uuid.UUID `json:"pet"`
	Branch   uuid.UUID `json:"branch" binding:"required"`
	Schedule time.Time `json:"schedule" binding:"required"`
}

// ApplicationReceipt is returned once a booking has been created.
type ApplicationReceipt struct {
	ReferenceNo uuid.UUID `json:"referenceNo"`
	Date        time.Time `json:"date"`
}
