package model

import (
	"time"

	"github.com/google/uuid"
)

// Activity descriptions emitted on application creation.
const (
	ActivityGroomingCreated = "SERVICE_GROOMING_CREATED"
	ActivityBoardingCreated = "SERVICE_BOARDING_CREATED"
	ActivityTransitCreated  = "SERVICE_TRANSIT_CREATED"
)

// ActivityEventType is the outbox event type carrying activity events.
const ActivityEventType = "ACTIVITY"

// ActivityEvent describes something a user did.
type ActivityEvent struct {
	UserID      uuid.UUID `json:"user"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurredAt"`
}
