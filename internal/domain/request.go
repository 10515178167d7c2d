package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
)

// UrgencyUrgent takes absolute precedence over every other urgency value when
// requests are sorted for donors.
const UrgencyUrgent = "Urgent"

type BloodRequest struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	RequesterID uuid.UUID     `json:"requester_id" db:"requester_id"`
	BloodType   string        `json:"blood_type" db:"blood_type"`
	Urgency     string        `json:"urgency" db:"urgency"`
	Latitude    float64       `json:"-" db:"latitude"`
	Longitude   float64       `json:"-" db:"longitude"`
	Status      RequestStatus `json:"status" db:"status"`
	DonorID     *uuid.UUID    `json:"donor_id,omitempty" db:"donor_id"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

func (r *BloodRequest) Location() Coordinate {
	return Coordinate{Lat: r.Latitude, Lng: r.Longitude}
}

func (r *BloodRequest) IsUrgent() bool {
	return r.Urgency == UrgencyUrgent
}

type CreateRequestInput struct {
	BloodType string     `json:"blood_type" validate:"required"`
	Urgency   string     `json:"urgency" validate:"required"`
	Location  Coordinate `json:"location" validate:"required"`
}

// RequestMatch is a blood request annotated with its distance from a query
// center, rounded to one decimal place.
type RequestMatch struct {
	BloodRequest
	Distance float64 `json:"distance"`
}

type ResponseDecision string

const (
	DecisionAccepted ResponseDecision = "accepted"
	DecisionRejected ResponseDecision = "rejected"
)

func (d ResponseDecision) IsValid() bool {
	return d == DecisionAccepted || d == DecisionRejected
}

// Response records a donor's decision on a request. Responses are append-only:
// a donor may respond more than once and rejections never mutate the request.
type Response struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	RequestID uuid.UUID        `json:"request_id" db:"request_id"`
	DonorID   uuid.UUID        `json:"donor_id" db:"donor_id"`
	Decision  ResponseDecision `json:"decision" db:"decision"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
