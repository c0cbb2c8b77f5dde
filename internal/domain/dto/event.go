package dto

import "time"

type CreateEventRequest struct {
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description"`
	StartTime       time.Time `json:"startTime" validate:"required"`
	EndTime         time.Time `json:"endTime"`
	MaxParticipants int       `json:"maxParticipants"`
	HostID          string    `json:"hostId" validate:"required,uuid4"`
	LocationID      *string   `json:"locationId" validate:"omitempty,uuid4"`
}

type RegisterParticipantRequest struct {
	UserID   string `json:"userId" validate:"required,uuid4"`
	TicketID string `json:"ticketId" validate:"required,uuid4"`
}

type ReserveRequest struct {
	UserID string `json:"userId" validate:"required,uuid4"`
}
