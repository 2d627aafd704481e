package fiber

import "event-manager/internal/events/core/domain"

// CreateEventRequest represents event creation payload
// @Description Event creation DTO
type CreateEventRequest struct {
	EventName string `json:"eventName" example:"Music Festival"`
	StartDate string `json:"startDate" example:"2023-01-20"`
	EndDate   string `json:"endDate" example:"2023-01-21"`
}

// PatchEventRequest carries only the fields to change. An id in the body is
// ignored; the path decides.
// @Description Partial event update DTO
type PatchEventRequest struct {
	EventName *string `json:"eventName,omitempty" example:"Jazz Fest"`
	StartDate *string `json:"startDate,omitempty" example:"2023-01-22"`
	EndDate   *string `json:"endDate,omitempty" example:"2023-01-23"`
}

type EventResponse struct {
	ID        int64  `json:"id" example:"1"`
	EventName string `json:"eventName" example:"Music Festival"`
	StartDate string `json:"startDate" example:"2023-01-20"`
	EndDate   string `json:"endDate" example:"2023-01-21"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_event"`
	Message string `json:"message,omitempty" example:"Event payload is invalid"`
}

func toEventResponse(e domain.Event) EventResponse {
	id, _ := e.ID.Int64()
	return EventResponse{
		ID:        id,
		EventName: e.EventName,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
	}
}

func toEventResponses(events []domain.Event) []EventResponse {
	out := make([]EventResponse, len(events))
	for i, e := range events {
		out[i] = toEventResponse(e)
	}
	return out
}
