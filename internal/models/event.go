// internal/models/event.go
package models

import "time"

// ParticipantStatus tracks an invitee's answer to an event.
type ParticipantStatus string

const (
	ParticipantInvited  ParticipantStatus = "invited"
	ParticipantAccepted ParticipantStatus = "accepted"
	ParticipantDeclined ParticipantStatus = "declined"
)

// Event represents a calendar entry. CompanyID is nil for events that are
// not bound to a tenant (the creator still always sees their own).
type Event struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       time.Time  `json:"end_at"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	CompanyID   *int64     `json:"company_id,omitempty"`
	CreatorID   int64      `json:"creator_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Participants []Participant `json:"participants,omitempty"`
}

// Participant links an event to an invited user.
type Participant struct {
	EventID int64             `json:"event_id"`
	UserID  int64             `json:"user_id"`
	Status  ParticipantStatus `json:"status"`
}

// EventInput is the flat record a save operation receives from the
// presentation boundary. Timestamps are RFC3339; EndAt defaults to StartAt.
type EventInput struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	StartAt        string  `json:"start_at"`
	EndAt          string  `json:"end_at"`
	Location       string  `json:"location"`
	Category       string  `json:"category"`
	CompanyID      *int64  `json:"company_id"`
	ParticipantIDs []int64 `json:"participant_ids"`
}

// EventFilter defines the available parameters for calendar event queries.
type EventFilter struct {
	CompanyID *int64
	Category  *string
}
