package models

import "github.com/google/uuid"

// NotificationKind enumerates the per-recipient notification events the
// scheduling core emits after a commit.
type NotificationKind string

const (
	NotifyTaskAssigned       NotificationKind = "task_assigned"
	NotifyTaskUpdated        NotificationKind = "task_updated"
	NotifyTaskReassignedAway NotificationKind = "task_reassigned_away"
	NotifyTaskCancelled      NotificationKind = "task_cancelled"
	NotifyEventInvited       NotificationKind = "event_invited"
	NotifyEventUpdated       NotificationKind = "event_updated"
	NotifyEventCancelled     NotificationKind = "event_cancelled"
)

// NotificationIntent is one pending delivery: kind, subject record and the
// recipient it concerns. Intents are built after the transaction commits and
// handed to the dispatcher; delivery is best effort.
type NotificationIntent struct {
	ID          uuid.UUID        `json:"id"`
	Kind        NotificationKind `json:"kind"`
	SubjectType string           `json:"subject_type"` // "task" | "event"
	SubjectID   int64            `json:"subject_id"`
	Subject     string           `json:"subject"` // title / activity label
	RecipientID int64            `json:"recipient_id"`
	ActorID     int64            `json:"actor_id"`
}

func NewNotificationIntent(kind NotificationKind, subjectType string, subjectID int64, subject string, recipientID, actorID int64) NotificationIntent {
	return NotificationIntent{
		ID:          uuid.New(),
		Kind:        kind,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Subject:     subject,
		RecipientID: recipientID,
		ActorID:     actorID,
	}
}
