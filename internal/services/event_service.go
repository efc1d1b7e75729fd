// internal/services/event_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/repositories"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/schedule"
)

// EventService manages calendar events and their participant links.
// Unlike task assignees, participant lists are replaced wholesale on edit
// and every submitted participant is re-invited.
type EventService interface {
	Save(ctx context.Context, actor authz.Actor, input models.EventInput) (*models.Event, error)
	GetByID(ctx context.Context, actor authz.Actor, id int64) (*models.Event, error)
	Calendar(ctx context.Context, actor authz.Actor, mode schedule.ViewMode, anchor time.Time, filter models.EventFilter) ([]models.Event, error)
	Delete(ctx context.Context, actor authz.Actor, id int64) error
}

type eventService struct {
	repo       repositories.EventRepository
	dispatcher NotificationDispatcher
}

func NewEventService(repo repositories.EventRepository, dispatcher NotificationDispatcher) EventService {
	return &eventService{repo: repo, dispatcher: dispatcher}
}

func (s *eventService) Save(ctx context.Context, actor authz.Actor, input models.EventInput) (*models.Event, error) {
	if !authz.CanManageEvents(actor.RoleID) {
		return nil, ErrForbidden
	}

	event, err := validateEventInput(input)
	if err != nil {
		return nil, err
	}

	// Non-super actors always write into their own company (nil for an
	// unaffiliated creator); only a super role may target one explicitly.
	if authz.IsSuperRole(actor.RoleID) {
		event.CompanyID = input.CompanyID
	} else {
		event.CompanyID = actor.CompanyID
	}

	created := input.ID == 0
	if created {
		event.CreatorID = actor.ID
	} else {
		current, err := s.repo.FindByID(ctx, input.ID)
		if err != nil {
			return nil, fmt.Errorf("load event %d: %w", input.ID, err)
		}
		if current == nil {
			return nil, ErrNotFound
		}
		if !s.canTouch(actor, current) {
			return nil, ErrForbidden
		}
		event.CreatorID = current.CreatorID
		event.CreatedAt = current.CreatedAt
	}

	if err := s.repo.Save(ctx, event, input.ParticipantIDs); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	// Replace-all participant semantics: everyone submitted is (re)invited,
	// even users who had already accepted. On edits by someone else the
	// creator additionally hears that their event changed.
	var intents []models.NotificationIntent
	for _, p := range event.Participants {
		intents = append(intents, models.NewNotificationIntent(models.NotifyEventInvited, "event", event.ID, event.Title, p.UserID, actor.ID))
	}
	if !created && event.CreatorID != actor.ID {
		intents = append(intents, models.NewNotificationIntent(models.NotifyEventUpdated, "event", event.ID, event.Title, event.CreatorID, actor.ID))
	}
	s.dispatch(intents)
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, actor authz.Actor, id int64) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	if !s.canTouch(actor, event) {
		return nil, ErrForbidden
	}
	return event, nil
}

func (s *eventService) Calendar(ctx context.Context, actor authz.Actor, mode schedule.ViewMode, anchor time.Time, filter models.EventFilter) ([]models.Event, error) {
	scope, err := authz.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	win := schedule.ComputeWindow(mode, anchor)
	return s.repo.FindForCalendar(ctx, scope, actor.ID, filter, win)
}

func (s *eventService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrNotFound
	}
	if !s.canTouch(actor, event) {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}

	var intents []models.NotificationIntent
	for _, p := range event.Participants {
		intents = append(intents, models.NewNotificationIntent(models.NotifyEventCancelled, "event", event.ID, event.Title, p.UserID, actor.ID))
	}
	s.dispatch(intents)
	return nil
}

// canTouch: super sees all; the creator always keeps access to their own
// events, even across company changes; otherwise the event must belong to
// the actor's company.
func (s *eventService) canTouch(actor authz.Actor, event *models.Event) bool {
	if authz.IsSuperRole(actor.RoleID) || event.CreatorID == actor.ID {
		return true
	}
	return actor.CompanyID != nil && event.CompanyID != nil && *actor.CompanyID == *event.CompanyID
}

func (s *eventService) dispatch(intents []models.NotificationIntent) {
	if s.dispatcher == nil || len(intents) == 0 {
		return
	}
	s.dispatcher.Dispatch(intents)
}

func validateEventInput(input models.EventInput) (*models.Event, error) {
	if input.Title == "" {
		return nil, validationf("title is required")
	}
	start, err := time.Parse(time.RFC3339, input.StartAt)
	if err != nil {
		return nil, validationf("invalid start_at (RFC3339)")
	}
	end := start
	if input.EndAt != "" {
		end, err = time.Parse(time.RFC3339, input.EndAt)
		if err != nil {
			return nil, validationf("invalid end_at (RFC3339)")
		}
	}
	if end.Before(start) {
		return nil, validationf("end_at before start_at")
	}
	return &models.Event{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		StartAt:     start,
		EndAt:       end,
		Location:    input.Location,
		Category:    input.Category,
	}, nil
}
