package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/schedule"
)

type fakeEventRepo struct {
	events  map[int64]*models.Event
	nextID  int64
	saveErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[int64]*models.Event{}, nextID: 1}
}

func (r *fakeEventRepo) Save(ctx context.Context, event *models.Event, participantIDs []int64) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if event.ID == 0 {
		event.ID = r.nextID
		r.nextID++
	}
	event.Participants = event.Participants[:0]
	for _, id := range participantIDs {
		event.Participants = append(event.Participants, models.Participant{
			EventID: event.ID,
			UserID:  id,
			Status:  models.ParticipantInvited,
		})
	}
	cp := *event
	cp.Participants = append([]models.Participant{}, event.Participants...)
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id int64) (*models.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	cp.Participants = append([]models.Participant{}, e.Participants...)
	return &cp, nil
}

func (r *fakeEventRepo) FindForCalendar(ctx context.Context, scope authz.Scope, actorID int64, filter models.EventFilter, win schedule.Window) ([]models.Event, error) {
	var out []models.Event
	for _, e := range r.events {
		if win.Overlaps(e.StartAt, e.EndAt) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	delete(r.events, id)
	return nil
}

var managerActor = authz.Actor{ID: 5, RoleID: authz.RoleManager, CompanyID: companyRef(7)}

func validEventInput() models.EventInput {
	return models.EventInput{
		Title:          "quarterly review",
		StartAt:        "2024-03-28T10:00:00Z",
		EndAt:          "2024-03-28T11:30:00Z",
		ParticipantIDs: []int64{21, 22},
	}
}

func TestSaveEventValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.EventInput)
	}{
		{"missing title", func(in *models.EventInput) { in.Title = "" }},
		{"bad start", func(in *models.EventInput) { in.StartAt = "2024-03-28" }},
		{"bad end", func(in *models.EventInput) { in.EndAt = "later" }},
		{"end before start", func(in *models.EventInput) { in.EndAt = "2024-03-28T09:00:00Z" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeEventRepo()
			disp := &recordingDispatcher{}
			svc := NewEventService(repo, disp)

			in := validEventInput()
			tc.mutate(&in)

			_, err := svc.Save(context.Background(), managerActor, in)
			if !IsValidation(err) {
				t.Fatalf("err = %v, want validation failure", err)
			}
			if len(repo.events) != 0 || len(disp.intents) != 0 {
				t.Error("nothing may be written or dispatched on validation failure")
			}
		})
	}
}

func TestSaveEventForbiddenForOperators(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), &recordingDispatcher{})
	actor := authz.Actor{ID: 3, RoleID: authz.RoleOperator, CompanyID: companyRef(7)}
	if _, err := svc.Save(context.Background(), actor, validEventInput()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestCreateEventInvitesEveryParticipant(t *testing.T) {
	repo := newFakeEventRepo()
	disp := &recordingDispatcher{}
	svc := NewEventService(repo, disp)

	event, err := svc.Save(context.Background(), managerActor, validEventInput())
	if err != nil {
		t.Fatal(err)
	}
	if event.ID == 0 {
		t.Fatal("event id not assigned")
	}
	if event.CompanyID == nil || *event.CompanyID != 7 {
		t.Errorf("company = %v, want pinned to the actor's company", event.CompanyID)
	}
	if event.EndAt.Before(event.StartAt) {
		t.Error("end before start")
	}
	if got := disp.byKind(models.NotifyEventInvited); len(got) != 2 {
		t.Fatalf("invited = %v, want both participants", got)
	}
	if len(disp.intents) != 2 {
		t.Fatalf("intents = %d, want exactly 2 on create", len(disp.intents))
	}
	for _, p := range event.Participants {
		if p.Status != models.ParticipantInvited {
			t.Errorf("participant %d status = %s, want invited", p.UserID, p.Status)
		}
	}
}

func TestEndDefaultsToStart(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), &recordingDispatcher{})
	in := validEventInput()
	in.EndAt = ""
	event, err := svc.Save(context.Background(), managerActor, in)
	if err != nil {
		t.Fatal(err)
	}
	if !event.EndAt.Equal(event.StartAt) {
		t.Errorf("end = %v, want to default to start %v", event.EndAt, event.StartAt)
	}
}

func TestEditByAnotherUserReinvitesAndTellsCreator(t *testing.T) {
	repo := newFakeEventRepo()
	disp := &recordingDispatcher{}
	svc := NewEventService(repo, disp)

	event, err := svc.Save(context.Background(), managerActor, validEventInput())
	if err != nil {
		t.Fatal(err)
	}

	// participant 22 had accepted in the meantime
	repo.events[event.ID].Participants[1].Status = models.ParticipantAccepted

	disp.intents = nil
	other := authz.Actor{ID: 6, RoleID: authz.RoleManager, CompanyID: companyRef(7)}
	in := validEventInput()
	in.ID = event.ID
	in.Title = "quarterly review (moved)"
	updated, err := svc.Save(context.Background(), other, in)
	if err != nil {
		t.Fatal(err)
	}

	if updated.CreatorID != managerActor.ID {
		t.Errorf("creator = %d, must survive edits by others", updated.CreatorID)
	}
	// replace-all semantics: everyone is re-invited, acceptance is reset
	if got := disp.byKind(models.NotifyEventInvited); len(got) != 2 {
		t.Errorf("invited = %v, want both participants re-invited", got)
	}
	for _, p := range updated.Participants {
		if p.Status != models.ParticipantInvited {
			t.Errorf("participant %d status = %s, want reset to invited", p.UserID, p.Status)
		}
	}
	if got := disp.byKind(models.NotifyEventUpdated); len(got) != 1 || got[0] != managerActor.ID {
		t.Errorf("updated = %v, want the creator alone", got)
	}
}

func TestEditOwnEventSkipsCreatorNotice(t *testing.T) {
	repo := newFakeEventRepo()
	disp := &recordingDispatcher{}
	svc := NewEventService(repo, disp)

	event, err := svc.Save(context.Background(), managerActor, validEventInput())
	if err != nil {
		t.Fatal(err)
	}

	disp.intents = nil
	in := validEventInput()
	in.ID = event.ID
	if _, err := svc.Save(context.Background(), managerActor, in); err != nil {
		t.Fatal(err)
	}
	if got := disp.byKind(models.NotifyEventUpdated); len(got) != 0 {
		t.Errorf("creator edited their own event, nobody else to tell: %v", got)
	}
}

func TestEventAccessAcrossCompanies(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, &recordingDispatcher{})

	event, err := svc.Save(context.Background(), managerActor, validEventInput())
	if err != nil {
		t.Fatal(err)
	}

	stranger := authz.Actor{ID: 40, RoleID: authz.RoleManager, CompanyID: companyRef(9)}
	if _, err := svc.GetByID(context.Background(), stranger, event.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for another company", err)
	}

	in := validEventInput()
	in.ID = event.ID
	if _, err := svc.Save(context.Background(), stranger, in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden on cross-company edit", err)
	}

	colleague := authz.Actor{ID: 41, RoleID: authz.RoleManager, CompanyID: companyRef(7)}
	if _, err := svc.GetByID(context.Background(), colleague, event.ID); err != nil {
		t.Fatalf("same-company access must work: %v", err)
	}
	super := authz.Actor{ID: 42, RoleID: authz.RoleSuperAdmin}
	if _, err := svc.GetByID(context.Background(), super, event.ID); err != nil {
		t.Fatalf("super access must work: %v", err)
	}
}

func TestDeleteEventNotifiesParticipants(t *testing.T) {
	repo := newFakeEventRepo()
	disp := &recordingDispatcher{}
	svc := NewEventService(repo, disp)

	event, err := svc.Save(context.Background(), managerActor, validEventInput())
	if err != nil {
		t.Fatal(err)
	}

	disp.intents = nil
	if err := svc.Delete(context.Background(), managerActor, event.ID); err != nil {
		t.Fatal(err)
	}
	if got := disp.byKind(models.NotifyEventCancelled); len(got) != 2 {
		t.Errorf("cancelled = %v, want both participants", got)
	}
	if _, err := svc.GetByID(context.Background(), managerActor, event.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestEventSaveFailureEmitsNoNotification(t *testing.T) {
	repo := newFakeEventRepo()
	repo.saveErr = errors.New("connection lost")
	disp := &recordingDispatcher{}
	svc := NewEventService(repo, disp)

	if _, err := svc.Save(context.Background(), managerActor, validEventInput()); err == nil {
		t.Fatal("expected persistence failure")
	}
	if len(disp.intents) != 0 {
		t.Fatal("notification must never precede a successful commit")
	}
}

func TestCalendarRequiresCompanySelection(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), &recordingDispatcher{})
	actor := authz.Actor{ID: 3, RoleID: authz.RoleOperator} // no company picked
	_, err := svc.Calendar(context.Background(), actor, schedule.ViewMonth, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), models.EventFilter{})
	if !errors.Is(err, authz.ErrNoCompanySelected) {
		t.Fatalf("err = %v, want ErrNoCompanySelected", err)
	}
}
