// internal/services/task_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/repositories"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/schedule"
)

const dateLayout = "2006-01-02"

// TaskService is the scheduling core for tasks: validation, assignment
// diffing, transactional persistence and post-commit notification intents.
type TaskService interface {
	Save(ctx context.Context, actor authz.Actor, input models.TaskInput) (*models.Task, error)
	GetByID(ctx context.Context, actor authz.Actor, id int64) (*models.Task, error)
	Calendar(ctx context.Context, actor authz.Actor, mode schedule.ViewMode, anchor time.Time, filter models.TaskFilter) ([]models.Task, error)
	ChangeStatus(ctx context.Context, actor authz.Actor, id int64, to models.TaskStatus) (*models.Task, error)
	Delete(ctx context.Context, actor authz.Actor, id int64) error
}

type taskService struct {
	repo       repositories.TaskRepository
	dispatcher NotificationDispatcher
}

func NewTaskService(repo repositories.TaskRepository, dispatcher NotificationDispatcher) TaskService {
	return &taskService{repo: repo, dispatcher: dispatcher}
}

func (s *taskService) Save(ctx context.Context, actor authz.Actor, input models.TaskInput) (*models.Task, error) {
	if !authz.CanViewTasks(actor.RoleID) {
		return nil, ErrForbidden
	}

	task, err := validateTaskInput(input)
	if err != nil {
		return nil, err
	}
	// a tenant-bound actor always writes into their own company
	if !authz.IsSuperRole(actor.RoleID) && actor.CompanyID != nil {
		task.CompanyID = *actor.CompanyID
	}
	if task.CompanyID == 0 {
		return nil, validationf("company_id is required")
	}

	// Previous assignee set: empty on create, loaded pre-diff on update so
	// retained users keep their completion percentage.
	var previous []models.TaskAssignment
	if input.ID != 0 {
		current, err := s.repo.FindByID(ctx, input.ID)
		if err != nil {
			return nil, fmt.Errorf("load task %d: %w", input.ID, err)
		}
		if current == nil {
			return nil, ErrNotFound
		}
		if !authz.IsSuperRole(actor.RoleID) && !assignedTo(current, actor.ID) && current.CreatorID != actor.ID {
			return nil, ErrForbidden
		}
		previous = current.Assignments
		task.CreatorID = current.CreatorID
		task.CreatedAt = current.CreatedAt
	} else {
		task.CreatorID = actor.ID
	}

	diff := schedule.DiffAssignees(assigneeIDsOf(previous), input.AssigneeIDs)

	pctByUser := make(map[int64]int, len(previous))
	for _, a := range previous {
		pctByUser[a.UserID] = a.CompletionPct
	}
	task.Assignments = task.Assignments[:0]
	seen := make(map[int64]bool, len(input.AssigneeIDs))
	for _, userID := range input.AssigneeIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true
		task.Assignments = append(task.Assignments, models.TaskAssignment{
			UserID:        userID,
			CompletionPct: pctByUser[userID], // 0 for new assignees
		})
	}

	if task.UsesSpecificDays && task.PlannedDays > 0 && task.PlannedDays != len(task.SpecificDays) {
		log.Printf("[task][save][warn] id=%d planned_days=%d specific_days=%d mismatch",
			task.ID, task.PlannedDays, len(task.SpecificDays))
	}

	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	// Commit happened above; only now may anyone be told.
	s.dispatch(s.saveIntents(task, actor, input.ID == 0, diff))
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, actor authz.Actor, id int64) (*models.Task, error) {
	if !authz.CanViewTasks(actor.RoleID) {
		return nil, ErrForbidden
	}
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if !authz.IsSuperRole(actor.RoleID) && !assignedTo(task, actor.ID) && task.CreatorID != actor.ID {
		return nil, ErrForbidden
	}
	return task, nil
}

func (s *taskService) Calendar(ctx context.Context, actor authz.Actor, mode schedule.ViewMode, anchor time.Time, filter models.TaskFilter) ([]models.Task, error) {
	if !authz.CanViewTasks(actor.RoleID) {
		return nil, ErrForbidden
	}
	scope, err := authz.ResolveScope(actor)
	if err != nil {
		return nil, err
	}
	win := schedule.ComputeWindow(mode, anchor)
	return s.repo.FindForCalendar(ctx, scope, actor.ID, filter, win)
}

func (s *taskService) ChangeStatus(ctx context.Context, actor authz.Actor, id int64, to models.TaskStatus) (*models.Task, error) {
	if !authz.CanViewTasks(actor.RoleID) {
		return nil, ErrForbidden
	}
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if !authz.IsSuperRole(actor.RoleID) && !assignedTo(task, actor.ID) && task.CreatorID != actor.ID {
		return nil, ErrForbidden
	}
	if !IsAllowedTaskStatus(to) || !CanTransitionTask(task.Status, to) {
		return nil, validationf(fmt.Sprintf("illegal status transition %s -> %s", task.Status, to))
	}
	task.Status = to
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("save task status: %w", err)
	}

	kind := models.NotifyTaskUpdated
	if to == models.StatusCancelled {
		kind = models.NotifyTaskCancelled
	}
	var intents []models.NotificationIntent
	for _, a := range task.Assignments {
		intents = append(intents, models.NewNotificationIntent(kind, "task", task.ID, task.Activity, a.UserID, actor.ID))
	}
	s.dispatch(intents)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	if !authz.CanViewTasks(actor.RoleID) {
		return ErrForbidden
	}
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrNotFound
	}
	if !authz.IsSuperRole(actor.RoleID) && task.CreatorID != actor.ID {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	var intents []models.NotificationIntent
	for _, a := range task.Assignments {
		intents = append(intents, models.NewNotificationIntent(models.NotifyTaskCancelled, "task", task.ID, task.Activity, a.UserID, actor.ID))
	}
	s.dispatch(intents)
	return nil
}

// saveIntents computes the differential fan-out: newly assigned users are
// told they are assigned, retained users that the task changed, removed
// users that it was reassigned away.
func (s *taskService) saveIntents(task *models.Task, actor authz.Actor, created bool, diff schedule.Diff) []models.NotificationIntent {
	var intents []models.NotificationIntent
	add := func(kind models.NotificationKind, userID int64) {
		intents = append(intents, models.NewNotificationIntent(kind, "task", task.ID, task.Activity, userID, actor.ID))
	}
	for _, id := range diff.Added {
		add(models.NotifyTaskAssigned, id)
	}
	if !created {
		for _, id := range diff.Retained {
			add(models.NotifyTaskUpdated, id)
		}
		for _, id := range diff.Removed {
			add(models.NotifyTaskReassignedAway, id)
		}
	}
	return intents
}

func (s *taskService) dispatch(intents []models.NotificationIntent) {
	if s.dispatcher == nil || len(intents) == 0 {
		return
	}
	s.dispatcher.Dispatch(intents)
}

func validateTaskInput(input models.TaskInput) (*models.Task, error) {
	if input.Activity == "" {
		return nil, validationf("activity is required")
	}
	if len(input.AssigneeIDs) == 0 {
		return nil, validationf("at least one assignee is required")
	}
	hasProduct := input.Product != ""
	hasCustom := input.CustomProduct != ""
	if hasProduct == hasCustom {
		return nil, validationf("exactly one of product or custom_product is required")
	}
	if hasProduct && !models.IsCatalogProduct(input.Product) {
		return nil, validationf("unknown product code")
	}

	start, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, validationf("invalid start_date (2006-01-02)")
	}
	end := start
	if input.EndDate != "" {
		end, err = time.Parse(dateLayout, input.EndDate)
		if err != nil {
			return nil, validationf("invalid end_date (2006-01-02)")
		}
	}
	if end.Before(start) {
		return nil, validationf("end_date before start_date")
	}

	status := input.Status
	if status == "" {
		status = models.StatusAssigned
	}
	if !IsAllowedTaskStatus(status) {
		return nil, validationf("unknown status")
	}

	var days []time.Time
	if input.UsesSpecificDays {
		if len(input.SpecificDays) == 0 {
			return nil, validationf("at least one specific day is required")
		}
		for _, raw := range input.SpecificDays {
			d, err := time.Parse(dateLayout, raw)
			if err != nil {
				return nil, validationf("invalid specific day (2006-01-02)")
			}
			days = append(days, d)
		}
	}

	return &models.Task{
		ID:               input.ID,
		Activity:         input.Activity,
		PlannedDays:      input.PlannedDays,
		DailyCost:        input.DailyCost,
		CompanyID:        input.CompanyID,
		Location:         input.Location,
		Product:          input.Product,
		CustomProduct:    input.CustomProduct,
		StartDate:        start,
		EndDate:          end,
		Notes:            input.Notes,
		UsesSpecificDays: input.UsesSpecificDays,
		SpecificDays:     days,
		Status:           status,
	}, nil
}

func assignedTo(task *models.Task, userID int64) bool {
	for _, a := range task.Assignments {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

func assigneeIDsOf(assignments []models.TaskAssignment) []int64 {
	ids := make([]int64, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.UserID)
	}
	return ids
}
