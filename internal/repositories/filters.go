package repositories

import (
	"fmt"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/schedule"
)

// Scope + window predicate builders shared by the calendar queries. Each
// returns WHERE fragments with $n placeholders starting at argID, the
// matching args, and the next free argID.

// eventConditions applies the event visibility rule: a super actor sees
// everything (optionally narrowed by an explicit company filter); a
// company-bound actor sees their company's events or their own; an
// unaffiliated actor only their own. Creators always retain visibility of
// events they created.
func eventConditions(scope authz.Scope, actorID int64, filter models.EventFilter, win schedule.Window, argID int) ([]string, []any, int) {
	conds := []string{}
	args := []any{}

	switch scope.Kind {
	case authz.AllCompanies:
		if filter.CompanyID != nil {
			conds = append(conds, fmt.Sprintf("company_id = $%d", argID))
			args = append(args, *filter.CompanyID)
			argID++
		}
	case authz.SingleCompany:
		conds = append(conds, fmt.Sprintf("(company_id = $%d OR creator_id = $%d)", argID, argID+1))
		args = append(args, scope.CompanyID, actorID)
		argID += 2
	case authz.OwnRecordsOnly:
		conds = append(conds, fmt.Sprintf("creator_id = $%d", argID))
		args = append(args, actorID)
		argID++
	}

	if filter.Category != nil {
		conds = append(conds, fmt.Sprintf("category = $%d", argID))
		args = append(args, *filter.Category)
		argID++
	}

	// Events are points in time: date equality for a single-day window,
	// containment otherwise.
	switch {
	case win.OpenEnded:
		conds = append(conds, fmt.Sprintf("start_at::date >= $%d", argID))
		args = append(args, win.From)
		argID++
	case win.From.Equal(win.To):
		conds = append(conds, fmt.Sprintf("start_at::date = $%d", argID))
		args = append(args, win.From)
		argID++
	default:
		conds = append(conds, fmt.Sprintf("start_at::date BETWEEN $%d AND $%d", argID, argID+1))
		args = append(args, win.From, win.To)
		argID += 2
	}

	return conds, args, argID
}

// taskConditions applies the task visibility rule. The caller has already
// checked the actor may see tasks at all; here a non-super actor is pinned
// to tasks assigned to themselves, a super actor may narrow by an explicit
// target user. Cancelled tasks never reach the calendar.
func taskConditions(scope authz.Scope, actorID int64, filter models.TaskFilter, win schedule.Window, argID int) ([]string, []any, int) {
	conds := []string{"status <> 'cancelled'"}
	args := []any{}

	assignedTo := func(userID int64) {
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM task_assignments ta WHERE ta.task_id = tasks.id AND ta.user_id = $%d)", argID))
		args = append(args, userID)
		argID++
	}

	if scope.Kind == authz.AllCompanies {
		if filter.CompanyID != nil {
			conds = append(conds, fmt.Sprintf("company_id = $%d", argID))
			args = append(args, *filter.CompanyID)
			argID++
		}
		if filter.UserID != nil {
			assignedTo(*filter.UserID)
		}
	} else {
		assignedTo(actorID)
	}

	if filter.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}

	// Interval overlap, not point containment: a multi-day task shows on
	// every day/week/month it touches.
	if win.OpenEnded {
		conds = append(conds, fmt.Sprintf("end_date >= $%d", argID))
		args = append(args, win.From)
		argID++
	} else {
		conds = append(conds, fmt.Sprintf(
			"(start_date BETWEEN $%d AND $%d OR end_date BETWEEN $%d AND $%d OR (start_date <= $%d AND end_date >= $%d))",
			argID, argID+1, argID, argID+1, argID, argID+1))
		args = append(args, win.From, win.To)
		argID += 2
	}

	return conds, args, argID
}
