package services

import "github.com/HariSeldon343/NexioSolution-sub000/internal/models"

// Allowed task status transitions. Workflow actions drive these from the
// outside; the core persists whatever arrives through this table and keeps
// cancelled tasks out of the calendar queries.
var TaskTransitions = map[models.TaskStatus]map[models.TaskStatus]bool{
	models.StatusAssigned:   {models.StatusInProgress: true, models.StatusCancelled: true},
	models.StatusInProgress: {models.StatusCompleted: true, models.StatusCancelled: true},
	models.StatusCompleted:  {},
	models.StatusCancelled:  {},
}

func IsAllowedTaskStatus(s models.TaskStatus) bool {
	_, ok := TaskTransitions[s]
	return ok
}

func CanTransitionTask(from, to models.TaskStatus) bool {
	if from == to {
		return true
	}
	if from == "" {
		return to == models.StatusAssigned
	}
	nexts, ok := TaskTransitions[from]
	if !ok {
		return false
	}
	return nexts[to]
}
