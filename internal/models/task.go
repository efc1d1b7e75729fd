// internal/models/task.go
package models

import "time"

// TaskStatus defines the possible statuses for a scheduled task.
type TaskStatus string

const (
	StatusAssigned   TaskStatus = "assigned"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// ProductCode identifies an entry of the fixed service catalog a task can
// reference. A task carries either a catalog code or a free-text custom
// product, never both.
type ProductCode string

const (
	ProductAudit       ProductCode = "audit"
	ProductTraining    ProductCode = "training"
	ProductConsulting  ProductCode = "consulting"
	ProductInspection  ProductCode = "inspection"
	ProductMaintenance ProductCode = "maintenance"
)

func IsCatalogProduct(p ProductCode) bool {
	switch p {
	case ProductAudit, ProductTraining, ProductConsulting, ProductInspection, ProductMaintenance:
		return true
	}
	return false
}

// Task represents a scheduled activity spanning one or more days.
type Task struct {
	ID               int64       `json:"id"`
	Activity         string      `json:"activity"`
	PlannedDays      int         `json:"planned_days"`
	DailyCost        float64     `json:"daily_cost"`
	CompanyID        int64       `json:"company_id"`
	Location         string      `json:"location"`
	Product          ProductCode `json:"product,omitempty"`
	CustomProduct    string      `json:"custom_product,omitempty"`
	StartDate        time.Time   `json:"start_date"`
	EndDate          time.Time   `json:"end_date"`
	Notes            string      `json:"notes"`
	CreatorID        int64       `json:"creator_id"`
	UsesSpecificDays bool        `json:"uses_specific_days"`
	Status           TaskStatus  `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	// Loaded with the task; ordered by insertion.
	Assignments  []TaskAssignment `json:"assignments,omitempty"`
	SpecificDays []time.Time      `json:"specific_days,omitempty"`
}

// PrimaryAssigneeID projects the historical single-assignee column for
// legacy consumers: the first assignment row. Zero when unloaded.
func (t *Task) PrimaryAssigneeID() int64 {
	if len(t.Assignments) == 0 {
		return 0
	}
	return t.Assignments[0].UserID
}

// AssigneeIDs returns the assignee ids in assignment order.
func (t *Task) AssigneeIDs() []int64 {
	ids := make([]int64, 0, len(t.Assignments))
	for _, a := range t.Assignments {
		ids = append(ids, a.UserID)
	}
	return ids
}

// TaskAssignment links a task to one of its assignees.
type TaskAssignment struct {
	TaskID        int64 `json:"task_id"`
	UserID        int64 `json:"user_id"`
	CompletionPct int   `json:"completion_pct"`
}

// TaskInput is the flat record a save operation receives from the
// presentation boundary. Dates are plain calendar days (2006-01-02).
type TaskInput struct {
	ID               int64       `json:"id"`
	Activity         string      `json:"activity"`
	PlannedDays      int         `json:"planned_days"`
	DailyCost        float64     `json:"daily_cost"`
	CompanyID        int64       `json:"company_id"`
	Location         string      `json:"location"`
	Product          ProductCode `json:"product"`
	CustomProduct    string      `json:"custom_product"`
	StartDate        string      `json:"start_date"`
	EndDate          string      `json:"end_date"`
	Notes            string      `json:"notes"`
	UsesSpecificDays bool        `json:"uses_specific_days"`
	SpecificDays     []string    `json:"specific_days"`
	AssigneeIDs      []int64     `json:"assignee_ids"`
	Status           TaskStatus  `json:"status"`
}

// TaskFilter defines the available parameters for calendar task queries.
type TaskFilter struct {
	CompanyID *int64
	UserID    *int64
	Status    *TaskStatus
}
