package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/schedule"
)

type TaskRepository interface {
	// Save upserts the task row and replaces its assignment and specific-day
	// rows in a single transaction. task.Assignments carries the final rows
	// (completion pct already reconciled by the service); task.SpecificDays
	// is honored only when UsesSpecificDays is set, otherwise the rows are
	// purged. On return task.ID is populated.
	Save(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindForCalendar(ctx context.Context, scope authz.Scope, actorID int64, filter models.TaskFilter, win schedule.Window) ([]models.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, activity, planned_days, daily_cost, company_id, location,
       product, custom_product, start_date, end_date, notes, creator_id,
       uses_specific_days, status, created_at, updated_at`

func (r *taskRepository) Save(ctx context.Context, task *models.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin task save: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	if task.ID == 0 {
		task.CreatedAt = now
		err = tx.QueryRowContext(ctx, `
			INSERT INTO tasks (
				activity, planned_days, daily_cost, company_id, location,
				product, custom_product, start_date, end_date, notes,
				creator_id, uses_specific_days, status, created_at, updated_at
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
			RETURNING id`,
			task.Activity, task.PlannedDays, task.DailyCost, task.CompanyID, task.Location,
			nullString(string(task.Product)), nullString(task.CustomProduct),
			task.StartDate, task.EndDate, task.Notes,
			task.CreatorID, task.UsesSpecificDays, task.Status, task.CreatedAt, now,
		).Scan(&task.ID)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE tasks SET
				activity=$1, planned_days=$2, daily_cost=$3, company_id=$4, location=$5,
				product=$6, custom_product=$7, start_date=$8, end_date=$9, notes=$10,
				uses_specific_days=$11, status=$12, updated_at=$13
			WHERE id=$14`,
			task.Activity, task.PlannedDays, task.DailyCost, task.CompanyID, task.Location,
			nullString(string(task.Product)), nullString(task.CustomProduct),
			task.StartDate, task.EndDate, task.Notes,
			task.UsesSpecificDays, task.Status, now, task.ID,
		)
	}
	if err != nil {
		return fmt.Errorf("save task row: %w", err)
	}
	task.UpdatedAt = now

	// Replace-all on children; the transaction keeps it atomic.
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_assignments WHERE task_id=$1`, task.ID); err != nil {
		return fmt.Errorf("clear task assignments: %w", err)
	}
	for _, a := range task.Assignments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_assignments (task_id, user_id, completion_pct) VALUES ($1,$2,$3)`,
			task.ID, a.UserID, a.CompletionPct); err != nil {
			return fmt.Errorf("insert task assignment user=%d: %w", a.UserID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_specific_days WHERE task_id=$1`, task.ID); err != nil {
		return fmt.Errorf("clear specific days: %w", err)
	}
	if task.UsesSpecificDays {
		for _, d := range task.SpecificDays {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO task_specific_days (task_id, day) VALUES ($1,$2)`,
				task.ID, d); err != nil {
				return fmt.Errorf("insert specific day %s: %w", d.Format("2006-01-02"), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit task save: %w", err)
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadChildren(ctx, []*models.Task{task}); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindForCalendar(ctx context.Context, scope authz.Scope, actorID int64, filter models.TaskFilter, win schedule.Window) ([]models.Task, error) {
	conds, args, _ := taskConditions(scope, actorID, filter, win, 1)
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY start_date, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	refs := make([]*models.Task, len(tasks))
	for i := range tasks {
		refs[i] = &tasks[i]
	}
	if err := r.loadChildren(ctx, refs); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin task delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_assignments WHERE task_id=$1`, id); err != nil {
		return fmt.Errorf("delete task assignments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_specific_days WHERE task_id=$1`, id); err != nil {
		return fmt.Errorf("delete specific days: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return tx.Commit()
}

// loadChildren attaches assignments and specific days to the given tasks in
// two batched queries.
func (r *taskRepository) loadChildren(ctx context.Context, tasks []*models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	byID := make(map[int64]*models.Task, len(tasks))
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, user_id, completion_pct FROM task_assignments WHERE task_id = ANY($1) ORDER BY id`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a models.TaskAssignment
		if err := rows.Scan(&a.TaskID, &a.UserID, &a.CompletionPct); err != nil {
			return err
		}
		if t := byID[a.TaskID]; t != nil {
			t.Assignments = append(t.Assignments, a)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	dayRows, err := r.db.QueryContext(ctx,
		`SELECT task_id, day FROM task_specific_days WHERE task_id = ANY($1) ORDER BY day`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var taskID int64
		var day time.Time
		if err := dayRows.Scan(&taskID, &day); err != nil {
			return err
		}
		if t := byID[taskID]; t != nil {
			t.SpecificDays = append(t.SpecificDays, day)
		}
	}
	return dayRows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	t := &models.Task{}
	var product, customProduct sql.NullString
	err := row.Scan(
		&t.ID, &t.Activity, &t.PlannedDays, &t.DailyCost, &t.CompanyID, &t.Location,
		&product, &customProduct, &t.StartDate, &t.EndDate, &t.Notes, &t.CreatorID,
		&t.UsesSpecificDays, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Product = models.ProductCode(product.String)
	t.CustomProduct = customProduct.String
	return t, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
