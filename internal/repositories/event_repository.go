package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/HariSeldon343/NexioSolution-sub000/internal/authz"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/models"
	"github.com/HariSeldon343/NexioSolution-sub000/internal/schedule"
)

type EventRepository interface {
	// Save upserts the event row and replaces its participant links (all
	// recreated as "invited") in one transaction.
	Save(ctx context.Context, event *models.Event, participantIDs []int64) error
	FindByID(ctx context.Context, id int64) (*models.Event, error)
	FindForCalendar(ctx context.Context, scope authz.Scope, actorID int64, filter models.EventFilter, win schedule.Window) ([]models.Event, error)
	Delete(ctx context.Context, id int64) error
}

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `id, title, description, start_at, end_at, location, category,
       company_id, creator_id, created_at, updated_at`

func (r *eventRepository) Save(ctx context.Context, event *models.Event, participantIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin event save: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	if event.ID == 0 {
		event.CreatedAt = now
		err = tx.QueryRowContext(ctx, `
			INSERT INTO events (title, description, start_at, end_at, location,
				category, company_id, creator_id, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			RETURNING id`,
			event.Title, event.Description, event.StartAt, event.EndAt, event.Location,
			event.Category, event.CompanyID, event.CreatorID, event.CreatedAt, now,
		).Scan(&event.ID)
	} else {
		_, err = tx.ExecContext(ctx, `
			UPDATE events SET title=$1, description=$2, start_at=$3, end_at=$4,
				location=$5, category=$6, company_id=$7, updated_at=$8
			WHERE id=$9`,
			event.Title, event.Description, event.StartAt, event.EndAt,
			event.Location, event.Category, event.CompanyID, now, event.ID,
		)
	}
	if err != nil {
		return fmt.Errorf("save event row: %w", err)
	}
	event.UpdatedAt = now

	// Participants are replace-all: everyone comes back as invited.
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_participants WHERE event_id=$1`, event.ID); err != nil {
		return fmt.Errorf("clear participants: %w", err)
	}
	event.Participants = event.Participants[:0]
	for _, userID := range participantIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_participants (event_id, user_id, status) VALUES ($1,$2,$3)`,
			event.ID, userID, models.ParticipantInvited); err != nil {
			return fmt.Errorf("insert participant user=%d: %w", userID, err)
		}
		event.Participants = append(event.Participants, models.Participant{
			EventID: event.ID, UserID: userID, Status: models.ParticipantInvited,
		})
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit event save: %w", err)
	}
	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id int64) (*models.Event, error) {
	e := &models.Event{}
	err := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id=$1`, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.StartAt, &e.EndAt, &e.Location,
		&e.Category, &e.CompanyID, &e.CreatorID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	parts, err := r.participants(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Participants = parts
	return e, nil
}

func (r *eventRepository) FindForCalendar(ctx context.Context, scope authz.Scope, actorID int64, filter models.EventFilter, win schedule.Window) ([]models.Event, error) {
	conds, args, _ := eventConditions(scope, actorID, filter, win, 1)
	query := `SELECT ` + eventColumns + ` FROM events WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY start_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.StartAt, &e.EndAt, &e.Location,
			&e.Category, &e.CompanyID, &e.CreatorID, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin event delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM event_participants WHERE event_id=$1`, id); err != nil {
		return fmt.Errorf("delete participants: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return tx.Commit()
}

func (r *eventRepository) participants(ctx context.Context, eventID int64) ([]models.Participant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT event_id, user_id, status FROM event_participants WHERE event_id=$1 ORDER BY id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.EventID, &p.UserID, &p.Status); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
