package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/staffhub/workforce-backend-go/internal/domain/notification"
	"github.com/staffhub/workforce-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create implements notification.Repository.
func (r *notificationRepository) Create(ctx context.Context, event notification.Event) (notification.Event, error) {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return notification.Event{}, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `
		INSERT INTO events (id, type, employee_id, actor_id, subject_id, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	event.ID = uuid.NewString()
	err = q.QueryRow(ctx, query,
		event.ID, event.Type, event.EmployeeID, event.ActorID, event.SubjectID, payload,
	).Scan(&event.CreatedAt)

	if err != nil {
		return notification.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// ListByEmployee implements notification.Repository.
func (r *notificationRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]notification.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, type, employee_id, actor_id, subject_id, payload, created_at
		FROM events
		WHERE employee_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []notification.Event
	for rows.Next() {
		var event notification.Event
		var payload []byte
		if err := rows.Scan(
			&event.ID, &event.Type, &event.EmployeeID, &event.ActorID, &event.SubjectID,
			&payload, &event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &event.Payload); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event payload: %w", err)
			}
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}
