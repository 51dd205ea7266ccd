package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/content-factory/internal/models"
)

const taskColumns = `id, client_label, scenario_number, content, status,
		editor_uid, admin_note, editor_note, created_at, updated_at`

func scanTask(row rowScanner) (*models.Task, error) {
	t := &models.Task{}
	var editorUID sql.NullString
	if err := row.Scan(&t.ID, &t.ClientLabel, &t.ScenarioNumber, &t.Content, &t.Status,
		&editorUID, &t.AdminNote, &t.EditorNote, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if editorUID.Valid {
		t.EditorUID = &editorUID.String
	}
	return t, nil
}

// CreateTask вставляет новую задачу монтажа и возвращает её ID.
func (s *Storage) CreateTask(ctx context.Context, t models.Task) (int, error) {
	const op = "storage.CreateTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO editor_tasks (client_label, scenario_number, content, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		t.ClientLabel, t.ScenarioNumber, t.Content, models.StatusPendingAssignment).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetTask возвращает задачу по её ID.
func (s *Storage) GetTask(ctx context.Context, id int) (*models.Task, error) {
	const op = "storage.GetTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + taskColumns + `
			  FROM editor_tasks
			  WHERE id = $1`
	t, err := scanTask(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// UpdateTask сохраняет результат перехода: статус, назначенного монтажёра
// и оба примечания, обновляя updated_at.
func (s *Storage) UpdateTask(ctx context.Context, t *models.Task) (int, error) {
	const op = "storage.UpdateTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE editor_tasks
			  SET status = $1, editor_uid = $2, admin_note = $3, editor_note = $4,
			      updated_at = NOW()
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		t.Status, t.EditorUID, t.AdminNote, t.EditorNote, t.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListTasks возвращает список всех задач с пагинацией.
func (s *Storage) ListTasks(ctx context.Context, limit, offset int) ([]*models.Task, error) {
	const op = "storage.ListTasks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + taskColumns + `
			  FROM editor_tasks
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListTasksByEditor возвращает задачи, назначенные монтажёру, с пагинацией.
func (s *Storage) ListTasksByEditor(ctx context.Context, editorUID string, limit, offset int) ([]*models.Task, error) {
	const op = "storage.ListTasksByEditor"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + taskColumns + `
			  FROM editor_tasks
			  WHERE editor_uid = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, editorUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountTasksForClientAfter подсчитывает задачи клиента, созданные после
// отметки просмотра. Используется счётчиком свежих сценариев.
func (s *Storage) CountTasksForClientAfter(ctx context.Context, clientLabel string, after time.Time) (int, error) {
	const op = "storage.CountTasksForClientAfter"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM editor_tasks
			  WHERE client_label = $1
			    AND created_at > $2`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, clientLabel, after).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// RemoveTask удаляет задачу по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveTask(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM editor_tasks WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
