package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/content-factory/internal/models"
)

const checklistColumns = `id, account_uid, title, is_done, is_for_today, position, badge`

func scanChecklistItem(row rowScanner) (*models.ChecklistItem, error) {
	item := &models.ChecklistItem{}
	var badge sql.NullString
	if err := row.Scan(&item.ID, &item.AccountUID, &item.Title, &item.IsDone,
		&item.IsForToday, &item.Position, &badge); err != nil {
		return nil, err
	}
	if badge.Valid {
		item.Badge = badge.String
	}
	return item, nil
}

// CreateChecklistItem вставляет новый пункт чек-листа и возвращает его ID.
func (s *Storage) CreateChecklistItem(ctx context.Context, item models.ChecklistItem) (int, error) {
	const op = "storage.CreateChecklistItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var badge *string
	if item.Badge != "" {
		badge = &item.Badge
	}
	query := `INSERT INTO checklist_items (account_uid, title, is_done, is_for_today, position, badge)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		item.AccountUID, item.Title, item.IsDone, item.IsForToday, item.Position, badge).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetChecklistItem возвращает пункт по его ID.
func (s *Storage) GetChecklistItem(ctx context.Context, id int) (*models.ChecklistItem, error) {
	const op = "storage.GetChecklistItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + checklistColumns + `
			  FROM checklist_items
			  WHERE id = $1`
	item, err := scanChecklistItem(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// MinChecklistPosition возвращает минимальную позицию в активном разделе
// (аккаунт, корзина, невыполненные). Второе значение false означает, что
// раздел пуст.
func (s *Storage) MinChecklistPosition(ctx context.Context, accountUID string, isForToday bool) (int, bool, error) {
	const op = "storage.MinChecklistPosition"
	select {
	case <-ctx.Done():
		return 0, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT MIN(position)
			  FROM checklist_items
			  WHERE account_uid = $1
			    AND is_for_today = $2
			    AND is_done = FALSE`
	var minPos sql.NullInt64
	if err := s.DB.QueryRowContext(ctx, query, accountUID, isForToday).Scan(&minPos); err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	if !minPos.Valid {
		return 0, false, nil
	}
	return int(minPos.Int64), true, nil
}

// AdjacentChecklistItem возвращает соседний пункт в том же активном разделе:
// при up — ближайший с меньшей позицией, при down — с большей.
// Отсутствие соседа (граница списка) — не ошибка, возвращается nil.
func (s *Storage) AdjacentChecklistItem(ctx context.Context, item *models.ChecklistItem, up bool) (*models.ChecklistItem, error) {
	const op = "storage.AdjacentChecklistItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + checklistColumns + `
			  FROM checklist_items
			  WHERE account_uid = $1
			    AND is_for_today = $2
			    AND is_done = FALSE
			    AND position < $3
			  ORDER BY position DESC
			  LIMIT 1`
	if !up {
		query = `SELECT ` + checklistColumns + `
			  FROM checklist_items
			  WHERE account_uid = $1
			    AND is_for_today = $2
			    AND is_done = FALSE
			    AND position > $3
			  ORDER BY position ASC
			  LIMIT 1`
	}
	neighbor, err := scanChecklistItem(s.DB.QueryRowContext(ctx, query,
		item.AccountUID, item.IsForToday, item.Position))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return neighbor, nil
}

// SwapChecklistPositions меняет местами позиции двух пунктов одним запросом.
// Перестановка касается ровно двух строк, список не перенумеровывается.
func (s *Storage) SwapChecklistPositions(ctx context.Context, first, second *models.ChecklistItem) error {
	const op = "storage.SwapChecklistPositions"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE checklist_items
			  SET position = CASE id
			      WHEN $1 THEN $4::INT
			      WHEN $2 THEN $3::INT
			  END
			  WHERE id IN ($1, $2)`
	_, err := s.DB.ExecContext(ctx, query, first.ID, second.ID, first.Position, second.Position)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ToggleChecklistDone инвертирует флаг выполнения, не трогая позицию.
func (s *Storage) ToggleChecklistDone(ctx context.Context, id int) (int, error) {
	const op = "storage.ToggleChecklistDone"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE checklist_items
			  SET is_done = NOT is_done
			  WHERE id = $1`
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

// FlipChecklistBucket переносит пункт между корзинами «на сегодня» и «позже»,
// сохраняя значение позиции.
func (s *Storage) FlipChecklistBucket(ctx context.Context, id int) (int, error) {
	const op = "storage.FlipChecklistBucket"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE checklist_items
			  SET is_for_today = NOT is_for_today
			  WHERE id = $1`
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

// UpdateChecklistTitle обновляет текст пункта.
func (s *Storage) UpdateChecklistTitle(ctx context.Context, id int, title string) (int, error) {
	const op = "storage.UpdateChecklistTitle"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE checklist_items
			  SET title = $1
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, title, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveChecklistItem удаляет пункт по ID.
func (s *Storage) RemoveChecklistItem(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveChecklistItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM checklist_items WHERE id = $1`
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

// ListChecklistActive возвращает невыполненные пункты корзины по возрастанию позиции.
func (s *Storage) ListChecklistActive(ctx context.Context, accountUID string, isForToday bool) ([]*models.ChecklistItem, error) {
	const op = "storage.ListChecklistActive"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + checklistColumns + `
			  FROM checklist_items
			  WHERE account_uid = $1
			    AND is_for_today = $2
			    AND is_done = FALSE
			  ORDER BY position`
	rows, err := s.DB.QueryContext(ctx, query, accountUID, isForToday)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ChecklistItem
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListChecklistArchive возвращает выполненные пункты аккаунта в обратном
// хронологическом порядке по ID.
func (s *Storage) ListChecklistArchive(ctx context.Context, accountUID string) ([]*models.ChecklistItem, error) {
	const op = "storage.ListChecklistArchive"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + checklistColumns + `
			  FROM checklist_items
			  WHERE account_uid = $1
			    AND is_done = TRUE
			  ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query, accountUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ChecklistItem
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
