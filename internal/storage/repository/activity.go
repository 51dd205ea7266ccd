package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/content-factory/internal/models"
)

// CreateActivityEntry добавляет запись журнала активности. Имя аккаунта
// денормализуется в момент записи.
func (s *Storage) CreateActivityEntry(ctx context.Context, accountUID, accountName, action string) error {
	const op = "storage.CreateActivityEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO activity_log (account_uid, account_name, action)
			  VALUES ($1, $2, $3)`
	_, err := s.DB.ExecContext(ctx, query, accountUID, accountName, action)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListActivity возвращает записи журнала от новых к старым с пагинацией.
func (s *Storage) ListActivity(ctx context.Context, limit, offset int) ([]*models.ActivityEntry, error) {
	const op = "storage.ListActivity"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_uid, account_name, action, created_at
			  FROM activity_log
			  ORDER BY id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ActivityEntry
	for rows.Next() {
		var entry models.ActivityEntry
		if err := rows.Scan(&entry.ID, &entry.AccountUID, &entry.AccountName,
			&entry.Action, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountActivityAfter подсчитывает записи журнала, созданные после отметки
// просмотра. Используется счётчиком свежих событий для администраторов.
func (s *Storage) CountActivityAfter(ctx context.Context, after time.Time) (int, error) {
	const op = "storage.CountActivityAfter"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*)
			  FROM activity_log
			  WHERE created_at > $1`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, after).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
