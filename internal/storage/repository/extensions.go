package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/content-factory/internal/models"
)

// CreateExtensionEntry добавляет неизменяемую запись истории продлений.
func (s *Storage) CreateExtensionEntry(ctx context.Context, accountUID string, daysAdded int, newExpiry time.Time) (int, error) {
	const op = "storage.CreateExtensionEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO extension_history (account_uid, days_added, new_expiry)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, accountUID, daysAdded, newExpiry).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListExtensions возвращает историю продлений аккаунта от новых к старым.
func (s *Storage) ListExtensions(ctx context.Context, accountUID string) ([]*models.ExtensionEntry, error) {
	const op = "storage.ListExtensions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_uid, days_added, new_expiry, created_at
			  FROM extension_history
			  WHERE account_uid = $1
			  ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query, accountUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExtensionEntry
	for rows.Next() {
		var entry models.ExtensionEntry
		if err := rows.Scan(&entry.ID, &entry.AccountUID, &entry.DaysAdded,
			&entry.NewExpiry, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
