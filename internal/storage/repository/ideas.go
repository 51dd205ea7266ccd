package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/content-factory/internal/models"
)

// CreateIdea сохраняет предложенную пользователем идею и возвращает её ID.
func (s *Storage) CreateIdea(ctx context.Context, accountUID, content string) (int, error) {
	const op = "storage.CreateIdea"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO ideas (account_uid, content)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, accountUID, content).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListIdeas возвращает идеи от новых к старым с пагинацией.
func (s *Storage) ListIdeas(ctx context.Context, limit, offset int) ([]*models.Idea, error) {
	const op = "storage.ListIdeas"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_uid, content, created_at
			  FROM ideas
			  ORDER BY id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Idea
	for rows.Next() {
		var idea models.Idea
		if err := rows.Scan(&idea.ID, &idea.AccountUID, &idea.Content, &idea.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &idea)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountIdeas возвращает общее количество идей. Идеи «закрываются» удалением,
// а не просмотром, поэтому счётчик не использует отметки.
func (s *Storage) CountIdeas(ctx context.Context) (int, error) {
	const op = "storage.CountIdeas"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM ideas`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// RemoveIdea удаляет идею по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveIdea(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveIdea"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM ideas WHERE id = $1`
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
