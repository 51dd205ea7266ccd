package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/content-factory/internal/models"
)

const accountColumns = `uid, name, role, permissions, vip, access_key, subscription_expiry,
		story_requests, story_limit, voice_requests, voice_limit,
		series_requests, series_limit, last_daily_reset, last_weekly_reset,
		about, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	a := &models.Account{}
	var permissions string
	var expiry sql.NullTime
	if err := row.Scan(&a.UID, &a.Name, &a.Role, &permissions, &a.VIP, &a.AccessKey,
		&expiry, &a.StoryRequests, &a.StoryLimit, &a.VoiceRequests, &a.VoiceLimit,
		&a.SeriesRequests, &a.SeriesLimit, &a.LastDailyReset, &a.LastWeeklyReset,
		&a.About, &a.CreatedAt); err != nil {
		return nil, err
	}
	if expiry.Valid {
		a.SubscriptionExpiry = &expiry.Time
	}
	if permissions != "" {
		a.Permissions = strings.Split(permissions, ",")
	}
	return a, nil
}

// CreateAccount сохраняет новый аккаунт и возвращает его UID.
// Дубликат ключа доступа превращается в models.ErrConflict.
func (s *Storage) CreateAccount(ctx context.Context, a models.Account) (string, error) {
	const op = "storage.CreateAccount"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO accounts (name, role, permissions, vip, access_key,
			      subscription_expiry, story_limit, voice_limit, series_limit, about)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING uid`
	var newUID string
	err := s.DB.QueryRowContext(ctx, query,
		a.Name, a.Role, strings.Join(a.Permissions, ","), a.VIP, a.AccessKey,
		a.SubscriptionExpiry, a.StoryLimit, a.VoiceLimit, a.SeriesLimit, a.About).Scan(&newUID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf("%s: %w", op, models.ErrConflict)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// FindAccountByAccessKey ищет ровно один аккаунт по ключу доступа.
// Ноль строк — models.ErrNotFound, больше одной — models.ErrAmbiguous
// (при уникальном ограничении на access_key не встречается, проверка
// оставлена на случай ручных правок базы).
func (s *Storage) FindAccountByAccessKey(ctx context.Context, accessKey string) (*models.Account, error) {
	const op = "storage.FindAccountByAccessKey"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE access_key = $1
			  LIMIT 2`
	rows, err := s.DB.QueryContext(ctx, query, accessKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch len(result) {
	case 0:
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	case 1:
		return result[0], nil
	default:
		return nil, fmt.Errorf("%s: %w", op, models.ErrAmbiguous)
	}
}

// GetAccount возвращает аккаунт по его UID.
func (s *Storage) GetAccount(ctx context.Context, uid string) (*models.Account, error) {
	const op = "storage.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  WHERE uid = $1`
	a, err := scanAccount(s.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ListAccounts возвращает список аккаунтов с пагинацией.
func (s *Storage) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	const op = "storage.ListAccounts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + accountColumns + `
			  FROM accounts
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateResets применяет ленивые сбросы счётчиков: обнулённые значения
// и сдвинутые отметки сохраняются одним запросом.
func (s *Storage) UpdateResets(ctx context.Context, a *models.Account) error {
	const op = "storage.UpdateResets"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET story_requests = $1, voice_requests = $2, series_requests = $3,
			      last_daily_reset = $4, last_weekly_reset = $5
			  WHERE uid = $6`
	_, err := s.DB.ExecContext(ctx, query,
		a.StoryRequests, a.VoiceRequests, a.SeriesRequests,
		a.LastDailyReset, a.LastWeeklyReset, a.UID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateLimits обновляет лимиты аккаунта и возвращает количество изменённых строк.
func (s *Storage) UpdateLimits(ctx context.Context, uid string, req models.DummyLimits) (int, error) {
	const op = "storage.UpdateLimits"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET story_limit = $1, voice_limit = $2, series_limit = $3
			  WHERE uid = $4`
	result, err := s.DB.ExecContext(ctx, query, req.StoryLimit, req.VoiceLimit, req.SeriesLimit, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// IncrementCounter атомарно увеличивает счётчик ресурса на стороне базы
// и возвращает новое значение вместе с лимитом. Инкремент выполняется
// одним UPDATE: два одновременных запроса одного аккаунта не могут
// потерять друг друга.
func (s *Storage) IncrementCounter(ctx context.Context, uid, counterColumn, limitColumn string) (int, int, error) {
	const op = "storage.IncrementCounter"
	select {
	case <-ctx.Done():
		return 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := fmt.Sprintf(`UPDATE accounts
			  SET %[1]s = %[1]s + 1
			  WHERE uid = $1
			  RETURNING %[1]s, %[2]s`, counterColumn, limitColumn)
	var current, limit int
	if err := s.DB.QueryRowContext(ctx, query, uid).Scan(&current, &limit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return current, limit, nil
}

// UpdateExpiry устанавливает новую дату истечения подписки.
func (s *Storage) UpdateExpiry(ctx context.Context, uid string, newExpiry time.Time) error {
	const op = "storage.UpdateExpiry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET subscription_expiry = $1
			  WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, newExpiry, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveAccount удаляет аккаунт и возвращает количество удалённых строк.
// Принадлежащие аккаунту чек-листы, идеи и история продлений удаляются
// каскадом; задачи монтажа остаются с висящей ссылкой на монтажёра.
func (s *Storage) RemoveAccount(ctx context.Context, uid string) (int, error) {
	const op = "storage.RemoveAccount"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM accounts WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
