// Package subscription содержит бизнес-логику состояния подписки:
// расчёт остатка, продление и неизменяемую историю продлений.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Repository определяет методы хранилища, нужные для работы с подпиской.
type Repository interface {
	// GetAccount возвращает аккаунт по UID.
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	// UpdateExpiry устанавливает новую дату истечения подписки.
	UpdateExpiry(ctx context.Context, uid string, newExpiry time.Time) error
	// CreateExtensionEntry добавляет запись истории продлений.
	CreateExtensionEntry(ctx context.Context, accountUID string, daysAdded int, newExpiry time.Time) (int, error)
	// ListExtensions возвращает историю продлений аккаунта.
	ListExtensions(ctx context.Context, accountUID string) ([]*models.ExtensionEntry, error)
}

// Service реализует продление подписки и расчёт её состояния.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Extend продлевает подписку аккаунта на days дней и добавляет запись
// в историю. Отсчёт идёт от максимума из «сейчас» и текущей даты
// истечения: продление никогда не уменьшает срок.
func (s *Service) Extend(ctx context.Context, accountUID string, days int) (time.Time, error) {
	const op = "subscription.Extend"

	if days <= 0 {
		return time.Time{}, fmt.Errorf("%s: days must be positive: %w", op, models.ErrValidation)
	}

	account, err := s.repo.GetAccount(ctx, accountUID)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	base := now
	if account.SubscriptionExpiry != nil && account.SubscriptionExpiry.After(now) {
		base = *account.SubscriptionExpiry
	}
	newExpiry := base.AddDate(0, 0, days)

	if err := s.repo.UpdateExpiry(ctx, accountUID, newExpiry); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.repo.CreateExtensionEntry(ctx, accountUID, days, newExpiry); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("subscription extended",
		slog.String("account_uid", accountUID),
		slog.Int("days", days),
		slog.Time("new_expiry", newExpiry))
	return newExpiry, nil
}

// History возвращает историю продлений аккаунта от новых к старым.
func (s *Service) History(ctx context.Context, accountUID string) ([]*models.ExtensionEntry, error) {
	const op = "subscription.History"
	entries, err := s.repo.ListExtensions(ctx, accountUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// Remaining возвращает количество полных дней до истечения подписки
// и признак того, что подписка уже истекла (или не оплачивалась вовсе).
func Remaining(account *models.Account, now time.Time) (int, bool) {
	if account.SubscriptionExpiry == nil || account.SubscriptionExpiry.Before(now) {
		return 0, true
	}
	return int(account.SubscriptionExpiry.Sub(now) / (24 * time.Hour)), false
}
