// Package account содержит бизнес-логику выпуска и обслуживания аккаунтов.
// Регистрации через приложение нет: аккаунты создаёт администратор,
// клиент получает ключ доступа вне системы.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/content-factory/internal/lib/accesskey"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Лимиты новых аккаунтов по умолчанию и длительность пробного периода.
const (
	DefaultStoryLimit  = 3
	DefaultVoiceLimit  = 3
	DefaultSeriesLimit = 1
	TrialDays          = 7
)

// Repository определяет методы хранилища, нужные для обслуживания аккаунтов.
type Repository interface {
	// CreateAccount сохраняет новый аккаунт и возвращает его UID.
	CreateAccount(ctx context.Context, a models.Account) (string, error)
	// GetAccount возвращает аккаунт по UID.
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	// ListAccounts возвращает аккаунты с пагинацией.
	ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error)
	// UpdateLimits изменяет лимиты аккаунта.
	UpdateLimits(ctx context.Context, uid string, req models.DummyLimits) (int, error)
	// RemoveAccount удаляет аккаунт.
	RemoveAccount(ctx context.Context, uid string) (int, error)
	// CreateActivityEntry добавляет запись журнала активности.
	CreateActivityEntry(ctx context.Context, accountUID, accountName, action string) error
}

// Service реализует операции обслуживания аккаунтов.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Create выпускает новый аккаунт: генерирует ключ доступа, назначает
// лимиты по умолчанию и пробную подписку. Возвращает UID и ключ доступа,
// ключ показывается администратору ровно один раз.
func (s *Service) Create(ctx context.Context, req models.DummyAccount) (string, string, error) {
	const op = "account.Create"

	trialExpiry := s.now().AddDate(0, 0, TrialDays)
	account := models.Account{
		Name:               req.Name,
		Role:               req.Role,
		Permissions:        req.Permissions,
		VIP:                req.VIP,
		SubscriptionExpiry: &trialExpiry,
		StoryLimit:         DefaultStoryLimit,
		VoiceLimit:         DefaultVoiceLimit,
		SeriesLimit:        DefaultSeriesLimit,
		About:              req.About,
	}

	// Ключ случайный, коллизия с существующим практически невозможна,
	// но уникальное ограничение базы её отловит. Одна повторная попытка
	// с новым ключом снимает вопрос.
	var uid string
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		account.AccessKey = accesskey.New()
		uid, err = s.repo.CreateAccount(ctx, account)
		if err == nil {
			break
		}
		if !errors.Is(err, models.ErrConflict) {
			return "", "", fmt.Errorf("%s: %w", op, err)
		}
		s.log.Warn("access key collision, regenerating", sl.Err(err))
	}
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("account created",
		slog.String("uid", uid),
		slog.String("role", account.Role))
	return uid, account.AccessKey, nil
}

// Get возвращает аккаунт по UID.
func (s *Service) Get(ctx context.Context, uid string) (*models.Account, error) {
	const op = "account.Get"
	account, err := s.repo.GetAccount(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}

// List возвращает аккаунты с пагинацией.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	const op = "account.List"
	accounts, err := s.repo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return accounts, nil
}

// UpdateLimits изменяет лимиты аккаунта. Текущие счётчики расхода не
// трогаются: новый лимит начинает действовать со следующего запроса.
func (s *Service) UpdateLimits(ctx context.Context, uid string, req models.DummyLimits) error {
	const op = "account.UpdateLimits"
	count, err := s.repo.UpdateLimits(ctx, uid, req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}

// Remove удаляет аккаунт. Задачи с его участием остаются с висящей
// ссылкой на монтажёра, журнал активности сохраняет имя.
func (s *Service) Remove(ctx context.Context, uid string) error {
	const op = "account.Remove"
	count, err := s.repo.RemoveAccount(ctx, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}
