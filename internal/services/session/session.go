// Package session содержит бизнес-логику допуска в сервис: разрешение
// ключа доступа или восстановленной сессии в аккаунт, проверку подписки
// и ленивые сбросы квотных счётчиков.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/content-factory/internal/lib/jwt"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/lib/window"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// AccountRepository определяет методы хранилища, нужные для допуска.
type AccountRepository interface {
	// FindAccountByAccessKey ищет ровно один аккаунт по ключу доступа.
	FindAccountByAccessKey(ctx context.Context, accessKey string) (*models.Account, error)
	// GetAccount возвращает аккаунт по UID.
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	// UpdateResets сохраняет обнулённые счётчики и новые отметки сбросов.
	UpdateResets(ctx context.Context, a *models.Account) error
	// CreateActivityEntry добавляет запись журнала активности.
	CreateActivityEntry(ctx context.Context, accountUID, accountName, action string) error
}

// Result — итог разрешения сессии. Expired — нормальный терминальный
// исход, а не ошибка: аккаунт возвращается, чтобы клиент показал
// уведомление об истёкшей подписке, но сбросы и журнал не выполняются.
type Result struct {
	Account *models.Account
	Expired bool
	Token   string // Сессионный токен, выдаётся только при свежем входе
}

// Service реализует допуск в сервис.
type Service struct {
	repo   AccountRepository
	tokens jwt.Maker
	log    *slog.Logger
	now    func() time.Time
}

// New создает новый экземпляр Service.
func New(repo AccountRepository, tokens jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
}

// Resolve разрешает предъявленный ключ доступа (свежий вход) или
// сессионный токен (восстановление) в аккаунт.
//
// Порядок: поиск аккаунта, проверка подписки, ленивые сбросы, запись
// в журнал. Ошибка сохранения сбросов логируется и не блокирует ответ:
// аккаунт возвращается уже обнулённым в памяти, следующее разрешение
// повторит сброс.
func (s *Service) Resolve(ctx context.Context, credential string, restored bool) (*Result, error) {
	const op = "session.Resolve"

	account, err := s.lookup(ctx, credential, restored)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	if !account.IsAdmin() && (account.SubscriptionExpiry == nil || account.SubscriptionExpiry.Before(now)) {
		s.log.Info("subscription expired", slog.String("account_uid", account.UID))
		return &Result{Account: account, Expired: true}, nil
	}

	changed := false
	if window.IsNewDay(account.LastDailyReset, now) {
		account.StoryRequests = 0
		account.VoiceRequests = 0
		account.LastDailyReset = now
		changed = true
	}
	if window.WeeksElapsed(account.LastWeeklyReset, now) > 0 {
		account.SeriesRequests = 0
		account.LastWeeklyReset = window.NextWeeklyReset(account.LastWeeklyReset, now)
		changed = true
	}
	if changed {
		if err := s.repo.UpdateResets(ctx, account); err != nil {
			s.log.Warn("failed to persist quota reset, will retry on next resolve",
				slog.String("account_uid", account.UID), sl.Err(err))
		}
	}

	if !restored && !account.IsAdmin() {
		if err := s.repo.CreateActivityEntry(ctx, account.UID, account.Name, "вошёл в приложение"); err != nil {
			s.log.Warn("failed to log login activity", sl.Err(err))
		}
	}

	result := &Result{Account: account}
	if !restored {
		token, err := s.tokens.GenerateToken(account.UID, account.Role)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result.Token = token
	}
	return result, nil
}

func (s *Service) lookup(ctx context.Context, credential string, restored bool) (*models.Account, error) {
	if !restored {
		return s.repo.FindAccountByAccessKey(ctx, credential)
	}
	claims, err := s.tokens.ParseToken(credential)
	if err != nil {
		// Невалидный или протухший токен — сессия отсутствует.
		return nil, models.ErrNotFound
	}
	return s.repo.GetAccount(ctx, claims.AccountUID)
}
