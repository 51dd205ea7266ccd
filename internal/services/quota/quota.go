// Package quota содержит бизнес-логику расхода квотных ресурсов.
//
// Проверка «лимит ещё не исчерпан» остаётся на вызывающей стороне,
// чтобы клиент мог показать «лимит достигнут» без обращения к серверу.
// Сам инкремент выполняется атомарно на стороне базы данных: два
// одновременных запроса одного аккаунта не теряют друг друга.
package quota

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Имена квотных ресурсов.
const (
	ResourceStory  = "story"  // Сценарий, суточный лимит
	ResourceVoice  = "voice"  // Озвучка, суточный лимит
	ResourceSeries = "series" // Серия, недельный лимит
	ResourceIdea   = "idea"   // Идея, без лимита: только запись в журнал
)

// resource описывает квотный ресурс: колонки счётчика и лимита
// (пустые для неквотируемых ресурсов) и подпись для журнала.
type resource struct {
	counterColumn string
	limitColumn   string
	label         string
}

var resources = map[string]resource{
	ResourceStory:  {counterColumn: "story_requests", limitColumn: "story_limit", label: "сценарий"},
	ResourceVoice:  {counterColumn: "voice_requests", limitColumn: "voice_limit", label: "озвучку"},
	ResourceSeries: {counterColumn: "series_requests", limitColumn: "series_limit", label: "серию"},
	ResourceIdea:   {label: "идею"},
}

// Repository определяет методы хранилища, нужные для расхода квоты.
type Repository interface {
	// GetAccount возвращает аккаунт по UID.
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	// IncrementCounter атомарно увеличивает счётчик и возвращает новое значение и лимит.
	IncrementCounter(ctx context.Context, uid, counterColumn, limitColumn string) (int, int, error)
	// CreateActivityEntry добавляет запись журнала активности.
	CreateActivityEntry(ctx context.Context, accountUID, accountName, action string) error
}

// Service реализует расход квотных ресурсов.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Consume списывает единицу ресурса с аккаунта и возвращает новое значение
// счётчика вместе с лимитом. Запись в журнал — best-effort: её сбой
// логируется и никогда не проваливает основное действие.
func (s *Service) Consume(ctx context.Context, accountUID, resourceName string) (int, int, error) {
	const op = "quota.Consume"

	res, ok := resources[resourceName]
	if !ok {
		return 0, 0, fmt.Errorf("%s: unknown resource %q: %w", op, resourceName, models.ErrValidation)
	}

	account, err := s.repo.GetAccount(ctx, accountUID)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	// Неквотируемый ресурс: счётчика нет, остаётся только журнал.
	if res.counterColumn == "" {
		s.logActivity(ctx, account, fmt.Sprintf("использовал %s", res.label))
		return 0, 0, nil
	}

	current, limit, err := s.repo.IncrementCounter(ctx, accountUID, res.counterColumn, res.limitColumn)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", op, err)
	}

	s.logActivity(ctx, account, fmt.Sprintf("использовал %s (%d/%d)", res.label, current, limit))
	return current, limit, nil
}

func (s *Service) logActivity(ctx context.Context, account *models.Account, action string) {
	if err := s.repo.CreateActivityEntry(ctx, account.UID, account.Name, action); err != nil {
		s.log.Warn("failed to log consumption", slog.String("account_uid", account.UID), sl.Err(err))
	}
}
