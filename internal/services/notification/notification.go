// Package notification содержит логику свежести уведомлений: подсчёт
// непросмотренного в трёх категориях и отметку «просмотрено».
//
// Категории scenarios и activity считаются относительно отметки
// последнего просмотра: хранится только момент времени, сами события
// не помечаются. Категория ideas отметки не имеет и всегда возвращает
// общее количество идей.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Категории уведомлений.
const (
	CategoryScenarios = "scenarios" // Задачи клиента, появившиеся после просмотра
	CategoryActivity  = "activity"  // Журнал активности, общая отметка администраторов
	CategoryIdeas     = "ideas"     // Идеи, без отметки: всегда общее количество
)

// MarkerStore определяет хранилище отметок последнего просмотра.
type MarkerStore interface {
	// Get возвращает отметку области, false — область ещё не просматривалась.
	Get(ctx context.Context, scope string) (time.Time, bool, error)
	// Set записывает отметку области.
	Set(ctx context.Context, scope string, seen time.Time) error
}

// Repository определяет методы хранилища, нужные для подсчёта непросмотренного.
type Repository interface {
	// GetAccount возвращает аккаунт по UID.
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	// CountTasksForClientAfter считает задачи клиента, созданные после момента.
	CountTasksForClientAfter(ctx context.Context, clientLabel string, after time.Time) (int, error)
	// CountActivityAfter считает записи журнала после момента.
	CountActivityAfter(ctx context.Context, after time.Time) (int, error)
	// CountIdeas возвращает общее количество идей.
	CountIdeas(ctx context.Context) (int, error)
}

// Service реализует подсчёт непросмотренных уведомлений.
type Service struct {
	repo    Repository
	markers MarkerStore
	log     *slog.Logger
	now     func() time.Time
}

// New создает новый экземпляр Service.
func New(repo Repository, markers MarkerStore, log *slog.Logger) *Service {
	return &Service{repo: repo, markers: markers, log: log, now: time.Now}
}

// Unseen возвращает количество непросмотренных событий категории для
// аккаунта. Отсутствие отметки означает, что непросмотрено всё.
func (s *Service) Unseen(ctx context.Context, accountUID, category string) (int, error) {
	const op = "notification.Unseen"

	switch category {
	case CategoryScenarios:
		account, err := s.repo.GetAccount(ctx, accountUID)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		since, err := s.markerTime(ctx, scope(category, accountUID))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		count, err := s.repo.CountTasksForClientAfter(ctx, account.Name, since)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		return count, nil

	case CategoryActivity:
		since, err := s.markerTime(ctx, scope(category, accountUID))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		count, err := s.repo.CountActivityAfter(ctx, since)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		return count, nil

	case CategoryIdeas:
		count, err := s.repo.CountIdeas(ctx)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		return count, nil

	default:
		return 0, fmt.Errorf("%s: unknown category %q: %w", op, category, models.ErrValidation)
	}
}

// MarkSeen сдвигает отметку категории на «сейчас». Операция идемпотентна:
// повторный вызов лишь обновляет момент. Для категории ideas отметки нет,
// вызов ничего не делает.
func (s *Service) MarkSeen(ctx context.Context, accountUID, category string) error {
	const op = "notification.MarkSeen"

	switch category {
	case CategoryScenarios, CategoryActivity:
		if err := s.markers.Set(ctx, scope(category, accountUID), s.now()); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	case CategoryIdeas:
		return nil
	default:
		return fmt.Errorf("%s: unknown category %q: %w", op, category, models.ErrValidation)
	}
}

func (s *Service) markerTime(ctx context.Context, scope string) (time.Time, error) {
	seen, found, err := s.markers.Get(ctx, scope)
	if err != nil {
		return time.Time{}, err
	}
	if !found {
		return time.Time{}, nil
	}
	return seen, nil
}

// scope собирает ключ области отметки. Журнал активности просматривают
// администраторы сообща, поэтому отметка у категории одна на всех.
func scope(category, accountUID string) string {
	if category == CategoryActivity {
		return "activity:admin"
	}
	return category + ":" + accountUID
}
