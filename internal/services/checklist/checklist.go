// Package checklist содержит бизнес-логику личных чек-листов.
//
// Порядок пунктов задаётся полем Position: новый пункт вставляется
// наверх раздела (позиция min-1), перестановка — обмен позициями двух
// соседних строк, а не перенумерация списка.
package checklist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Repository определяет методы хранилища, нужные для работы с чек-листами.
type Repository interface {
	// CreateChecklistItem вставляет новый пункт и возвращает его ID.
	CreateChecklistItem(ctx context.Context, item models.ChecklistItem) (int, error)
	// GetChecklistItem возвращает пункт по ID.
	GetChecklistItem(ctx context.Context, id int) (*models.ChecklistItem, error)
	// MinChecklistPosition возвращает минимальную позицию раздела, false для пустого.
	MinChecklistPosition(ctx context.Context, accountUID string, isForToday bool) (int, bool, error)
	// AdjacentChecklistItem возвращает соседа по разделу, nil на границе.
	AdjacentChecklistItem(ctx context.Context, item *models.ChecklistItem, up bool) (*models.ChecklistItem, error)
	// SwapChecklistPositions меняет местами позиции двух пунктов.
	SwapChecklistPositions(ctx context.Context, first, second *models.ChecklistItem) error
	// ToggleChecklistDone инвертирует флаг выполнения.
	ToggleChecklistDone(ctx context.Context, id int) (int, error)
	// FlipChecklistBucket переносит пункт между корзинами.
	FlipChecklistBucket(ctx context.Context, id int) (int, error)
	// UpdateChecklistTitle обновляет текст пункта.
	UpdateChecklistTitle(ctx context.Context, id int, title string) (int, error)
	// RemoveChecklistItem удаляет пункт.
	RemoveChecklistItem(ctx context.Context, id int) (int, error)
	// ListChecklistActive возвращает невыполненные пункты корзины по порядку.
	ListChecklistActive(ctx context.Context, accountUID string, isForToday bool) ([]*models.ChecklistItem, error)
	// ListChecklistArchive возвращает выполненные пункты аккаунта.
	ListChecklistArchive(ctx context.Context, accountUID string) ([]*models.ChecklistItem, error)
}

// Service реализует операции над чек-листами.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Lists объединяет разделы чек-листа аккаунта для выдачи одним ответом.
type Lists struct {
	Today   []*models.ChecklistItem `json:"today"`
	Later   []*models.ChecklistItem `json:"later"`
	Archive []*models.ChecklistItem `json:"archive"`
}

// Add добавляет пункт каждому аккаунту из targetUIDs; пустой список
// означает самого actorUID. Каждому аккаунту создаётся независимая
// строка наверху его раздела. Строки создаются по очереди: сбой на
// середине оставляет уже созданные пункты на месте, возвращаются ID
// успешно созданных строк вместе с ошибкой.
func (s *Service) Add(ctx context.Context, actorUID string, req models.DummyChecklistAdd) ([]int, error) {
	const op = "checklist.Add"

	targets := req.TargetUIDs
	if len(targets) == 0 {
		targets = []string{actorUID}
	}

	var created []int
	for _, uid := range targets {
		position := 0
		minPos, found, err := s.repo.MinChecklistPosition(ctx, uid, req.IsForToday)
		if err != nil {
			return created, fmt.Errorf("%s: %w", op, err)
		}
		if found {
			position = minPos - 1
		}

		id, err := s.repo.CreateChecklistItem(ctx, models.ChecklistItem{
			AccountUID: uid,
			Title:      req.Title,
			IsForToday: req.IsForToday,
			Position:   position,
			Badge:      req.Badge,
		})
		if err != nil {
			s.log.Warn("checklist fan-out interrupted",
				slog.String("account_uid", uid),
				slog.Int("created", len(created)),
				sl.Err(err))
			return created, fmt.Errorf("%s: %w", op, err)
		}
		created = append(created, id)
	}
	return created, nil
}

// ToggleDone инвертирует флаг выполнения пункта. Позиция сохраняется:
// возврат пункта из архива ставит его на прежнее место.
func (s *Service) ToggleDone(ctx context.Context, id int) (int, error) {
	const op = "checklist.ToggleDone"
	count, err := s.repo.ToggleChecklistDone(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// Reorder перемещает пункт на одну позицию вверх или вниз внутри его
// раздела. Пункт на границе списка и выполненный пункт остаются на
// месте, это не ошибка.
func (s *Service) Reorder(ctx context.Context, id int, direction string) error {
	const op = "checklist.Reorder"

	item, err := s.repo.GetChecklistItem(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if item.IsDone {
		return nil
	}

	neighbor, err := s.repo.AdjacentChecklistItem(ctx, item, direction == "up")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if neighbor == nil {
		return nil
	}

	if err := s.repo.SwapChecklistPositions(ctx, item, neighbor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MoveBucket переносит пункт между корзинами «на сегодня» и «позже».
func (s *Service) MoveBucket(ctx context.Context, id int) (int, error) {
	const op = "checklist.MoveBucket"
	count, err := s.repo.FlipChecklistBucket(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// Edit обновляет текст пункта.
func (s *Service) Edit(ctx context.Context, id int, title string) (int, error) {
	const op = "checklist.Edit"
	count, err := s.repo.UpdateChecklistTitle(ctx, id, title)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// Remove удаляет пункт без следа в архиве.
func (s *Service) Remove(ctx context.Context, id int) (int, error) {
	const op = "checklist.Remove"
	count, err := s.repo.RemoveChecklistItem(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// List возвращает все разделы чек-листа аккаунта: обе активные корзины
// по порядку позиций и архив выполненных.
func (s *Service) List(ctx context.Context, accountUID string) (*Lists, error) {
	const op = "checklist.List"

	today, err := s.repo.ListChecklistActive(ctx, accountUID, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	later, err := s.repo.ListChecklistActive(ctx, accountUID, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	archive, err := s.repo.ListChecklistArchive(ctx, accountUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Lists{Today: today, Later: later, Archive: archive}, nil
}
