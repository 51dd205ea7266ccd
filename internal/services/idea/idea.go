// Package idea содержит логику банка идей: пользователи предлагают идеи,
// администраторы разбирают их и удаляют рассмотренные.
package idea

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Repository определяет методы хранилища, нужные для работы с идеями.
type Repository interface {
	// CreateIdea сохраняет идею и возвращает её ID.
	CreateIdea(ctx context.Context, accountUID, content string) (int, error)
	// ListIdeas возвращает идеи с пагинацией.
	ListIdeas(ctx context.Context, limit, offset int) ([]*models.Idea, error)
	// RemoveIdea удаляет идею.
	RemoveIdea(ctx context.Context, id int) (int, error)
	// GetAccount возвращает аккаунт по UID.
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	// CreateActivityEntry добавляет запись журнала активности.
	CreateActivityEntry(ctx context.Context, accountUID, accountName, action string) error
}

// Service реализует операции над идеями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create сохраняет идею от имени аккаунта и best-effort пишет журнал.
func (s *Service) Create(ctx context.Context, accountUID, content string) (int, error) {
	const op = "idea.Create"

	id, err := s.repo.CreateIdea(ctx, accountUID, content)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if account, err := s.repo.GetAccount(ctx, accountUID); err != nil {
		s.log.Warn("failed to resolve author for activity entry", sl.Err(err))
	} else if err := s.repo.CreateActivityEntry(ctx, account.UID, account.Name, "предложил идею"); err != nil {
		s.log.Warn("failed to log idea", sl.Err(err))
	}
	return id, nil
}

// List возвращает идеи с пагинацией.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Idea, error) {
	const op = "idea.List"
	ideas, err := s.repo.ListIdeas(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ideas, nil
}

// Remove удаляет рассмотренную идею.
func (s *Service) Remove(ctx context.Context, id int) (int, error) {
	const op = "idea.Remove"
	count, err := s.repo.RemoveIdea(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
