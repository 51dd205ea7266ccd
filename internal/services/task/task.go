// Package task содержит бизнес-логику жизненного цикла задачи монтажа.
//
// Машина состояний:
//
//	pending_assignment -> assigned -> pending_approval -> delivered
//
// Боковое состояние issue_reported достижимо из assigned (монтажёр
// сообщил о проблеме) и из pending_approval (администратор отклонил
// сдачу). Из delivered переходов нет.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Repository определяет методы хранилища, нужные для работы с задачами.
type Repository interface {
	// CreateTask вставляет новую задачу и возвращает её ID.
	CreateTask(ctx context.Context, t models.Task) (int, error)
	// GetTask возвращает задачу по ID.
	GetTask(ctx context.Context, id int) (*models.Task, error)
	// UpdateTask сохраняет результат перехода.
	UpdateTask(ctx context.Context, t *models.Task) (int, error)
	// ListTasks возвращает все задачи с пагинацией.
	ListTasks(ctx context.Context, limit, offset int) ([]*models.Task, error)
	// ListTasksByEditor возвращает задачи монтажёра с пагинацией.
	ListTasksByEditor(ctx context.Context, editorUID string, limit, offset int) ([]*models.Task, error)
	// RemoveTask удаляет задачу по ID.
	RemoveTask(ctx context.Context, id int) (int, error)
	// GetAccount возвращает аккаунт по UID, нужен для подписи в журнале.
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
	// CreateActivityEntry добавляет запись журнала активности.
	CreateActivityEntry(ctx context.Context, accountUID, accountName, action string) error
}

// transitions перечисляет допустимые исходные статусы для каждого события.
var transitions = map[string][]string{
	"assign":       {models.StatusPendingAssignment, models.StatusAssigned, models.StatusIssueReported},
	"deliver":      {models.StatusAssigned, models.StatusIssueReported},
	"report_issue": {models.StatusAssigned},
	"approve":      {models.StatusPendingApproval},
	"reject":       {models.StatusPendingApproval},
}

// Service реализует переходы задачи по машине состояний.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create создаёт новую задачу в статусе pending_assignment и возвращает её ID.
func (s *Service) Create(ctx context.Context, req models.DummyTask) (int, error) {
	const op = "task.Create"
	id, err := s.repo.CreateTask(ctx, models.Task{
		ClientLabel:    req.ClientLabel,
		ScenarioNumber: req.ScenarioNumber,
		Content:        req.Content,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new task", slog.Int("id", id))
	return id, nil
}

// Assign назначает монтажёра и примечание администратора. Повторное
// назначение из assigned или issue_reported — обновление на месте,
// новая задача не создаётся.
func (s *Service) Assign(ctx context.Context, id int, editorUID, adminNote string) (*models.Task, error) {
	const op = "task.Assign"
	t, err := s.checkTransition(ctx, op, id, "assign")
	if err != nil {
		return nil, err
	}

	t.Status = models.StatusAssigned
	t.EditorUID = &editorUID
	if adminNote != "" {
		t.AdminNote = adminNote
	}
	if _, err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// Deliver сдаёт задачу на проверку администратору. Допускается как из
// assigned, так и из issue_reported: после отклонения монтажёр сдаёт заново.
func (s *Service) Deliver(ctx context.Context, id int, editorUID string) (*models.Task, error) {
	const op = "task.Deliver"
	t, err := s.checkTransition(ctx, op, id, "deliver")
	if err != nil {
		return nil, err
	}

	t.Status = models.StatusPendingApproval
	if _, err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.logEditorAction(ctx, editorUID, fmt.Sprintf("сдал сценарий №%d на проверку", t.ScenarioNumber))
	return t, nil
}

// ReportIssue переводит задачу в issue_reported с примечанием монтажёра.
func (s *Service) ReportIssue(ctx context.Context, id int, editorUID, note string) (*models.Task, error) {
	const op = "task.ReportIssue"
	t, err := s.checkTransition(ctx, op, id, "report_issue")
	if err != nil {
		return nil, err
	}

	t.Status = models.StatusIssueReported
	t.EditorNote = note
	if _, err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.logEditorAction(ctx, editorUID, fmt.Sprintf("сообщил о проблеме по сценарию №%d", t.ScenarioNumber))
	return t, nil
}

// Approve принимает сдачу: задача закрывается, переходов из delivered нет.
func (s *Service) Approve(ctx context.Context, id int) (*models.Task, error) {
	const op = "task.Approve"
	t, err := s.checkTransition(ctx, op, id, "approve")
	if err != nil {
		return nil, err
	}

	t.Status = models.StatusDelivered
	if _, err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// Reject отклоняет сдачу: задача возвращается в issue_reported, причина
// добавляется к примечанию администратора с пометкой, прежний текст
// примечания сохраняется.
func (s *Service) Reject(ctx context.Context, id int, reason string) (*models.Task, error) {
	const op = "task.Reject"
	t, err := s.checkTransition(ctx, op, id, "reject")
	if err != nil {
		return nil, err
	}

	t.Status = models.StatusIssueReported
	tagged := "[отклонено] " + reason
	if t.AdminNote == "" {
		t.AdminNote = tagged
	} else {
		t.AdminNote = t.AdminNote + "\n" + tagged
	}
	if _, err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// List возвращает задачи в зависимости от роли: администраторы видят все,
// монтажёр — только назначенные ему.
func (s *Service) List(ctx context.Context, accountUID, role string, limit, offset int) ([]*models.Task, error) {
	const op = "task.List"
	var tasks []*models.Task
	var err error
	if role == models.RoleEditor {
		tasks, err = s.repo.ListTasksByEditor(ctx, accountUID, limit, offset)
	} else {
		tasks, err = s.repo.ListTasks(ctx, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tasks, nil
}

// Remove удаляет задачу по ID и возвращает количество удалённых строк.
func (s *Service) Remove(ctx context.Context, id int) (int, error) {
	const op = "task.Remove"
	count, err := s.repo.RemoveTask(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

func (s *Service) checkTransition(ctx context.Context, op string, id int, event string) (*models.Task, error) {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, status := range transitions[event] {
		if t.Status == status {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%s: cannot %s task in status %q: %w", op, event, t.Status, models.ErrConflict)
}

// logEditorAction пишет действие монтажёра в журнал активности.
// Запись best-effort: сбой не проваливает переход.
func (s *Service) logEditorAction(ctx context.Context, editorUID, action string) {
	editor, err := s.repo.GetAccount(ctx, editorUID)
	if err != nil {
		s.log.Warn("failed to resolve editor for activity entry", sl.Err(err))
		return
	}
	if err := s.repo.CreateActivityEntry(ctx, editor.UID, editor.Name, action); err != nil {
		s.log.Warn("failed to log editor action", sl.Err(err))
	}
}

// DisplayEditor возвращает подпись монтажёра для витрин и статистики:
// задача с висящей ссылкой (монтажёр удалён) считается неназначенной.
func DisplayEditor(t *models.Task, lookup func(uid string) (*models.Account, bool)) string {
	if t.EditorUID == nil {
		return "не назначен"
	}
	editor, ok := lookup(*t.EditorUID)
	if !ok {
		return "не назначен"
	}
	return strings.TrimSpace(editor.Name)
}
