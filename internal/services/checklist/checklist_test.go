package checklist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/content-factory/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateChecklistItem(ctx context.Context, item models.ChecklistItem) (int, error) {
	args := m.Called(ctx, item)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) GetChecklistItem(ctx context.Context, id int) (*models.ChecklistItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChecklistItem), args.Error(1)
}
func (m *RepoMock) MinChecklistPosition(ctx context.Context, accountUID string, isForToday bool) (int, bool, error) {
	args := m.Called(ctx, accountUID, isForToday)
	return args.Int(0), args.Bool(1), args.Error(2)
}
func (m *RepoMock) AdjacentChecklistItem(ctx context.Context, item *models.ChecklistItem, up bool) (*models.ChecklistItem, error) {
	args := m.Called(ctx, item, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChecklistItem), args.Error(1)
}
func (m *RepoMock) SwapChecklistPositions(ctx context.Context, first, second *models.ChecklistItem) error {
	return m.Called(ctx, first, second).Error(0)
}
func (m *RepoMock) ToggleChecklistDone(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) FlipChecklistBucket(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) UpdateChecklistTitle(ctx context.Context, id int, title string) (int, error) {
	args := m.Called(ctx, id, title)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveChecklistItem(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListChecklistActive(ctx context.Context, accountUID string, isForToday bool) ([]*models.ChecklistItem, error) {
	args := m.Called(ctx, accountUID, isForToday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChecklistItem), args.Error(1)
}
func (m *RepoMock) ListChecklistArchive(ctx context.Context, accountUID string) ([]*models.ChecklistItem, error) {
	args := m.Called(ctx, accountUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChecklistItem), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAdd_SelfWhenNoTargets(t *testing.T) {
	repo := new(RepoMock)
	repo.On("MinChecklistPosition", mock.Anything, "uid-self", true).Return(3, true, nil).Once()
	repo.On("CreateChecklistItem", mock.Anything, models.ChecklistItem{
		AccountUID: "uid-self",
		Title:      "смонтировать интро",
		IsForToday: true,
		Position:   2,
	}).Return(10, nil).Once()

	svc := New(repo, newNoopLogger())
	ids, err := svc.Add(context.Background(), "uid-self", models.DummyChecklistAdd{
		Title:      "смонтировать интро",
		IsForToday: true,
	})

	require.NoError(t, err)
	// Новый пункт встаёт наверх раздела: позиция на единицу меньше минимальной.
	assert.Equal(t, []int{10}, ids)
	repo.AssertExpectations(t)
}

func TestAdd_EmptySectionStartsAtZero(t *testing.T) {
	repo := new(RepoMock)
	repo.On("MinChecklistPosition", mock.Anything, "uid-self", false).Return(0, false, nil).Once()
	repo.On("CreateChecklistItem", mock.Anything, mock.MatchedBy(func(item models.ChecklistItem) bool {
		return item.Position == 0
	})).Return(1, nil).Once()

	svc := New(repo, newNoopLogger())
	_, err := svc.Add(context.Background(), "uid-self", models.DummyChecklistAdd{Title: "первый пункт"})

	require.NoError(t, err)
}

func TestAdd_FanOutCreatesIndependentRows(t *testing.T) {
	repo := new(RepoMock)
	for i, uid := range []string{"uid-a", "uid-b", "uid-c"} {
		repo.On("MinChecklistPosition", mock.Anything, uid, true).Return(0, false, nil).Once()
		repo.On("CreateChecklistItem", mock.Anything, mock.MatchedBy(func(item models.ChecklistItem) bool {
			return item.AccountUID == uid && item.Badge == "Р"
		})).Return(100+i, nil).Once()
	}

	svc := New(repo, newNoopLogger())
	ids, err := svc.Add(context.Background(), "uid-admin", models.DummyChecklistAdd{
		Title:      "общая рассылка",
		IsForToday: true,
		TargetUIDs: []string{"uid-a", "uid-b", "uid-c"},
		Badge:      "Р",
	})

	require.NoError(t, err)
	assert.Equal(t, []int{100, 101, 102}, ids)
	repo.AssertExpectations(t)
}

func TestAdd_PartialFailureKeepsCreatedRows(t *testing.T) {
	repo := new(RepoMock)
	repo.On("MinChecklistPosition", mock.Anything, "uid-a", false).Return(0, false, nil).Once()
	repo.On("CreateChecklistItem", mock.Anything, mock.MatchedBy(func(item models.ChecklistItem) bool {
		return item.AccountUID == "uid-a"
	})).Return(1, nil).Once()
	repo.On("MinChecklistPosition", mock.Anything, "uid-b", false).Return(0, false, nil).Once()
	repo.On("CreateChecklistItem", mock.Anything, mock.MatchedBy(func(item models.ChecklistItem) bool {
		return item.AccountUID == "uid-b"
	})).Return(0, errors.New("storage down")).Once()

	svc := New(repo, newNoopLogger())
	ids, err := svc.Add(context.Background(), "uid-admin", models.DummyChecklistAdd{
		Title:      "рассылка",
		TargetUIDs: []string{"uid-a", "uid-b", "uid-c"},
	})

	// Сбой на середине: уже созданные строки остаются, хвост не обрабатывается.
	assert.Error(t, err)
	assert.Equal(t, []int{1}, ids)
	repo.AssertNotCalled(t, "MinChecklistPosition", mock.Anything, "uid-c", mock.Anything)
}

func TestReorder_SwapsWithNeighbor(t *testing.T) {
	repo := new(RepoMock)
	item := &models.ChecklistItem{ID: 5, AccountUID: "uid-1", Position: 3}
	neighbor := &models.ChecklistItem{ID: 4, AccountUID: "uid-1", Position: 2}
	repo.On("GetChecklistItem", mock.Anything, 5).Return(item, nil).Once()
	repo.On("AdjacentChecklistItem", mock.Anything, item, true).Return(neighbor, nil).Once()
	repo.On("SwapChecklistPositions", mock.Anything, item, neighbor).Return(nil).Once()

	svc := New(repo, newNoopLogger())
	err := svc.Reorder(context.Background(), 5, "up")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestReorder_BoundaryIsNoop(t *testing.T) {
	repo := new(RepoMock)
	item := &models.ChecklistItem{ID: 5, AccountUID: "uid-1", Position: 0}
	repo.On("GetChecklistItem", mock.Anything, 5).Return(item, nil).Once()
	repo.On("AdjacentChecklistItem", mock.Anything, item, true).Return(nil, nil).Once()

	svc := New(repo, newNoopLogger())
	err := svc.Reorder(context.Background(), 5, "up")

	// Пункт на верхней границе остаётся на месте без ошибки.
	require.NoError(t, err)
	repo.AssertNotCalled(t, "SwapChecklistPositions", mock.Anything, mock.Anything, mock.Anything)
}

func TestReorder_DoneItemIsNoop(t *testing.T) {
	repo := new(RepoMock)
	item := &models.ChecklistItem{ID: 5, AccountUID: "uid-1", IsDone: true}
	repo.On("GetChecklistItem", mock.Anything, 5).Return(item, nil).Once()

	svc := New(repo, newNoopLogger())
	err := svc.Reorder(context.Background(), 5, "down")

	require.NoError(t, err)
	repo.AssertNotCalled(t, "AdjacentChecklistItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestReorder_UnknownItem(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetChecklistItem", mock.Anything, 404).Return(nil, models.ErrNotFound).Once()

	svc := New(repo, newNoopLogger())
	err := svc.Reorder(context.Background(), 404, "up")

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestList_ReturnsAllSections(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListChecklistActive", mock.Anything, "uid-1", true).
		Return([]*models.ChecklistItem{{ID: 1}}, nil).Once()
	repo.On("ListChecklistActive", mock.Anything, "uid-1", false).
		Return([]*models.ChecklistItem{{ID: 2}, {ID: 3}}, nil).Once()
	repo.On("ListChecklistArchive", mock.Anything, "uid-1").
		Return([]*models.ChecklistItem{{ID: 4, IsDone: true}}, nil).Once()

	svc := New(repo, newNoopLogger())
	lists, err := svc.List(context.Background(), "uid-1")

	require.NoError(t, err)
	assert.Len(t, lists.Today, 1)
	assert.Len(t, lists.Later, 2)
	assert.Len(t, lists.Archive, 1)
}
