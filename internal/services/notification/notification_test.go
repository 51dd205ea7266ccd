package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/content-factory/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetAccount(ctx context.Context, uid string) (*models.Account, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}
func (m *RepoMock) CountTasksForClientAfter(ctx context.Context, clientLabel string, after time.Time) (int, error) {
	args := m.Called(ctx, clientLabel, after)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) CountActivityAfter(ctx context.Context, after time.Time) (int, error) {
	args := m.Called(ctx, after)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) CountIdeas(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MarkerMock struct{ mock.Mock }

func (m *MarkerMock) Get(ctx context.Context, scope string) (time.Time, bool, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(time.Time), args.Bool(1), args.Error(2)
}
func (m *MarkerMock) Set(ctx context.Context, scope string, seen time.Time) error {
	return m.Called(ctx, scope, seen).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newService(repo *RepoMock, markers *MarkerMock) *Service {
	svc := New(repo, markers, newNoopLogger())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestUnseen_ScenariosUsesAccountMarker(t *testing.T) {
	repo := new(RepoMock)
	markers := new(MarkerMock)
	seen := testNow.Add(-2 * time.Hour)
	repo.On("GetAccount", mock.Anything, "uid-1").
		Return(&models.Account{UID: "uid-1", Name: "ООО Ромашка"}, nil).Once()
	markers.On("Get", mock.Anything, "scenarios:uid-1").Return(seen, true, nil).Once()
	repo.On("CountTasksForClientAfter", mock.Anything, "ООО Ромашка", seen).Return(3, nil).Once()

	svc := newService(repo, markers)
	count, err := svc.Unseen(context.Background(), "uid-1", CategoryScenarios)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	markers.AssertExpectations(t)
}

func TestUnseen_NoMarkerCountsEverything(t *testing.T) {
	repo := new(RepoMock)
	markers := new(MarkerMock)
	repo.On("GetAccount", mock.Anything, "uid-1").
		Return(&models.Account{UID: "uid-1", Name: "ООО Ромашка"}, nil).Once()
	markers.On("Get", mock.Anything, "scenarios:uid-1").Return(time.Time{}, false, nil).Once()
	// Без отметки непросмотрено всё: отсчёт от нулевого времени.
	repo.On("CountTasksForClientAfter", mock.Anything, "ООО Ромашка", time.Time{}).Return(9, nil).Once()

	svc := newService(repo, markers)
	count, err := svc.Unseen(context.Background(), "uid-1", CategoryScenarios)

	require.NoError(t, err)
	assert.Equal(t, 9, count)
}

func TestUnseen_ActivityMarkerIsShared(t *testing.T) {
	repo := new(RepoMock)
	markers := new(MarkerMock)
	seen := testNow.Add(-time.Hour)
	markers.On("Get", mock.Anything, "activity:admin").Return(seen, true, nil).Once()
	repo.On("CountActivityAfter", mock.Anything, seen).Return(5, nil).Once()

	svc := newService(repo, markers)
	count, err := svc.Unseen(context.Background(), "uid-admin", CategoryActivity)

	require.NoError(t, err)
	assert.Equal(t, 5, count)
	// Ключ отметки не зависит от uid: журнал просматривают сообща.
	markers.AssertCalled(t, "Get", mock.Anything, "activity:admin")
}

func TestUnseen_IdeasIgnoresMarkers(t *testing.T) {
	repo := new(RepoMock)
	markers := new(MarkerMock)
	repo.On("CountIdeas", mock.Anything).Return(12, nil).Once()

	svc := newService(repo, markers)
	count, err := svc.Unseen(context.Background(), "uid-1", CategoryIdeas)

	require.NoError(t, err)
	assert.Equal(t, 12, count)
	markers.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestUnseen_UnknownCategory(t *testing.T) {
	svc := newService(new(RepoMock), new(MarkerMock))
	_, err := svc.Unseen(context.Background(), "uid-1", "mail")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestMarkSeen_SetsMarkerToNow(t *testing.T) {
	markers := new(MarkerMock)
	markers.On("Set", mock.Anything, "scenarios:uid-1", testNow).Return(nil).Twice()

	svc := newService(new(RepoMock), markers)
	require.NoError(t, svc.MarkSeen(context.Background(), "uid-1", CategoryScenarios))
	// Повторная отметка идемпотентна: просто перезаписывает момент.
	require.NoError(t, svc.MarkSeen(context.Background(), "uid-1", CategoryScenarios))
	markers.AssertExpectations(t)
}

func TestMarkSeen_IdeasIsNoop(t *testing.T) {
	markers := new(MarkerMock)
	svc := newService(new(RepoMock), markers)

	require.NoError(t, svc.MarkSeen(context.Background(), "uid-1", CategoryIdeas))
	markers.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}
