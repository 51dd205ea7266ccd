package quota

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

func (m *RepoMock) GetAccount(ctx context.Context, uid string) (*models.Account, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}
func (m *RepoMock) IncrementCounter(ctx context.Context, uid, counterColumn, limitColumn string) (int, int, error) {
	args := m.Called(ctx, uid, counterColumn, limitColumn)
	return args.Int(0), args.Int(1), args.Error(2)
}
func (m *RepoMock) CreateActivityEntry(ctx context.Context, accountUID, accountName, action string) error {
	return m.Called(ctx, accountUID, accountName, action).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestConsume_MeteredResource(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetAccount", mock.Anything, "uid-1").
		Return(&models.Account{UID: "uid-1", Name: "Клиент"}, nil).Once()
	repo.On("IncrementCounter", mock.Anything, "uid-1", "story_requests", "story_limit").
		Return(2, 3, nil).Once()
	repo.On("CreateActivityEntry", mock.Anything, "uid-1", "Клиент", "использовал сценарий (2/3)").
		Return(nil).Once()

	svc := New(repo, newNoopLogger())
	current, limit, err := svc.Consume(context.Background(), "uid-1", ResourceStory)

	require.NoError(t, err)
	assert.Equal(t, 2, current)
	assert.Equal(t, 3, limit)
	repo.AssertExpectations(t)
}

func TestConsume_UnmeteredResourceOnlyLogs(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetAccount", mock.Anything, "uid-1").
		Return(&models.Account{UID: "uid-1", Name: "Клиент"}, nil).Once()
	repo.On("CreateActivityEntry", mock.Anything, "uid-1", "Клиент", "использовал идею").
		Return(nil).Once()

	svc := New(repo, newNoopLogger())
	_, _, err := svc.Consume(context.Background(), "uid-1", ResourceIdea)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "IncrementCounter", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConsume_UnknownResource(t *testing.T) {
	repo := new(RepoMock)
	svc := New(repo, newNoopLogger())

	_, _, err := svc.Consume(context.Background(), "uid-1", "coffee")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestConsume_IncrementFailureIsReturned(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetAccount", mock.Anything, "uid-1").
		Return(&models.Account{UID: "uid-1", Name: "Клиент"}, nil).Once()
	repo.On("IncrementCounter", mock.Anything, "uid-1", "series_requests", "series_limit").
		Return(0, 0, errors.New("storage down")).Once()

	svc := New(repo, newNoopLogger())
	_, _, err := svc.Consume(context.Background(), "uid-1", ResourceSeries)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "CreateActivityEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConsume_LogFailureIsSwallowed(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetAccount", mock.Anything, "uid-1").
		Return(&models.Account{UID: "uid-1", Name: "Клиент"}, nil).Once()
	repo.On("IncrementCounter", mock.Anything, "uid-1", "voice_requests", "voice_limit").
		Return(1, 3, nil).Once()
	repo.On("CreateActivityEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("log table is gone")).Once()

	svc := New(repo, newNoopLogger())
	current, limit, err := svc.Consume(context.Background(), "uid-1", ResourceVoice)

	require.NoError(t, err)
	assert.Equal(t, 1, current)
	assert.Equal(t, 3, limit)
}
