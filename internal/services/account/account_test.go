package account

import (
	"context"
	"errors"
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

func (m *RepoMock) CreateAccount(ctx context.Context, a models.Account) (string, error) {
	args := m.Called(ctx, a)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetAccount(ctx context.Context, uid string) (*models.Account, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}
func (m *RepoMock) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}
func (m *RepoMock) UpdateLimits(ctx context.Context, uid string, req models.DummyLimits) (int, error) {
	args := m.Called(ctx, uid, req)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveAccount(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) CreateActivityEntry(ctx context.Context, accountUID, accountName, action string) error {
	return m.Called(ctx, accountUID, accountName, action).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newService(repo *RepoMock) *Service {
	svc := New(repo, newNoopLogger())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCreate_IssuesKeyAndTrial(t *testing.T) {
	repo := new(RepoMock)
	wantExpiry := testNow.AddDate(0, 0, TrialDays)
	repo.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a models.Account) bool {
		return a.Name == "ООО Ромашка" &&
			a.Role == models.RoleUser &&
			len(a.AccessKey) == 64 &&
			a.SubscriptionExpiry != nil && a.SubscriptionExpiry.Equal(wantExpiry) &&
			a.StoryLimit == DefaultStoryLimit &&
			a.VoiceLimit == DefaultVoiceLimit &&
			a.SeriesLimit == DefaultSeriesLimit
	})).Return("uid-new", nil).Once()

	svc := newService(repo)
	uid, key, err := svc.Create(context.Background(), models.DummyAccount{
		Name: "ООО Ромашка",
		Role: models.RoleUser,
	})

	require.NoError(t, err)
	assert.Equal(t, "uid-new", uid)
	assert.Len(t, key, 64)
	repo.AssertExpectations(t)
}

func TestCreate_RetriesOnKeyCollision(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateAccount", mock.Anything, mock.Anything).
		Return("", models.ErrConflict).Once()
	repo.On("CreateAccount", mock.Anything, mock.Anything).
		Return("uid-new", nil).Once()

	svc := newService(repo)
	uid, _, err := svc.Create(context.Background(), models.DummyAccount{
		Name: "ООО Ромашка",
		Role: models.RoleUser,
	})

	require.NoError(t, err)
	assert.Equal(t, "uid-new", uid)
	repo.AssertExpectations(t)
}

func TestCreate_StorageFailure(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateAccount", mock.Anything, mock.Anything).
		Return("", errors.New("storage down")).Once()

	svc := newService(repo)
	_, _, err := svc.Create(context.Background(), models.DummyAccount{
		Name: "ООО Ромашка",
		Role: models.RoleUser,
	})

	assert.Error(t, err)
	repo.AssertNumberOfCalls(t, "CreateAccount", 1)
}

func TestUpdateLimits_UnknownAccount(t *testing.T) {
	repo := new(RepoMock)
	repo.On("UpdateLimits", mock.Anything, "uid-missing", mock.Anything).Return(0, nil).Once()

	svc := newService(repo)
	err := svc.UpdateLimits(context.Background(), "uid-missing", models.DummyLimits{StoryLimit: 5})

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRemove(t *testing.T) {
	repo := new(RepoMock)
	repo.On("RemoveAccount", mock.Anything, "uid-1").Return(1, nil).Once()

	svc := newService(repo)
	require.NoError(t, svc.Remove(context.Background(), "uid-1"))

	repo.On("RemoveAccount", mock.Anything, "uid-missing").Return(0, nil).Once()
	assert.ErrorIs(t, svc.Remove(context.Background(), "uid-missing"), models.ErrNotFound)
}
