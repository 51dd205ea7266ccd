package subscription

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
func (m *RepoMock) UpdateExpiry(ctx context.Context, uid string, newExpiry time.Time) error {
	return m.Called(ctx, uid, newExpiry).Error(0)
}
func (m *RepoMock) CreateExtensionEntry(ctx context.Context, accountUID string, daysAdded int, newExpiry time.Time) (int, error) {
	args := m.Called(ctx, accountUID, daysAdded, newExpiry)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ListExtensions(ctx context.Context, accountUID string) ([]*models.ExtensionEntry, error) {
	args := m.Called(ctx, accountUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ExtensionEntry), args.Error(1)
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

func TestExtend_FromActiveSubscription(t *testing.T) {
	repo := new(RepoMock)
	expiry := testNow.AddDate(0, 0, 10)
	want := expiry.AddDate(0, 0, 30)
	repo.On("GetAccount", mock.Anything, "uid-1").
		Return(&models.Account{UID: "uid-1", SubscriptionExpiry: &expiry}, nil).Once()
	repo.On("UpdateExpiry", mock.Anything, "uid-1", want).Return(nil).Once()
	repo.On("CreateExtensionEntry", mock.Anything, "uid-1", 30, want).Return(1, nil).Once()

	svc := newService(repo)
	got, err := svc.Extend(context.Background(), "uid-1", 30)

	require.NoError(t, err)
	// Отсчёт от старой даты истечения: срок не теряется.
	assert.True(t, got.Equal(want))
	repo.AssertExpectations(t)
}

func TestExtend_FromExpiredSubscription(t *testing.T) {
	repo := new(RepoMock)
	expiry := testNow.AddDate(0, 0, -5)
	want := testNow.AddDate(0, 0, 7)
	repo.On("GetAccount", mock.Anything, "uid-1").
		Return(&models.Account{UID: "uid-1", SubscriptionExpiry: &expiry}, nil).Once()
	repo.On("UpdateExpiry", mock.Anything, "uid-1", want).Return(nil).Once()
	repo.On("CreateExtensionEntry", mock.Anything, "uid-1", 7, want).Return(1, nil).Once()

	svc := newService(repo)
	got, err := svc.Extend(context.Background(), "uid-1", 7)

	require.NoError(t, err)
	// Для истёкшей подписки отсчёт идёт от «сейчас», а не от прошлого.
	assert.True(t, got.Equal(want))
}

func TestExtend_NonPositiveDaysRejected(t *testing.T) {
	repo := new(RepoMock)
	svc := newService(repo)

	for _, days := range []int{0, -3} {
		_, err := svc.Extend(context.Background(), "uid-1", days)
		assert.ErrorIs(t, err, models.ErrValidation)
	}
	repo.AssertNotCalled(t, "UpdateExpiry", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemaining(t *testing.T) {
	expiry := testNow.AddDate(0, 0, 3)
	account := &models.Account{SubscriptionExpiry: &expiry}

	days, expired := Remaining(account, testNow)
	assert.False(t, expired)
	assert.Equal(t, 3, days)

	days, expired = Remaining(&models.Account{}, testNow)
	assert.True(t, expired)
	assert.Equal(t, 0, days)
}
