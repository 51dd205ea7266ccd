package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/content-factory/internal/models"
)

func TestStorage_FindAccountByAccessKey(t *testing.T) {
	type args struct {
		ctx       context.Context
		accessKey string
	}

	tests := []struct {
		name     string
		args     args
		wantName string
		wantErr  error
		setup    func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name: "successful find account by access key",
			args: args{
				ctx:       context.Background(),
				accessKey: "key-one",
			},
			wantName: "Клиент Один",
			wantErr:  nil,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateAccount(t, uuid.New().String(), "Клиент Один", "user", "key-one")
				factory.CreateAccount(t, uuid.New().String(), "Клиент Два", "user", "key-two")
			},
		},
		{
			name: "unknown access key",
			args: args{
				ctx:       context.Background(),
				accessKey: "no-such-key",
			},
			wantErr: models.ErrNotFound,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateAccount(t, uuid.New().String(), "Клиент Один", "user", "key-one")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.FindAccountByAccessKey(tt.args.ctx, tt.args.accessKey)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.wantName, got.Name)
				assert.Equal(t, tt.args.accessKey, got.AccessKey)
			}
		})
	}
}

func TestStorage_CreateAccount(t *testing.T) {
	tests := []struct {
		name    string
		account models.Account
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name: "successful create account",
			account: models.Account{
				Name:        "Новый Клиент",
				Role:        models.RoleUser,
				AccessKey:   "fresh-key",
				StoryLimit:  3,
				VoiceLimit:  3,
				SeriesLimit: 1,
			},
			wantErr: nil,
			setup:   func(_ *testing.T, _ *TestDataFactory) {},
		},
		{
			name: "duplicate access key",
			account: models.Account{
				Name:        "Дубликат",
				Role:        models.RoleUser,
				AccessKey:   "taken-key",
				StoryLimit:  3,
				VoiceLimit:  3,
				SeriesLimit: 1,
			},
			wantErr: models.ErrConflict,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateAccount(t, uuid.New().String(), "Владелец", "user", "taken-key")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			gotUID, err := storage.CreateAccount(context.Background(), tt.account)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, gotUID)

				got, err := storage.GetAccount(context.Background(), gotUID)
				require.NoError(t, err)
				assert.Equal(t, tt.account.Name, got.Name)
				assert.Equal(t, tt.account.StoryLimit, got.StoryLimit)
			}
		})
	}
}

func TestStorage_IncrementCounter(t *testing.T) {
	type args struct {
		ctx           context.Context
		counterColumn string
		limitColumn   string
	}

	tests := []struct {
		name        string
		args        args
		wantCurrent int
		wantLimit   int
		wantErr     error
		setup       func(t *testing.T, factory *TestDataFactory) string
	}{
		{
			name: "successful increment story counter",
			args: args{
				ctx:           context.Background(),
				counterColumn: "story_requests",
				limitColumn:   "story_limit",
			},
			wantCurrent: 3,
			wantLimit:   3,
			wantErr:     nil,
			setup: func(t *testing.T, factory *TestDataFactory) string {
				accountUID := uuid.New().String()
				factory.CreateAccountWithLimits(t, accountUID, "Клиент", "user", "key-one", 2, 3)
				return accountUID
			},
		},
		{
			name: "increment for non-existing account",
			args: args{
				ctx:           context.Background(),
				counterColumn: "story_requests",
				limitColumn:   "story_limit",
			},
			wantErr: models.ErrNotFound,
			setup:   func(_ *testing.T, _ *TestDataFactory) string { return uuid.New().String() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			accountUID := tt.setup(t, factory)

			gotCurrent, gotLimit, err := storage.IncrementCounter(tt.args.ctx, accountUID,
				tt.args.counterColumn, tt.args.limitColumn)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantCurrent, gotCurrent)
				assert.Equal(t, tt.wantLimit, gotLimit)
			}
		})
	}
}

func TestStorage_UpdateTask(t *testing.T) {
	tests := []struct {
		name             string
		taskID           int
		wantRowsAffected int
		setup            func(t *testing.T, factory *TestDataFactory) int
	}{
		{
			name:             "successful update existing task",
			wantRowsAffected: 1,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				return factory.CreateTask(t, "Клиент Один", 12, "сценарий",
					models.StatusAssigned, time.Now())
			},
		},
		{
			name:             "update non-existing task",
			wantRowsAffected: 0,
			setup:            func(_ *testing.T, _ *TestDataFactory) int { return 99999 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			taskID := tt.setup(t, factory)

			task := &models.Task{
				ID:         taskID,
				Status:     models.StatusPendingApproval,
				EditorNote: "готово",
			}
			gotRowsAffected, err := storage.UpdateTask(context.Background(), task)

			require.NoError(t, err)
			assert.Equal(t, tt.wantRowsAffected, gotRowsAffected)

			if tt.wantRowsAffected > 0 {
				verification := NewTestVerification(storage)
				verification.VerifyTaskStatus(t, taskID, models.StatusPendingApproval)
			}
		})
	}
}

func TestStorage_CountTasksForClientAfter(t *testing.T) {
	baseTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		after     time.Time
		wantCount int
		setup     func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:      "counts only tasks created after the mark",
			after:     baseTime,
			wantCount: 2,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateTask(t, "Клиент Один", 1, "старый", models.StatusDelivered, baseTime.AddDate(0, 0, -3))
				factory.CreateTask(t, "Клиент Один", 2, "новый", models.StatusPendingAssignment, baseTime.AddDate(0, 0, 1))
				factory.CreateTask(t, "Клиент Один", 3, "новый", models.StatusPendingAssignment, baseTime.AddDate(0, 0, 2))
				factory.CreateTask(t, "Клиент Два", 4, "чужой", models.StatusPendingAssignment, baseTime.AddDate(0, 0, 1))
			},
		},
		{
			name:      "zero time counts everything for the client",
			after:     time.Time{},
			wantCount: 2,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateTask(t, "Клиент Один", 1, "первый", models.StatusDelivered, baseTime.AddDate(0, 0, -30))
				factory.CreateTask(t, "Клиент Один", 2, "второй", models.StatusPendingAssignment, baseTime)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			gotCount, err := storage.CountTasksForClientAfter(context.Background(), "Клиент Один", tt.after)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, gotCount)
		})
	}
}

func TestStorage_MinChecklistPosition(t *testing.T) {
	tests := []struct {
		name       string
		isForToday bool
		wantPos    int
		wantFound  bool
		setup      func(t *testing.T, factory *TestDataFactory) string
	}{
		{
			name:       "minimum among active items of the bucket",
			isForToday: true,
			wantPos:    2,
			wantFound:  true,
			setup: func(t *testing.T, factory *TestDataFactory) string {
				accountUID := uuid.New().String()
				factory.CreateAccount(t, accountUID, "Клиент", "user", "key-one")
				factory.CreateChecklistItem(t, accountUID, "первый", false, true, 2)
				factory.CreateChecklistItem(t, accountUID, "второй", false, true, 5)
				// выполненные и пункты другой корзины не участвуют
				factory.CreateChecklistItem(t, accountUID, "выполнен", true, true, 1)
				factory.CreateChecklistItem(t, accountUID, "позже", false, false, 0)
				return accountUID
			},
		},
		{
			name:       "empty bucket",
			isForToday: false,
			wantPos:    0,
			wantFound:  false,
			setup: func(t *testing.T, factory *TestDataFactory) string {
				accountUID := uuid.New().String()
				factory.CreateAccount(t, accountUID, "Клиент", "user", "key-one")
				return accountUID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			accountUID := tt.setup(t, factory)

			gotPos, gotFound, err := storage.MinChecklistPosition(context.Background(), accountUID, tt.isForToday)

			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, gotFound)
			assert.Equal(t, tt.wantPos, gotPos)
		})
	}
}

func TestStorage_SwapChecklistPositions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	accountUID := uuid.New().String()
	factory.CreateAccount(t, accountUID, "Клиент", "user", "key-one")
	firstID := factory.CreateChecklistItem(t, accountUID, "первый", false, true, 1)
	secondID := factory.CreateChecklistItem(t, accountUID, "второй", false, true, 2)

	first, err := storage.GetChecklistItem(context.Background(), firstID)
	require.NoError(t, err)
	second, err := storage.GetChecklistItem(context.Background(), secondID)
	require.NoError(t, err)

	err = storage.SwapChecklistPositions(context.Background(), first, second)
	require.NoError(t, err)

	verification := NewTestVerification(storage)
	verification.VerifyChecklistPosition(t, firstID, 2)
	verification.VerifyChecklistPosition(t, secondID, 1)

	// порядок выдачи следует за новыми позициями
	items, err := storage.ListChecklistActive(context.Background(), accountUID, true)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, secondID, items[0].ID)
	assert.Equal(t, firstID, items[1].ID)
}

func TestStorage_RemoveAccount(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	accountUID := uuid.New().String()
	factory.CreateAccount(t, accountUID, "Клиент", "user", "key-one")
	factory.CreateChecklistItem(t, accountUID, "пункт", false, true, 1)

	gotCount, err := storage.RemoveAccount(context.Background(), accountUID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotCount)

	verification := NewTestVerification(storage)
	verification.VerifyAccountDeleted(t, accountUID)

	// чек-лист удаляется каскадом вместе с аккаунтом
	items, err := storage.ListChecklistActive(context.Background(), accountUID, true)
	require.NoError(t, err)
	assert.Empty(t, items)
}
