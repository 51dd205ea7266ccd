package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ChannelMock struct{ mock.Mock }

func (m *ChannelMock) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, mandatory, immediate, msg).Error(0)
}

type ActivityMock struct{ mock.Mock }

func (m *ActivityMock) CreateActivityEntry(ctx context.Context, accountUID, accountName, action string) error {
	return m.Called(ctx, accountUID, accountName, action).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestSend_PublishesToExchange(t *testing.T) {
	channel := new(ChannelMock)
	activity := new(ActivityMock)
	channel.On("Publish", "notices", "", false, false, mock.MatchedBy(func(p amqp.Publishing) bool {
		var msg Message
		if err := json.Unmarshal(p.Body, &msg); err != nil {
			return false
		}
		return msg.Text == "завтра профилактика" &&
			msg.SenderUID == "uid-admin" &&
			msg.SenderName == "Админ" &&
			msg.SentAt.Equal(testNow)
	})).Return(nil).Once()
	activity.On("CreateActivityEntry", mock.Anything, "uid-admin", "Админ", "отправил рассылку").
		Return(nil).Once()

	svc := New(channel, "notices", activity, newNoopLogger())
	svc.now = func() time.Time { return testNow }
	err := svc.Send(context.Background(), "uid-admin", "Админ", "завтра профилактика")

	require.NoError(t, err)
	channel.AssertExpectations(t)
	activity.AssertExpectations(t)
}

func TestSend_PublishFailureIsReturned(t *testing.T) {
	channel := new(ChannelMock)
	activity := new(ActivityMock)
	channel.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker down")).Once()

	svc := New(channel, "notices", activity, newNoopLogger())
	err := svc.Send(context.Background(), "uid-admin", "Админ", "текст")

	assert.Error(t, err)
	activity.AssertNotCalled(t, "CreateActivityEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSend_ActivityFailureIsSwallowed(t *testing.T) {
	channel := new(ChannelMock)
	activity := new(ActivityMock)
	channel.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()
	activity.On("CreateActivityEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("log table is gone")).Once()

	svc := New(channel, "notices", activity, newNoopLogger())
	err := svc.Send(context.Background(), "uid-admin", "Админ", "текст")

	require.NoError(t, err)
}
