// Package broadcast содержит логику массовой рассылки уведомлений.
// Сообщение публикуется в fanout-обменник RabbitMQ; доставку конечным
// получателям выполняет внешняя система.
package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/content-factory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
)

// Message — полезная нагрузка рассылки в обменнике.
type Message struct {
	Text       string    `json:"text"`
	SenderUID  string    `json:"sender_uid"`
	SenderName string    `json:"sender_name"`
	SentAt     time.Time `json:"sent_at"`
}

// ActivityWriter пишет запись о рассылке в журнал активности.
type ActivityWriter interface {
	CreateActivityEntry(ctx context.Context, accountUID, accountName, action string) error
}

// Service реализует публикацию рассылок.
type Service struct {
	channel  rabbitmq.Channel
	exchange string
	repo     ActivityWriter
	log      *slog.Logger
	now      func() time.Time
}

// New создает новый экземпляр Service.
func New(channel rabbitmq.Channel, exchange string, repo ActivityWriter, log *slog.Logger) *Service {
	return &Service{channel: channel, exchange: exchange, repo: repo, log: log, now: time.Now}
}

// Send публикует текст рассылки от имени отправителя. Запись в журнал
// активности best-effort: её сбой не отменяет уже опубликованное сообщение.
func (s *Service) Send(ctx context.Context, senderUID, senderName, text string) error {
	const op = "broadcast.Send"

	msg := Message{
		Text:       text,
		SenderUID:  senderUID,
		SenderName: senderName,
		SentAt:     s.now(),
	}
	if err := rabbitmq.PublishMessage(s.channel, s.exchange, "", msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.CreateActivityEntry(ctx, senderUID, senderName, "отправил рассылку"); err != nil {
		s.log.Warn("failed to log broadcast", slog.String("sender_uid", senderUID), sl.Err(err))
	}
	return nil
}
