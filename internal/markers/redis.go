// Package markers реализует хранилище отметок «последнего просмотра»
// уведомлений поверх Redis. Отметка — это просто момент времени, ключ
// собирается из категории и, где нужно, uid аккаунта. Отметки никогда
// не удаляются: отсутствие ключа означает «ничего ещё не просмотрено».
package markers

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/content-factory/internal/config"
)

// Store инкапсулирует подключение к Redis для работы с отметками.
type Store struct {
	Db *redis.Client
}

// InitServer открывает подключение к Redis и проверяет его ping-ом.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Store, error) {
	const op = "markers.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db}, nil
}

// Get возвращает отметку по ключу области. Второе значение false означает,
// что область ещё ни разу не просматривалась.
func (s *Store) Get(ctx context.Context, scope string) (time.Time, bool, error) {
	const op = "markers.Get"
	val, err := s.Db.Get(ctx, key(scope)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%s: %w", op, err)
	}
	ts, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return ts, true, nil
}

// Set записывает отметку по ключу области.
func (s *Store) Set(ctx context.Context, scope string, seen time.Time) error {
	const op = "markers.Set"
	if err := s.Db.Set(ctx, key(scope), seen.Format(time.RFC3339Nano), 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func key(scope string) string {
	return "seen:" + scope
}
