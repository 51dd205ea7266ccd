// Package contentfactory собирает приложение: хранилище, миграции,
// Redis-отметки, RabbitMQ, сервисы и HTTP-сервер.
package contentfactory

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/content-factory/internal/config"
	"github.com/magabrotheeeer/content-factory/internal/lib/jwt"
	"github.com/magabrotheeeer/content-factory/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/content-factory/internal/markers"
	"github.com/magabrotheeeer/content-factory/internal/migrations"
	accountservice "github.com/magabrotheeeer/content-factory/internal/services/account"
	broadcastservice "github.com/magabrotheeeer/content-factory/internal/services/broadcast"
	checklistservice "github.com/magabrotheeeer/content-factory/internal/services/checklist"
	ideaservice "github.com/magabrotheeeer/content-factory/internal/services/idea"
	notificationservice "github.com/magabrotheeeer/content-factory/internal/services/notification"
	quotaservice "github.com/magabrotheeeer/content-factory/internal/services/quota"
	sessionservice "github.com/magabrotheeeer/content-factory/internal/services/session"
	subscriptionservice "github.com/magabrotheeeer/content-factory/internal/services/subscription"
	taskservice "github.com/magabrotheeeer/content-factory/internal/services/task"
	"github.com/magabrotheeeer/content-factory/internal/storage/repository"
)

// App держит собранный HTTP-сервер и соединения, закрываемые при остановке.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	markers    *markers.Store
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// Services объединяет сервисы приложения для регистрации маршрутов.
type Services struct {
	Session      *sessionservice.Service
	Account      *accountservice.Service
	Subscription *subscriptionservice.Service
	Quota        *quotaservice.Service
	Task         *taskservice.Service
	Checklist    *checklistservice.Service
	Notification *notificationservice.Service
	Idea         *ideaservice.Service
	Broadcast    *broadcastservice.Service
	Repo         *repository.Storage
	Tokens       jwt.Maker
}

// New собирает приложение из конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	markerStore, err := markers.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, rabbitCh, err := rabbitmq.Connect(cfg.RabbitConnection.URL, cfg.RabbitConnection.Exchange)
	if err != nil {
		return nil, err
	}

	tokens := jwt.NewMaker(cfg.SessionToken.SecretKey, cfg.SessionToken.TokenTTL)

	services := &Services{
		Session:      sessionservice.New(db, tokens, logger),
		Account:      accountservice.New(db, logger),
		Subscription: subscriptionservice.New(db, logger),
		Quota:        quotaservice.New(db, logger),
		Task:         taskservice.New(db, logger),
		Checklist:    checklistservice.New(db, logger),
		Notification: notificationservice.New(db, markerStore, logger),
		Idea:         ideaservice.New(db, logger),
		Broadcast:    broadcastservice.New(rabbitCh, cfg.RabbitConnection.Exchange, db, logger),
		Repo:         db,
		Tokens:       tokens,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		markers:    markerStore,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.rabbitCh.Close()
		_ = a.rabbitConn.Close()
		_ = a.markers.Db.Close()
		_ = a.db.DB.Close()
		return err
	}
}
