// Package contentfactory предоставляет маршруты для основного приложения.
package contentfactory

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	accountcreate "github.com/magabrotheeeer/content-factory/internal/http/handlers/account/create"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/account/extend"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/account/extensions"
	accountlist "github.com/magabrotheeeer/content-factory/internal/http/handlers/account/list"
	accountremove "github.com/magabrotheeeer/content-factory/internal/http/handlers/account/remove"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/account/updatelimits"
	activitylist "github.com/magabrotheeeer/content-factory/internal/http/handlers/activity/list"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/auth/restore"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/broadcast/send"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/checklist/add"
	checklistedit "github.com/magabrotheeeer/content-factory/internal/http/handlers/checklist/edit"
	checklistlist "github.com/magabrotheeeer/content-factory/internal/http/handlers/checklist/list"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/checklist/move"
	checklistremove "github.com/magabrotheeeer/content-factory/internal/http/handlers/checklist/remove"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/checklist/reorder"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/checklist/toggle"
	ideacreate "github.com/magabrotheeeer/content-factory/internal/http/handlers/idea/create"
	idealist "github.com/magabrotheeeer/content-factory/internal/http/handlers/idea/list"
	idearemove "github.com/magabrotheeeer/content-factory/internal/http/handlers/idea/remove"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/notification/markseen"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/notification/unseen"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/quota/consume"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/task/approve"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/task/assign"
	taskcreate "github.com/magabrotheeeer/content-factory/internal/http/handlers/task/create"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/task/deliver"
	tasklist "github.com/magabrotheeeer/content-factory/internal/http/handlers/task/list"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/task/reject"
	taskremove "github.com/magabrotheeeer/content-factory/internal/http/handlers/task/remove"
	"github.com/magabrotheeeer/content-factory/internal/http/handlers/task/reportissue"
	"github.com/magabrotheeeer/content-factory/internal/http/middlewarectx"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/login", login.New(logger, s.Session).ServeHTTP)
		r.Post("/session", restore.New(logger, s.Session).ServeHTTP)

		// Группа с сессионной аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(s.Tokens, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			// Личные операции аккаунта
			r.Post("/quota/{resource}", consume.New(logger, s.Quota).ServeHTTP)
			r.Get("/tasks", tasklist.New(logger, s.Task).ServeHTTP)
			r.Post("/tasks/{id}/deliver", deliver.New(logger, s.Task).ServeHTTP)
			r.Post("/tasks/{id}/issue", reportissue.New(logger, s.Task).ServeHTTP)
			r.Post("/checklist", add.New(logger, s.Checklist).ServeHTTP)
			r.Get("/checklist", checklistlist.New(logger, s.Checklist).ServeHTTP)
			r.Post("/checklist/{id}/toggle", toggle.New(logger, s.Checklist).ServeHTTP)
			r.Post("/checklist/{id}/reorder", reorder.New(logger, s.Checklist).ServeHTTP)
			r.Post("/checklist/{id}/move", move.New(logger, s.Checklist).ServeHTTP)
			r.Put("/checklist/{id}", checklistedit.New(logger, s.Checklist).ServeHTTP)
			r.Delete("/checklist/{id}", checklistremove.New(logger, s.Checklist).ServeHTTP)
			r.Get("/notifications/{category}", unseen.New(logger, s.Notification).ServeHTTP)
			r.Post("/notifications/{category}/seen", markseen.New(logger, s.Notification).ServeHTTP)
			r.Post("/ideas", ideacreate.New(logger, s.Idea).ServeHTTP)

			// Обслуживание аккаунтов
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(middlewarectx.PermManageAccounts, s.Repo, logger))
				r.Post("/accounts", accountcreate.New(logger, s.Account).ServeHTTP)
				r.Get("/accounts", accountlist.New(logger, s.Account).ServeHTTP)
				r.Delete("/accounts/{uid}", accountremove.New(logger, s.Account).ServeHTTP)
				r.Put("/accounts/{uid}/limits", updatelimits.New(logger, s.Account).ServeHTTP)
				r.Post("/accounts/{uid}/extend", extend.New(logger, s.Subscription).ServeHTTP)
				r.Get("/accounts/{uid}/extensions", extensions.New(logger, s.Subscription).ServeHTTP)
			})

			// Производственные задачи
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(middlewarectx.PermManageTasks, s.Repo, logger))
				r.Post("/tasks", taskcreate.New(logger, s.Task).ServeHTTP)
				r.Post("/tasks/{id}/assign", assign.New(logger, s.Task).ServeHTTP)
				r.Post("/tasks/{id}/approve", approve.New(logger, s.Task).ServeHTTP)
				r.Post("/tasks/{id}/reject", reject.New(logger, s.Task).ServeHTTP)
				r.Delete("/tasks/{id}", taskremove.New(logger, s.Task).ServeHTTP)
			})

			// Журнал и банк идей
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(middlewarectx.PermViewActivity, s.Repo, logger))
				r.Get("/activity", activitylist.New(logger, s.Repo).ServeHTTP)
				r.Get("/ideas", idealist.New(logger, s.Idea).ServeHTTP)
				r.Delete("/ideas/{id}", idearemove.New(logger, s.Idea).ServeHTTP)
			})

			// Рассылка
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequirePermission(middlewarectx.PermBroadcast, s.Repo, logger))
				r.Post("/broadcast", send.New(logger, s.Broadcast, s.Repo).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
