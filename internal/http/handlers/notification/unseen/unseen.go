// Package unseen реализует HTTP-обработчик счётчика непросмотренных уведомлений.
package unseen

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/content-factory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Handler обрабатывает HTTP-запросы счётчика непросмотренного.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики свежести уведомлений.
type Service interface {
	Unseen(ctx context.Context, accountUID, category string) (int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Счётчик непросмотренного
// @Description Возвращает количество событий категории после отметки последнего просмотра.
// @Tags Notifications
// @Produce  json
// @Param category path string true "Категория: scenarios, activity или ideas"
// @Success 200 {object} response.Response "Количество непросмотренного"
// @Failure 400 {object} response.ErrorResponse "Неизвестная категория"
// @Failure 401 {object} response.ErrorResponse "Нет идентификации аккаунта"
// @Failure 500 {object} response.ErrorResponse "Ошибка при подсчёте"
// @Router /notifications/{category} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.unseen"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	accountUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || accountUID == "" {
		log.Error("account identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("account identification missing"))
		return
	}

	category := chi.URLParam(r, "category")
	count, err := h.service.Unseen(r.Context(), accountUID, category)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			log.Error("unknown category", slog.String("category", category))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown category"))
			return
		}
		log.Error("failed to count unseen", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to count unseen"))
		return
	}

	log.Info("unseen counted", slog.String("category", category), slog.Int("count", count))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count": count,
	}))
}
