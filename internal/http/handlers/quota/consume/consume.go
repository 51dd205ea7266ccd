// Package consume реализует HTTP-обработчик списания квотного ресурса.
//
// Проверка «лимит ещё не исчерпан» выполняется клиентом по данным
// аккаунта; сервер только атомарно увеличивает счётчик и возвращает
// новое значение вместе с лимитом.
package consume

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

// Handler обрабатывает HTTP-запросы на списание ресурса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расхода квоты.
type Service interface {
	Consume(ctx context.Context, accountUID, resourceName string) (int, int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Списать единицу ресурса
// @Description Атомарно увеличивает счётчик ресурса аккаунта и возвращает новое значение и лимит.
// @Tags Quota
// @Produce  json
// @Param resource path string true "Имя ресурса: story, voice, series или idea"
// @Success 200 {object} response.Response "Счётчик и лимит"
// @Failure 400 {object} response.ErrorResponse "Неизвестный ресурс"
// @Failure 401 {object} response.ErrorResponse "Нет идентификации аккаунта"
// @Failure 500 {object} response.ErrorResponse "Ошибка при списании"
// @Router /quota/{resource} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.quota.consume"

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

	resource := chi.URLParam(r, "resource")
	current, limit, err := h.service.Consume(r.Context(), accountUID, resource)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			log.Error("unknown resource", slog.String("resource", resource))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown resource"))
			return
		}
		log.Error("failed to consume resource", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to consume resource"))
		return
	}

	log.Info("resource consumed",
		slog.String("account_uid", accountUID),
		slog.String("resource", resource),
		slog.Int("current", current),
		slog.Int("limit", limit))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"current": current,
		"limit":   limit,
	}))
}
