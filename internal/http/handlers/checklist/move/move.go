// Package move реализует HTTP-обработчик переноса пункта между корзинами.
package move

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы на перенос пункта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики переноса.
type Service interface {
	MoveBucket(ctx context.Context, id int) (int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Перенести пункт между корзинами
// @Description Переносит пункт между «на сегодня» и «позже», сохраняя позицию.
// @Tags Checklist
// @Produce  json
// @Param id path int true "ID пункта"
// @Success 200 {object} response.Response "Пункт перенесён"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Пункт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка при переносе"
// @Router /checklist/{id}/move [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checklist.move"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	count, err := h.service.MoveBucket(r.Context(), id)
	if err != nil {
		log.Error("failed to move checklist item", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to move checklist item"))
		return
	}
	if count == 0 {
		log.Info("checklist item not found", slog.Int("id", id))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("checklist item not found"))
		return
	}

	log.Info("checklist item moved", slog.Int("id", id))
	render.JSON(w, r, response.OK())
}
