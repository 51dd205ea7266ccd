// Package approve реализует HTTP-обработчик приёмки сданной задачи.
package approve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Handler обрабатывает HTTP-запросы на приёмку задачи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики приёмки.
type Service interface {
	Approve(ctx context.Context, id int) (*models.Task, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Принять задачу
// @Description Переводит задачу из pending_approval в терминальный delivered.
// @Tags Tasks
// @Produce  json
// @Param id path int true "ID задачи"
// @Success 200 {object} response.Response "Обновлённая задача"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Failure 409 {object} response.ErrorResponse "Недопустимый переход статуса"
// @Failure 500 {object} response.ErrorResponse "Ошибка при приёмке"
// @Router /tasks/{id}/approve [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.approve"

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

	task, err := h.service.Approve(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			log.Info("task not found", slog.Int("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("task not found"))
		case errors.Is(err, models.ErrConflict):
			log.Info("invalid status transition", sl.Err(err))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("invalid status transition"))
		default:
			log.Error("failed to approve task", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to approve task"))
		}
		return
	}

	log.Info("task approved", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"task": task,
	}))
}
