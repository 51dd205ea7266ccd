// Package assign реализует HTTP-обработчик назначения монтажёра на задачу.
package assign

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Handler обрабатывает HTTP-запросы на назначение монтажёра.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики назначения.
type Service interface {
	Assign(ctx context.Context, id int, editorUID, adminNote string) (*models.Task, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Назначить монтажёра
// @Description Назначает монтажёра и примечание. Переназначение обновляет задачу на месте.
// @Tags Tasks
// @Accept  json
// @Produce  json
// @Param id path int true "ID задачи"
// @Param request body models.DummyAssign true "Монтажёр и примечание"
// @Success 200 {object} response.Response "Обновлённая задача"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Задача не найдена"
// @Failure 409 {object} response.ErrorResponse "Недопустимый переход статуса"
// @Failure 500 {object} response.ErrorResponse "Ошибка при назначении"
// @Router /tasks/{id}/assign [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.assign"

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

	var req models.DummyAssign
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := validator.New().Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		errors.As(err, &validateErr)
		log.Error("invalid request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	task, err := h.service.Assign(r.Context(), id, req.EditorUID, req.AdminNote)
	if err != nil {
		renderTaskError(w, r, log, err, "failed to assign editor")
		return
	}

	log.Info("editor assigned", slog.Int("id", id), slog.String("editor_uid", req.EditorUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"task": task,
	}))
}

// renderTaskError переводит ошибки переходов задачи в HTTP-статусы.
func renderTaskError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		log.Info("task not found")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("task not found"))
	case errors.Is(err, models.ErrConflict):
		log.Info("invalid status transition", sl.Err(err))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("invalid status transition"))
	default:
		log.Error(fallback, sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(fallback))
	}
}
