// Package reorder реализует HTTP-обработчик перестановки пункта чек-листа.
//
// Перестановка меняет местами позиции двух соседних строк раздела.
// Пункт на границе списка остаётся на месте, это не ошибка.
package reorder

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

// Handler обрабатывает HTTP-запросы на перестановку пункта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики перестановки.
type Service interface {
	Reorder(ctx context.Context, id int, direction string) error
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Переставить пункт
// @Description Перемещает пункт на одну позицию вверх или вниз внутри его раздела.
// @Tags Checklist
// @Accept  json
// @Produce  json
// @Param id path int true "ID пункта"
// @Param request body models.DummyReorder true "Направление: up или down"
// @Success 200 {object} response.Response "Пункт переставлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Пункт не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка при перестановке"
// @Router /checklist/{id}/reorder [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checklist.reorder"

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

	var req models.DummyReorder
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

	if err := h.service.Reorder(r.Context(), id, req.Direction); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Info("checklist item not found", slog.Int("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("checklist item not found"))
			return
		}
		log.Error("failed to reorder checklist item", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to reorder checklist item"))
		return
	}

	log.Info("checklist item reordered", slog.Int("id", id), slog.String("direction", req.Direction))
	render.JSON(w, r, response.OK())
}
