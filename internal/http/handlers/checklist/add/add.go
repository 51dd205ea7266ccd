// Package add реализует HTTP-обработчик добавления пункта чек-листа.
//
// Администратор может указать несколько целевых аккаунтов: каждому
// создаётся независимая строка с однобуквенной меткой источника.
package add

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/content-factory/internal/http/middlewarectx"
	"github.com/magabrotheeeer/content-factory/internal/http/response"
	"github.com/magabrotheeeer/content-factory/internal/lib/sl"
	"github.com/magabrotheeeer/content-factory/internal/models"
)

// Handler обрабатывает HTTP-запросы на добавление пункта.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики добавления пункта.
type Service interface {
	Add(ctx context.Context, actorUID string, req models.DummyChecklistAdd) ([]int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Добавить пункт чек-листа
// @Description Создаёт пункт наверху раздела. При списке целевых аккаунтов каждому создаётся независимая строка.
// @Tags Checklist
// @Accept  json
// @Produce  json
// @Param request body models.DummyChecklistAdd true "Пункт и целевые аккаунты"
// @Success 200 {object} response.Response "ID созданных пунктов"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 401 {object} response.ErrorResponse "Нет идентификации аккаунта"
// @Failure 500 {object} response.ErrorResponse "Ошибка при добавлении"
// @Router /checklist [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checklist.add"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actorUID, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || actorUID == "" {
		log.Error("account identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("account identification missing"))
		return
	}

	var req models.DummyChecklistAdd
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

	ids, err := h.service.Add(r.Context(), actorUID, req)
	if err != nil {
		// Частичный сбой веера: уже созданные строки остаются.
		log.Error("failed to add checklist item", slog.Int("created", len(ids)), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to add checklist item"))
		return
	}

	log.Info("checklist items added", slog.Int("count", len(ids)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"ids": ids,
	}))
}
